package vecmodel

// Builder is the explicit construction path for definitions whose record
// shape is not a dedicated struct — one definition shared by many anonymous
// rows of a tabular container. Build runs the same validation pass as
// extraction.
type Builder struct {
	fields        []Field
	containerMode bool
	toContainer   ToContainerFunc
	fromContainer FromContainerFunc
	defaults      *Defaults
	err           error
}

// NewBuilder creates an empty definition builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddField appends a constructed field.
func (b *Builder) AddField(f Field) *Builder {
	b.fields = append(b.fields, f)
	return b
}

// Field constructs and appends a field in one step. A construction error is
// held and returned by Build.
func (b *Builder) Field(role Role, storageName string, opts ...FieldOption) *Builder {
	f, err := NewField(role, storageName, opts...)
	if err != nil {
		if b.err == nil {
			b.err = err
		}
		return b
	}
	return b.AddField(f)
}

// ContainerMode marks the definition as describing rows of a bulk container.
func (b *Builder) ContainerMode() *Builder {
	b.containerMode = true
	return b
}

// Hooks sets the container conversion hook pair. Both must be set together;
// Build rejects a lone hook.
func (b *Builder) Hooks(to ToContainerFunc, from FromContainerFunc) *Builder {
	b.toContainer = to
	b.fromContainer = from
	return b
}

// Defaults applies fallback index metadata to vector fields at Build time.
func (b *Builder) Defaults(d Defaults) *Builder {
	b.defaults = &d
	return b
}

// Build validates the accumulated fields and produces the definition.
func (b *Builder) Build() (*CollectionDefinition, error) {
	if b.err != nil {
		return nil, b.err
	}
	fields := make([]Field, len(b.fields))
	copy(fields, b.fields)
	if b.defaults != nil {
		for i := range fields {
			b.defaults.apply(&fields[i])
		}
	}
	return newDefinition(fields, b.containerMode, b.toContainer, b.fromContainer)
}
