package vecmodel

// ToContainerFunc converts an ordered sequence of row-mappings into one bulk
// container value. Row-mapping keys are storage names.
type ToContainerFunc func(rows Rows) (any, error)

// FromContainerFunc is the inverse of ToContainerFunc.
type FromContainerFunc func(container any) (Rows, error)

// CollectionDefinition is the validated, immutable schema contract for a set
// of records. Field order is significant: it matches backend schema
// declaration order. Safe for concurrent use.
type CollectionDefinition struct {
	fields        []Field
	keyIdx        int
	containerMode bool
	toContainer   ToContainerFunc
	fromContainer FromContainerFunc
}

// newDefinition runs the aggregate validation pass shared by extraction and
// the builder, then seals the definition.
func newDefinition(fields []Field, containerMode bool, to ToContainerFunc, from FromContainerFunc) (*CollectionDefinition, error) {
	if len(fields) == 0 {
		return nil, NewValidationError("no fields", "")
	}
	if (to == nil) != (from == nil) {
		return nil, NewValidationError("container hooks must be set together", "")
	}

	keyIdx := -1
	vectors := 0
	seen := make(map[string]string, len(fields))
	for i, f := range fields {
		if prev, ok := seen[f.storageName]; ok {
			return nil, NewValidationError("duplicate storage name",
				"%q declared by fields %q and %q", f.storageName, prev, f.propertyName)
		}
		seen[f.storageName] = f.propertyName

		switch f.role {
		case RoleKey:
			if keyIdx != -1 {
				return nil, NewValidationError("multiple key fields",
					"%q and %q", fields[keyIdx].storageName, f.storageName)
			}
			keyIdx = i
		case RoleVector:
			vectors++
			if f.dimensions == 0 {
				return nil, NewValidationError("vector field missing dimensions", "field %q", f.storageName)
			}
		}
	}
	if keyIdx == -1 {
		return nil, NewValidationError("no key field", "")
	}
	if vectors == 0 {
		return nil, NewValidationError("no vector field", "")
	}

	own := make([]Field, len(fields))
	copy(own, fields)
	return &CollectionDefinition{
		fields:        own,
		keyIdx:        keyIdx,
		containerMode: containerMode,
		toContainer:   to,
		fromContainer: from,
	}, nil
}

func indexOf(fields []Field, storageName string) int {
	for i, f := range fields {
		if f.storageName == storageName {
			return i
		}
	}
	return -1
}

// Fields returns the ordered field list.
func (d *CollectionDefinition) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

// Len returns the number of schema fields.
func (d *CollectionDefinition) Len() int { return len(d.fields) }

// KeyField returns the single key field.
func (d *CollectionDefinition) KeyField() Field { return d.fields[d.keyIdx] }

// DataFields returns the data fields in declaration order.
func (d *CollectionDefinition) DataFields() []Field { return d.fieldsByRole(RoleData) }

// VectorFields returns the vector fields in declaration order.
func (d *CollectionDefinition) VectorFields() []Field { return d.fieldsByRole(RoleVector) }

func (d *CollectionDefinition) fieldsByRole(role Role) []Field {
	var out []Field
	for _, f := range d.fields {
		if f.role == role {
			out = append(out, f)
		}
	}
	return out
}

// StorageNames returns all storage names in declaration order.
func (d *CollectionDefinition) StorageNames() []string {
	out := make([]string, len(d.fields))
	for i, f := range d.fields {
		out[i] = f.storageName
	}
	return out
}

// FieldByStorageName looks a field up by its storage name.
func (d *CollectionDefinition) FieldByStorageName(name string) (Field, bool) {
	if i := indexOf(d.fields, name); i != -1 {
		return d.fields[i], true
	}
	return Field{}, false
}

// ContainerMode reports whether the definition describes rows of a bulk
// container rather than one object per record.
func (d *CollectionDefinition) ContainerMode() bool { return d.containerMode }

// ApplyDefaults returns a copy of row with declared field defaults filled in
// for missing storage names. Default factories run fresh on every call.
func (d *CollectionDefinition) ApplyDefaults(row Row) Row {
	out := make(Row, len(d.fields))
	for k, v := range row {
		out[k] = v
	}
	for _, f := range d.fields {
		if _, present := out[f.storageName]; present {
			continue
		}
		if v, ok := f.Default(); ok {
			out[f.storageName] = v
		}
	}
	return out
}
