package vecmodel

import (
	"reflect"
	"strconv"
	"strings"
)

const tagKey = "vecmodel"

// FieldDescriptor is one entry of the record-type descriptor contract: a
// declared field name, its declared Go type, an optional schema annotation
// and an optional default mechanism. A field with an empty Tag is not part
// of the schema.
type FieldDescriptor struct {
	Name           string
	GoType         reflect.Type
	Tag            string
	DefaultValue   any
	DefaultFactory func() any
}

// RecordDescriptor is the explicit "describe fields" capability a record
// type may implement instead of carrying struct tags.
type RecordDescriptor interface {
	DescribeFields() []FieldDescriptor
}

// RecordDefaults supplies per-field default factories for the struct-tag
// extraction path, keyed by Go field name. Factories are invoked fresh per
// record construction, never shared.
type RecordDefaults interface {
	FieldDefaults() map[string]func() any
}

// ExtractOption configures schema extraction.
type ExtractOption func(*extractConfig)

type extractConfig struct {
	defaults *Defaults
}

// WithDefaults fills missing index metadata on vector fields during
// extraction. Dimensions are never filled in.
func WithDefaults(d Defaults) ExtractOption {
	return func(c *extractConfig) { c.defaults = &d }
}

// Extract derives a CollectionDefinition from T's declared field metadata.
//
// If T implements RecordDescriptor, its field descriptors are used directly.
// Otherwise T must be a struct (or pointer to struct) carrying vecmodel tags:
//
//	type Document struct {
//	    ID        string    `vecmodel:"key"`
//	    Content   string    `vecmodel:"data,fulltext"`
//	    Embedding []float32 `vecmodel:"vector,name=vector,dim=1024"`
//	    loaded    time.Time // untagged fields are not part of the schema
//	}
//
// The first tag token selects the role; remaining tokens are name=, type=,
// dim=, index=, distance= options and the fulltext / filterable flags.
// Default factories come from the optional RecordDefaults interface.
// Extraction is a pure, cacheable computation; use a Registry to run it once
// per type.
func Extract[T any](opts ...ExtractOption) (*CollectionDefinition, error) {
	var zero T
	if rd, ok := any(zero).(RecordDescriptor); ok {
		return ExtractFields(rd.DescribeFields(), opts...)
	}
	if rd, ok := any(&zero).(RecordDescriptor); ok {
		return ExtractFields(rd.DescribeFields(), opts...)
	}

	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, NewSchemaError("", "record type %T is not a struct", zero)
	}

	factories := fieldFactories[T](zero)

	var descs []FieldDescriptor
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get(tagKey)
		if tag == "" || tag == "-" {
			continue
		}
		d := FieldDescriptor{Name: f.Name, GoType: f.Type, Tag: tag}
		if fn, ok := factories[f.Name]; ok {
			d.DefaultFactory = fn
		}
		descs = append(descs, d)
	}
	return ExtractFields(descs, opts...)
}

func fieldFactories[T any](zero T) map[string]func() any {
	if rd, ok := any(zero).(RecordDefaults); ok {
		return rd.FieldDefaults()
	}
	if rd, ok := any(&zero).(RecordDefaults); ok {
		return rd.FieldDefaults()
	}
	return nil
}

// ExtractFields derives a CollectionDefinition from an explicit descriptor
// list, preserving descriptor order. Descriptors without an annotation are
// skipped.
func ExtractFields(descs []FieldDescriptor, opts ...ExtractOption) (*CollectionDefinition, error) {
	var cfg extractConfig
	for _, o := range opts {
		o(&cfg)
	}

	fields := make([]Field, 0, len(descs))
	for _, d := range descs {
		if d.Tag == "" {
			continue
		}
		f, err := fieldFromDescriptor(d)
		if err != nil {
			return nil, err
		}
		if cfg.defaults != nil {
			cfg.defaults.apply(&f)
		}
		fields = append(fields, f)
	}
	return newDefinition(fields, false, nil, nil)
}

// fieldFromDescriptor parses one annotation and merges it with the
// descriptor's declared type and default mechanism.
func fieldFromDescriptor(d FieldDescriptor) (Field, error) {
	parts := strings.Split(d.Tag, ",")
	role, ok := ParseRole(strings.TrimSpace(parts[0]))
	if !ok {
		return Field{}, NewSchemaError(d.Name, "unknown role token %q", parts[0])
	}

	storageName := d.Name
	opts := []FieldOption{WithPropertyName(d.Name)}
	typeSet := false

	for _, part := range parts[1:] {
		part = strings.TrimSpace(part)
		key, value, hasValue := strings.Cut(part, "=")
		switch {
		case key == "name" && hasValue:
			if value == "" {
				return Field{}, NewSchemaError(d.Name, "empty name option")
			}
			storageName = value
		case key == "type" && hasValue:
			vt, ok := ParseValueType(value)
			if !ok {
				return Field{}, NewSchemaError(d.Name, "unknown value type token %q", value)
			}
			opts = append(opts, WithValueType(vt))
			typeSet = true
		case key == "dim" && hasValue:
			n, err := strconv.Atoi(value)
			if err != nil || n <= 0 {
				return Field{}, NewSchemaError(d.Name, "invalid dim option %q", value)
			}
			opts = append(opts, WithDimensions(n))
		case key == "index" && hasValue:
			opts = append(opts, WithIndexKind(value))
		case key == "distance" && hasValue:
			opts = append(opts, WithDistanceFunction(value))
		case part == "fulltext":
			opts = append(opts, WithFullTextIndex())
		case part == "filterable":
			opts = append(opts, WithFilterable())
		case part == "":
			return Field{}, NewSchemaError(d.Name, "empty tag option")
		default:
			return Field{}, NewSchemaError(d.Name, "unknown tag option %q", part)
		}
	}

	if !typeSet {
		opts = append(opts, WithValueType(inferValueType(d.GoType, role)))
	}
	if d.DefaultFactory != nil {
		opts = append(opts, WithDefaultFactory(d.DefaultFactory))
	} else if d.DefaultValue != nil {
		opts = append(opts, WithDefaultValue(d.DefaultValue))
	}

	return NewField(role, storageName, opts...)
}

// inferValueType maps a declared Go type to a semantic value type tag. An
// untyped (any) or string-typed vector field infers vector_or_text: the value
// is either a stored float sequence or source text pending embedding by an
// external collaborator.
func inferValueType(t reflect.Type, role Role) ValueType {
	if t == nil {
		if role == RoleVector {
			return TypeVectorOrText
		}
		return TypeRaw
	}
	switch t.Kind() {
	case reflect.Pointer:
		return inferValueType(t.Elem(), role)
	case reflect.String:
		if role == RoleVector {
			return TypeVectorOrText
		}
		return TypeText
	case reflect.Bool:
		return TypeBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return TypeInt
	case reflect.Float32, reflect.Float64:
		return TypeFloat
	case reflect.Slice:
		switch t.Elem().Kind() {
		case reflect.Float32, reflect.Float64:
			return TypeFloatSeq
		}
		return TypeRaw
	case reflect.Interface:
		if role == RoleVector {
			return TypeVectorOrText
		}
		return TypeRaw
	default:
		return TypeRaw
	}
}
