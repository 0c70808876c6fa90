package vecmodel

// Role classifies a schema field as key, data or vector. Closed set.
type Role string

// Field roles.
const (
	RoleKey    Role = "key"
	RoleData   Role = "data"
	RoleVector Role = "vector"
)

// ParseRole resolves a role token to a Role.
func ParseRole(token string) (Role, bool) {
	switch Role(token) {
	case RoleKey, RoleData, RoleVector:
		return Role(token), true
	}
	return "", false
}

// ValueType is a semantic tag describing the expected value shape of a field.
type ValueType string

// Value types.
const (
	TypeText     ValueType = "text"
	TypeInt      ValueType = "int"
	TypeFloat    ValueType = "float"
	TypeBool     ValueType = "bool"
	TypeFloatSeq ValueType = "float_seq"
	TypeRaw      ValueType = "raw_string"
	// TypeVectorOrText marks a vector field whose value is either a stored
	// float sequence or a raw source string to be embedded by an external
	// collaborator. Both representations are valid; no coercion happens here.
	TypeVectorOrText ValueType = "vector_or_text"
)

// ParseValueType resolves a type token to a ValueType.
func ParseValueType(token string) (ValueType, bool) {
	switch ValueType(token) {
	case TypeText, TypeInt, TypeFloat, TypeBool, TypeFloatSeq, TypeRaw, TypeVectorOrText:
		return ValueType(token), true
	}
	return "", false
}

// Well-known index kind and distance function tokens. Both attributes are
// opaque backend-facing strings; any value a backend understands is allowed.
const (
	IndexKindHNSW = "hnsw"
	IndexKindFlat = "flat"

	DistanceCosine    = "cosine_similarity"
	DistanceDotProd   = "dot_prod"
	DistanceEuclidean = "euclidean_distance"
)

// Field is an immutable value object describing one schema field.
// The zero value is not valid; construct through NewField.
type Field struct {
	role             Role
	propertyName     string
	storageName      string
	valueType        ValueType
	dimensions       int
	indexKind        string
	distanceFunction string
	fullTextIndexed  bool
	filterable       bool
	defaultValue     any
	defaultFactory   func() any
}

// FieldOption configures a Field during construction.
type FieldOption func(*Field)

// WithPropertyName sets the in-memory attribute name on the record type.
func WithPropertyName(name string) FieldOption {
	return func(f *Field) { f.propertyName = name }
}

// WithValueType sets the semantic value type tag.
func WithValueType(t ValueType) FieldOption {
	return func(f *Field) { f.valueType = t }
}

// WithDimensions sets the vector dimensionality.
func WithDimensions(n int) FieldOption {
	return func(f *Field) { f.dimensions = n }
}

// WithIndexKind sets the backend index kind token (vector fields only).
func WithIndexKind(kind string) FieldOption {
	return func(f *Field) { f.indexKind = kind }
}

// WithDistanceFunction sets the backend distance function token (vector fields only).
func WithDistanceFunction(fn string) FieldOption {
	return func(f *Field) { f.distanceFunction = fn }
}

// WithFullTextIndex marks a data field as full-text indexed.
func WithFullTextIndex() FieldOption {
	return func(f *Field) { f.fullTextIndexed = true }
}

// WithFilterable marks a data field as filterable.
func WithFilterable() FieldOption {
	return func(f *Field) { f.filterable = true }
}

// WithDefaultValue sets a constant default used when a record omits the field.
func WithDefaultValue(v any) FieldOption {
	return func(f *Field) { f.defaultValue = v }
}

// WithDefaultFactory sets a factory invoked fresh for every record
// construction that omits the field. Use instead of WithDefaultValue for
// mutable or per-record values (e.g. generated keys).
func WithDefaultFactory(fn func() any) FieldOption {
	return func(f *Field) { f.defaultFactory = fn }
}

// NewField validates and creates a Field.
//
// storageName is the name used when talking to the backing store; the
// property name defaults to it unless WithPropertyName is given. Role must
// be one of key, data, vector. Attributes bound to a role (dimensions, index
// kind and distance function for vector; full-text and filterable flags for
// data) are rejected on fields of any other role. A vector field without
// dimensions passes here and fails definition validation, so builders can
// fill dimensions from shared defaults before Build.
func NewField(role Role, storageName string, opts ...FieldOption) (Field, error) {
	if _, ok := ParseRole(string(role)); !ok {
		return Field{}, NewSchemaError(storageName, "unknown role token %q", role)
	}
	if storageName == "" {
		return Field{}, NewSchemaError("", "empty storage name for %s field", role)
	}

	f := Field{role: role, storageName: storageName}
	for _, o := range opts {
		o(&f)
	}
	if f.propertyName == "" {
		f.propertyName = storageName
	}

	if f.valueType != "" {
		if _, ok := ParseValueType(string(f.valueType)); !ok {
			return Field{}, NewSchemaError(f.propertyName, "unknown value type token %q", f.valueType)
		}
	}
	if f.dimensions < 0 {
		return Field{}, NewValidationError("invalid dimensions",
			"field %q: dimensions must be positive, got %d", f.storageName, f.dimensions)
	}
	if f.role != RoleVector {
		if f.dimensions != 0 {
			return Field{}, NewValidationError("dimensions on non-vector field", "field %q", f.storageName)
		}
		if f.indexKind != "" || f.distanceFunction != "" {
			return Field{}, NewValidationError("index metadata on non-vector field", "field %q", f.storageName)
		}
	}
	if f.role != RoleData && (f.fullTextIndexed || f.filterable) {
		return Field{}, NewValidationError("index flags on non-data field", "field %q", f.storageName)
	}
	if f.defaultValue != nil && f.defaultFactory != nil {
		return Field{}, NewValidationError("conflicting defaults",
			"field %q: default value and default factory are mutually exclusive", f.storageName)
	}
	return f, nil
}

// Role returns the field role.
func (f Field) Role() Role { return f.role }

// PropertyName returns the in-memory attribute name on the record type.
func (f Field) PropertyName() string { return f.propertyName }

// StorageName returns the name used when talking to the backing store.
func (f Field) StorageName() string { return f.storageName }

// Type returns the semantic value type tag, empty if never declared or inferred.
func (f Field) Type() ValueType { return f.valueType }

// Dimensions returns the vector dimensionality, 0 if unset.
func (f Field) Dimensions() int { return f.dimensions }

// IndexKind returns the backend index kind token.
func (f Field) IndexKind() string { return f.indexKind }

// DistanceFunction returns the backend distance function token.
func (f Field) DistanceFunction() string { return f.distanceFunction }

// IsFullTextIndexed reports whether a data field is full-text indexed.
func (f Field) IsFullTextIndexed() bool { return f.fullTextIndexed }

// IsFilterable reports whether a data field is filterable.
func (f Field) IsFilterable() bool { return f.filterable }

// HasDefault reports whether the field carries a default value or factory.
func (f Field) HasDefault() bool { return f.defaultValue != nil || f.defaultFactory != nil }

// Default produces the field's default value. Factories are invoked fresh on
// every call; the second result is false when no default is declared.
func (f Field) Default() (any, bool) {
	if f.defaultFactory != nil {
		return f.defaultFactory(), true
	}
	if f.defaultValue != nil {
		return f.defaultValue, true
	}
	return nil, false
}
