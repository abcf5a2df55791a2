package duoskema

import "regexp"

// CanonicalType is the closed set of normalized type categories every raw
// type token resolves to before either compiler runs.
type CanonicalType int

const (
	TypeInvalid CanonicalType = iota
	TypeString
	TypeNumber
	TypeBoolean
	TypeDate
	TypeArray
	TypeObject
	TypeObjectID
	TypeMixed
	TypeMap
)

// String returns the canonical spelling used in compiled persistence configs.
func (t CanonicalType) String() string {
	switch t {
	case TypeString:
		return "String"
	case TypeNumber:
		return "Number"
	case TypeBoolean:
		return "Boolean"
	case TypeDate:
		return "Date"
	case TypeArray:
		return "Array"
	case TypeObject:
		return "Object"
	case TypeObjectID:
		return "ObjectId"
	case TypeMixed:
		return "Mixed"
	case TypeMap:
		return "Map"
	}
	return "Invalid"
}

// Type is a field's raw type token: either one of the well-known constants
// below (identity match) or a free-form alias string resolved case-insensitively
// through the alias table. The zero Type is invalid.
type Type struct {
	tag CanonicalType
	raw string
}

// Well-known type constants. These resolve by identity, before any alias lookup.
var (
	String   = Type{tag: TypeString}
	Number   = Type{tag: TypeNumber}
	Boolean  = Type{tag: TypeBoolean}
	Date     = Type{tag: TypeDate}
	Array    = Type{tag: TypeArray}
	Object   = Type{tag: TypeObject}
	ObjectID = Type{tag: TypeObjectID}
	Mixed    = Type{tag: TypeMixed}
	Map      = Type{tag: TypeMap}
)

// TypeName wraps a raw alias string ("string", "ObjectId", "object_id", ...)
// as a type token. Resolution happens later, through the alias table.
func TypeName(name string) Type { return Type{raw: name} }

// IsZero reports whether no type token was supplied.
func (t Type) IsZero() bool { return t.tag == TypeInvalid && t.raw == "" }

// Token returns the literal token for diagnostics and permissive pass-through:
// the canonical spelling for well-known constants, the raw string otherwise.
func (t Type) Token() string {
	if t.tag != TypeInvalid {
		return t.tag.String()
	}
	return t.raw
}

// Definition maps field names to their raw declarative specs. Key order is
// irrelevant for correctness; compiled output orders fields lexicographically.
type Definition map[string]FieldSpec

// FieldSpec is one field's raw declarative definition: a mandatory type token
// plus optional modifiers. Compilation never mutates a FieldSpec.
type FieldSpec struct {
	Type Type

	// Seq marks the array-shorthand form: the field was declared as an ordered
	// sequence of specs. The item base type comes from the first element.
	Seq []FieldSpec

	Required  *bool // nil = unspecified; distinct from explicit false
	Unique    bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
	Default   any
	Ref       string
	Items     *FieldSpec
	Schema    Definition
	Email     bool
	Enum      []string

	// Match is a pre-compiled pattern; Pattern is a pattern source string.
	// When both are set, Match wins.
	Match   *regexp.Regexp
	Pattern string

	Select    *bool
	Sparse    bool
	Index     bool
	Text      bool
	Immutable bool
	Transform func(any) any
	Get       func(any) any
	Set       func(any) any
}

// Ptr returns a pointer to v; convenient for optional modifier fields.
func Ptr[T any](v T) *T { return &v }

// True returns a pointer to true, for the Required/Select modifiers.
func True() *bool { b := true; return &b }

// False returns a pointer to false, for the Required/Select modifiers.
func False() *bool { b := false; return &b }
