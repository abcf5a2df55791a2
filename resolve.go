package duoskema

import "strings"

// aliasTable maps lowercase string tokens to canonical types. "object" maps to
// TypeObject here; the persistence path downgrades it to Mixed (resolvePersistence),
// while the validation path keeps it and takes the nested-schema route.
var aliasTable = map[string]CanonicalType{
	"string":    TypeString,
	"number":    TypeNumber,
	"boolean":   TypeBoolean,
	"date":      TypeDate,
	"array":     TypeArray,
	"objectid":  TypeObjectID,
	"object_id": TypeObjectID,
	"mixed":     TypeMixed,
	"object":    TypeObject,
	"map":       TypeMap,
}

// resolveType normalizes a type token: identity match for well-known constants
// first, then a case-insensitive alias lookup for string tokens.
func resolveType(t Type) (CanonicalType, bool) {
	if t.tag != TypeInvalid {
		return t.tag, true
	}
	if t.raw == "" {
		return TypeInvalid, false
	}
	ct, ok := aliasTable[strings.ToLower(t.raw)]
	return ct, ok
}

// resolveValidation resolves a token for the validation compiler. Unmatched
// tokens are a fatal compilation error; this is intentionally stricter than
// the persistence side.
func resolveValidation(t Type) (CanonicalType, error) {
	ct, ok := resolveType(t)
	if !ok {
		return TypeInvalid, &CompilationError{Token: t.raw}
	}
	return ct, nil
}

// resolvePersistence resolves a token for the persistence compiler. Unmatched
// tokens pass through as the literal type value (permissive by contract), and
// Object resolves to Mixed because the persistence side never expands nested
// schemas.
func resolvePersistence(t Type) (ct CanonicalType, literal string, ok bool) {
	ct, ok = resolveType(t)
	if !ok {
		return TypeInvalid, t.raw, false
	}
	if ct == TypeObject {
		ct = TypeMixed
	}
	return ct, "", true
}
