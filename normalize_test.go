package duoskema_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	duoskema "github.com/duoskema/duoskema"
)

// TestNormalizeErrors_OwnFailureTypes: the library's own failure values all
// normalize to the same uniform shape.
func TestNormalizeErrors_OwnFailureTypes(t *testing.T) {
	iss := duoskema.Issues{
		{Path: "/address/city", Code: "too_small", Message: "city must be at least 2 characters long", Input: "x", Expected: "string"},
	}

	for _, failure := range []any{
		iss,
		[]duoskema.Issue(iss),
		&duoskema.ValidationError{Issues: iss},
		duoskema.ValidationError{Issues: iss},
		error(iss),
	} {
		out := duoskema.NormalizeErrors(failure)
		require.Len(t, out, 1)
		require.Equal(t, "address.city", out[0].Field)
		require.Equal(t, "too_small", out[0].Code)
		require.Equal(t, "x", out[0].Value)
		require.Equal(t, "string", out[0].Type)
	}
}

// TestNormalizeErrors_Defaults: absent fields degrade to defaults instead of
// aborting.
func TestNormalizeErrors_Defaults(t *testing.T) {
	out := duoskema.NormalizeErrors(duoskema.Issues{{}})
	require.Len(t, out, 1)
	require.Equal(t, "unknown", out[0].Field)
	require.Equal(t, "Validation failed", out[0].Message)
	require.Equal(t, "unknown", out[0].Code)
	require.Equal(t, "unknown", out[0].Type)
	require.Nil(t, out[0].Value)
}

// TestNormalizeErrors_NeverPanics: junk inputs yield an empty slice, never a
// panic and never nil.
func TestNormalizeErrors_NeverPanics(t *testing.T) {
	for _, failure := range []any{
		nil,
		(*duoskema.ValidationError)(nil),
		errors.New("not a validation failure"),
		42,
		"boom",
		map[string]any{},
		map[string]any{"issues": "not a slice"},
	} {
		out := duoskema.NormalizeErrors(failure)
		require.NotNil(t, out)
		require.Empty(t, out)
	}
}

// TestNormalizeErrors_ForeignObject: a decoded engine response is read from
// "issues" first, falling back to "errors", with received/format fallbacks.
func TestNormalizeErrors_ForeignObject(t *testing.T) {
	out := duoskema.NormalizeErrors(map[string]any{
		"issues": []any{
			map[string]any{
				"path":     []any{"user", "tags", float64(1)},
				"message":  "too long",
				"code":     "too_big",
				"received": "abcdef",
				"format":   "string",
			},
			"garbage entry",
		},
	})
	require.Len(t, out, 2)
	require.Equal(t, "user.tags.1", out[0].Field)
	require.Equal(t, "too long", out[0].Message)
	require.Equal(t, "too_big", out[0].Code)
	require.Equal(t, "abcdef", out[0].Value)
	require.Equal(t, "string", out[0].Type)

	// malformed sibling still normalized with defaults
	require.Equal(t, "unknown", out[1].Field)
	require.Equal(t, "Validation failed", out[1].Message)

	// "errors" collection only consulted when "issues" is absent
	out = duoskema.NormalizeErrors(map[string]any{
		"errors": []any{
			map[string]any{"path": "/email", "message": "bad address", "code": "invalid_format", "input": "nope", "expected": "email"},
		},
	})
	require.Len(t, out, 1)
	require.Equal(t, "email", out[0].Field)
	require.Equal(t, "nope", out[0].Value)
	require.Equal(t, "email", out[0].Type)
}

// TestNormalizeErrors_SkewedCollections: a failure carrying both collections
// prefers the issues side.
func TestNormalizeErrors_SkewedCollections(t *testing.T) {
	out := duoskema.NormalizeErrors(map[string]any{
		"issues": []any{map[string]any{"path": "/a", "message": "from issues"}},
		"errors": []any{map[string]any{"path": "/b", "message": "from errors"}},
	})
	require.Len(t, out, 1)
	require.Equal(t, "a", out[0].Field)

	ve := &duoskema.ValidationError{
		Errors: duoskema.Issues{{Path: "/legacy", Message: "from errors field"}},
	}
	out = duoskema.NormalizeErrors(ve)
	require.Len(t, out, 1)
	require.Equal(t, "legacy", out[0].Field)
}

// TestNormalizeErrors_EndToEnd: a real validation failure round-trips into the
// uniform shape.
func TestNormalizeErrors_EndToEnd(t *testing.T) {
	vs := compile(t, duoskema.Definition{
		"email": {Type: duoskema.String, Required: duoskema.True(), Email: true},
	}, nil)

	err := vs.Validate(context.Background(), map[string]any{"email": "not-an-address"})
	out := duoskema.NormalizeErrors(err)
	require.Len(t, out, 1)
	require.Equal(t, "email", out[0].Field)
	require.Contains(t, out[0].Message, "valid email address")
}
