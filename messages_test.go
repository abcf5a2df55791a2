package duoskema_test

import (
	"context"
	"strings"
	"testing"

	duoskema "github.com/duoskema/duoskema"
)

// TestSynthesizeMessage_CustomAndDefaults: explicit custom messages win, rule
// kinds fall back to their templates, and unknown kinds get the generic text.
func TestSynthesizeMessage_CustomAndDefaults(t *testing.T) {
	custom := map[string]string{"email.email": "that address looks wrong"}

	if got := duoskema.SynthesizeMessage("email", "email", "x", custom); got != "that address looks wrong" {
		t.Fatalf("custom lookup failed: %q", got)
	}
	if got := duoskema.SynthesizeMessage("email", "email", "x", nil); got != "email must be a valid email address" {
		t.Fatalf("default email template: %q", got)
	}
	if got := duoskema.SynthesizeMessage("name", "required", nil, nil); got != "name is required" {
		t.Fatalf("default required template: %q", got)
	}
	if got := duoskema.SynthesizeMessage("name", "no_such_rule", nil, nil); got != "name validation failed" {
		t.Fatalf("generic fallback: %q", got)
	}
}

// TestSynthesizeMessage_ReferentiallyTransparent: same inputs, same output,
// always.
func TestSynthesizeMessage_ReferentiallyTransparent(t *testing.T) {
	first := duoskema.SynthesizeMessage("age", "min", 3, nil)
	for i := 0; i < 5; i++ {
		if got := duoskema.SynthesizeMessage("age", "min", 3, nil); got != first {
			t.Fatalf("output drifted: %q vs %q", got, first)
		}
	}
}

// TestPatternMessageHeuristics compiles pattern fields and checks the
// synthesized diagnostic for each heuristic branch.
func TestPatternMessageHeuristics(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		field   string
		pattern string
		input   string
		want    string
	}{
		{"contact", `^\S+@\S+$`, "nope", "must be a valid email address"},
		{"phone", `^[0-9]{10}$`, "nope", "must be a valid phone number"},
		{"contactNumber", `^\d{10}$`, "nope", "must be a valid phone number"},
		{"homepage", `^https?://`, "nope", "must be a valid URL"},
		{"slug", `^[a-z-]+$`, "NOPE", "format is invalid"},
	}
	for _, tc := range cases {
		vs := compile(t, duoskema.Definition{
			tc.field: {Type: duoskema.String, Pattern: tc.pattern},
		}, nil)
		iss := issuesOf(t, vs.Validate(ctx, map[string]any{tc.field: tc.input}))
		if !strings.Contains(iss[0].Message, tc.want) {
			t.Fatalf("field %q: message %q, want substring %q", tc.field, iss[0].Message, tc.want)
		}
	}
}

// TestPatternMessage_LookaheadSource: a lookahead-style source maps to the
// built-in strong-password checker with its descriptive message.
func TestPatternMessage_LookaheadSource(t *testing.T) {
	ctx := context.Background()
	vs := compile(t, duoskema.Definition{
		"secret": {Type: duoskema.String, Pattern: `^(?=.*[a-z])(?=.*[A-Z])(?=.*\d)(?=.*[@$!%*?&]).{8,}$`},
	}, nil)

	if err := vs.Validate(ctx, map[string]any{"secret": "Str0ng!ab"}); err != nil {
		t.Fatalf("strong value must pass: %v", err)
	}
	iss := issuesOf(t, vs.Validate(ctx, map[string]any{"secret": "weak"}))
	if !strings.Contains(iss[0].Message, "at least 8 characters") {
		t.Fatalf("expected the strong-password message, got %q", iss[0].Message)
	}
}

// TestPatternMessage_CustomOverridesHeuristic: an explicit "<field>.regex"
// custom message beats every heuristic.
func TestPatternMessage_CustomOverridesHeuristic(t *testing.T) {
	ctx := context.Background()
	vs := compile(t, duoskema.Definition{
		"phone": {Type: duoskema.String, Pattern: `^[0-9]{10}$`},
	}, &duoskema.Options{CustomMessages: map[string]string{"phone.regex": "ten digits, please"}})

	iss := issuesOf(t, vs.Validate(ctx, map[string]any{"phone": "x"}))
	if iss[0].Message != "ten digits, please" {
		t.Fatalf("custom message lost: %q", iss[0].Message)
	}
}
