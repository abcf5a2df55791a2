package i18n_test

import (
	"testing"

	"github.com/duoskema/duoskema/i18n"
)

type upperTranslator struct{}

func (upperTranslator) Message(rule string, data map[string]string) string {
	return "RULE:" + rule
}

func TestDictTranslator(t *testing.T) {
	defer i18n.SetLanguage("en")

	if got := i18n.T("required", map[string]string{"field": "name"}); got != "name is required" {
		t.Fatalf("en required: %q", got)
	}
	if got := i18n.T("minlength", map[string]string{"field": "name", "min": "2"}); got != "name must be at least 2 characters" {
		t.Fatalf("en minlength: %q", got)
	}
	// empty field falls back to "value"
	if got := i18n.T("required", nil); got != "value is required" {
		t.Fatalf("fallback field: %q", got)
	}

	i18n.SetLanguage("ja")
	if got := i18n.T("required", map[string]string{"field": "name"}); got != "name は必須です" {
		t.Fatalf("ja required: %q", got)
	}

	// unknown languages normalize to english
	i18n.SetLanguage("fr")
	if got := i18n.T("email", map[string]string{"field": "mail"}); got != "mail must be a valid email address" {
		t.Fatalf("unknown lang: %q", got)
	}
}

func TestSetTranslator(t *testing.T) {
	defer i18n.SetTranslator(nil)

	i18n.SetTranslator(upperTranslator{})
	if got := i18n.T("enum", nil); got != "RULE:enum" {
		t.Fatalf("custom translator ignored: %q", got)
	}

	// nil restores the built-in english dictionary
	i18n.SetTranslator(nil)
	if got := i18n.T("max", map[string]string{"field": "age", "max": "9"}); got != "age must be at most 9" {
		t.Fatalf("restore: %q", got)
	}
}
