package duoskema

import (
	"context"
	"encoding/json"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// RuleKind is the base validator a compiled rule checks before refinements run.
type RuleKind int

const (
	RuleAny RuleKind = iota
	RuleString
	RuleNumber
	RuleBoolean
	RuleDate
	RuleArray
	RuleObject
	RuleMap
)

func (k RuleKind) String() string {
	switch k {
	case RuleString:
		return "string"
	case RuleNumber:
		return "number"
	case RuleBoolean:
		return "boolean"
	case RuleDate:
		return "date"
	case RuleArray:
		return "array"
	case RuleObject:
		return "object"
	case RuleMap:
		return "map"
	}
	return "any"
}

var (
	hex24Pattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// check is one refinement applied after the base type check. Refinements
// compose left-to-right in the order the compiler appended them.
type check struct {
	rule    string
	message string
	fn      func(v any) bool
}

// Rule is an immutable validation rule node: a base kind plus an ordered list
// of refinements. Rules are built once by the compiler and never mutated by
// the runtime.
type Rule struct {
	kind         RuleKind
	optional     bool
	hasDefault   bool
	defaultValue any
	// foldCase marks enum rules: refinements operate on a lower-cased copy of
	// the input while the original value flows through to the output.
	foldCase    bool
	checks      []check
	elem        *Rule             // array element rule; nil = array of anything
	nested      *ValidationSchema // nested object schema; nil = open object
	requiredMsg string
	typeMsg     string
}

// Kind returns the base validator kind.
func (r *Rule) Kind() RuleKind { return r.kind }

// Optional reports whether a missing value is accepted for this rule.
func (r *Rule) Optional() bool { return r.optional }

// HasDefault reports whether a default value applies when the field is absent.
func (r *Rule) HasDefault() bool { return r.hasDefault }

// Default returns the configured default value, when present.
func (r *Rule) Default() (any, bool) { return r.defaultValue, r.hasDefault }

// eval type-checks v against the base kind, then runs every refinement,
// accumulating issues without early abort. The returned value is the
// normalized output (nested objects come back as validated maps).
func (r *Rule) eval(ctx context.Context, path string, v any) (any, Issues) {
	switch r.kind {
	case RuleString:
		s, ok := v.(string)
		if !ok {
			return nil, Issues{r.typeIssue(path, v)}
		}
		probe := s
		if r.foldCase {
			probe = strings.ToLower(s)
		}
		return s, r.runChecks(path, v, probe)
	case RuleNumber:
		f, ok := toFloat(v)
		if !ok {
			return nil, Issues{r.typeIssue(path, v)}
		}
		return f, r.runChecks(path, v, f)
	case RuleBoolean:
		b, ok := v.(bool)
		if !ok {
			return nil, Issues{r.typeIssue(path, v)}
		}
		return b, r.runChecks(path, v, b)
	case RuleDate:
		t, ok := toTime(v)
		if !ok {
			return nil, Issues{r.typeIssue(path, v)}
		}
		return t, r.runChecks(path, v, t)
	case RuleArray:
		items, ok := toSlice(v)
		if !ok {
			return nil, Issues{r.typeIssue(path, v)}
		}
		iss := r.runChecks(path, v, items)
		out := make([]any, len(items))
		for i, item := range items {
			if r.elem == nil {
				out[i] = item
				continue
			}
			got, more := r.elem.eval(ctx, path+"/"+strconv.Itoa(i), item)
			if len(more) > 0 {
				iss = AppendIssues(iss, more...)
				continue
			}
			out[i] = got
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	case RuleObject:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, Issues{r.typeIssue(path, v)}
		}
		if r.nested == nil {
			return m, r.runChecks(path, v, m)
		}
		out, iss := r.nested.parseAt(ctx, path, m)
		if len(iss) > 0 {
			return nil, iss
		}
		return out, nil
	case RuleMap:
		m, ok := v.(map[string]any)
		if !ok {
			return nil, Issues{r.typeIssue(path, v)}
		}
		var iss Issues
		for k, mv := range m {
			if _, ok := mv.(string); !ok {
				iss = AppendIssues(iss, Issue{
					Path:     path + "/" + k,
					Code:     CodeInvalidType,
					Message:  synthesize(k, "type", nil, nil),
					Rule:     "type",
					Input:    mv,
					Expected: "string",
				})
			}
		}
		if len(iss) > 0 {
			return nil, iss
		}
		return m, nil
	}
	return v, r.runChecks(path, v, v)
}

// runChecks evaluates refinements against the normalized probe value while
// reporting the original input on failure.
func (r *Rule) runChecks(path string, input, probe any) Issues {
	var iss Issues
	for _, c := range r.checks {
		if c.fn(probe) {
			continue
		}
		iss = AppendIssues(iss, Issue{
			Path:     path,
			Code:     issueCode(c.rule),
			Message:  c.message,
			Rule:     c.rule,
			Input:    input,
			Expected: r.kind.String(),
		})
	}
	return iss
}

func (r *Rule) typeIssue(path string, v any) Issue {
	return Issue{
		Path:     path,
		Code:     CodeInvalidType,
		Message:  r.typeMsg,
		Rule:     "type",
		Input:    v,
		Expected: r.kind.String(),
	}
}

// issueCode maps a rule kind to its issue code; unknown kinds report a
// generic format violation.
func issueCode(rule string) string {
	switch rule {
	case "required":
		return CodeRequired
	case "minlength":
		return CodeTooShort
	case "maxlength":
		return CodeTooLong
	case "min", "minitems":
		return CodeTooSmall
	case "max", "maxitems":
		return CodeTooBig
	case "regex", "objectid", "password":
		return CodePattern
	case "enum":
		return CodeInvalidEnum
	case "email":
		return CodeInvalidFormat
	}
	return CodeInvalidFormat
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		return parsed, err == nil
	}
	return time.Time{}, false
}

func toSlice(v any) ([]any, bool) {
	if items, ok := v.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}
