package duoskema

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ValidationSchema is the compiled rule tree consumed at an application
// boundary. Parse checks every field and reports all failures together; it
// never aborts on the first issue.
type ValidationSchema struct {
	fields  map[string]*Rule
	order   []string
	strict  bool
	partial bool
}

// Parse validates input (an object) against the compiled rules and returns
// the validated value. On failure it returns a *ValidationError carrying one
// issue per violated rule.
func (s *ValidationSchema) Parse(ctx context.Context, input any) (map[string]any, error) {
	m, ok := input.(map[string]any)
	if !ok {
		return nil, &ValidationError{Issues: Issues{{
			Path:     "/",
			Code:     CodeInvalidType,
			Message:  synthesize("input", "type", nil, nil),
			Rule:     "type",
			Input:    input,
			Expected: "object",
		}}}
	}
	out, iss := s.parseAt(ctx, "", m)
	if len(iss) > 0 {
		return nil, &ValidationError{Issues: iss}
	}
	return out, nil
}

// Validate runs Parse and discards the validated value.
func (s *ValidationSchema) Validate(ctx context.Context, input any) error {
	_, err := s.Parse(ctx, input)
	return err
}

// Partial derives the all-fields-optional variant used for partial-update
// validation. Rules are shared with the receiver; only missing-field handling
// changes.
func (s *ValidationSchema) Partial() *ValidationSchema {
	c := *s
	c.partial = true
	return &c
}

// Fields returns the compiled field names in output order.
func (s *ValidationSchema) Fields() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Rule returns the compiled rule for a field, or nil when unknown.
func (s *ValidationSchema) Rule(name string) *Rule { return s.fields[name] }

func (s *ValidationSchema) parseAt(ctx context.Context, base string, m map[string]any) (map[string]any, Issues) {
	var iss Issues
	out := make(map[string]any, len(s.order))
	for _, name := range s.order {
		r := s.fields[name]
		path := base + "/" + name
		v, present := m[name]
		if !present {
			if r.hasDefault {
				out[name] = r.defaultValue
				continue
			}
			if r.optional || s.partial {
				continue
			}
			iss = AppendIssues(iss, Issue{
				Path:     path,
				Code:     CodeRequired,
				Message:  r.requiredMsg,
				Rule:     "required",
				Expected: r.kind.String(),
			})
			continue
		}
		got, more := r.eval(ctx, path, v)
		if len(more) > 0 {
			iss = AppendIssues(iss, more...)
			continue
		}
		out[name] = got
	}
	if s.strict {
		var unknown []string
		for k := range m {
			if _, ok := s.fields[k]; !ok {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			iss = AppendIssues(iss, Issue{
				Path:    base + "/" + k,
				Code:    CodeUnknownKey,
				Message: k + " is not a recognized field",
				Rule:    "strict",
				Input:   m[k],
			})
		}
	}
	return out, iss
}

// compileValidationSchema compiles every field of a definition. A single
// unresolved type token aborts the whole compilation; no partial schema is
// returned.
func compileValidationSchema(def Definition, opt *Options) (*ValidationSchema, error) {
	order := make([]string, 0, len(def))
	for name := range def {
		order = append(order, name)
	}
	sort.Strings(order)

	fields := make(map[string]*Rule, len(def))
	for _, name := range order {
		r, err := compileValidationField(name, def[name], opt)
		if err != nil {
			return nil, err
		}
		fields[name] = r
	}
	return &ValidationSchema{fields: fields, order: order, strict: opt.strictMode()}, nil
}

// compileValidationField turns one field definition into a validation rule
// tree, recursing for nested Object and Array types.
func compileValidationField(name string, spec FieldSpec, opt *Options) (*Rule, error) {
	custom := opt.customMessages()

	var r *Rule
	var err error
	if len(spec.Seq) > 0 {
		r, err = compileSeqShorthand(name, spec, opt)
	} else {
		r, err = compileBaseRule(name, spec, opt)
	}
	if err != nil {
		return nil, err
	}
	r.requiredMsg = synthesize(name, "required", nil, custom)
	r.typeMsg = synthesize(name, "type", nil, custom)

	return applyModifiers(name, spec, r, opt)
}

func compileBaseRule(name string, spec FieldSpec, opt *Options) (*Rule, error) {
	ct, err := resolveValidation(spec.Type)
	if err != nil {
		err.(*CompilationError).Field = name
		return nil, err
	}
	r := &Rule{}
	switch ct {
	case TypeString:
		r.kind = RuleString
	case TypeNumber:
		r.kind = RuleNumber
	case TypeBoolean:
		r.kind = RuleBoolean
	case TypeDate:
		r.kind = RuleDate
	case TypeArray:
		r.kind = RuleArray
		if spec.Items != nil {
			elem, err := compileValidationField(name, *spec.Items, opt)
			if err != nil {
				return nil, err
			}
			r.elem = elem
		}
	case TypeObject:
		r.kind = RuleObject
		if spec.Schema != nil {
			nested, err := compileValidationSchema(spec.Schema, opt)
			if err != nil {
				return nil, err
			}
			r.nested = nested
		}
	case TypeObjectID:
		r.kind = RuleString
		r.checks = append(r.checks, objectIDCheck(name))
	case TypeMixed:
		r.kind = RuleAny
	case TypeMap:
		r.kind = RuleMap
	}
	return r, nil
}

// compileSeqShorthand handles a field declared as an ordered sequence: an
// Array rule whose item base type comes from the first element (String when
// absent). An item enum is case-folded and enforced on a lower-cased copy of
// the input.
func compileSeqShorthand(name string, spec FieldSpec, opt *Options) (*Rule, error) {
	first := FieldSpec{}
	if len(spec.Seq) > 0 {
		first = spec.Seq[0]
	}
	if first.Type.IsZero() {
		first.Type = String
	}
	elem, err := compileValidationField(name, first, opt)
	if err != nil {
		return nil, err
	}
	return &Rule{kind: RuleArray, elem: elem}, nil
}

// applyModifiers applies the remaining modifiers in their fixed, documented
// order. A non-empty enum replaces the in-progress rule outright; everything
// applied before it is intentionally discarded (enum fields are always
// validated as case-insensitive strings).
func applyModifiers(name string, spec FieldSpec, r *Rule, opt *Options) (*Rule, error) {
	custom := opt.customMessages()

	if spec.Required != nil && !*spec.Required {
		r.optional = true
	}

	if r.kind == RuleString {
		if spec.MinLength != nil {
			n := *spec.MinLength
			r.checks = append(r.checks, check{
				rule:    "minlength",
				message: synthesize(name, "minlength", map[string]string{"min": strconv.Itoa(n)}, custom),
				fn:      func(v any) bool { s, ok := v.(string); return ok && len(s) >= n },
			})
		}
		if spec.MaxLength != nil {
			n := *spec.MaxLength
			r.checks = append(r.checks, check{
				rule:    "maxlength",
				message: synthesize(name, "maxlength", map[string]string{"max": strconv.Itoa(n)}, custom),
				fn:      func(v any) bool { s, ok := v.(string); return ok && len(s) <= n },
			})
		}
	}

	if spec.Min != nil {
		n := *spec.Min
		switch r.kind {
		case RuleNumber:
			r.checks = append(r.checks, check{
				rule:    "min",
				message: synthesize(name, "min", map[string]string{"min": formatBound(n)}, custom),
				fn:      func(v any) bool { f, ok := v.(float64); return ok && f >= n },
			})
		case RuleArray:
			r.checks = append(r.checks, check{
				rule:    "minitems",
				message: synthesize(name, "minitems", map[string]string{"min": formatBound(n)}, custom),
				fn:      func(v any) bool { items, ok := v.([]any); return ok && float64(len(items)) >= n },
			})
		}
	}
	if spec.Max != nil {
		n := *spec.Max
		switch r.kind {
		case RuleNumber:
			r.checks = append(r.checks, check{
				rule:    "max",
				message: synthesize(name, "max", map[string]string{"max": formatBound(n)}, custom),
				fn:      func(v any) bool { f, ok := v.(float64); return ok && f <= n },
			})
		case RuleArray:
			r.checks = append(r.checks, check{
				rule:    "maxitems",
				message: synthesize(name, "maxitems", map[string]string{"max": formatBound(n)}, custom),
				fn:      func(v any) bool { items, ok := v.([]any); return ok && float64(len(items)) <= n },
			})
		}
	}

	if spec.Email && r.kind == RuleString {
		r.checks = append(r.checks, check{
			rule:    "email",
			message: synthesize(name, "email", nil, custom),
			fn:      func(v any) bool { s, ok := v.(string); return ok && emailPattern.MatchString(s) },
		})
	}

	if len(spec.Enum) > 0 {
		allowed := make(map[string]struct{}, len(spec.Enum))
		for _, e := range spec.Enum {
			allowed[strings.ToLower(e)] = struct{}{}
		}
		r = &Rule{
			kind:        RuleString,
			foldCase:    true,
			requiredMsg: r.requiredMsg,
			typeMsg:     r.typeMsg,
			checks: []check{{
				rule:    "enum",
				message: synthesize(name, "enum", map[string]string{"values": strings.Join(spec.Enum, ", ")}, custom),
				fn: func(v any) bool {
					s, ok := v.(string)
					if !ok {
						return false
					}
					_, ok = allowed[s]
					return ok
				},
			}},
		}
	}

	if r.kind == RuleString && (spec.Match != nil || spec.Pattern != "") {
		src := spec.Pattern
		if spec.Match != nil {
			src = spec.Match.String()
		}
		msg := heuristicPatternMessage(name, src, custom)
		switch {
		case spec.Match != nil:
			re := spec.Match
			r.checks = append(r.checks, check{
				rule:    "regex",
				message: msg,
				fn:      func(v any) bool { s, ok := v.(string); return ok && re.MatchString(s) },
			})
		case strings.Contains(src, "(?="):
			// RE2 has no lookaheads; lookahead sources get the built-in
			// strong-password checker instead of a compiled pattern.
			r.checks = append(r.checks, check{
				rule:    "regex",
				message: msg,
				fn:      func(v any) bool { s, ok := v.(string); return ok && isStrongPassword(s) },
			})
		default:
			re, err := regexp.Compile(src)
			if err != nil {
				return nil, fmt.Errorf("duoskema: invalid pattern for field %q: %w", name, err)
			}
			r.checks = append(r.checks, check{
				rule:    "regex",
				message: msg,
				fn:      func(v any) bool { s, ok := v.(string); return ok && re.MatchString(s) },
			})
		}
	}

	if spec.Default != nil {
		r.hasDefault = true
		r.defaultValue = spec.Default
		// default supersedes requiredness
		if spec.Required == nil || !*spec.Required {
			r.optional = true
		}
	}

	// reference fields are treated as ObjectId strings regardless of declared type
	if spec.Ref != "" && r.kind == RuleString {
		r.checks = append(r.checks, objectIDCheck(name))
	}

	// unique is accepted but has no validation effect at this layer

	if r.kind == RuleString && strings.Contains(strings.ToLower(name), "password") &&
		spec.Match == nil && spec.Pattern == "" {
		r.checks = append(r.checks, check{
			rule:    "password",
			message: strongPasswordMessage,
			fn:      func(v any) bool { s, ok := v.(string); return ok && isStrongPassword(s) },
		})
	}

	return r, nil
}

func objectIDCheck(name string) check {
	return check{
		rule:    "objectid",
		message: name + " must be a valid ObjectId (24 hex characters)",
		fn:      func(v any) bool { s, ok := v.(string); return ok && hex24Pattern.MatchString(s) },
	}
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
