package duoskema

import "strings"

// NormalizedError is the uniform field-level shape every validation failure
// converts into, regardless of which failure-collection field the upstream
// engine used.
type NormalizedError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Value   any    `json:"value"`
	Type    string `json:"type"`
}

// NormalizeErrors converts a heterogeneous validation failure into a uniform
// list of field-level error records. It accepts this library's own failure
// types as well as decoded foreign failure objects, reads an "issues"
// collection falling back to "errors", and never panics: absent or malformed
// entries degrade to defaults without aborting normalization of siblings.
func NormalizeErrors(failure any) []NormalizedError {
	switch f := failure.(type) {
	case nil:
		return []NormalizedError{}
	case *ValidationError:
		if f == nil {
			return []NormalizedError{}
		}
		return normalizeIssues(f.All())
	case ValidationError:
		return normalizeIssues(f.All())
	case Issues:
		return normalizeIssues(f)
	case []Issue:
		return normalizeIssues(f)
	case map[string]any:
		return normalizeRaw(f)
	case error:
		if iss, ok := AsIssues(f); ok {
			return normalizeIssues(iss)
		}
		return []NormalizedError{}
	}
	return []NormalizedError{}
}

func normalizeIssues(iss Issues) []NormalizedError {
	out := make([]NormalizedError, 0, len(iss))
	for _, it := range iss {
		out = append(out, NormalizedError{
			Field:   fieldFromPath(it.Path),
			Message: orDefault(it.Message, "Validation failed"),
			Code:    orDefault(it.Code, "unknown"),
			Value:   it.Input,
			Type:    orDefault(it.Expected, "unknown"),
		})
	}
	return out
}

// normalizeRaw handles a decoded foreign failure object (for example a
// JSON-unmarshaled engine response).
func normalizeRaw(m map[string]any) []NormalizedError {
	entries, _ := m["issues"].([]any)
	if len(entries) == 0 {
		entries, _ = m["errors"].([]any)
	}
	out := make([]NormalizedError, 0, len(entries))
	for _, e := range entries {
		ne := NormalizedError{
			Field:   "unknown",
			Message: "Validation failed",
			Code:    "unknown",
			Type:    "unknown",
		}
		em, ok := e.(map[string]any)
		if !ok {
			out = append(out, ne)
			continue
		}
		switch p := em["path"].(type) {
		case []any:
			segs := make([]string, 0, len(p))
			for _, s := range p {
				segs = append(segs, stringifySegment(s))
			}
			if len(segs) > 0 {
				ne.Field = strings.Join(segs, ".")
			}
		case string:
			if f := fieldFromPath(p); f != "" {
				ne.Field = f
			}
		}
		if s, ok := em["message"].(string); ok && s != "" {
			ne.Message = s
		}
		if s, ok := em["code"].(string); ok && s != "" {
			ne.Code = s
		}
		if v, ok := em["input"]; ok {
			ne.Value = v
		} else {
			ne.Value = em["received"]
		}
		if s, ok := em["expected"].(string); ok && s != "" {
			ne.Type = s
		} else if s, ok := em["format"].(string); ok && s != "" {
			ne.Type = s
		}
		out = append(out, ne)
	}
	return out
}

func fieldFromPath(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return "unknown"
	}
	return strings.ReplaceAll(p, "/", ".")
}

func stringifySegment(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if f, ok := toFloat(v); ok {
		return formatBound(f)
	}
	return "unknown"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
