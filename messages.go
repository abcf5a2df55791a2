package duoskema

import (
	"strconv"
	"strings"

	"github.com/duoskema/duoskema/i18n"
)

// passwordSymbols is the fixed symbol set the strong-password rule accepts.
const passwordSymbols = "@$!%*?&"

const strongPasswordMessage = "Password must be at least 8 characters and include an uppercase letter, a lowercase letter, a number and a special character (" + passwordSymbols + ")"

// SynthesizeMessage produces the diagnostic text for a validation rule lacking
// an explicit message. Lookup key is "<field>.<rule>" in custom; on miss, the
// default template for that rule kind applies, and unknown rule kinds fall
// back to a generic "<field> validation failed" message.
//
// Stateless and referentially transparent: same inputs, same output, always.
func SynthesizeMessage(field, rule string, value any, custom map[string]string) string {
	return synthesize(field, rule, map[string]string{"value": stringify(value)}, custom)
}

func synthesize(field, rule string, params map[string]string, custom map[string]string) string {
	if custom != nil {
		if m, ok := custom[field+"."+rule]; ok {
			return m
		}
	}
	data := map[string]string{"field": field}
	for k, v := range params {
		data[k] = v
	}
	return i18n.T(rule, data)
}

// heuristicPatternMessage resolves the message for a regex/match rule with no
// explicit custom message, matching on field name or pattern content. Checked
// in order: email, password, phone, URL, then a generic format message.
func heuristicPatternMessage(field, pattern string, custom map[string]string) string {
	if custom != nil {
		if m, ok := custom[field+".regex"]; ok {
			return m
		}
	}
	name := strings.ToLower(field)
	// a symbol class inside a lookahead may contain "@"; that is not an email
	// matcher, so lookahead sources never take the email branch
	looksLikeEmail := strings.Contains(pattern, "@") && !strings.Contains(pattern, "(?=")
	switch {
	case strings.Contains(name, "email") || looksLikeEmail:
		return i18n.T("email", map[string]string{"field": field})
	case strings.Contains(name, "password") || strings.Contains(pattern, "(?="):
		return strongPasswordMessage
	case strings.Contains(name, "phone") || strings.Contains(pattern, `\d`) || strings.Contains(pattern, "[0-9]"):
		return field + " must be a valid phone number"
	case strings.Contains(name, "url") || strings.Contains(pattern, "http"):
		return field + " must be a valid URL"
	}
	return field + " format is invalid"
}

// isStrongPassword enforces the synthesized password rule: at least 8
// characters with one lowercase, one uppercase, one digit and one symbol from
// the fixed set.
func isStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	return ""
}
