package duoskema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodePattern       = "pattern"
	CodeInvalidEnum   = "invalid_enum"
	CodeInvalidFormat = "invalid_format"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // Slash-joined field path (for example: /address/city).
	Code    string // One of the codes listed above.
	Message string
	Rule    string // Rule kind that produced this issue (minlength, email, ...).
	Input   any    // Offending input value, when available.
	// Expected names the expected type or format, for diagnostics.
	Expected string
	// Params carries structured parameters (e.g., {"min":1, "max":10}) for
	// message templates and observability.
	Params map[string]any
}

// Issues is a collection of validation entries that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally. It also
// unwraps a ValidationError into its issue collection.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.All(), true
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ValidationError is the expected, data-dependent failure a validation schema
// produces. Per-field issues are accumulated, never aborted early; all fields
// are checked and all failures reported together.
//
// Engines predating the Issues field populate Errors instead; NormalizeErrors
// reads whichever is present.
type ValidationError struct {
	Issues Issues `json:"issues,omitempty"`
	Errors Issues `json:"errors,omitempty"`
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.All().Error()
}

// All returns whichever issue collection is populated, preferring Issues.
func (e *ValidationError) All() Issues {
	if len(e.Issues) > 0 {
		return e.Issues
	}
	return e.Errors
}

// CompilationError is fatal: the validation compiler could not resolve a type
// token. It surfaces immediately to the caller of schema compilation and no
// partial schema is returned.
type CompilationError struct {
	Field string // field whose spec failed to compile, when known
	Token string // the offending type token
}

func (e *CompilationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("duoskema: unsupported type %q for field %q", e.Token, e.Field)
	}
	return fmt.Sprintf("duoskema: unsupported type %q", e.Token)
}
