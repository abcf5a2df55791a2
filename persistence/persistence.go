// Package persistence holds the compiled structural/constraint description a
// document-oriented storage layer consumes. The shapes here mirror what the
// storage engine accepts; the compiler core only fills them in and delegates
// hooks, virtuals and indexes verbatim.
package persistence

import (
	"context"
	"sort"
)

// FieldConfig is a flat record mirroring the subset of field modifiers
// meaningful to a storage engine. It carries no enum and no nested schema;
// those concerns stay on the validation side by contract.
type FieldConfig struct {
	// Type is the resolved canonical spelling ("String", "ObjectId", ...) or,
	// for unmatched tokens, the literal value that was supplied (permissive
	// pass-through).
	Type string

	// Items is set for array fields; its Type and Ref describe the elements.
	Items *FieldConfig

	Required  bool
	Unique    bool
	MinLength *int
	MaxLength *int
	Min       *float64
	Max       *float64
	Default   any
	Ref       string
	Select    *bool
	Sparse    bool
	Index     bool
	Text      bool
	Immutable bool
	Transform func(any) any
	Get       func(any) any
	Set       func(any) any

	// Validator is the single generic format check attached to the field;
	// email and regex modifiers both lower to it, and only one survives.
	Validator *Validator
}

// Validator is a generic per-field format check handed to the storage engine.
type Validator struct {
	Pattern string
	Message string
}

// Hook is a pre/post lifecycle handler registered against the schema. The
// storage engine decides when to run it; the compiler core treats it as
// opaque.
type Hook func(ctx context.Context, doc map[string]any) error

// Virtual is an accessor field that is computed rather than persisted.
type Virtual struct {
	Get func(doc map[string]any) any
	Set func(doc map[string]any, v any)
}

// Index describes one secondary index over a field path.
type Index struct {
	Keys    map[string]int // field path -> direction (1 asc, -1 desc)
	Options map[string]any
}

// Options configures schema-level behavior delegated to the storage engine.
type Options struct {
	SchemaOptions map[string]any
	Middleware    *Middleware
	Virtuals      map[string]Virtual
	Indexes       map[string]Index // field path -> index config
}

// Middleware groups pre/post lifecycle hooks by hook name ("save", ...).
type Middleware struct {
	Pre  map[string]Hook
	Post map[string]Hook
}

// Schema is the compiled persistence schema: per-field configs plus the
// hooks, virtuals and indexes registered on top of them.
type Schema struct {
	fields  map[string]*FieldConfig
	order   []string
	options map[string]any

	pre      map[string][]Hook
	post     map[string][]Hook
	virtuals map[string]Virtual
	indexes  []Index
}

// NewSchema builds a schema over the given field configs. Field order is
// lexicographic for deterministic output.
func NewSchema(fields map[string]*FieldConfig, schemaOptions map[string]any) *Schema {
	order := make([]string, 0, len(fields))
	for name := range fields {
		order = append(order, name)
	}
	sort.Strings(order)
	return &Schema{
		fields:   fields,
		order:    order,
		options:  schemaOptions,
		pre:      map[string][]Hook{},
		post:     map[string][]Hook{},
		virtuals: map[string]Virtual{},
	}
}

// Field returns the config for a field, or nil when unknown.
func (s *Schema) Field(name string) *FieldConfig { return s.fields[name] }

// FieldNames returns the field names in output order.
func (s *Schema) FieldNames() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// SchemaOptions returns the schema-level options passed through to the engine.
func (s *Schema) SchemaOptions() map[string]any { return s.options }

// Pre registers a pre-lifecycle hook under the given hook name.
func (s *Schema) Pre(name string, h Hook) {
	s.pre[name] = append(s.pre[name], h)
}

// Post registers a post-lifecycle hook under the given hook name.
func (s *Schema) Post(name string, h Hook) {
	s.post[name] = append(s.post[name], h)
}

// PreHooks returns the pre hooks registered under a hook name.
func (s *Schema) PreHooks(name string) []Hook { return s.pre[name] }

// PostHooks returns the post hooks registered under a hook name.
func (s *Schema) PostHooks(name string) []Hook { return s.post[name] }

// Virtual registers a computed accessor field.
func (s *Schema) Virtual(name string, v Virtual) { s.virtuals[name] = v }

// Virtuals returns the registered virtual fields.
func (s *Schema) Virtuals() map[string]Virtual { return s.virtuals }

// AddIndex registers a secondary index.
func (s *Schema) AddIndex(idx Index) { s.indexes = append(s.indexes, idx) }

// Indexes returns the registered secondary indexes.
func (s *Schema) Indexes() []Index { return s.indexes }
