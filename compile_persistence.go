package duoskema

import (
	"github.com/duoskema/duoskema/persistence"
)

// compilePersistenceSchema compiles every field permissively and registers the
// middleware, virtuals and indexes the caller supplied. It never fails:
// unresolved type tokens pass through as literal type values.
func compilePersistenceSchema(def Definition, popt *persistence.Options) *persistence.Schema {
	fields := make(map[string]*persistence.FieldConfig, len(def))
	for name, spec := range def {
		fields[name] = compilePersistenceField(name, spec)
	}

	var schemaOptions map[string]any
	if popt != nil {
		schemaOptions = popt.SchemaOptions
	}
	s := persistence.NewSchema(fields, schemaOptions)

	if popt == nil {
		return s
	}
	if mw := popt.Middleware; mw != nil {
		for name, h := range mw.Pre {
			s.Pre(name, h)
		}
		for name, h := range mw.Post {
			s.Post(name, h)
		}
	}
	for name, v := range popt.Virtuals {
		s.Virtual(name, v)
	}
	for path, idx := range popt.Indexes {
		if idx.Keys == nil {
			idx.Keys = map[string]int{path: 1}
		}
		s.AddIndex(idx)
	}
	return s
}

// compilePersistenceField builds the flat storage config for one field.
// Modifiers copy over verbatim; enum does not (enum membership is enforced by
// the validation side only), and a nested schema is not expanded here (the
// caller passes nested persistence semantics through if needed).
func compilePersistenceField(name string, spec FieldSpec) *persistence.FieldConfig {
	cfg := &persistence.FieldConfig{Type: persistenceTypeToken(spec.Type)}

	if len(spec.Seq) > 0 {
		// array-shorthand form: element type comes from the first entry
		first := spec.Seq[0]
		if first.Type.IsZero() {
			first.Type = String
		}
		cfg.Type = TypeArray.String()
		cfg.Items = &persistence.FieldConfig{Type: persistenceTypeToken(first.Type), Ref: first.Ref}
	} else if spec.Items != nil {
		cfg.Type = TypeArray.String()
		cfg.Items = &persistence.FieldConfig{Type: persistenceTypeToken(spec.Items.Type), Ref: spec.Items.Ref}
	}

	if spec.Required != nil {
		cfg.Required = *spec.Required
	}
	cfg.Unique = spec.Unique
	cfg.MinLength = spec.MinLength
	cfg.MaxLength = spec.MaxLength
	cfg.Min = spec.Min
	cfg.Max = spec.Max
	cfg.Default = spec.Default
	cfg.Ref = spec.Ref
	cfg.Select = spec.Select
	cfg.Sparse = spec.Sparse
	cfg.Index = spec.Index
	cfg.Text = spec.Text
	cfg.Immutable = spec.Immutable
	cfg.Transform = spec.Transform
	cfg.Get = spec.Get
	cfg.Set = spec.Set

	// email and regex both lower to the single generic format validator; the
	// later modifier wins, so an explicit pattern overrides email.
	if spec.Email {
		cfg.Validator = &persistence.Validator{
			Pattern: emailPattern.String(),
			Message: synthesize(name, "email", nil, nil),
		}
	}
	if spec.Match != nil || spec.Pattern != "" {
		src := spec.Pattern
		if spec.Match != nil {
			src = spec.Match.String()
		}
		cfg.Validator = &persistence.Validator{
			Pattern: src,
			Message: heuristicPatternMessage(name, src, nil),
		}
	}

	return cfg
}

// persistenceTypeToken resolves a token on the permissive path: canonical
// spelling on match, the literal supplied value otherwise.
func persistenceTypeToken(t Type) string {
	ct, literal, ok := resolvePersistence(t)
	if !ok {
		return literal
	}
	return ct.String()
}
