package duoskema

// Package duoskema compiles one declarative field-definition map into two
// independent, semantically aligned schema representations:
//
// - a persistence schema (persistence.Schema): flat per-field constraint
//   records plus lifecycle hooks, virtuals, and secondary indexes, shaped
//   for a document-oriented storage layer
// - a validation schema (ValidationSchema): a rule tree that rejects
//   malformed input at an application boundary with human-readable issues
//
// Design policy:
// - Keep only public APIs in the root package; put helpers under internal/.
// - Place persistence output shapes under persistence/, message templates under i18n/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	def := duoskema.Definition{
//	    "email": {Type: duoskema.String, Required: duoskema.True(), Email: true},
//	    "tags":  {Type: duoskema.Array, Items: &duoskema.FieldSpec{Type: duoskema.String}},
//	}
//	pair, err := duoskema.CompileSchemas(def, nil)
//	out, err := pair.Validation.Parse(ctx, input)
//	errs := duoskema.NormalizeErrors(err)
