package duoskema

import (
	"sort"

	"github.com/duoskema/duoskema/internal/contentsig"
	"github.com/duoskema/duoskema/persistence"
)

// contentSignature derives the cache key for a (definition, options) pair.
// The walk is structural: map keys are sorted, sequences keep their order,
// and function-valued modifiers contribute presence only (two definitions
// differing solely in handler identity compile to equivalent schemas).
func contentSignature(def Definition, opt *Options) string {
	return contentsig.Hash(map[string]any{
		"definition": definitionSig(def),
		"options":    optionsSig(opt),
	})
}

func definitionSig(def Definition) map[string]any {
	out := make(map[string]any, len(def))
	for name, spec := range def {
		out[name] = specSig(spec)
	}
	return out
}

func specSig(spec FieldSpec) map[string]any {
	sig := map[string]any{}
	if !spec.Type.IsZero() {
		sig["type"] = spec.Type.Token()
	}
	if len(spec.Seq) > 0 {
		seq := make([]any, len(spec.Seq))
		for i, s := range spec.Seq {
			seq[i] = specSig(s)
		}
		sig["seq"] = seq
	}
	if spec.Required != nil {
		sig["required"] = *spec.Required
	}
	if spec.Unique {
		sig["unique"] = true
	}
	if spec.MinLength != nil {
		sig["minlength"] = *spec.MinLength
	}
	if spec.MaxLength != nil {
		sig["maxlength"] = *spec.MaxLength
	}
	if spec.Min != nil {
		sig["min"] = *spec.Min
	}
	if spec.Max != nil {
		sig["max"] = *spec.Max
	}
	if spec.Default != nil {
		sig["default"] = spec.Default
	}
	if spec.Ref != "" {
		sig["ref"] = spec.Ref
	}
	if spec.Items != nil {
		sig["items"] = specSig(*spec.Items)
	}
	if spec.Schema != nil {
		sig["schema"] = definitionSig(spec.Schema)
	}
	if spec.Email {
		sig["email"] = true
	}
	if len(spec.Enum) > 0 {
		sig["enum"] = spec.Enum
	}
	if spec.Match != nil {
		sig["match"] = spec.Match.String()
	} else if spec.Pattern != "" {
		sig["match"] = spec.Pattern
	}
	if spec.Select != nil {
		sig["select"] = *spec.Select
	}
	if spec.Sparse {
		sig["sparse"] = true
	}
	if spec.Index {
		sig["index"] = true
	}
	if spec.Text {
		sig["text"] = true
	}
	if spec.Immutable {
		sig["immutable"] = true
	}
	if spec.Transform != nil {
		sig["transform"] = true
	}
	if spec.Get != nil {
		sig["get"] = true
	}
	if spec.Set != nil {
		sig["set"] = true
	}
	return sig
}

func optionsSig(opt *Options) map[string]any {
	if opt == nil {
		return map[string]any{}
	}
	sig := map[string]any{}
	if opt.StrictMode {
		sig["strict"] = true
	}
	if len(opt.CustomMessages) > 0 {
		sig["messages"] = opt.CustomMessages
	}
	if p := opt.Persistence; p != nil {
		sig["persistence"] = persistenceOptionsSig(p)
	}
	return sig
}

func persistenceOptionsSig(p *persistence.Options) map[string]any {
	sig := map[string]any{}
	if len(p.SchemaOptions) > 0 {
		sig["schemaOptions"] = p.SchemaOptions
	}
	if mw := p.Middleware; mw != nil {
		sig["pre"] = sortedKeys(mw.Pre)
		sig["post"] = sortedKeys(mw.Post)
	}
	if len(p.Virtuals) > 0 {
		sig["virtuals"] = sortedKeys(p.Virtuals)
	}
	if len(p.Indexes) > 0 {
		sig["indexes"] = sortedKeys(p.Indexes)
	}
	return sig
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
