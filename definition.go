package duoskema

import (
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ParseDefinitionYAML decodes a YAML document into a Definition. Shorthand
// forms are accepted: a bare string is a type token, a sequence is the
// array-shorthand form, and minLength/maxLength spellings normalize to
// minlength/maxlength.
func ParseDefinitionYAML(data []byte) (Definition, error) {
	var node map[string]any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("duoskema: decode definition yaml: %w", err)
	}
	return definitionFromAny(node)
}

// ParseDefinitionJSON decodes a JSON document into a Definition, with the
// same shorthand forms as ParseDefinitionYAML.
func ParseDefinitionJSON(data []byte) (Definition, error) {
	var node map[string]any
	if err := json.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("duoskema: decode definition json: %w", err)
	}
	return definitionFromAny(node)
}

func definitionFromAny(node map[string]any) (Definition, error) {
	def := make(Definition, len(node))
	for name, raw := range node {
		spec, err := specFromAny(name, raw)
		if err != nil {
			return nil, err
		}
		def[name] = spec
	}
	return def, nil
}

func specFromAny(name string, raw any) (FieldSpec, error) {
	switch v := raw.(type) {
	case string:
		return FieldSpec{Type: TypeName(v)}, nil
	case []any:
		seq := make([]FieldSpec, 0, len(v))
		for _, item := range v {
			s, err := specFromAny(name, item)
			if err != nil {
				return FieldSpec{}, err
			}
			seq = append(seq, s)
		}
		return FieldSpec{Seq: seq}, nil
	case map[string]any:
		return specFromMap(name, v)
	}
	return FieldSpec{}, fmt.Errorf("duoskema: field %q: unsupported definition shape %T", name, raw)
}

func specFromMap(name string, m map[string]any) (FieldSpec, error) {
	var spec FieldSpec
	if t, ok := m["type"].(string); ok {
		spec.Type = TypeName(t)
	}
	if b, ok := m["required"].(bool); ok {
		spec.Required = Ptr(b)
	}
	spec.Unique, _ = m["unique"].(bool)
	spec.MinLength = intOpt(m, "minlength", "minLength")
	spec.MaxLength = intOpt(m, "maxlength", "maxLength")
	spec.Min = floatOpt(m, "min")
	spec.Max = floatOpt(m, "max")
	if d, ok := m["default"]; ok {
		spec.Default = d
	}
	spec.Ref, _ = m["ref"].(string)
	if items, ok := m["items"]; ok {
		s, err := specFromAny(name, items)
		if err != nil {
			return FieldSpec{}, err
		}
		spec.Items = &s
	}
	if nested, ok := m["schema"].(map[string]any); ok {
		d, err := definitionFromAny(nested)
		if err != nil {
			return FieldSpec{}, err
		}
		spec.Schema = d
	}
	spec.Email, _ = m["email"].(bool)
	if raw, ok := m["enum"].([]any); ok {
		for _, e := range raw {
			s, ok := e.(string)
			if !ok {
				return FieldSpec{}, fmt.Errorf("duoskema: field %q: enum values must be strings, got %T", name, e)
			}
			spec.Enum = append(spec.Enum, s)
		}
	}
	if p, ok := m["regex"].(string); ok {
		spec.Pattern = p
	} else if p, ok := m["match"].(string); ok {
		spec.Pattern = p
	}
	if b, ok := m["select"].(bool); ok {
		spec.Select = Ptr(b)
	}
	spec.Sparse, _ = m["sparse"].(bool)
	spec.Index, _ = m["index"].(bool)
	spec.Text, _ = m["text"].(bool)
	spec.Immutable, _ = m["immutable"].(bool)
	return spec, nil
}

func intOpt(m map[string]any, keys ...string) *int {
	for _, k := range keys {
		switch v := m[k].(type) {
		case int:
			return Ptr(v)
		case float64:
			return Ptr(int(v))
		}
	}
	return nil
}

func floatOpt(m map[string]any, key string) *float64 {
	switch v := m[key].(type) {
	case int:
		return Ptr(float64(v))
	case float64:
		return Ptr(v)
	}
	return nil
}
