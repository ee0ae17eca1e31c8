package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

var fence = []byte("```")

// compiled holds one *jsonschema.Schema per Schema.Name.
var compiled sync.Map

// structuredContent unwraps a Markdown code fence, if the model added one,
// and checks the JSON against schema. With no schema raw is returned
// untouched. Failures are *ErrInvalidResponse.
func structuredContent(schema *Schema, raw json.RawMessage) (json.RawMessage, error) {
	if schema == nil {
		return raw, nil
	}
	body := stripCodeFence(raw)
	if err := validateResponse(schema, body); err != nil {
		return nil, err
	}
	return body, nil
}

func stripCodeFence(raw json.RawMessage) json.RawMessage {
	b := bytes.TrimSpace(raw)
	rest, ok := bytes.CutPrefix(b, fence)
	if !ok {
		return b
	}
	// Drop the info string line ("json").
	if _, after, found := bytes.Cut(rest, []byte("\n")); found {
		rest = after
	}
	rest = bytes.TrimSuffix(bytes.TrimSpace(rest), fence)
	return bytes.TrimSpace(rest)
}

func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}
	invalid := func(format string, args ...any) error {
		return &ErrInvalidResponse{Content: raw, Err: fmt.Errorf(format, args...)}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return invalid("not JSON: %w", err)
	}
	sch, err := compile(schema)
	if err != nil {
		return invalid("schema %s: %w", schema.Name, err)
	}
	if err := sch.Validate(doc); err != nil {
		return invalid("does not match %s: %w", schema.Name, err)
	}
	return nil
}

func compile(schema *Schema) (*jsonschema.Schema, error) {
	if s, ok := compiled.Load(schema.Name); ok {
		return s.(*jsonschema.Schema), nil
	}

	// The compiler only takes decoded JSON values, not arbitrary Go maps.
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(def))
	if err != nil {
		return nil, err
	}

	url := "schema://" + schema.Name + ".json"
	c := jsonschema.NewCompiler()
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, err
	}
	compiled.Store(schema.Name, s)
	return s, nil
}
