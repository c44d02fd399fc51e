package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// schemaCache caches compiled JSON schemas by name.
var schemaCache sync.Map // map[string]*jsonschema.Schema

// decodeContent turns the model's text into Response content. Without a
// schema the text is kept as is. With one, a surrounding code fence is
// stripped and the JSON is validated.
func decodeContent(schema *Schema, text string) (json.RawMessage, error) {
	content := json.RawMessage(text)
	if schema == nil {
		return content, nil
	}
	content = trimCodeFence(content)
	if err := validateResponse(schema, content); err != nil {
		return nil, err
	}
	return content, nil
}

// schemaInstruction spells the schema out for endpoints that only offer a
// plain JSON mode.
func schemaInstruction(schema *Schema) (string, error) {
	def, err := json.Marshal(schema.Definition)
	if err != nil {
		return "", fmt.Errorf("marshal schema %q: %w", schema.Name, err)
	}
	var b strings.Builder
	b.WriteString("Respond with a single JSON object and nothing else.")
	if schema.Description != "" {
		b.WriteString(" ")
		b.WriteString(schema.Description)
	}
	b.WriteString(" The object must match this JSON Schema: ")
	b.Write(def)
	return b.String(), nil
}

// validateResponse validates raw JSON against the given Schema.
// Returns nil if no schema is provided or validation passes.
// Returns *ErrInvalidResponse on failure.
func validateResponse(schema *Schema, raw json.RawMessage) error {
	if schema == nil {
		return nil
	}

	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("invalid JSON: %w", err),
		}
	}

	compiled, err := compileSchema(schema)
	if err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("compile schema %q: %w", schema.Name, err),
		}
	}

	if err := compiled.Validate(parsed); err != nil {
		return &ErrInvalidResponse{
			Content: raw,
			Err:     fmt.Errorf("schema validation failed: %w", err),
		}
	}

	return nil
}

// compileSchema returns the compiled schema, compiling it on first use.
func compileSchema(schema *Schema) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(schema.Name); ok {
		return cached.(*jsonschema.Schema), nil
	}

	// The compiler wants decoded JSON values, not Go maps with typed slices.
	defBytes, err := json.Marshal(schema.Definition)
	if err != nil {
		return nil, fmt.Errorf("marshal schema definition: %w", err)
	}
	var defParsed any
	if err := json.Unmarshal(defBytes, &defParsed); err != nil {
		return nil, fmt.Errorf("parse schema definition: %w", err)
	}

	c := jsonschema.NewCompiler()
	schemaURL := fmt.Sprintf("schema://%s.json", schema.Name)
	if err := c.AddResource(schemaURL, defParsed); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}

	compiled, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}

	schemaCache.Store(schema.Name, compiled)
	return compiled, nil
}

// trimCodeFence strips a surrounding markdown code fence, which some models
// emit around JSON even when asked for structured output.
func trimCodeFence(raw json.RawMessage) json.RawMessage {
	b := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(b, []byte("```")) {
		return b
	}
	b = bytes.TrimPrefix(b, []byte("```"))
	b = bytes.TrimPrefix(b, []byte("json"))
	b = bytes.TrimSuffix(bytes.TrimSpace(b), []byte("```"))
	return bytes.TrimSpace(b)
}
