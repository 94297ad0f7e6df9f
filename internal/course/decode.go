package course

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const recordSchemaURL = "schema://progress-record.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// recordValidator compiles the record schema once and caches it.
func recordValidator() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var doc any
		if err := json.Unmarshal([]byte(recordSchema), &doc); err != nil {
			schemaErr = fmt.Errorf("parse record schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(recordSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(recordSchemaURL)
	})
	return compiledSchema, schemaErr
}

// envelope is the GraphQL-shaped export: {course:{modulesConnection:{nodes:[...]}}}.
type envelope struct {
	Course *struct {
		ModulesConnection struct {
			Nodes []json.RawMessage `json:"nodes"`
		} `json:"modulesConnection"`
	} `json:"course"`
}

// Decode parses a course export into typed records. The export may be a bare
// JSON array of module nodes or the GraphQL envelope. Nodes that fail
// validation are skipped and returned as *ErrInvalidRecord values; the
// returned error is only set when the document as a whole is unusable.
func Decode(raw []byte) ([]ProgressRecord, []error, error) {
	nodes, err := splitNodes(raw)
	if err != nil {
		return nil, nil, err
	}

	records := make([]ProgressRecord, 0, len(nodes))
	var skipped []error
	for i, node := range nodes {
		rec, err := DecodeNode(i, node)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

func splitNodes(raw []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, errors.New("empty course export")
	}

	if trimmed[0] == '[' {
		var nodes []json.RawMessage
		if err := json.Unmarshal(trimmed, &nodes); err != nil {
			return nil, fmt.Errorf("parse module list: %w", err)
		}
		return nodes, nil
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return nil, fmt.Errorf("parse course export: %w", err)
	}
	if env.Course == nil {
		return nil, errors.New("parse course export: missing course object")
	}
	return env.Course.ModulesConnection.Nodes, nil
}

// DecodeNode validates one module node against the record schema and
// converts it to a ProgressRecord. index is only used for error reporting.
func DecodeNode(index int, raw json.RawMessage) (ProgressRecord, error) {
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return ProgressRecord{}, &ErrInvalidRecord{Index: index, Reason: fmt.Errorf("invalid JSON: %w", err)}
	}
	id := peekID(parsed)

	validator, err := recordValidator()
	if err != nil {
		return ProgressRecord{}, &ErrInvalidRecord{Index: index, ID: id, Reason: err}
	}
	if err := validator.Validate(parsed); err != nil {
		return ProgressRecord{}, &ErrInvalidRecord{Index: index, ID: id, Reason: fmt.Errorf("schema validation failed: %w", err)}
	}

	var rec ProgressRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return ProgressRecord{}, &ErrInvalidRecord{Index: index, ID: id, Reason: err}
	}
	if err := rec.Validate(); err != nil {
		return ProgressRecord{}, &ErrInvalidRecord{Index: index, ID: id, Reason: err}
	}
	return rec, nil
}

// Encode serializes a record in the same shape DecodeNode accepts.
func Encode(rec ProgressRecord) (json.RawMessage, error) {
	b, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record %s: %w", rec.ID, err)
	}
	return b, nil
}

func peekID(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return ""
	}
	id, _ := m["id"].(string)
	return id
}
