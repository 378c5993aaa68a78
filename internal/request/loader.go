package request

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed merge_requests.schema.json
var batchSchema string

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// LoadBatch reads merge requests from a YAML or JSON batch file. JSON
// batches are validated against the embedded schema before decoding; YAML
// batches are checked structurally after decoding.
func LoadBatch(path string) ([]MergeRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	var batch Batch
	if filepath.Ext(path) == ".json" {
		if err := validateJSONBatch(raw); err != nil {
			return nil, fmt.Errorf("batch file %s: %w", path, err)
		}
		if err := json.Unmarshal(raw, &batch); err != nil {
			return nil, fmt.Errorf("failed to decode batch file %s: %w", path, err)
		}
	} else {
		if err := yaml.Unmarshal(raw, &batch); err != nil {
			return nil, fmt.Errorf("failed to decode batch file %s: %w", path, err)
		}
	}

	for i, req := range batch.Requests {
		if strings.TrimSpace(req.TargetFile) == "" {
			return nil, fmt.Errorf("batch file %s: request %d has no target_file", path, i+1)
		}
	}
	return batch.Requests, nil
}

func validateJSONBatch(raw []byte) error {
	schema, err := loadCompiledSchema()
	if err != nil {
		return fmt.Errorf("failed to compile batch schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

func loadCompiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("merge_requests.schema.json", strings.NewReader(batchSchema)); err != nil {
			schemaErr = err
			return
		}
		compiledSchema, schemaErr = compiler.Compile("merge_requests.schema.json")
	})
	return compiledSchema, schemaErr
}
