package request

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBatchFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadBatch_YAML(t *testing.T) {
	path := writeBatchFile(t, "batch.yaml", `
requests:
  - target_file: docs/readme.md
    section: Features & API
    content: "**X**: does x"
    priority: high
  - target_file: docs/other.md
    content: full replacement
`)

	reqs, err := LoadBatch(path)
	require.NoError(t, err)
	require.Len(t, reqs, 2)
	assert.Equal(t, "docs/readme.md", reqs[0].TargetFile)
	assert.Equal(t, "Features & API", reqs[0].Section)
	assert.Equal(t, "**X**: does x", reqs[0].Content)
	assert.Equal(t, "high", reqs[0].Priority)
	assert.Empty(t, reqs[1].Section)
}

func TestLoadBatch_JSON(t *testing.T) {
	path := writeBatchFile(t, "batch.json", `{
  "requests": [
    {"target_file": "docs/readme.md", "section": "Overview", "content": "body"}
  ]
}`)

	reqs, err := LoadBatch(path)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "Overview", reqs[0].Section)
}

func TestLoadBatch_JSONSchemaRejectsMissingContent(t *testing.T) {
	path := writeBatchFile(t, "batch.json", `{
  "requests": [{"target_file": "docs/readme.md"}]
}`)

	_, err := LoadBatch(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation failed")
}

func TestLoadBatch_JSONSchemaRejectsUnknownFields(t *testing.T) {
	path := writeBatchFile(t, "batch.json", `{
  "requests": [{"target_file": "a.md", "content": "x", "mode": "force"}]
}`)

	_, err := LoadBatch(path)
	require.Error(t, err)
}

func TestLoadBatch_YAMLRequiresTargetFile(t *testing.T) {
	path := writeBatchFile(t, "batch.yaml", `
requests:
  - section: Overview
    content: body
`)

	_, err := LoadBatch(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no target_file")
}

func TestLoadBatch_MissingFile(t *testing.T) {
	_, err := LoadBatch(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
