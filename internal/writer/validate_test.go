package writer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckContent_BrokenRelativeLink(t *testing.T) {
	dir := t.TempDir()

	warnings := CheckContent("see [guide](./guide.md) and [up](../other.md)", dir)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "./guide.md")
	assert.Contains(t, warnings[1], "../other.md")
}

func TestCheckContent_ExistingLinkTarget(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte("x"), 0644))

	warnings := CheckContent("see [guide](./guide.md)", dir)
	assert.Empty(t, warnings)
}

func TestCheckContent_FragmentStripped(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "guide.md"), []byte("x"), 0644))

	warnings := CheckContent("see [anchor](./guide.md#section)", dir)
	assert.Empty(t, warnings)
}

func TestCheckContent_AbsoluteAndExternalLinksIgnored(t *testing.T) {
	content := "[abs](/etc/none.md) and [web](https://example.com/x.md)"
	assert.Empty(t, CheckContent(content, t.TempDir()))
}

func TestCheckContent_HeadingJump(t *testing.T) {
	warnings := CheckContent("# A\n\n### C\n", t.TempDir())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "heading level jump from h1 to h3")
}

func TestCheckContent_SingleStepHeadingsAreFine(t *testing.T) {
	content := "# A\n\n## B\n\n### C\n\n## D\n"
	assert.Empty(t, CheckContent(content, t.TempDir()))
}
