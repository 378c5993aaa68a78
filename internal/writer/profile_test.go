package writer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectProfile_CRLF(t *testing.T) {
	p := DetectProfile("# Title\r\n\r\nbody\r\n")
	assert.Equal(t, "\r\n", p.Newline)
	assert.True(t, p.TrailingNewline)
}

func TestDetectProfile_Defaults(t *testing.T) {
	p := DetectProfile("")
	assert.Equal(t, "\n", p.Newline)
	assert.True(t, p.TrailingNewline)
	assert.Empty(t, p.Indent)
}

func TestDetectProfile_NoTrailingNewline(t *testing.T) {
	p := DetectProfile("# Title\nbody")
	assert.False(t, p.TrailingNewline)
}

func TestDetectProfile_IndentSample(t *testing.T) {
	p := DetectProfile("# Title\n  indented line\n\tdeeper\n")
	assert.Equal(t, "  ", p.Indent)
}

func TestProfileDescribe(t *testing.T) {
	assert.Equal(t, "CRLF", DetectProfile("# T\r\n\r\nbody\r\n").Describe())
	assert.Equal(t, "LF, 2-space indent", DetectProfile("# T\n  body\n").Describe())
	assert.Equal(t, "LF, tab indent, no trailing newline", DetectProfile("# T\n\tbody").Describe())
}

func TestProfileApply_RestoresCRLF(t *testing.T) {
	original := "# Title\r\n\r\n## Notes\r\nold\r\n"
	p := DetectProfile(original)

	// Round trip: an untouched document keeps its exact bytes.
	assert.Equal(t, original, p.Apply(Normalize(original)))

	// Merged LF text comes back in the document's convention.
	out := p.Apply("# Title\n\nnew\n")
	assert.Equal(t, "# Title\r\n\r\nnew\r\n", out)
}

func TestProfileApply_TrailingNewline(t *testing.T) {
	withNL := Profile{Newline: "\n", TrailingNewline: true}
	assert.Equal(t, "a\nb\n", withNL.Apply("a\nb"))

	// Extra trailing blank lines in the original are kept as-is.
	assert.Equal(t, "a\n\n\n", withNL.Apply("a\n\n\n"))

	withoutNL := Profile{Newline: "\n", TrailingNewline: false}
	assert.Equal(t, "a\nb", withoutNL.Apply("a\nb\n"))
}
