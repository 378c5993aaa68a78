package writer

import (
	"fmt"
	"strings"
)

// Profile captures the byte-level layout characteristics of a document:
// line-ending convention, trailing-newline presence and a leading
// indentation sample. It is detected once per write from the pristine
// original, never from merged content, and reapplied verbatim on output.
type Profile struct {
	Newline         string
	TrailingNewline bool
	Indent          string
}

// DetectProfile inspects text before mutation. Empty input gets the default
// LF convention with a final newline.
func DetectProfile(text string) Profile {
	p := Profile{Newline: "\n", TrailingNewline: true}
	if text == "" {
		return p
	}
	if strings.Contains(text, "\r\n") {
		p.Newline = "\r\n"
	}
	p.TrailingNewline = strings.HasSuffix(text, "\n")
	for _, line := range strings.Split(Normalize(text), "\n") {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != "" && trimmed != line {
			p.Indent = line[:len(line)-len(trimmed)]
			break
		}
	}
	return p
}

// Describe summarizes the detected profile for operator-facing output.
func (p Profile) Describe() string {
	d := "LF"
	if p.Newline == "\r\n" {
		d = "CRLF"
	}
	switch {
	case strings.Contains(p.Indent, "\t"):
		d += ", tab indent"
	case p.Indent != "":
		d += fmt.Sprintf(", %d-space indent", len(p.Indent))
	}
	if !p.TrailingNewline {
		d += ", no trailing newline"
	}
	return d
}

// Normalize rewrites text to LF line endings for merging. Merged output may
// mix conventions when new content uses a different line ending than the
// file; normalizing first keeps the merge logic single-convention.
func Normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// Apply re-serializes LF-normalized merged text using the original
// document's conventions.
func (p Profile) Apply(text string) string {
	text = Normalize(text)
	if p.TrailingNewline {
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
	} else {
		text = strings.TrimRight(text, "\n")
	}
	if p.Newline != "\n" {
		text = strings.ReplaceAll(text, "\n", p.Newline)
	}
	return text
}
