package section

import (
	"regexp"
	"strings"
)

// Section is a heading-delimited region of a markdown document. StartLine and
// EndLine are zero-based, inclusive indices into the document snapshot the
// section was indexed from. Body holds the region's lines excluding the
// heading line itself. Sections are derived on every merge, never persisted.
type Section struct {
	Title     string
	Level     int
	StartLine int
	EndLine   int
	Body      []string
}

// A heading is 1-6 '#' characters, at least one whitespace character, and a
// non-empty title. Seven or more '#' is not a heading.
var headingRe = regexp.MustCompile(`^(#{1,6})\s+(\S.*)$`)

// Heading reports whether line is a markdown heading, returning its depth and
// trimmed title when it is.
func Heading(line string) (level int, title string, ok bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), strings.TrimSpace(m[2]), true
}

// Lines splits LF-normalized text into its lines. A trailing newline yields a
// final empty line, which keeps Split/Join round-trips byte exact.
func Lines(text string) []string {
	return strings.Split(text, "\n")
}

// Index scans text line by line and returns its sections in document order.
// A heading at any level closes the previously open section. Headerless or
// malformed input never fails; it simply yields no sections.
func Index(text string) []Section {
	lines := Lines(text)
	var sections []Section
	open := -1

	for i, line := range lines {
		level, title, ok := Heading(line)
		if !ok {
			continue
		}
		if open >= 0 {
			closeSection(&sections[open], lines, i-1)
		}
		sections = append(sections, Section{Title: title, Level: level, StartLine: i, EndLine: i})
		open = len(sections) - 1
	}
	if open >= 0 {
		closeSection(&sections[open], lines, len(lines)-1)
	}
	return sections
}

// IndexHierarchical returns the same sections as Index, but each section's
// extent runs to the line before the next heading at the same or a shallower
// level, so nested subsections belong to their parent. Merge-and-remove
// operations must use this mode or subsection content is silently dropped.
func IndexHierarchical(text string) []Section {
	lines := Lines(text)
	flat := Index(text)
	sections := make([]Section, len(flat))
	for i, s := range flat {
		end := len(lines) - 1
		for j := i + 1; j < len(flat); j++ {
			if flat[j].Level <= s.Level {
				end = flat[j].StartLine - 1
				break
			}
		}
		closeSection(&s, lines, end)
		sections[i] = s
	}
	return sections
}

func closeSection(s *Section, lines []string, end int) {
	if end < s.StartLine {
		end = s.StartLine
	}
	s.EndLine = end
	s.Body = nil
	if end > s.StartLine {
		s.Body = append([]string(nil), lines[s.StartLine+1:end+1]...)
	}
}
