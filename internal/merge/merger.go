package merge

import (
	"strings"

	"docmerge/internal/section"
)

// Merge folds newContent into the section of doc whose title matches
// sectionName and returns the updated document text. The operation is total:
// a missing section is appended rather than reported, and whitespace-only
// content leaves the document untouched so a merge can never erase a section.
// Text is handled LF-normalized; callers reapply the original formatting
// profile on write.
func Merge(doc, sectionName, newContent string) string {
	doc = normalize(doc)
	content := strings.TrimSpace(normalize(newContent))
	if content == "" {
		return doc
	}
	if isCatalogName(sectionName) {
		return mergeCatalog(doc, sectionName, content)
	}
	return mergePlain(doc, sectionName, content)
}

// mergePlain replaces the first matching section's full line range with the
// original heading line, a blank line and the new content. Everything outside
// the range stays byte verbatim. Overlap with existing prose is deliberately
// full-block replacement, not line-level diffing.
func mergePlain(doc, name, content string) string {
	lines := section.Lines(doc)
	target := findFirst(section.Index(doc), name)
	if target == nil {
		return appendSection(doc, name, content)
	}

	out := make([]string, 0, len(lines))
	out = append(out, lines[:target.StartLine]...)
	out = append(out, lines[target.StartLine], "")
	out = append(out, section.Lines(content)...)
	if target.EndLine+1 < len(lines) {
		out = append(out, "")
		out = append(out, lines[target.EndLine+1:]...)
	}
	return strings.Join(out, "\n")
}

// appendSection adds a new top-level section at the end of the document,
// separated by the document's detected blank-line convention.
func appendSection(doc, name, content string) string {
	heading := "## " + strings.TrimSpace(name)
	if strings.TrimSpace(doc) == "" {
		return heading + "\n\n" + content
	}
	gap := blankGap(section.Lines(doc))
	sep := strings.Repeat("\n", gap+1)
	return strings.TrimRight(doc, "\n") + sep + heading + "\n\n" + content
}

// findFirst returns the first section whose title contains name,
// case-insensitive, in document order.
func findFirst(sections []section.Section, name string) *section.Section {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i := range sections {
		if strings.Contains(strings.ToLower(sections[i].Title), needle) {
			return &sections[i]
		}
	}
	return nil
}

// blankGap detects the document's blank-line convention: the most common run
// of blank lines immediately preceding a heading. Defaults to a single blank.
func blankGap(lines []string) int {
	counts := make(map[int]int)
	for i, line := range lines {
		if _, _, ok := section.Heading(line); !ok || i == 0 {
			continue
		}
		run := 0
		for j := i - 1; j >= 0 && strings.TrimSpace(lines[j]) == ""; j-- {
			run++
		}
		if run > 0 {
			counts[run]++
		}
	}
	best, bestCount := 1, 0
	for run, count := range counts {
		if count > bestCount || (count == bestCount && run < best) {
			best, bestCount = run, count
		}
	}
	return best
}

func normalize(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
