package merge

import (
	"regexp"
	"strings"

	"docmerge/internal/section"
)

// Entry is one item of a Features/API catalog section: a bold label acting as
// the dedup key, plus its colon-delimited description. Lines without the bold
// label format are invisible to the dedup heuristic.
type Entry struct {
	Key         string
	Description string
}

// An entry is an optional bullet marker followed by a bold label and an
// optional colon-delimited description.
var entryRe = regexp.MustCompile(`^\s*(?:[-*+]\s+)?\*\*(.+?)\*\*\s*:?\s*(.*)$`)

// isCatalogName reports whether sectionName selects the specialized catalog
// merge path: it must mention both "features" and "api".
func isCatalogName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "features") && strings.Contains(lower, "api")
}

// mergeCatalog folds newContent into the first matching catalog section and
// removes every other matching section from the document. Entries are drawn
// from the existing sections first, then from newContent, and deduplicated
// per sub-block by case-insensitive key, first occurrence wins. Sections are
// matched hierarchically so nested sub-blocks travel with their parent.
func mergeCatalog(doc, name, content string) string {
	lines := section.Lines(doc)
	matches := findAll(section.IndexHierarchical(doc), name)
	newFeats, newAPIs := extractEntries(section.Lines(content))

	if len(matches) == 0 {
		body := renderCatalog(2, newFeats, newAPIs)
		if body == nil {
			body = section.Lines(content)
		}
		return appendSection(doc, name, strings.Join(body, "\n"))
	}

	primary := matches[0]
	var feats, apis []Entry
	for _, m := range matches {
		f, a := extractEntries(m.Body)
		feats = append(feats, f...)
		apis = append(apis, a...)
	}
	feats = dedupe(append(feats, newFeats...))
	apis = dedupe(append(apis, newAPIs...))

	body := renderCatalog(primary.Level, feats, apis)
	if body == nil {
		// Nothing parseable on either side: fall back to plain replacement
		// semantics rather than emptying the section.
		body = section.Lines(content)
	}

	skip := make([]bool, len(lines))
	for _, m := range matches[1:] {
		for i := m.StartLine; i <= m.EndLine; i++ {
			skip[i] = true
		}
	}

	// Seams are the output positions where lines were inserted or removed;
	// only blank runs touching a seam may be re-closed afterwards.
	seams := make(map[int]bool)
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); i++ {
		if i == primary.StartLine {
			out = append(out, lines[i], "")
			out = append(out, body...)
			out = append(out, "")
			seams[len(out)-1] = true
			i = primary.EndLine
			continue
		}
		if skip[i] {
			seams[len(out)] = true
			continue
		}
		out = append(out, lines[i])
	}

	out = collapseBlanksAt(out, blankGap(lines), seams)
	return strings.Join(out, "\n")
}

// findAll returns every matching section in document order, skipping matches
// nested inside an earlier match's extent.
func findAll(sections []section.Section, name string) []section.Section {
	needle := strings.ToLower(strings.TrimSpace(name))
	var matches []section.Section
	lastEnd := -1
	for _, s := range sections {
		if !strings.Contains(strings.ToLower(s.Title), needle) {
			continue
		}
		if s.StartLine <= lastEnd {
			continue
		}
		matches = append(matches, s)
		lastEnd = s.EndLine
	}
	return matches
}

// extractEntries splits body lines into the Features and API entry lists.
// Entries before any sub-block label default to Features.
func extractEntries(lines []string) (feats, apis []Entry) {
	block := "features"
	for _, line := range lines {
		if label, ok := subBlockLabel(line); ok {
			block = label
			continue
		}
		m := entryRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		e := Entry{Key: strings.TrimSpace(m[1]), Description: strings.TrimSpace(m[2])}
		if e.Key == "" {
			continue
		}
		if block == "api" {
			apis = append(apis, e)
		} else {
			feats = append(feats, e)
		}
	}
	return feats, apis
}

// subBlockLabel recognizes the "Features" and "API" sub-block markers in
// heading or bold form.
func subBlockLabel(line string) (string, bool) {
	t := strings.TrimSpace(line)
	t = strings.TrimSpace(strings.TrimLeft(t, "#"))
	t = strings.TrimSuffix(t, ":")
	t = strings.Trim(t, "*_")
	t = strings.TrimSuffix(strings.TrimSpace(t), ":")
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "features":
		return "features", true
	case "api":
		return "api", true
	}
	return "", false
}

func dedupe(entries []Entry) []Entry {
	seen := make(map[string]bool, len(entries))
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		key := strings.ToLower(e.Key)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return out
}

// renderCatalog serializes the merged entry lists as Features then API
// sub-blocks one level below the section heading, omitting empty sub-blocks.
// Returns nil when both lists are empty.
func renderCatalog(level int, feats, apis []Entry) []string {
	if len(feats) == 0 && len(apis) == 0 {
		return nil
	}
	subLevel := level + 1
	if subLevel > 6 {
		subLevel = 6
	}
	marker := strings.Repeat("#", subLevel)

	var out []string
	if len(feats) > 0 {
		out = append(out, marker+" Features", "")
		for _, e := range feats {
			out = append(out, renderEntry(e))
		}
	}
	if len(apis) > 0 {
		if len(out) > 0 {
			out = append(out, "")
		}
		out = append(out, marker+" API", "")
		for _, e := range apis {
			out = append(out, renderEntry(e))
		}
	}
	return out
}

func renderEntry(e Entry) string {
	if e.Description == "" {
		return "- **" + e.Key + "**"
	}
	return "- **" + e.Key + "**: " + e.Description
}

// collapseBlanksAt re-closes the gaps left by the merge: a blank run that
// touches a seam shrinks to the document's convention (to a single final
// blank when it ends the document). Runs away from every seam are untouched
// content and pass through byte verbatim.
func collapseBlanksAt(lines []string, gap int, seams map[int]bool) []string {
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) != "" {
			out = append(out, lines[i])
			i++
			continue
		}
		start := i
		for i < len(lines) && strings.TrimSpace(lines[i]) == "" {
			i++
		}
		touched := false
		for s := start; s <= i; s++ {
			if seams[s] {
				touched = true
				break
			}
		}
		if !touched {
			out = append(out, lines[start:i]...)
			continue
		}
		run := i - start
		if i == len(lines) {
			run = 1
		} else if run > gap {
			run = gap
		}
		for k := 0; k < run; k++ {
			out = append(out, "")
		}
	}
	return out
}
