package writer

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"docmerge/internal/section"
)

var relativeLinkRe = regexp.MustCompile(`\[[^\]]*\]\((\.\.?/[^)\s]+)\)`)

// CheckContent scans final content for advisory formatting findings: markdown
// links whose relative targets do not exist under baseDir, and heading levels
// that jump more than one step deeper. Findings are warnings, never errors.
func CheckContent(content, baseDir string) []string {
	var warnings []string

	for _, m := range relativeLinkRe.FindAllStringSubmatch(content, -1) {
		target := m[1]
		if i := strings.IndexAny(target, "#?"); i >= 0 {
			target = target[:i]
		}
		if target == "" {
			continue
		}
		if _, err := os.Stat(filepath.Join(baseDir, target)); err != nil {
			warnings = append(warnings, fmt.Sprintf("link target not found: %s", m[1]))
		}
	}

	prev := 0
	for i, line := range strings.Split(Normalize(content), "\n") {
		level, _, ok := section.Heading(line)
		if !ok {
			continue
		}
		if prev > 0 && level > prev+1 {
			warnings = append(warnings, fmt.Sprintf("heading level jump from h%d to h%d at line %d", prev, level, i+1))
		}
		prev = level
	}

	return warnings
}
