// ABOUTME: Heading-bounded bullet extraction from extractor output, for topics/decisions/rejections/errors archival
package extract

import "strings"

// BulletsUnder returns the bullet-list lines (leading "-", "*", or "N.")
// found under the first line of text that contains heading, skipping blank
// lines and stopping at the next line that starts with a known heading, or
// at end of text.
func BulletsUnder(text, heading string) []string {
	lines := strings.Split(text, "\n")
	idx := -1
	for i, line := range lines {
		if strings.Contains(strings.ToUpper(line), strings.ToUpper(heading)) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	var bullets []string
	for i := idx + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if isHeadingLine(line) {
			break
		}
		if text := bulletText(line); text != "" {
			bullets = append(bullets, text)
		}
	}
	return bullets
}

func isHeadingLine(line string) bool {
	upper := strings.ToUpper(strings.TrimLeft(line, "#* "))
	for _, h := range AllHeadings {
		if strings.HasPrefix(upper, h) {
			return true
		}
	}
	return false
}

// bulletText strips a leading "-", "*", or "N." marker; returns "" if line
// is not a bullet.
func bulletText(line string) string {
	switch {
	case strings.HasPrefix(line, "- "):
		return strings.TrimSpace(line[2:])
	case strings.HasPrefix(line, "* "):
		return strings.TrimSpace(line[2:])
	}
	for i, r := range line {
		if r < '0' || r > '9' {
			if i > 0 && strings.HasPrefix(line[i:], ". ") {
				return strings.TrimSpace(line[i+2:])
			}
			break
		}
	}
	return ""
}

// NormalizeForDedup lowercases, strips quotes and collapses whitespace, for
// the decisions/rejections log dedup key and the error-pattern key.
func NormalizeForDedup(s string) string {
	s = strings.ToLower(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '"', '\'', '`':
			return -1
		default:
			return r
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}
