// ABOUTME: Quality gate — required headings check per §4.7/Glossary
package extract

import "strings"

// requiredHeadings are the two headings §4.7 treats as mandatory; the
// remaining Glossary headings (INSIGHTS, DECISIONS MADE, etc.) are expected
// in a well-formed extraction but are not gate-enforced.
var requiredHeadings = []string{
	"ONE SENTENCE SUMMARY",
	"MAIN IDEAS",
}

// AllHeadings is the full Glossary heading set, used to find section
// boundaries when pulling topics/decisions/rejections/errors out of an
// extraction for archival.
var AllHeadings = []string{
	"ONE SENTENCE SUMMARY",
	"MAIN IDEAS",
	"INSIGHTS",
	"DECISIONS MADE",
	"THINGS TO REJECT / AVOID",
	"ERRORS FIXED",
	"ACTIONABLE ITEMS",
	"SESSION CONTEXT",
}

// PassesQualityGate reports whether text contains every required heading.
func PassesQualityGate(text string) bool {
	upper := strings.ToUpper(text)
	for _, h := range requiredHeadings {
		if !strings.Contains(upper, h) {
			return false
		}
	}
	return true
}
