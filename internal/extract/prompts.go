// ABOUTME: System prompts pinning the extractor's output format to the required headings
package extract

import "strings"

const extractSystemPrompt = `You are a session memory extractor. Read the transcript below and produce a structured summary with exactly these top-level headings, each on its own line in uppercase, in this order:

ONE SENTENCE SUMMARY
MAIN IDEAS
INSIGHTS
DECISIONS MADE
THINGS TO REJECT / AVOID
ERRORS FIXED
ACTIONABLE ITEMS
SESSION CONTEXT

Under ONE SENTENCE SUMMARY write a single sentence. Under every other heading write a bulleted list ("- ") of concise items, or "- none" if there is nothing to report. Do not add extra headings or commentary outside this structure.`

const mergeSystemPrompt = `You are merging several partial session summaries, each already formatted with the headings ONE SENTENCE SUMMARY, MAIN IDEAS, INSIGHTS, DECISIONS MADE, THINGS TO REJECT / AVOID, ERRORS FIXED, ACTIONABLE ITEMS, and SESSION CONTEXT. Produce a single summary in that same format that deduplicates and consolidates the partials into one coherent whole, in the same heading order.`

// buildMergeInput concatenates chunk extracts with a clear separator for
// the meta-extraction call.
func buildMergeInput(partials []string) string {
	return strings.Join(partials, "\n\n=====\n\n")
}
