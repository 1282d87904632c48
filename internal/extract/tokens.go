// ABOUTME: Approximate token counting for extraction-pipeline logging, no effect on chunking decisions
package extract

import "github.com/pkoukk/tiktoken-go"

// countTokens returns cl100k_base's token count for text, or 0 if the
// encoder can't be loaded. It is advisory only — ChunkText still splits
// on the char thresholds per §4.7, this is purely for --verbose logging
// of how much context a run sent to the primary extractor.
func countTokens(text string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}
