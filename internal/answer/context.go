package answer

const (
	// charsPerToken is the conservative character-to-token ratio used for
	// estimation. 4 chars/token is standard for English and code; using 3
	// would be more aggressive but risks overflowing context windows.
	charsPerToken = 4

	// DefaultMaxContextTokens is the default prompt budget in tokens.
	// Conservative enough to fit within 8k-context models while leaving
	// room for the answer. Override via Config.MaxContextTokens.
	DefaultMaxContextTokens = 6000
)

// estimate returns a rough token count for s using the character heuristic.
// The answerer supports multiple backends with different tokenizers, so an
// exact count is not possible; this deliberately under-estimates to leave
// headroom for model-specific overhead.
func estimate(s string) int {
	n := len(s) / charsPerToken
	if n == 0 && len(s) > 0 {
		return 1
	}
	return n
}

// trimPassages keeps passages in rank order, dropping from the tail (the
// least relevant results) until the estimated total fits within maxTokens.
// A negative or zero budget returns no passages.
func trimPassages(passages []string, maxTokens int) []string {
	if maxTokens <= 0 {
		return nil
	}
	total := 0
	for i, p := range passages {
		// Small per-passage overhead for the numbering and separators.
		cost := estimate(p) + 4
		if total+cost > maxTokens {
			return passages[:i]
		}
		total += cost
	}
	return passages
}
