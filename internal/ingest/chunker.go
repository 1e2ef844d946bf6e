package ingest

// SplitText splits text into fixed-size character chunks where each chunk
// after the first overlaps its predecessor by exactly overlap characters.
// Chunk i covers [i*(size-overlap), i*(size-overlap)+size); the final
// chunk may be shorter. Splitting is deterministic: identical input and
// parameters always yield the identical chunk sequence.
//
// size must be greater than overlap; config validation enforces this
// before a Pipeline is ever constructed. Out-of-range parameters yield
// nil rather than an infinite loop.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil
	}

	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	step := size - overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end >= len(runes) {
			chunks = append(chunks, string(runes[start:]))
			break
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}
