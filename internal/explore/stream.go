package explore

import "unicode"

// Chunks splits a response into cumulative stream chunks of roughly size
// new bytes each, breaking after whitespace where possible. The final
// chunk carries the full text plus topics and questions.
func Chunks(resp *Response, size int) []StreamChunk {
	if size < 1 {
		size = 1
	}
	text := resp.Content
	runes := []rune(text)

	var out []StreamChunk
	start := 0
	for start < len(runes) {
		end := start + size
		if end >= len(runes) {
			break
		}
		// Extend to the next whitespace so words are not split.
		for end < len(runes) && !unicode.IsSpace(runes[end-1]) {
			end++
		}
		if end >= len(runes) {
			break
		}
		out = append(out, TextChunk(string(runes[:end])))
		start = end
	}

	last := TextChunk(text)
	last.Topics = resp.RelatedTopics
	last.Questions = resp.RelatedQuestions
	return append(out, last)
}
