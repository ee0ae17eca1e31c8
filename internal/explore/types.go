package explore

// Response is a complete answer to an explore query.
type Response struct {
	// Content is markdown prose.
	Content          string            `json:"content"`
	RelatedTopics    []Topic           `json:"relatedTopics"`
	RelatedQuestions []RelatedQuestion `json:"relatedQuestions"`
}

// Topic is a suggested next topic.
type Topic struct {
	Topic  string `json:"topic"`
	Type   string `json:"type"`
	Reason string `json:"reason,omitempty"`
}

// RelatedQuestion is a suggested follow-up question.
type RelatedQuestion struct {
	Question string `json:"question"`
	Type     string `json:"type"`
	Context  string `json:"context"`
}

// StreamChunk is one line of the streaming endpoint. Text is cumulative:
// each chunk carries everything so far. Topics and Questions arrive on the
// last chunk only.
type StreamChunk struct {
	Text      *string           `json:"text,omitempty"`
	Topics    []Topic           `json:"topics,omitempty"`
	Questions []RelatedQuestion `json:"questions,omitempty"`
}

// TextChunk builds a text-only chunk.
func TextChunk(text string) StreamChunk {
	return StreamChunk{Text: &text}
}
