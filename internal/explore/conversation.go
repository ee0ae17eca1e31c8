package explore

import "time"

// Role identifies who wrote a message.
type Role string

const (
	RoleUser Role = "user"
	RoleAI   Role = "ai"
)

// Message is one entry in a conversation.
type Message struct {
	Role      Role
	Content   string
	Timestamp time.Time
	Topics    []Topic
	Questions []RelatedQuestion
}

// Conversation is the append-only transcript of an explore session.
// Messages are never removed or reordered; only the latest AI message is
// updated as stream chunks arrive.
type Conversation struct {
	Messages []Message
}

// Ask appends the user's query and an empty AI message for the answer.
func (c *Conversation) Ask(query string, now time.Time) {
	c.Messages = append(c.Messages,
		Message{Role: RoleUser, Content: query, Timestamp: now},
		Message{Role: RoleAI, Timestamp: now},
	)
}

// Apply merges a chunk into the latest AI message. Fields present in the
// chunk replace the message's; absent fields are kept. Apply is a no-op
// when the latest message is not an AI message.
func (c *Conversation) Apply(chunk StreamChunk) {
	n := len(c.Messages)
	if n == 0 || c.Messages[n-1].Role != RoleAI {
		return
	}
	m := &c.Messages[n-1]
	if chunk.Text != nil {
		m.Content = *chunk.Text
	}
	if chunk.Topics != nil {
		m.Topics = chunk.Topics
	}
	if chunk.Questions != nil {
		m.Questions = chunk.Questions
	}
}

// Latest returns the most recent AI message, if any.
func (c *Conversation) Latest() (Message, bool) {
	for i := len(c.Messages) - 1; i >= 0; i-- {
		if c.Messages[i].Role == RoleAI {
			return c.Messages[i], true
		}
	}
	return Message{}, false
}

// Reset clears the transcript.
func (c *Conversation) Reset() {
	c.Messages = nil
}
