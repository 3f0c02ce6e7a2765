package transcript

type MessageRole string

const (
	Assistant MessageRole = "assistant"
	User      MessageRole = "user"
)

type Message struct {
	Role    MessageRole `json:"role" yaml:"role"`
	Content string      `json:"content" yaml:"content"`
}

// Transcript is the document written to disk. Messages are oldest first.
type Transcript struct {
	Messages []Message `json:"messages" yaml:"messages"`
}

func (t Transcript) Len() int {
	return len(t.Messages)
}
