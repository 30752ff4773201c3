package adapter

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// AIServiceAdapter is the port for the generative text provider used to
// produce the personal horoscope section. Implementations are best-effort:
// the caller treats any error as "no AI text today".
type AIServiceAdapter interface {
	Name() string
	ListModels(ctx context.Context) ([]string, error)

	// Chat returns only the assistant text.
	Chat(ctx context.Context, model string, messages []Message) (string, error)
}
