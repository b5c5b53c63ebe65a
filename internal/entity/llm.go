package entity

type ChatRole string

const (
	ChatRoleSystem    ChatRole = "system"
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is one role-tagged message of a prompt
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}

// LastUserMessage returns the content of the most recent user message, or "" if there is none
func LastUserMessage(messages []ChatMessage) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ChatRoleUser {
			return messages[i].Content
		}
	}
	return ""
}

type LLMChatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
	Messages    []ChatMessage `json:"messages"`
}

type LLMChatChoice struct {
	Index   int          `json:"index"`
	Message *ChatMessage `json:"message,omitempty"`
	Delta   *LLMDelta    `json:"delta,omitempty"`
}

type LLMDelta struct {
	Role    ChatRole `json:"role,omitempty"`
	Content *string  `json:"content,omitempty"`
}

type LLMChatResponse struct {
	ID      string          `json:"id,omitempty"`
	Model   string          `json:"model,omitempty"`
	Choices []LLMChatChoice `json:"choices"`
}

// CompletionSource tells where the text of a Completion came from
type CompletionSource string

const (
	CompletionSourceModel    CompletionSource = "model"
	CompletionSourceFallback CompletionSource = "fallback"
)

// CompletionFailure classifies why the remote model could not be used
type CompletionFailure string

const (
	CompletionFailureNone      CompletionFailure = ""
	CompletionFailureTransport CompletionFailure = "transport"
	CompletionFailureParse     CompletionFailure = "parse"
)

// Completion is the outcome of one non-streaming gateway call. Text is never
// empty-by-failure: on failure it holds the local fallback responder output.
type Completion struct {
	Text    string
	Source  CompletionSource
	Failure CompletionFailure
	Err     error
}

func (c Completion) IsFallback() bool {
	return c.Source == CompletionSourceFallback
}
