package store

// Message roles. The completion API only understands these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in a chat transcript. Immutable once created;
// ordering within a chat is insertion order.
type Message struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"` // RFC3339
}

// Chat is one conversation thread.
type Chat struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Messages  []Message `json:"messages"`
	CreatedAt string    `json:"createdAt"` // RFC3339
}

// NewChatTitle is the title of a freshly created, empty chat.
const NewChatTitle = "New Chat"

// titleMaxLen bounds derived chat titles.
const titleMaxLen = 50

// DeriveTitle computes a chat title from its first user message: the content
// truncated to 50 characters, with "..." appended when it was longer.
func DeriveTitle(content string) string {
	runes := []rune(content)
	if len(runes) <= titleMaxLen {
		return content
	}
	return string(runes[:titleMaxLen]) + "..."
}
