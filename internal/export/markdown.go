package export

import (
	"fmt"
	"io"
	"strings"

	"claudechat/internal/store"
)

// MarkdownExporter renders a chat as a Markdown transcript.
type MarkdownExporter struct{}

func (e *MarkdownExporter) Export(chat *store.Chat, w io.Writer) error {
	_, _ = fmt.Fprintf(w, "# %s\n\n", chat.Title)
	_, _ = fmt.Fprintf(w, "**Created:** %s  \n", chat.CreatedAt)
	_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(chat.Messages))
	_, _ = fmt.Fprintf(w, "---\n\n")

	for i, msg := range chat.Messages {
		label := "Claude"
		if msg.Role == store.RoleUser {
			label = "You"
		}
		_, _ = fmt.Fprintf(w, "**%s** (%s)\n\n%s\n\n",
			label, msg.Timestamp, escapeMarkdown(msg.Content))
		if i < len(chat.Messages)-1 {
			_, _ = fmt.Fprintf(w, "---\n\n")
		}
	}

	return nil
}

// escapeMarkdown neutralizes emphasis markers in message text while leaving
// fenced code blocks untouched.
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	result := make([]string, 0, len(lines))
	inCodeBlock := false

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "```"):
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		case inCodeBlock:
			result = append(result, line)
		default:
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

func (e *MarkdownExporter) Extension() string {
	return "md"
}
