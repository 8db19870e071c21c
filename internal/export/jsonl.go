package export

import (
	"encoding/json"
	"fmt"
	"io"

	"claudechat/internal/store"
)

// JSONLExporter renders a chat as one JSON object per message.
type JSONLExporter struct{}

func (e *JSONLExporter) Export(chat *store.Chat, w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, msg := range chat.Messages {
		if err := enc.Encode(msg); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}
	return nil
}

func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
