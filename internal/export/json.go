package export

import (
	"encoding/json"
	"io"

	"claudechat/internal/store"
)

// JSONExporter renders a chat as pretty-printed JSON.
type JSONExporter struct{}

func (e *JSONExporter) Export(chat *store.Chat, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(chat)
}

func (e *JSONExporter) Extension() string {
	return "json"
}
