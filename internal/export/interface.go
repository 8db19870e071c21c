// Package export renders a chat to portable formats for sharing or archival.
package export

import (
	"fmt"
	"io"

	"claudechat/internal/store"
)

// Exporter writes one chat to an output stream in a particular format.
type Exporter interface {
	Export(chat *store.Chat, w io.Writer) error
	Extension() string
}

// NewExporter returns the exporter for the given format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "md", "markdown":
		return &MarkdownExporter{}, nil
	case "json":
		return &JSONExporter{}, nil
	case "jsonl":
		return &JSONLExporter{}, nil
	case "yaml":
		return &YAMLExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: md, json, jsonl, yaml)", format)
	}
}
