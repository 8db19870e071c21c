package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"claudechat/internal/store"
)

// YAMLExporter renders a chat as YAML.
type YAMLExporter struct{}

func (e *YAMLExporter) Export(chat *store.Chat, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(chat)
}

func (e *YAMLExporter) Extension() string {
	return "yaml"
}
