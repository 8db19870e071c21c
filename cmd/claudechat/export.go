package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"claudechat/internal/export"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export [chat-id]",
	Short: "Export a chat transcript",
	Long: `Exports a chat to md, json, jsonl, or yaml. With no chat id the active
chat is exported. Output goes to stdout unless -o is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: exportChat,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "md", "output format (md, json, jsonl, yaml)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
}

func exportChat(cmd *cobra.Command, args []string) error {
	sessions, closer, err := openSessions()
	if err != nil {
		return err
	}
	defer closer()

	chatID := sessions.ActiveChatID()
	if len(args) > 0 {
		chatID = args[0]
	}

	chat, ok := sessions.Chat(chatID)
	if !ok {
		return fmt.Errorf("no chat with id %q", chatID)
	}

	exporter, err := export.NewExporter(exportFormat)
	if err != nil {
		return err
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := exporter.Export(&chat, out); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	logger.Info("chat exported",
		zap.String("chat", chatID),
		zap.String("format", exportFormat),
		zap.Int("messages", len(chat.Messages)))
	return nil
}
