package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"claudechat/internal/config"
	"claudechat/internal/store"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List stored chats",
	Long:  `Prints all stored chats, most recently created first.`,
	RunE:  listSessions,
}

func listSessions(cmd *cobra.Command, args []string) error {
	sessions, closer, err := openSessions()
	if err != nil {
		return err
	}
	defer closer()

	chats := sessions.Chats()
	logger.Debug("loaded chats", zap.Int("count", len(chats)))

	active := sessions.ActiveChatID()
	for _, c := range chats {
		marker := " "
		if c.ID == active {
			marker = "*"
		}
		date := c.CreatedAt
		if t, err := time.Parse(time.RFC3339Nano, c.CreatedAt); err == nil {
			date = t.Format("2006-01-02 15:04")
		}
		fmt.Printf("%s %-42s %s  %-50s %d messages\n", marker, c.ID, date, c.Title, len(c.Messages))
	}
	return nil
}

// openSessions opens the session store read path shared by the non-TUI
// subcommands. The returned closer releases the database.
func openSessions() (*store.SessionStore, func(), error) {
	dbPath, err := config.DBPath()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	kv, err := store.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session database: %w", err)
	}
	sessions := store.NewSessionStore(kv, stdinConfirm)
	sessions.Load()
	return sessions, func() { _ = kv.Close() }, nil
}
