// Package chat provides the interactive TUI chat interface for claudechat.
// This file contains /command handling.
package chat

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"claudechat/internal/store"
)

const helpText = `## Commands

| Command | Description |
|---------|-------------|
| /new | Start a new chat |
| /chats | Browse chats (Ctrl+L) |
| /delete | Delete the current chat |
| /clear | Clear all chats |
| /key <key> | Set the API key |
| /delete-key | Delete the API key and clear all chats |
| /model | Show the configured model |
| /help | Show this help |
| /quit | Exit |

Enter sends a message. Esc or Ctrl+C exits.`

// handleCommand processes /command inputs from the user.
func (m *Model) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]
	m.textinput.Reset()
	m.warning = ""

	switch cmd {
	case "/quit", "/exit", "/q":
		return m, tea.Quit

	case "/new":
		chat := m.store.NewChat()
		m.viewport.SetContent(m.renderHistory())
		m.warning = fmt.Sprintf("Started %s.", chat.Title)
		return m, nil

	case "/chats":
		m.refreshChatList()
		m.viewMode = ListView
		return m, nil

	case "/delete":
		if err := m.store.DeleteChat(m.store.ActiveChatID()); err != nil {
			var verr *store.ValidationError
			if errors.As(err, &verr) {
				m.warning = verr.Reason
			} else {
				m.warning = err.Error()
			}
			return m, nil
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		m.warning = "Chat deleted."
		return m, nil

	case "/clear":
		m.inputMode = InputModeConfirmClear
		m.textinput.Placeholder = "Clear ALL chats? This cannot be undone. (y/N)"
		return m, nil

	case "/key":
		if len(parts) < 2 {
			m.warning = "Usage: /key <your-api-key>"
			return m, nil
		}
		m.store.SaveCredential(parts[1])
		m.rebuildClient()
		m.warning = "API key saved."
		return m, nil

	case "/delete-key":
		if !m.store.HasCredential() {
			m.warning = "No API key is set."
			return m, nil
		}
		m.inputMode = InputModeConfirmDeleteKey
		m.textinput.Placeholder = "Delete the API key and clear ALL chats? (y/N)"
		return m, nil

	case "/model":
		m.warning = fmt.Sprintf("Model: %s", m.modelName)
		return m, nil

	case "/help":
		m.store.AppendMessage("", store.RoleAssistant, helpText)
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()
		return m, nil

	default:
		m.warning = fmt.Sprintf("Unknown command %s. Try /help.", cmd)
		return m, nil
	}
}
