// Package chat provides the interactive TUI chat interface for claudechat.
// The functionality is split across multiple files:
//   - model.go: Types and the Init/run entry points (this file)
//   - session.go: Startup wiring for config, storage, and the API client
//   - model_update.go: The Update loop
//   - commands.go: /command handling
//   - view.go: Rendering functions
package chat

import (
	"fmt"

	"claudechat/cmd/claudechat/ui"
	"claudechat/internal/llm"
	"claudechat/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// ViewMode determines which component is focused/active.
type ViewMode int

const (
	ChatView ViewMode = iota
	ListView
)

// InputMode represents the current input handling state. Confirmation flows
// reroute the next submitted line instead of treating it as chat input.
type InputMode int

const (
	InputModeNormal InputMode = iota
	InputModeConfirmClear
	InputModeConfirmDeleteKey
)

// chatItem is a list item for the chat picker.
type chatItem struct {
	id, title, date string
	messages        int
}

func (i chatItem) Title() string       { return i.title }
func (i chatItem) Description() string { return fmt.Sprintf("%s · %d messages", i.date, i.messages) }
func (i chatItem) FilterValue() string { return i.title }

// responseMsg carries a completed assistant reply back into the Update loop.
// The chat ID pins the reply to the conversation it was requested from, so
// switching chats mid-flight cannot misfile it.
type responseMsg struct {
	chatID  string
	content string
}

// completionErrMsg signals a failed completion request.
type completionErrMsg struct {
	chatID string
	err    error
}

// Model is the main model for the interactive chat interface.
type Model struct {
	// UI components
	textinput textinput.Model
	viewport  viewport.Model
	spinner   spinner.Model
	list      list.Model
	styles    ui.Styles
	renderer  *glamour.TermRenderer

	viewMode  ViewMode
	inputMode InputMode

	// Backend
	store      *store.SessionStore
	client     llm.Client
	makeClient func(apiKey string) llm.Client
	kv         store.KV

	modelName string

	// State
	isSending bool
	warning   string
	err       error
	width     int
	height    int
	ready     bool
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
	)
}

// RunInteractiveChat starts the TUI and blocks until the user quits.
func RunInteractiveChat() error {
	model, err := InitChat()
	if err != nil {
		return err
	}
	defer model.Shutdown()

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
