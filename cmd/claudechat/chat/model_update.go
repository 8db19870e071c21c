package chat

import (
	"context"
	"strings"

	"claudechat/internal/logging"
	"claudechat/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
)

// errorReply is appended to the transcript when a completion request fails.
// Kept as a chat message so the failure stays visible in the conversation.
const errorReply = "Sorry, I encountered an error. Please try again."

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
		spCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit

		case tea.KeyCtrlL:
			if m.viewMode == ChatView {
				m.refreshChatList()
				m.viewMode = ListView
			} else {
				m.viewMode = ChatView
			}
			return m, nil

		case tea.KeyEsc:
			if m.viewMode == ListView {
				m.viewMode = ChatView
				return m, nil
			}
			if m.inputMode != InputModeNormal {
				m.cancelConfirm()
				return m, nil
			}
			return m, tea.Quit
		}

		// List view: Enter switches to the selected chat, d deletes it
		if m.viewMode == ListView {
			if msg.Type == tea.KeyEnter {
				if selected, ok := m.list.SelectedItem().(chatItem); ok {
					m.store.SwitchChat(selected.id)
					m.viewMode = ChatView
					m.viewport.SetContent(m.renderHistory())
					m.viewport.GotoBottom()
				}
				return m, nil
			}
			if msg.String() == "d" && m.list.FilterState() != list.Filtering {
				if selected, ok := m.list.SelectedItem().(chatItem); ok {
					if err := m.store.DeleteChat(selected.id); err == nil {
						m.refreshChatList()
						m.viewport.SetContent(m.renderHistory())
					}
				}
				return m, nil
			}
			var cmd tea.Cmd
			m.list, cmd = m.list.Update(msg)
			return m, cmd
		}

		if msg.Type == tea.KeyEnter {
			return m.handleSubmit()
		}

		// Typing clears any transient warning
		if m.warning != "" && msg.Type == tea.KeyRunes {
			m.warning = ""
		}

		m.textinput, tiCmd = m.textinput.Update(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		inputHeight := 1

		chatWidth := msg.Width - 4
		if chatWidth < 1 {
			chatWidth = 1
		}
		chatHeight := msg.Height - headerHeight - footerHeight - inputHeight - 2
		if chatHeight < 1 {
			chatHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(chatWidth, chatHeight)
			m.ready = true
		} else {
			m.viewport.Width = chatWidth
			m.viewport.Height = chatHeight
		}
		m.textinput.Width = chatWidth - 4
		m.list.SetSize(msg.Width, msg.Height-2)

		// Rebuild the renderer so word wrap follows the new width.
		if m.styles.Theme.IsDark {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(chatWidth-4),
			)
		} else {
			m.renderer, _ = glamour.NewTermRenderer(
				glamour.WithStylePath("light"),
				glamour.WithWordWrap(chatWidth-4),
			)
		}
		m.viewport.SetContent(m.renderHistory())
		m.viewport.GotoBottom()

	case spinner.TickMsg:
		if m.isSending {
			m.spinner, spCmd = m.spinner.Update(msg)
			return m, spCmd
		}

	case responseMsg:
		m.isSending = false
		m.store.AppendMessage(msg.chatID, store.RoleAssistant, msg.content)
		if msg.chatID == m.store.ActiveChatID() {
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
		}

	case completionErrMsg:
		m.isSending = false
		m.err = msg.err
		logging.API("completion failed: %v", msg.err)
		m.store.AppendMessage(msg.chatID, store.RoleAssistant, errorReply)
		if msg.chatID == m.store.ActiveChatID() {
			m.viewport.SetContent(m.renderHistory())
			m.viewport.GotoBottom()
		}
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd, spCmd)
}

// handleSubmit routes a submitted line: confirmation answers and /commands
// first, otherwise it goes to the completion flow.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())

	switch m.inputMode {
	case InputModeConfirmClear:
		m.textinput.Reset()
		m.resetInputMode()
		if isAffirmative(input) {
			m.store.ForceClearAllChats()
			m.viewport.SetContent(m.renderHistory())
			m.warning = "All chats cleared."
		} else {
			m.warning = "Cancelled."
		}
		return m, nil

	case InputModeConfirmDeleteKey:
		m.textinput.Reset()
		m.resetInputMode()
		if isAffirmative(input) {
			m.store.DeleteCredential()
			m.rebuildClient()
			m.viewport.SetContent(m.renderHistory())
			m.warning = "API key deleted. All chats cleared."
		} else {
			m.warning = "Cancelled."
		}
		return m, nil
	}

	if input == "" {
		return m, nil
	}

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	return m.sendMessage(input)
}

// sendMessage runs the three send guards, records the user message, and kicks
// off the completion request in the background.
func (m *Model) sendMessage(input string) (tea.Model, tea.Cmd) {
	if m.isSending {
		m.warning = "Still waiting for a reply."
		return m, nil
	}
	if !m.store.HasCredential() {
		m.warning = "No API key set. Use /key <your-key> to configure one."
		return m, nil
	}

	chatID := m.store.ActiveChatID()
	m.store.AppendMessage(chatID, store.RoleUser, input)
	m.textinput.Reset()
	m.warning = ""
	m.err = nil
	m.isSending = true

	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()

	history := m.store.History(chatID)
	client := m.client

	return m, tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			reply, err := client.Complete(context.Background(), history)
			if err != nil {
				return completionErrMsg{chatID: chatID, err: err}
			}
			return responseMsg{chatID: chatID, content: reply}
		},
	)
}

func (m *Model) cancelConfirm() {
	m.resetInputMode()
	m.textinput.Reset()
	m.warning = "Cancelled."
}

func (m *Model) resetInputMode() {
	m.inputMode = InputModeNormal
	m.textinput.Placeholder = inputPlaceholder
}

func isAffirmative(input string) bool {
	switch strings.ToLower(input) {
	case "y", "yes":
		return true
	}
	return false
}
