// Package chat provides the interactive TUI chat interface for claudechat.
// This file contains view rendering functions.
package chat

import (
	"fmt"
	"strings"
	"time"

	"claudechat/internal/store"

	"github.com/charmbracelet/lipgloss"
)

func (m *Model) renderHistory() string {
	chat, ok := m.store.ActiveChat()
	if !ok {
		return ""
	}

	if len(chat.Messages) == 0 {
		return m.styles.Muted.Render("\n  Start a conversation with Claude.\n")
	}

	var sb strings.Builder
	for _, msg := range chat.Messages {
		switch msg.Role {
		case store.RoleUser:
			tag := m.styles.UserTag.MarginTop(1)
			sb.WriteString(tag.Render("You") + "\n")
			sb.WriteString(m.styles.UserMessage.Render(msg.Content))
			sb.WriteString("\n\n")

		default:
			tag := m.styles.ClaudeTag.MarginTop(1)
			sb.WriteString(tag.Render("Claude") + "\n")
			sb.WriteString(m.safeRenderMarkdown(msg.Content))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// safeRenderMarkdown renders markdown with panic recovery. If glamour fails
// or panics the raw text is shown instead.
func (m *Model) safeRenderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return rendered
		}
	}
	return content
}

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.viewMode == ListView {
		return m.list.View()
	}

	header := m.renderHeader()
	chatView := lipgloss.NewStyle().Padding(0, 1).Render(m.viewport.View())

	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.styles.Theme.Border).
		Padding(0, 1)
	inputArea := inputStyle.Render(m.textinput.View())

	footer := m.renderFooter()

	return lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		chatView,
		inputArea,
		footer,
	)
}

func (m *Model) renderHeader() string {
	title := m.styles.Header.Render("Claude Chat")

	chatTitle := ""
	if chat, ok := m.store.ActiveChat(); ok {
		chatTitle = m.styles.Title.Render(chat.Title)
	}

	var status string
	if m.isSending {
		status = lipgloss.JoinHorizontal(lipgloss.Center, m.spinner.View(), " ", m.styles.Muted.Render("Thinking..."))
	} else if !m.store.HasCredential() {
		status = m.styles.Warning.Render("No API key")
	} else {
		status = m.styles.Success.Render("Ready")
	}

	headerLine := lipgloss.JoinHorizontal(lipgloss.Center, title, " ", chatTitle, "  ", status)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		headerLine,
		m.styles.RenderDivider(m.width),
	)
}

func (m *Model) renderFooter() string {
	if m.warning != "" {
		return m.styles.Warning.Render(" " + m.warning)
	}
	if m.err != nil {
		return m.styles.Error.Render(" " + m.err.Error())
	}

	count := m.store.ChatCount()
	hints := fmt.Sprintf("%d chat", count)
	if count != 1 {
		hints += "s"
	}
	hints += " | Ctrl+L: chats | /help"

	timestamp := time.Now().Format("15:04")
	return m.styles.Footer.Render(fmt.Sprintf("%s | %s | %s", m.modelName, hints, timestamp))
}
