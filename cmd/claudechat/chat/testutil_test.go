package chat

import (
	"context"
	"errors"

	"claudechat/internal/llm"
	"claudechat/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// stubClient is a canned completion backend for tests.
type stubClient struct {
	reply      string
	err        error
	gotHistory []store.Message
	calls      int
}

func (c *stubClient) Complete(_ context.Context, history []store.Message) (string, error) {
	c.calls++
	c.gotHistory = history
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

var errStub = errors.New("stub failure")

// newTestModel builds a model over in-memory storage with a stub backend.
// The store starts with a credential so the send guard passes by default.
func newTestModel(client llm.Client) *Model {
	kv := store.NewMemoryKV()
	sessions := store.NewSessionStore(kv, func(string) bool { return true })
	sessions.Load()
	sessions.SaveCredential("sk-test")

	m := newModel(sessions, client, "claude-3-5-sonnet-20241022", "dark")
	m.makeClient = func(string) llm.Client { return client }
	m.ready = true
	m.width = 80
	m.height = 24
	return m
}

// submit types a line and presses Enter, returning the resulting command.
func submit(m *Model, input string) tea.Cmd {
	m.textinput.SetValue(input)
	_, cmd := m.handleSubmit()
	return cmd
}

// drain executes a command tree and returns every message it produces,
// skipping nil leaves. Spinner ticks are returned as-is.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	var msgs []tea.Msg
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, sub := range batch {
			msgs = append(msgs, drain(sub)...)
		}
		return msgs
	}
	if msg != nil {
		msgs = append(msgs, msg)
	}
	return msgs
}

// findCompletion pulls the completion result out of a drained message set.
func findCompletion(msgs []tea.Msg) (tea.Msg, bool) {
	for _, msg := range msgs {
		switch msg.(type) {
		case responseMsg, completionErrMsg:
			return msg, true
		}
	}
	return nil, false
}
