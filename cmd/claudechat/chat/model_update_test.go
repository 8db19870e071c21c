package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claudechat/internal/store"
)

func TestSendAppendsUserMessageAndReply(t *testing.T) {
	client := &stubClient{reply: "Hello! How can I help?"}
	m := newTestModel(client)

	cmd := submit(m, "hi Claude")
	require.NotNil(t, cmd)
	assert.True(t, m.isSending)

	history := m.store.History("")
	require.Len(t, history, 1)
	assert.Equal(t, store.RoleUser, history[0].Role)
	assert.Equal(t, "hi Claude", history[0].Content)

	result, ok := findCompletion(drain(cmd))
	require.True(t, ok)
	m.Update(result)

	assert.False(t, m.isSending)
	history = m.store.History("")
	require.Len(t, history, 2)
	assert.Equal(t, store.RoleAssistant, history[1].Role)
	assert.Equal(t, "Hello! How can I help?", history[1].Content)

	// Backend saw the user message
	require.Len(t, client.gotHistory, 1)
	assert.Equal(t, "hi Claude", client.gotHistory[0].Content)
}

func TestSendFailureAppendsErrorReply(t *testing.T) {
	client := &stubClient{err: errStub}
	m := newTestModel(client)

	cmd := submit(m, "hi")
	result, ok := findCompletion(drain(cmd))
	require.True(t, ok)
	m.Update(result)

	assert.False(t, m.isSending)
	history := m.store.History("")
	require.Len(t, history, 2)
	assert.Equal(t, store.RoleAssistant, history[1].Role)
	assert.Equal(t, errorReply, history[1].Content)
}

func TestSendGuardNoCredential(t *testing.T) {
	client := &stubClient{reply: "never"}
	m := newTestModel(client)
	m.store.DeleteCredential()

	cmd := submit(m, "hello")
	assert.Nil(t, cmd)
	assert.False(t, m.isSending)
	assert.NotEmpty(t, m.warning)
	assert.Empty(t, m.store.History(""))
	assert.Zero(t, client.calls)
}

func TestSendGuardBlankInput(t *testing.T) {
	client := &stubClient{reply: "never"}
	m := newTestModel(client)

	cmd := submit(m, "   ")
	assert.Nil(t, cmd)
	assert.False(t, m.isSending)
	assert.Empty(t, m.store.History(""))
}

func TestSendGuardWhileSending(t *testing.T) {
	client := &stubClient{reply: "slow"}
	m := newTestModel(client)

	submit(m, "first")
	require.True(t, m.isSending)

	cmd := submit(m, "second")
	assert.Nil(t, cmd)
	assert.NotEmpty(t, m.warning)

	// The in-flight user message is the only one recorded
	history := m.store.History("")
	require.Len(t, history, 1)
	assert.Equal(t, "first", history[0].Content)
}

func TestReplyLandsInOriginChatAfterSwitch(t *testing.T) {
	client := &stubClient{reply: "the answer"}
	m := newTestModel(client)
	origin := m.store.ActiveChatID()

	cmd := submit(m, "question")
	result, ok := findCompletion(drain(cmd))
	require.True(t, ok)

	// User switches to a fresh chat before the reply arrives
	other := m.store.NewChat()
	require.Equal(t, other.ID, m.store.ActiveChatID())

	m.Update(result)

	assert.Empty(t, m.store.History(other.ID))
	history := m.store.History(origin)
	require.Len(t, history, 2)
	assert.Equal(t, "the answer", history[1].Content)
}

func TestTitleSetFromFirstMessage(t *testing.T) {
	client := &stubClient{reply: "ok"}
	m := newTestModel(client)

	submit(m, "Tell me about Go interfaces")
	chat, ok := m.store.ActiveChat()
	require.True(t, ok)
	assert.Equal(t, "Tell me about Go interfaces", chat.Title)
}
