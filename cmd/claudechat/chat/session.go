package chat

import (
	"fmt"
	"os"
	"time"

	"claudechat/cmd/claudechat/ui"
	"claudechat/internal/config"
	"claudechat/internal/llm"
	"claudechat/internal/logging"
	"claudechat/internal/store"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
)

const inputPlaceholder = "Message Claude... (Enter to send, Ctrl+C to exit, /help for commands)"

// InitChat wires up configuration, persistence, and the API client, then
// builds the initial model. Storage failures are fatal; a missing API key is
// not, the UI surfaces it when the user tries to send.
func InitChat() (*Model, error) {
	cfg, _ := config.Load()

	dir, err := config.Dir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	if err := logging.Initialize(dir); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	logging.Get(logging.CategoryBoot).Info("claudechat starting")

	dbPath, err := config.DBPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}
	kv, err := store.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// Interactive confirmation happens in the Update loop before the store
	// method is ever called, so the store-level gate always passes here.
	sessions := store.NewSessionStore(kv, func(string) bool { return true })
	sessions.Load()

	// Seed the credential from the environment on first run.
	if !sessions.HasCredential() {
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			sessions.SaveCredential(key)
			logging.Session("credential seeded from environment")
		}
	}

	makeClient := func(apiKey string) llm.Client {
		return llm.NewAnthropicClient(llm.Config{
			APIKey:       apiKey,
			BaseURL:      cfg.BaseURL,
			Model:        cfg.Model,
			MaxTokens:    cfg.MaxTokens,
			SystemPrompt: cfg.SystemPrompt,
		})
	}
	client := llm.NewAnthropicClient(llm.Config{
		APIKey:       sessions.Credential(),
		BaseURL:      cfg.BaseURL,
		Model:        cfg.Model,
		MaxTokens:    cfg.MaxTokens,
		SystemPrompt: cfg.SystemPrompt,
	})
	logging.API("client ready: model=%s", client.Model())

	m := newModel(sessions, client, client.Model(), cfg.Theme)
	m.makeClient = makeClient
	m.kv = kv
	return m, nil
}

// rebuildClient swaps in a client bound to the store's current credential.
func (m *Model) rebuildClient() {
	if m.makeClient != nil {
		m.client = m.makeClient(m.store.Credential())
	}
}

// newModel assembles the UI components around an already-loaded store and
// client. Split out from InitChat so tests can inject stubs.
func newModel(sessions *store.SessionStore, client llm.Client, modelName, theme string) *Model {
	styles := ui.NewStyles(ui.ThemeByName(theme))

	ti := textinput.New()
	ti.Placeholder = inputPlaceholder
	ti.Focus()
	ti.Prompt = "> "
	ti.CharLimit = 4096
	ti.Width = 80
	ti.PromptStyle = styles.Prompt

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	vp := viewport.New(80, 20)

	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(76),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(76),
		)
	}

	delegate := list.NewDefaultDelegate()
	chatList := list.New(nil, delegate, 80, 20)
	chatList.Title = "Chats"
	chatList.SetShowStatusBar(false)
	chatList.SetFilteringEnabled(true)

	m := &Model{
		textinput: ti,
		viewport:  vp,
		spinner:   sp,
		list:      chatList,
		styles:    styles,
		renderer:  renderer,
		viewMode:  ChatView,
		inputMode: InputModeNormal,
		store:     sessions,
		client:    client,
		modelName: modelName,
	}
	m.viewport.SetContent(m.renderHistory())
	return m
}

// refreshChatList rebuilds the picker items from the store, most recent first.
func (m *Model) refreshChatList() {
	chats := m.store.Chats()
	items := make([]list.Item, 0, len(chats))
	for _, c := range chats {
		date := c.CreatedAt
		if t, err := time.Parse(time.RFC3339Nano, c.CreatedAt); err == nil {
			date = t.Format("Jan 2 15:04")
		}
		items = append(items, chatItem{
			id:       c.ID,
			title:    c.Title,
			date:     date,
			messages: len(c.Messages),
		})
	}
	m.list.SetItems(items)
}

// Shutdown releases the underlying database. Safe to call once at exit.
func (m *Model) Shutdown() {
	if m.kv != nil {
		_ = m.kv.Close()
	}
	logging.Close()
}
