// Package store owns chat session state: the chat map, the active chat id,
// and the API credential, together with their durability to a key-value
// persistence layer. All chat records are owned exclusively by SessionStore;
// accessors hand out copies.
package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"claudechat/internal/logging"

	"github.com/google/uuid"
)

// ConfirmFunc is a blocking yes/no gate invoked before destructive bulk
// deletion. Injected so the store stays testable without a real UI.
type ConfirmFunc func(prompt string) bool

// SessionStore manages chats, the active chat id, and the credential.
// Every mutation is written through to the KV layer; write failures are
// logged and never rolled back in memory.
type SessionStore struct {
	mu      sync.RWMutex
	kv      KV
	confirm ConfirmFunc

	credential string
	chats      map[string]*Chat
	activeID   string
}

// NewSessionStore creates a store over the given persistence layer.
// confirm may be nil, in which case destructive bulk operations are refused.
func NewSessionStore(kv KV, confirm ConfirmFunc) *SessionStore {
	return &SessionStore{
		kv:      kv,
		confirm: confirm,
		chats:   make(map[string]*Chat),
	}
}

// Load hydrates state from the persistence layer. It never fails observably:
// absent or corrupt stored data is treated as "no prior state" and leaves the
// store with exactly one fresh empty chat, set active.
func (s *SessionStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	logging.Session("Hydrating session state")

	if cred, ok, err := s.kv.Get(KeyCredential); err == nil && ok {
		s.credential = cred
	} else if err != nil {
		logging.Get(logging.CategorySession).Warn("Credential read failed: %v", err)
	}

	s.chats = make(map[string]*Chat)
	if raw, ok, err := s.kv.Get(KeyChats); err != nil {
		logging.Get(logging.CategorySession).Warn("Chats read failed, starting empty: %v", err)
	} else if ok {
		var loaded map[string]*Chat
		if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
			logging.Get(logging.CategorySession).Warn("Chats parse failed, starting empty: %v",
				&StorageError{Key: KeyChats, Op: "parse", Err: err})
		} else {
			for id, chat := range loaded {
				if chat == nil {
					continue
				}
				chat.ID = id
				s.chats[id] = chat
			}
		}
	}

	s.activeID = ""
	if id, ok, err := s.kv.Get(KeyActiveChatID); err == nil && ok {
		if _, exists := s.chats[id]; exists {
			s.activeID = id
		}
	}

	if s.activeID == "" && len(s.chats) > 0 {
		// Stored active id missing or stale: fall back to the most
		// recently created chat.
		s.activeID = s.sortedIDs()[0]
	}

	if len(s.chats) == 0 {
		s.newChatLocked()
	}

	logging.Session("Hydrated %d chats, active=%s", len(s.chats), s.activeID)
	s.saveLocked()
}

// Credential returns the stored API credential, or "" if none is set.
func (s *SessionStore) Credential() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential
}

// HasCredential reports whether a credential is set.
func (s *SessionStore) HasCredential() bool {
	return s.Credential() != ""
}

// SaveCredential sets the credential and persists it immediately.
// The key format is not validated.
func (s *SessionStore) SaveCredential(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credential = key
	if err := s.kv.Set(KeyCredential, key); err != nil {
		logging.Get(logging.CategorySession).Error("Credential write failed: %v", err)
	}
	logging.Session("Credential saved")
}

// DeleteCredential clears the credential from memory and storage, then
// cascades into ClearAllChats (which runs through the confirmation gate).
func (s *SessionStore) DeleteCredential() {
	s.mu.Lock()
	s.credential = ""
	if err := s.kv.Delete(KeyCredential); err != nil {
		logging.Get(logging.CategorySession).Error("Credential delete failed: %v", err)
	}
	s.mu.Unlock()

	logging.Session("Credential deleted")
	s.ClearAllChats()
}

// NewChat inserts a fresh empty chat titled "New Chat" and makes it active.
// Always succeeds; returns a copy of the created chat.
func (s *SessionStore) NewChat() Chat {
	s.mu.Lock()
	defer s.mu.Unlock()

	chat := s.newChatLocked()
	s.saveLocked()
	return *chat
}

// newChatLocked creates and activates a new chat. Caller holds the lock.
func (s *SessionStore) newChatLocked() *Chat {
	chat := &Chat{
		ID:        "chat_" + uuid.NewString(),
		Title:     NewChatTitle,
		Messages:  []Message{},
		CreatedAt: time.Now().Format(time.RFC3339Nano),
	}
	s.chats[chat.ID] = chat
	s.activeID = chat.ID

	logging.SessionDebug("Created chat %s", chat.ID)
	return chat
}

// SwitchChat sets the active chat id. Existence is not validated; callers
// are expected to pass a known id.
func (s *SessionStore) SwitchChat(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.activeID = id
	s.saveLocked()
}

// DeleteChat removes the chat with the given id. Deleting the sole remaining
// chat is refused with a ValidationError and no state change. When the
// removed chat was active, the most recently created of the remaining chats
// becomes active.
func (s *SessionStore) DeleteChat(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.chats) <= 1 {
		return &ValidationError{Op: "delete chat", Reason: "cannot delete the last chat"}
	}
	if _, ok := s.chats[id]; !ok {
		return &ValidationError{Op: "delete chat", Reason: fmt.Sprintf("unknown chat %q", id)}
	}

	delete(s.chats, id)
	if s.activeID == id {
		s.activeID = s.sortedIDs()[0]
	}

	logging.SessionDebug("Deleted chat %s, active=%s", id, s.activeID)
	s.saveLocked()
	return nil
}

// ClearAllChats empties the chat map after passing the confirmation gate,
// then immediately creates a fresh chat so the map is never left empty.
// Returns whether the clear actually happened.
func (s *SessionStore) ClearAllChats() bool {
	if s.confirm == nil || !s.confirm("Are you sure you want to delete all chats? This cannot be undone.") {
		return false
	}
	s.ForceClearAllChats()
	return true
}

// ForceClearAllChats is the unconditional variant of ClearAllChats, bypassing
// the confirmation gate.
func (s *SessionStore) ForceClearAllChats() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.chats = make(map[string]*Chat)
	s.activeID = ""
	if err := s.kv.Delete(KeyChats); err != nil {
		logging.Get(logging.CategorySession).Error("Chats purge failed: %v", err)
	}
	if err := s.kv.Delete(KeyActiveChatID); err != nil {
		logging.Get(logging.CategorySession).Error("Active chat purge failed: %v", err)
	}

	s.newChatLocked()
	logging.Session("Cleared all chats")
	s.saveLocked()
}

// AppendMessage appends a message with a generated timestamp to the chat with
// the given id ("" targets the active chat). The first user message of a chat
// also sets its title. Silently a no-op when the id resolves to no chat.
func (s *SessionStore) AppendMessage(chatID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if chatID == "" {
		chatID = s.activeID
	}
	chat, ok := s.chats[chatID]
	if !ok {
		logging.SessionDebug("AppendMessage: unknown chat %q, ignoring", chatID)
		return
	}

	if len(chat.Messages) == 0 && role == RoleUser {
		chat.Title = DeriveTitle(content)
	}
	chat.Messages = append(chat.Messages, Message{
		Role:      role,
		Content:   content,
		Timestamp: time.Now().Format(time.RFC3339Nano),
	})

	logging.SessionDebug("Appended %s message to %s (now %d messages)", role, chatID, len(chat.Messages))
	s.saveLocked()
}

// ActiveChatID returns the id of the active chat, or "" if none.
func (s *SessionStore) ActiveChatID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID
}

// ActiveChat returns a copy of the active chat. The second return is false
// when the active id does not resolve.
func (s *SessionStore) ActiveChat() (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatCopyLocked(s.activeID)
}

// Chat returns a copy of the chat with the given id.
func (s *SessionStore) Chat(id string) (Chat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.chatCopyLocked(id)
}

func (s *SessionStore) chatCopyLocked(id string) (Chat, bool) {
	chat, ok := s.chats[id]
	if !ok {
		return Chat{}, false
	}
	cp := *chat
	cp.Messages = append([]Message(nil), chat.Messages...)
	return cp, true
}

// Chats returns copies of all chats, most recently created first.
func (s *SessionStore) Chats() []Chat {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Chat, 0, len(s.chats))
	for _, id := range s.sortedIDs() {
		cp, _ := s.chatCopyLocked(id)
		out = append(out, cp)
	}
	return out
}

// ChatCount returns the number of chats.
func (s *SessionStore) ChatCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chats)
}

// History returns a copy of the message sequence of the given chat
// ("" targets the active chat).
func (s *SessionStore) History(chatID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if chatID == "" {
		chatID = s.activeID
	}
	chat, ok := s.chats[chatID]
	if !ok {
		return nil
	}
	return append([]Message(nil), chat.Messages...)
}

// sortedIDs returns chat ids ordered most recently created first, id
// descending as tie-break, so listings are deterministic. Caller holds
// the lock.
func (s *SessionStore) sortedIDs() []string {
	ids := make([]string, 0, len(s.chats))
	for id := range s.chats {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, _ := time.Parse(time.RFC3339Nano, s.chats[ids[i]].CreatedAt)
		b, _ := time.Parse(time.RFC3339Nano, s.chats[ids[j]].CreatedAt)
		if !a.Equal(b) {
			return a.After(b)
		}
		return ids[i] > ids[j]
	})
	return ids
}

// saveLocked serializes the chat map and the active chat id to the KV layer.
// Fire-and-forget: failures are logged, in-memory state is not rolled back.
// Caller holds the lock.
func (s *SessionStore) saveLocked() {
	data, err := json.Marshal(s.chats)
	if err != nil {
		logging.Get(logging.CategorySession).Error("Chats marshal failed: %v", err)
		return
	}
	if err := s.kv.Set(KeyChats, string(data)); err != nil {
		logging.Get(logging.CategorySession).Error("Chats write failed: %v", err)
	}

	if s.activeID != "" {
		if err := s.kv.Set(KeyActiveChatID, s.activeID); err != nil {
			logging.Get(logging.CategorySession).Error("Active chat write failed: %v", err)
		}
	} else {
		if err := s.kv.Delete(KeyActiveChatID); err != nil {
			logging.Get(logging.CategorySession).Error("Active chat delete failed: %v", err)
		}
	}
}
