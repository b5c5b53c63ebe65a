package state

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// ChatSessions binds Telegram chats to their running interview
type ChatSessions struct {
	items *cache.Cache
}

func NewChatSessions(ttl, cleanupInterval time.Duration) *ChatSessions {
	return &ChatSessions{items: cache.New(ttl, cleanupInterval)}
}

// Bind makes sessionID the running interview of the chat, replacing any previous one
func (s *ChatSessions) Bind(chatID int64, sessionID string) {
	s.items.SetDefault(key(chatID), sessionID)
}

// Lookup returns the running interview of the chat and refreshes its lifetime
func (s *ChatSessions) Lookup(chatID int64) (string, bool) {
	v, ok := s.items.Get(key(chatID))
	if !ok {
		return "", false
	}

	sessionID := v.(string)
	s.items.SetDefault(key(chatID), sessionID)
	return sessionID, true
}

func (s *ChatSessions) Unbind(chatID int64) {
	s.items.Delete(key(chatID))
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}
