package domain

import (
	"strconv"
	"time"

	channelDomain "github.com/reshetovitsme/offer-listener/internal/modules/channel/domain"
)

// RawMessage is a chat message as delivered by the push stream or a poll fetch.
type RawMessage struct {
	ID              int64     `json:"id"`
	ChatID          string    `json:"chat_id"`
	Text            string    `json:"text"`
	Caption         string    `json:"caption,omitempty"`
	SenderChatTitle string    `json:"sender_chat_title,omitempty"`
	Date            time.Time `json:"date"`
}

// Body returns the text, falling back to the media caption.
func (m *RawMessage) Body() string {
	if m.Text != "" {
		return m.Text
	}
	return m.Caption
}

// Valid reports whether the message carries an identity.
func (m *RawMessage) Valid() bool {
	return m != nil && m.ID != 0 && m.ChatID != ""
}

// Key identifies one logical message regardless of the path it arrived on.
type Key struct {
	ChatID    string
	MessageID int64
}

// KeyOf derives the key from the canonical chat id, so the bare and
// broadcast-prefixed forms of the same channel produce equal keys.
func KeyOf(m *RawMessage) Key {
	return Key{
		ChatID:    channelDomain.CanonicalID(m.ChatID),
		MessageID: m.ID,
	}
}

func (k Key) String() string {
	return k.ChatID + "/" + strconv.FormatInt(k.MessageID, 10)
}
