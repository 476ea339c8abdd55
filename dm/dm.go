// Package dm sends and polls direct messages for the bot account.
package dm

import (
	"context"

	"github.com/jrsteele09/go-bsky-dm/auth"
	"github.com/jrsteele09/go-bsky-dm/bsky"
	"github.com/jrsteele09/go-bsky-dm/sessions"
)

// SessionAcquirer yields an authenticated session. *auth.SessionManager
// satisfies it.
type SessionAcquirer interface {
	AcquireSession(ctx context.Context, creds auth.Credentials) (*sessions.SessionData, error)
}

// ChatClient is the chat surface of the social network. *bsky.Client
// satisfies it.
type ChatClient interface {
	GetConvoForMembers(ctx context.Context, session *sessions.SessionData, members []string) (*bsky.ConvoView, error)
	SendMessage(ctx context.Context, session *sessions.SessionData, convoID, text string) (*bsky.MessageView, error)
	ListConvos(ctx context.Context, session *sessions.SessionData) ([]bsky.ConvoView, error)
	GetMessages(ctx context.Context, session *sessions.SessionData, convoID string) ([]bsky.MessageView, error)
}

var (
	_ SessionAcquirer = (*auth.SessionManager)(nil)
	_ ChatClient      = (*bsky.Client)(nil)
)

// SendResult is printed by dm-send on success.
type SendResult struct {
	Success   bool   `json:"success"`
	ConvoID   string `json:"convo_id"`
	MessageID string `json:"message_id"`
	SentAt    string `json:"sent_at"`
}

// Message is one inbound message returned by a poll.
type Message struct {
	ID                  string   `json:"id"`
	ConvoID             string   `json:"convo_id"`
	SenderDID           string   `json:"sender_did"`
	SenderHandle        string   `json:"sender_handle"`
	SenderDisplayName   string   `json:"sender_display_name"`
	Text                string   `json:"text"`
	SentAt              string   `json:"sent_at"`
	ConversationMembers []string `json:"conversation_members"`
}

// PollResult is printed by dm-poll on success.
type PollResult struct {
	Success            bool      `json:"success"`
	Messages           []Message `json:"messages"`
	BotDID             string    `json:"bot_did"`
	TotalConversations int       `json:"total_conversations"`
	NewMessageCount    int       `json:"new_message_count"`
}
