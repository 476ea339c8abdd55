package dm

import (
	"context"
	"fmt"
	"strings"

	"github.com/jrsteele09/go-bsky-dm/auth"
	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/rs/zerolog/log"
)

// Sender delivers one message to one recipient.
type Sender struct {
	sessions SessionAcquirer
	chat     ChatClient
	creds    auth.Credentials
}

func NewSender(sessions SessionAcquirer, chat ChatClient, creds auth.Credentials) *Sender {
	return &Sender{sessions: sessions, chat: chat, creds: creds}
}

// Send resolves (or creates) the conversation with recipientDID and posts
// text to it unchanged; only empty text is refused. Nothing is retried.
func (s *Sender) Send(ctx context.Context, recipientDID, text string) (*SendResult, error) {
	recipientDID = strings.TrimSpace(recipientDID)
	if recipientDID == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "recipient is required")
	}
	if text == "" {
		return nil, apperrors.Wrapf(apperrors.ErrInvalidRequest, "message text is required")
	}

	session, err := s.sessions.AcquireSession(ctx, s.creds)
	if err != nil {
		return nil, err
	}

	convo, err := s.chat.GetConvoForMembers(ctx, session, []string{recipientDID})
	if err != nil {
		return nil, fmt.Errorf("resolving conversation with %s: %w", recipientDID, err)
	}

	message, err := s.chat.SendMessage(ctx, session, convo.ID, text)
	if err != nil {
		return nil, fmt.Errorf("sending message to conversation %s: %w", convo.ID, err)
	}

	log.Info().
		Str("convo_id", convo.ID).
		Str("message_id", message.ID).
		Str("recipient", recipientDID).
		Msg("message sent")

	return &SendResult{
		Success:   true,
		ConvoID:   convo.ID,
		MessageID: message.ID,
		SentAt:    message.SentAt,
	}, nil
}
