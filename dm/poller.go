package dm

import (
	"context"
	"errors"
	"fmt"

	"github.com/jrsteele09/go-bsky-dm/auth"
	apperrors "github.com/jrsteele09/go-bsky-dm/internal/errors"
	"github.com/rs/zerolog/log"
)

// Poller collects inbound messages the caller has not seen yet.
type Poller struct {
	sessions SessionAcquirer
	chat     ChatClient
	creds    auth.Credentials
}

func NewPoller(sessions SessionAcquirer, chat ChatClient, creds auth.Credentials) *Poller {
	return &Poller{sessions: sessions, chat: chat, creds: creds}
}

// Poll walks every conversation and returns the messages newer than since
// that the bot did not write. An empty since returns all of them. Results keep
// conversation order, then message order; they are not re-sorted by time.
//
// Each conversation contributes one page of messages.
func (p *Poller) Poll(ctx context.Context, since string) (*PollResult, error) {
	watermark, err := NewWatermark(since)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidWatermark, err)
	}

	session, err := p.sessions.AcquireSession(ctx, p.creds)
	if err != nil {
		return nil, err
	}
	botDID := session.DID
	if botDID == "" {
		return nil, errors.New("session does not identify the bot account (no DID)")
	}

	convos, err := p.chat.ListConvos(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}

	result := &PollResult{
		Success:            true,
		Messages:           []Message{},
		BotDID:             botDID,
		TotalConversations: len(convos),
	}
	for _, convo := range convos {
		messages, err := p.chat.GetMessages(ctx, session, convo.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching messages for conversation %s: %w", convo.ID, err)
		}

		fresh, err := NewMessages(convo, messages, botDID, watermark)
		if err != nil {
			return nil, fmt.Errorf("conversation %s: %w", convo.ID, err)
		}
		result.Messages = append(result.Messages, fresh...)
	}
	result.NewMessageCount = len(result.Messages)

	log.Info().
		Str("since", since).
		Int("conversations", result.TotalConversations).
		Int("new_messages", result.NewMessageCount).
		Msg("poll complete")

	return result, nil
}
