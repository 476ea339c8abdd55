package dm

import (
	"time"

	"github.com/jrsteele09/go-bsky-dm/bsky"
)

// Watermark marks the last message time a caller has seen. The zero value
// admits every message.
type Watermark struct {
	since time.Time
	set   bool
}

// NewWatermark parses since. An empty string gives the zero Watermark.
func NewWatermark(since string) (Watermark, error) {
	if since == "" {
		return Watermark{}, nil
	}
	t, err := ParseTimestamp(since)
	if err != nil {
		return Watermark{}, err
	}
	return Watermark{since: t, set: true}, nil
}

// IsSet reports whether a since time was supplied.
func (w Watermark) IsSet() bool {
	return w.set
}

// Admits reports whether a message sent at sentAt is strictly newer than the
// watermark.
func (w Watermark) Admits(sentAt time.Time) bool {
	return !w.set || sentAt.After(w.since)
}

// NewMessages returns the messages in convo that were not sent by botDID and
// are newer than watermark, in the order given. Deleted messages are dropped.
// Sender handle and display name come from the conversation's members.
func NewMessages(convo bsky.ConvoView, messages []bsky.MessageView, botDID string, watermark Watermark) ([]Message, error) {
	members := convo.MemberDIDs()
	var fresh []Message

	for _, message := range messages {
		if message.Deleted() || message.Sender.DID == botDID {
			continue
		}
		if watermark.IsSet() {
			sentAt, err := ParseTimestamp(message.SentAt)
			if err != nil {
				return nil, err
			}
			if !watermark.Admits(sentAt) {
				continue
			}
		}

		sender, _ := convo.Member(message.Sender.DID)
		fresh = append(fresh, Message{
			ID:                  message.ID,
			ConvoID:             convo.ID,
			SenderDID:           message.Sender.DID,
			SenderHandle:        sender.Handle,
			SenderDisplayName:   sender.DisplayName,
			Text:                message.Text,
			SentAt:              message.SentAt,
			ConversationMembers: members,
		})
	}
	return fresh, nil
}
