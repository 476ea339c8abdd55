package bsky

import (
	"context"
	"fmt"

	"github.com/bluesky-social/indigo/api/chat"
	"github.com/jrsteele09/go-bsky-dm/internal/utils"
	"github.com/jrsteele09/go-bsky-dm/sessions"
)

const listConvosPageSize = 100

// GetConvoForMembers returns the conversation between the session's account
// and members, creating it if it does not exist yet.
func (c *Client) GetConvoForMembers(ctx context.Context, session *sessions.SessionData, members []string) (*ConvoView, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("bsky: at least one member is required")
	}

	out, err := chat.ConvoGetConvoForMembers(ctx, c.xrpcClient(session, true), members)
	if err != nil {
		return nil, fmt.Errorf("bsky: get convo for members: %w", err)
	}
	if out.Convo == nil {
		return nil, fmt.Errorf("bsky: get convo for members: response carried no convo")
	}
	convo := convoFromView(out.Convo)
	return &convo, nil
}

// SendMessage posts a text message into convoID.
func (c *Client) SendMessage(ctx context.Context, session *sessions.SessionData, convoID, text string) (*MessageView, error) {
	out, err := chat.ConvoSendMessage(ctx, c.xrpcClient(session, true), &chat.ConvoSendMessage_Input{
		ConvoId: convoID,
		Message: &chat.ConvoDefs_MessageInput{Text: text},
	})
	if err != nil {
		return nil, fmt.Errorf("bsky: send message to %s: %w", convoID, err)
	}
	message := messageFromView(out)
	return &message, nil
}

// ListConvos returns every conversation of the session's account, following
// the cursor until the server stops returning one.
func (c *Client) ListConvos(ctx context.Context, session *sessions.SessionData) ([]ConvoView, error) {
	client := c.xrpcClient(session, true)

	var (
		convos []ConvoView
		cursor string
	)
	for {
		page, err := chat.ConvoListConvos(ctx, client, cursor, "", listConvosPageSize, "", "", "")
		if err != nil {
			return nil, fmt.Errorf("bsky: list convos: %w", err)
		}
		for _, view := range page.Convos {
			if view != nil {
				convos = append(convos, convoFromView(view))
			}
		}

		next := utils.Value(page.Cursor)
		if next == "" || next == cursor || len(page.Convos) == 0 {
			return convos, nil
		}
		cursor = next
	}
}

// GetMessages returns the first page of messages in convoID, newest first as
// the server orders them. No cursor is followed; long histories are
// truncated at the server's default page size. System messages (membership
// events) are left out.
func (c *Client) GetMessages(ctx context.Context, session *sessions.SessionData, convoID string) ([]MessageView, error) {
	out, err := chat.ConvoGetMessages(ctx, c.xrpcClient(session, true), convoID, "", 0)
	if err != nil {
		return nil, fmt.Errorf("bsky: get messages for %s: %w", convoID, err)
	}

	messages := make([]MessageView, 0, len(out.Messages))
	for _, elem := range out.Messages {
		switch {
		case elem == nil:
		case elem.ConvoDefs_MessageView != nil:
			messages = append(messages, messageFromView(elem.ConvoDefs_MessageView))
		case elem.ConvoDefs_DeletedMessageView != nil:
			deleted := elem.ConvoDefs_DeletedMessageView
			messages = append(messages, MessageView{
				Type:   TypeDeletedMessageView,
				ID:     deleted.Id,
				Rev:    deleted.Rev,
				Sender: senderFromView(deleted.Sender),
				SentAt: deleted.SentAt,
			})
		}
	}
	return messages, nil
}

func convoFromView(view *chat.ConvoDefs_ConvoView) ConvoView {
	convo := ConvoView{
		ID:          view.Id,
		Rev:         view.Rev,
		Muted:       view.Muted,
		UnreadCount: int(view.UnreadCount),
		Members:     make([]ProfileView, 0, len(view.Members)),
	}
	for _, member := range view.Members {
		if member == nil {
			continue
		}
		convo.Members = append(convo.Members, ProfileView{
			DID:         member.Did,
			Handle:      member.Handle,
			DisplayName: utils.Value(member.DisplayName),
		})
	}
	return convo
}

func messageFromView(view *chat.ConvoDefs_MessageView) MessageView {
	return MessageView{
		Type:   TypeMessageView,
		ID:     view.Id,
		Rev:    view.Rev,
		Text:   view.Text,
		Sender: senderFromView(view.Sender),
		SentAt: view.SentAt,
	}
}

func senderFromView(sender *chat.ConvoDefs_MessageViewSender) MessageSender {
	if sender == nil {
		return MessageSender{}
	}
	return MessageSender{DID: sender.Did}
}
