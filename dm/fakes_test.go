package dm_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/bluesky-social/indigo/xrpc"
	"github.com/jrsteele09/go-bsky-dm/bsky"
	"github.com/jrsteele09/go-bsky-dm/sessions"
)

// fakeNetwork stands in for the social network: it implements both
// auth.Client and dm.ChatClient and records what was asked of it.
type fakeNetwork struct {
	mu sync.Mutex

	loginSession *sessions.SessionData
	loginErr     error
	verifyErr    error

	convos   []bsky.ConvoView
	messages map[string][]bsky.MessageView

	convoErr    error
	sendErr     error
	listErr     error
	messagesErr error

	logins        int
	verifications int
	sent          []sentMessage
	nextID        int
}

type sentMessage struct {
	convoID string
	text    string
	access  string
}

func newFakeNetwork() *fakeNetwork {
	return &fakeNetwork{messages: make(map[string][]bsky.MessageView)}
}

func (n *fakeNetwork) Login(_ context.Context, _, _ string) (*sessions.SessionData, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.logins++
	if n.loginErr != nil {
		return nil, n.loginErr
	}
	session := *n.loginSession
	return &session, nil
}

func (n *fakeNetwork) VerifySession(_ context.Context, _ *sessions.SessionData, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.verifications++
	return n.verifyErr
}

func (n *fakeNetwork) GetConvoForMembers(_ context.Context, _ *sessions.SessionData, members []string) (*bsky.ConvoView, error) {
	if n.convoErr != nil {
		return nil, n.convoErr
	}
	view := &bsky.ConvoView{ID: "convo-" + members[0]}
	for _, did := range members {
		view.Members = append(view.Members, bsky.ProfileView{DID: did})
	}
	return view, nil
}

func (n *fakeNetwork) SendMessage(_ context.Context, session *sessions.SessionData, convoID, text string) (*bsky.MessageView, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.sendErr != nil {
		return nil, n.sendErr
	}
	n.nextID++
	n.sent = append(n.sent, sentMessage{convoID: convoID, text: text, access: session.AccessJwt})
	return &bsky.MessageView{
		ID:     fmt.Sprintf("msg-%d", n.nextID),
		Text:   text,
		Sender: bsky.MessageSender{DID: session.DID},
		SentAt: "2024-01-01T12:00:00.000Z",
	}, nil
}

func (n *fakeNetwork) ListConvos(_ context.Context, _ *sessions.SessionData) ([]bsky.ConvoView, error) {
	if n.listErr != nil {
		return nil, n.listErr
	}
	return n.convos, nil
}

func (n *fakeNetwork) GetMessages(_ context.Context, _ *sessions.SessionData, convoID string) ([]bsky.MessageView, error) {
	if n.messagesErr != nil {
		return nil, n.messagesErr
	}
	return n.messages[convoID], nil
}

// xrpcError is a failure as the server reports it.
func xrpcError(status int, code, message string) error {
	return &xrpc.Error{StatusCode: status, Wrapped: &xrpc.XRPCError{ErrStr: code, Message: message}}
}
