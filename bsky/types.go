package bsky

// ProfileView is the subset of app.bsky.actor.defs#profileViewDetailed and
// chat.bsky.actor.defs#profileViewBasic this client reads.
type ProfileView struct {
	DID         string `json:"did"`
	Handle      string `json:"handle"`
	DisplayName string `json:"displayName,omitempty"`
}

// ConvoView is chat.bsky.convo.defs#convoView.
type ConvoView struct {
	ID          string        `json:"id"`
	Rev         string        `json:"rev"`
	Members     []ProfileView `json:"members"`
	Muted       bool          `json:"muted"`
	UnreadCount int           `json:"unreadCount"`
}

// Member returns the member with the given DID.
func (c *ConvoView) Member(did string) (ProfileView, bool) {
	for _, member := range c.Members {
		if member.DID == did {
			return member, true
		}
	}
	return ProfileView{}, false
}

// MemberDIDs lists member DIDs in the order the server returned them.
func (c *ConvoView) MemberDIDs() []string {
	dids := make([]string, 0, len(c.Members))
	for _, member := range c.Members {
		dids = append(dids, member.DID)
	}
	return dids
}

// Lexicon type IDs of the message views getMessages returns.
const (
	TypeMessageView        = "chat.bsky.convo.defs#messageView"
	TypeDeletedMessageView = "chat.bsky.convo.defs#deletedMessageView"
)

// MessageSender is chat.bsky.convo.defs#messageViewSender.
type MessageSender struct {
	DID string `json:"did"`
}

// MessageView covers both message views returned by getMessages. Deleted
// messages carry no text.
type MessageView struct {
	Type   string        `json:"$type,omitempty"`
	ID     string        `json:"id"`
	Rev    string        `json:"rev"`
	Text   string        `json:"text"`
	Sender MessageSender `json:"sender"`
	SentAt string        `json:"sentAt"`
}

func (m *MessageView) Deleted() bool {
	return m.Type == TypeDeletedMessageView
}
