package config

import "time"

type SessionConfig interface {
	GetSessionKey() string
	GetSessionTTL() time.Duration
}

// SessionKey names the cached login shared by dm-send and dm-poll. Either
// command may reuse a session the other created. There is no locking; two
// processes racing to log in each write their own record and the later
// write wins, which costs at most one extra login.
const SessionKey = "bluesky:session:dm_poll"

// SessionTTL bounds how long a cached login is offered for reuse. Expiry is
// the only eviction there is.
const SessionTTL = 24 * time.Hour

type Session struct{}

var _ SessionConfig = Session{}

func (Session) GetSessionKey() string {
	return SessionKey
}

func (Session) GetSessionTTL() time.Duration {
	return SessionTTL
}
