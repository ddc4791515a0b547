package session

import "context"

// View names the shell the user is looking at.
type View string

const (
	ViewAuth      View = "auth"
	ViewDashboard View = "dashboard"
)

// Identity is the minimal user identity kept with the credential.
type Identity struct {
	UserID      string `json:"userId" yaml:"userId"`
	Username    string `json:"username" yaml:"username"`
	DisplayName string `json:"displayName" yaml:"displayName"`
}

// Record is the persisted session. Stores must write and clear it as one unit.
type Record struct {
	Credential string
	Identity   Identity
}

// Empty reports whether no credential is held.
func (r Record) Empty() bool {
	return r.Credential == ""
}

// Store persists the session across process restarts.
type Store interface {
	Load(ctx context.Context) (Record, bool, error)
	Save(ctx context.Context, record Record) error
	Clear(ctx context.Context) error
}

// Listener observes shell transitions.
type Listener func(view View, identity Identity)
