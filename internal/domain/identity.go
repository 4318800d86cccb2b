package domain

// Identity addresses exactly one conversation. It is either an
// AuthenticatedIdentity or an AnonymousIdentity.
type Identity interface {
	// Key is the storage key for the identity. Keys of the two variants never
	// collide.
	Key() string
	isIdentity()
}

// AuthenticatedIdentity is a signed-in user.
type AuthenticatedIdentity struct {
	UserID string
}

func (a AuthenticatedIdentity) Key() string { return "USER#" + a.UserID }
func (AuthenticatedIdentity) isIdentity()   {}

// AnonymousIdentity is a browser session without sign-in.
type AnonymousIdentity struct {
	SessionID string
}

func (a AnonymousIdentity) Key() string { return "ANON#" + a.SessionID }
func (AnonymousIdentity) isIdentity()   {}
