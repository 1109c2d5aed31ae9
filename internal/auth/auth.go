package auth

import "errors"

// Session is the authenticated context for one logged-in actor. It is passed
// explicitly into every call that needs authorization; there is no ambient
// login state anywhere.
type Session struct {
	UserID   int64
	Username string
	Role     string

	// Token is the signed session token handed to the client, and ID is
	// its server-side liveness key. Logout deletes ID from the session
	// store, which invalidates the token before its expiry.
	Token string
	ID    string
}

var (
	// ErrInvalidCredentials covers unknown usernames and bad passwords
	// without distinguishing the two.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidSession signals a missing, expired or revoked session token.
	ErrInvalidSession = errors.New("invalid session")
	// ErrForbidden signals an insufficient role.
	ErrForbidden = errors.New("forbidden")
	// ErrSelfDelete signals an admin deleting the account of its own session.
	ErrSelfDelete = errors.New("cannot delete self")
	// ErrMissingFields signals a registration without username or password.
	ErrMissingFields = errors.New("username and password are required")
)
