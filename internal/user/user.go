package user

import "errors"

// Roles. Admin satisfies any role requirement; teacher only its own.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
)

// User is a web account. The password never leaves the bcrypt hash.
// CreatedAt is an RFC 3339 string so both database engines round-trip it
// as plain text.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
	CreatedAt    string `json:"created_at"`
}

var (
	// ErrNotFound signals a lookup of an absent user.
	ErrNotFound = errors.New("user not found")
	// ErrUsernameTaken signals a create with a duplicate username.
	ErrUsernameTaken = errors.New("username taken")
)
