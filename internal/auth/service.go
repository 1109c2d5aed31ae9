package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/iamJABASTIN/attendance-tracker/internal/user"
)

const bootstrapUsername = "admin"

// Config carries the session and credential settings the service needs.
type Config struct {
	SigningKey string
	Issuer     string
	SessionTTL time.Duration
	BcryptCost int

	// BootstrapAdminPassword is the one-time default for the bootstrap
	// admin account. It is a convenience for first login, not a security
	// boundary; rotate it immediately.
	BootstrapAdminPassword string
}

// Service wraps the user store with login, session and provisioning logic.
type Service struct {
	users    *user.Repository
	sessions SessionStore
	cfg      Config
}

// NewService creates the auth service.
func NewService(users *user.Repository, sessions SessionStore, cfg Config) *Service {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	if cfg.BcryptCost <= 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	return &Service{users: users, sessions: sessions, cfg: cfg}
}

// Login verifies the credentials and issues a session bound to the account.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return Session{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return Session{}, ErrInvalidCredentials
	}

	jti := uuid.NewString()
	token, err := issueToken(u.ID, u.Username, u.Role, jti, s.cfg.Issuer, s.cfg.SigningKey, s.cfg.SessionTTL)
	if err != nil {
		return Session{}, err
	}
	if err := s.sessions.Put(ctx, jti, s.cfg.SessionTTL); err != nil {
		return Session{}, err
	}
	return Session{UserID: u.ID, Username: u.Username, Role: u.Role, Token: token, ID: jti}, nil
}

// Logout invalidates the session.
func (s *Service) Logout(ctx context.Context, sess Session) error {
	if sess.ID == "" {
		return nil
	}
	return s.sessions.Delete(ctx, sess.ID)
}

// Authenticate resolves a session token back to a Session. The token must
// parse, be unexpired and still be live in the session store.
func (s *Service) Authenticate(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}
	claims, err := parseToken(token, s.cfg.SigningKey, s.cfg.Issuer)
	if err != nil {
		return Session{}, ErrInvalidSession
	}
	alive, err := s.sessions.Alive(ctx, claims.ID)
	if err != nil {
		return Session{}, err
	}
	if !alive {
		return Session{}, ErrInvalidSession
	}
	return Session{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Role:     claims.Role,
		Token:    token,
		ID:       claims.ID,
	}, nil
}

// RequireRole checks the session's role. Admin satisfies any requirement;
// teacher only satisfies teacher.
func (s *Service) RequireRole(sess Session, role string) error {
	if sess.Role == user.RoleAdmin || sess.Role == role {
		return nil
	}
	return ErrForbidden
}

// Register provisions a new account. Only admins may register users; the
// role defaults to teacher.
func (s *Service) Register(ctx context.Context, requester Session, username, password, role string) (user.User, error) {
	if err := s.RequireRole(requester, user.RoleAdmin); err != nil {
		return user.User{}, err
	}
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return user.User{}, ErrMissingFields
	}
	if role != user.RoleAdmin {
		role = user.RoleTeacher
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cfg.BcryptCost)
	if err != nil {
		return user.User{}, err
	}
	return s.users.Create(ctx, username, string(hash), role)
}

// BootstrapAdmin creates the default admin account if no user named "admin"
// exists. The second return reports whether anything was created; calling it
// repeatedly is a no-op.
func (s *Service) BootstrapAdmin(ctx context.Context) (user.User, bool, error) {
	if existing, err := s.users.GetByUsername(ctx, bootstrapUsername); err == nil {
		return existing, false, nil
	} else if !errors.Is(err, user.ErrNotFound) {
		return user.User{}, false, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.BootstrapAdminPassword), s.cfg.BcryptCost)
	if err != nil {
		return user.User{}, false, err
	}
	u, err := s.users.Create(ctx, bootstrapUsername, string(hash), user.RoleAdmin)
	if errors.Is(err, user.ErrUsernameTaken) {
		// Raced with another bootstrap; treat as already done.
		existing, gerr := s.users.GetByUsername(ctx, bootstrapUsername)
		return existing, false, gerr
	}
	if err != nil {
		return user.User{}, false, err
	}
	return u, true, nil
}

// ListUsers returns all accounts. Admin only.
func (s *Service) ListUsers(ctx context.Context, requester Session) ([]user.User, error) {
	if err := s.RequireRole(requester, user.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// DeleteUser removes an account. Admin only, and never the account behind
// the requesting session.
func (s *Service) DeleteUser(ctx context.Context, requester Session, targetID int64) error {
	if err := s.RequireRole(requester, user.RoleAdmin); err != nil {
		return err
	}
	if targetID == requester.UserID {
		return ErrSelfDelete
	}
	return s.users.Delete(ctx, targetID)
}
