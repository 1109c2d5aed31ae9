package auth

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iamJABASTIN/attendance-tracker/internal/store"
	"github.com/iamJABASTIN/attendance-tracker/internal/user"
)

func newTestAuth(t *testing.T) *Service {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.Migrate())
	return NewService(user.NewRepository(db.Client), NewMemoryStore(), Config{
		SigningKey:             "test-signing-key",
		Issuer:                 "attendance-test",
		SessionTTL:             time.Hour,
		BcryptCost:             bcrypt.MinCost,
		BootstrapAdminPassword: "admin123",
	})
}

func loginAdmin(t *testing.T, svc *Service) Session {
	t.Helper()
	_, _, err := svc.BootstrapAdmin(context.Background())
	require.NoError(t, err)
	sess, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	return sess
}

func TestBootstrapAdminIsIdempotent(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()

	u, created, err := svc.BootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "admin", u.Username)
	assert.Equal(t, user.RoleAdmin, u.Role)

	again, created, err := svc.BootstrapAdmin(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, u.ID, again.ID)
}

func TestLogin(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()
	_, _, err := svc.BootstrapAdmin(ctx)
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", sess.Username)
	assert.Equal(t, user.RoleAdmin, sess.Role)
	assert.NotEmpty(t, sess.Token)
	assert.NotEmpty(t, sess.ID)

	for _, tc := range []struct{ username, password string }{
		{"admin", "wrong"},
		{"ghost", "admin123"},
		{"", "admin123"},
		{"admin", ""},
	} {
		_, err := svc.Login(ctx, tc.username, tc.password)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	svc := newTestAuth(t)
	sess := loginAdmin(t, svc)

	got, err := svc.Authenticate(context.Background(), sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.UserID, got.UserID)
	assert.Equal(t, sess.Username, got.Username)
	assert.Equal(t, sess.Role, got.Role)
	assert.Equal(t, sess.ID, got.ID)
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	svc := newTestAuth(t)
	loginAdmin(t, svc)

	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		_, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidSession)
	}
}

func TestLogoutInvalidatesSession(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()
	sess := loginAdmin(t, svc)

	require.NoError(t, svc.Logout(ctx, sess))

	// Token is still well-formed and unexpired, but the session is dead.
	_, err := svc.Authenticate(ctx, sess.Token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestRequireRole(t *testing.T) {
	svc := newTestAuth(t)
	admin := Session{Role: user.RoleAdmin}
	teacher := Session{Role: user.RoleTeacher}

	assert.NoError(t, svc.RequireRole(admin, user.RoleAdmin))
	assert.NoError(t, svc.RequireRole(admin, user.RoleTeacher))
	assert.NoError(t, svc.RequireRole(teacher, user.RoleTeacher))
	assert.ErrorIs(t, svc.RequireRole(teacher, user.RoleAdmin), ErrForbidden)
}

func TestRegister(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()
	admin := loginAdmin(t, svc)

	u, err := svc.Register(ctx, admin, "jones", "secret", "")
	require.NoError(t, err)
	assert.Equal(t, user.RoleTeacher, u.Role, "role defaults to teacher")

	_, err = svc.Register(ctx, admin, "jones", "other", user.RoleTeacher)
	assert.ErrorIs(t, err, user.ErrUsernameTaken)

	_, err = svc.Register(ctx, admin, "", "secret", user.RoleTeacher)
	assert.ErrorIs(t, err, ErrMissingFields)
	_, err = svc.Register(ctx, admin, "smith", "", user.RoleTeacher)
	assert.ErrorIs(t, err, ErrMissingFields)

	// A fresh teacher account may not provision users.
	teacherSess, err := svc.Login(ctx, "jones", "secret")
	require.NoError(t, err)
	_, err = svc.Register(ctx, teacherSess, "smith", "secret", user.RoleTeacher)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestDeleteUser(t *testing.T) {
	svc := newTestAuth(t)
	ctx := context.Background()
	admin := loginAdmin(t, svc)

	u, err := svc.Register(ctx, admin, "jones", "secret", "")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, admin.UserID), ErrSelfDelete)

	teacherSess, err := svc.Login(ctx, "jones", "secret")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeleteUser(ctx, teacherSess, admin.UserID), ErrForbidden)

	require.NoError(t, svc.DeleteUser(ctx, admin, u.ID))
	assert.ErrorIs(t, svc.DeleteUser(ctx, admin, u.ID), user.ErrNotFound)

	users, err := svc.ListUsers(ctx, admin)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "admin", users[0].Username)
}

func TestMemoryStoreExpiry(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, ms.Put(ctx, "live", time.Hour))
	require.NoError(t, ms.Put(ctx, "stale", -time.Second))

	alive, err := ms.Alive(ctx, "live")
	require.NoError(t, err)
	assert.True(t, alive)

	alive, err = ms.Alive(ctx, "stale")
	require.NoError(t, err)
	assert.False(t, alive)

	alive, err = ms.Alive(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, alive)

	require.NoError(t, ms.Delete(ctx, "live"))
	alive, err = ms.Alive(ctx, "live")
	require.NoError(t, err)
	assert.False(t, alive)
}
