package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/progdash/progdash/internal/store"
)

func TestSignupAndLogin(t *testing.T) {
	svc := NewService(store.NewMemory(), time.Hour)
	ctx := context.Background()

	user, sid, err := svc.Signup(ctx, "admin@example.com", "s3cret", "admin")
	require.NoError(t, err)
	require.NotEmpty(t, sid)
	assert.Equal(t, "admin", user.Username)

	// session resolves back to the same user
	resolved, err := svc.SessionUser(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	// fresh login opens a second independent session
	_, sid2, err := svc.Login(ctx, "admin@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, sid, sid2)
}

func TestSignupValidation(t *testing.T) {
	svc := NewService(store.NewMemory(), time.Hour)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "", "pw", "user")
	assert.ErrorIs(t, err, ErrMissingFields)

	_, _, err = svc.Signup(ctx, "a@example.com", "pw", "a")
	require.NoError(t, err)

	_, _, err = svc.Signup(ctx, "a@example.com", "other", "b")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := NewService(store.NewMemory(), time.Hour)
	ctx := context.Background()

	_, _, err := svc.Signup(ctx, "admin@example.com", "s3cret", "admin")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "admin@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSessionExpiry(t *testing.T) {
	svc := NewService(store.NewMemory(), time.Hour)
	ctx := context.Background()

	_, sid, err := svc.Signup(ctx, "admin@example.com", "s3cret", "admin")
	require.NoError(t, err)

	// move the clock past the ttl
	svc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = svc.SessionUser(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)

	// expired session was removed on sight, even with the clock restored
	svc.now = time.Now
	_, err = svc.SessionUser(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestLogout(t *testing.T) {
	svc := NewService(store.NewMemory(), time.Hour)
	ctx := context.Background()

	_, sid, err := svc.Signup(ctx, "admin@example.com", "s3cret", "admin")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, sid))
	_, err = svc.SessionUser(ctx, sid)
	assert.ErrorIs(t, err, ErrNoSession)

	// logging out without a session is a no-op
	assert.NoError(t, svc.Logout(ctx, ""))
}

func TestAdminExists(t *testing.T) {
	svc := NewService(store.NewMemory(), time.Hour)
	ctx := context.Background()

	exists, err := svc.AdminExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	_, _, err = svc.Signup(ctx, "admin@example.com", "s3cret", "admin")
	require.NoError(t, err)

	exists, err = svc.AdminExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)
}
