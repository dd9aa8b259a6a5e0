package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lawdesk/advocate-diary/internal/database"
	"github.com/lawdesk/advocate-diary/pkg/logger"
)

func newUserRepo(t *testing.T) *UserRepository {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	log, err := logger.NewLogger("error", "json")
	require.NoError(t, err)

	return NewUserRepository(db, log)
}

func TestRegister(t *testing.T) {
	repo := newUserRepo(t)

	require.NoError(t, repo.Register("alice", "alice@example.com", "s3cret"))

	user, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEmpty(t, user.Salt)
	assert.NotEqual(t, "s3cret", user.PasswordHash, "password must never be stored in clear")
	assert.Nil(t, user.LastLogin)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newUserRepo(t)

	require.NoError(t, repo.Register("alice", "alice@example.com", "s3cret"))
	assert.ErrorIs(t, repo.Register("alice", "other@example.com", "different"), ErrDuplicateUser)
}

func TestRegisterValidation(t *testing.T) {
	repo := newUserRepo(t)

	assert.ErrorIs(t, repo.Register("", "a@example.com", "pw"), ErrValidation)
	assert.ErrorIs(t, repo.Register("bob", "b@example.com", ""), ErrValidation)
}

func TestLogin(t *testing.T) {
	repo := newUserRepo(t)
	require.NoError(t, repo.Register("alice", "alice@example.com", "s3cret"))

	before := time.Now()

	_, err := repo.Login("alice", "wrongpassword")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = repo.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown user and wrong password are indistinguishable")

	user, err := repo.Login("alice", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, user.LastLogin)
	assert.False(t, user.LastLogin.Before(before))

	// last_login is persisted, not just set on the returned value.
	stored, err := repo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
}
