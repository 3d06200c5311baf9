package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plantdefender/internal/apperr"
	"plantdefender/internal/models"
	"plantdefender/internal/repository"
	"plantdefender/internal/security"
)

func newAuthService(t *testing.T) (*AuthService, *repository.MemoryUserRepository) {
	t.Helper()
	users := repository.NewMemoryUserRepository(false)
	return NewAuthService(users, security.NewTokenIssuer("test-secret", time.Hour), discardLogs), users
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	res, err := svc.Register(ctx, RegisterInput{Email: " Alice@Example.com ", Password: "pw1", Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", res.User.Email)
	assert.Equal(t, "Alice", res.User.Name)
	assert.NotEmpty(t, res.User.ID)
	assert.NotEqual(t, "pw1", res.User.PasswordHash)

	userID, err := svc.Authenticate(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, userID)

	me, err := svc.Me(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, me.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{Email: "bob@example.com", Password: "pw", Name: "Bob"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "BOB@example.com", Password: "other", Name: "Bob 2"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

// racingUsers hides existing accounts from the pre-check, as a concurrent
// registration would.
type racingUsers struct {
	*repository.MemoryUserRepository
}

func (racingUsers) FindByEmail(context.Context, string) (models.User, error) {
	return models.User{}, repository.ErrUserNotFound
}

func TestRegisterUniqueIndexConflict(t *testing.T) {
	ctx := context.Background()
	users := racingUsers{repository.NewMemoryUserRepository(true)}
	svc := NewAuthService(users, security.NewTokenIssuer("s", time.Hour), discardLogs)

	_, err := svc.Register(ctx, RegisterInput{Email: "carol@example.com", Password: "pw", Name: "Carol"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Email: "carol@example.com", Password: "pw", Name: "Carol"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "x@example.com", Password: "", Name: "X"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService(t)
	reg, err := svc.Register(ctx, RegisterInput{Email: "dave@example.com", Password: "secret", Name: "Dave"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, LoginInput{Email: "Dave@example.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, res.User.ID)
	assert.NotEmpty(t, res.Token)

	res, err = svc.Login(ctx, LoginInput{Email: "dave@example.com", Password: "wrong"})
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))
	assert.Empty(t, res.Token)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret"})
	assert.Equal(t, apperr.KindInvalidCredentials, apperr.KindOf(err))
}

func TestMeMissingUser(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.Me(context.Background(), "ghost")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAuthenticateErrors(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := security.NewTokenIssuer("s", time.Hour).WithClock(func() time.Time { return now })
	svc := NewAuthService(repository.NewMemoryUserRepository(false), issuer, discardLogs)

	_, err := svc.Authenticate("")
	assert.Equal(t, apperr.KindAuthMissing, apperr.KindOf(err))

	_, err = svc.Authenticate("not-a-token")
	assert.Equal(t, apperr.KindAuthMalformed, apperr.KindOf(err))

	token, err := issuer.Issue("u1")
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	_, err = svc.Authenticate(token)
	assert.Equal(t, apperr.KindAuthExpired, apperr.KindOf(err))
}
