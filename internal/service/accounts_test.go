package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/apperr"
	"github.com/iliyamo/movie-catalog/internal/auth"
	"github.com/iliyamo/movie-catalog/internal/validator"
)

const testSecret = "test-secret"

func newAccountFixture() (*AccountService, *memUserStore) {
	store := &memUserStore{}
	// bcrypt cost 4 keeps the suite fast; production uses >= 10
	return NewAccountService(store, testSecret, 24*time.Hour, 4), store
}

func registration() validator.RegisterInput {
	return validator.RegisterInput{
		Username:        "alice",
		Email:           "alice@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
	}
}

func TestRegisterIssuesUsableToken(t *testing.T) {
	svc, _ := newAccountFixture()

	u, token, err := svc.Register(context.Background(), registration())
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)
	require.False(t, u.ID.IsZero())

	id, err := auth.ParseAccessToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, u.ID.Hex(), id.ID)
	require.Equal(t, "alice", id.Username)
	require.Equal(t, "alice@example.com", id.Email)

	// and the identity resolves back to the stored account
	got, err := svc.CurrentUser(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestRegisterReportsAllFieldErrorsAtOnce(t *testing.T) {
	svc, _ := newAccountFixture()

	_, _, err := svc.Register(context.Background(), validator.RegisterInput{
		Username:        "",
		Email:           "not-an-email",
		Password:        "a",
		ConfirmPassword: "b",
	})
	require.True(t, apperr.Is(err, apperr.CodeInvalidInput))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Contains(t, ae.Fields, "username")
	require.Contains(t, ae.Fields, "email")
	require.Contains(t, ae.Fields, "confirmPassword")
}

func TestRegisterDuplicateUsernameOrEmail(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	dupName := registration()
	dupName.Email = "other@example.com"
	_, _, err = svc.Register(ctx, dupName)
	require.True(t, apperr.Is(err, apperr.CodeConflict))

	dupMail := registration()
	dupMail.Username = "bob"
	_, _, err = svc.Register(ctx, dupMail)
	require.True(t, apperr.Is(err, apperr.CodeConflict))
}

func TestLoginDoesNotLeakAccountExistence(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	_, _, unknownErr := svc.Login(ctx, validator.LoginInput{Username: "nobody", Password: "s3cret"})
	_, _, wrongErr := svc.Login(ctx, validator.LoginInput{Username: "alice", Password: "wrong"})

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	require.Equal(t, unknownErr.Error(), wrongErr.Error())
	require.Equal(t, apperr.CodeOf(unknownErr), apperr.CodeOf(wrongErr))
}

func TestLoginSucceeds(t *testing.T) {
	svc, _ := newAccountFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, registration())
	require.NoError(t, err)

	u, token, err := svc.Login(ctx, validator.LoginInput{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	require.Equal(t, "alice", u.Username)

	id, err := auth.ParseAccessToken(testSecret, token)
	require.NoError(t, err)
	require.Equal(t, "alice", id.Username)
}

func TestCurrentUserWithDeletedAccount(t *testing.T) {
	svc, _ := newAccountFixture()
	_, err := svc.CurrentUser(context.Background(), auth.Identity{ID: "64f000000000000000000009"})
	require.True(t, apperr.Is(err, apperr.CodeUnauthenticated))
}
