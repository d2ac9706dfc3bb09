package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/fintrackd/internal/services"
)

type stubTokens struct {
	lastUsername string
}

func (s *stubTokens) Generate(ctx context.Context, username string) (string, error) {
	s.lastUsername = username
	return "token-for-" + username, nil
}

func TestAuthService_Register(t *testing.T) {
	e := newEnv(t)
	svc := services.NewAuthService(e.userRead, e.userWrite, &stubTokens{})
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "Alice ", "pass123", "alice@example.com"))

	// Stored under the normalized username, password hashed.
	user, err := e.userRead.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "pass123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")))
}

func TestAuthService_Register_Validation(t *testing.T) {
	e := newEnv(t)
	svc := services.NewAuthService(e.userRead, e.userWrite, &stubTokens{})
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
		email    string
		wantErr  error
	}{
		{name: "blank username", username: "   ", password: "p", email: "e@x.com", wantErr: services.ErrUsernameRequired},
		{name: "blank email", username: "bob", password: "p", email: " ", wantErr: services.ErrEmailRequired},
		{name: "blank password", username: "bob", password: "", email: "e@x.com", wantErr: services.ErrPasswordRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, svc.Register(ctx, tt.username, tt.password, tt.email), tt.wantErr)
		})
	}
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	e := newEnv(t)
	svc := services.NewAuthService(e.userRead, e.userWrite, &stubTokens{})
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "pass123", "alice@example.com"))

	// Case/whitespace variants address the same account.
	err := svc.Register(ctx, " ALICE", "other", "alice2@example.com")
	assert.ErrorIs(t, err, services.ErrUserAlreadyExists)
}

func TestAuthService_Login(t *testing.T) {
	e := newEnv(t)
	tokens := &stubTokens{}
	svc := services.NewAuthService(e.userRead, e.userWrite, tokens)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice", "pass123", "alice@example.com"))

	token, err := svc.Login(ctx, "Alice", "pass123")
	require.NoError(t, err)
	assert.Equal(t, "token-for-alice", token)
	assert.Equal(t, "alice", tokens.lastUsername)

	_, err = svc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "pass123")
	assert.ErrorIs(t, err, services.ErrUserDoesNotExist)
}
