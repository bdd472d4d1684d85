package service

import (
	"context"
	"testing"

	dmn "github.com/beka-birhanu/backtrack-maze/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuth(t *testing.T) {
	ctx := context.Background()
	tokenizer := &fakeTokenizer{}
	auth, err := NewAuthService(newMemUserRepo(), tokenizer, testLogger(t))
	require.NoError(t, err)

	const password = "Tq9!vR2#mZ7@pL4x"
	require.NoError(t, auth.Register(ctx, "builder", password))

	t.Run("duplicate username", func(t *testing.T) {
		assert.ErrorIs(t, auth.Register(ctx, "builder", password), dmn.ErrUsernameConflict)
	})

	t.Run("weak password", func(t *testing.T) {
		assert.ErrorIs(t, auth.Register(ctx, "other", "1234"), dmn.ErrWeakPassword)
	})

	t.Run("sign in", func(t *testing.T) {
		user, token, err := auth.SignIn(ctx, "builder", password)
		require.NoError(t, err)
		assert.Equal(t, "builder", user.Username)
		assert.Equal(t, "token-"+user.ID.String(), token)
		assert.Equal(t, user.ID.String(), tokenizer.claims["userID"])
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "builder", "nope")
		assert.ErrorIs(t, err, dmn.ErrInvalidCredential)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, _, err := auth.SignIn(ctx, "ghost", password)
		assert.ErrorIs(t, err, dmn.ErrInvalidCredential)
	})

	t.Run("missing dependency", func(t *testing.T) {
		_, err := NewAuthService(nil, tokenizer, testLogger(t))
		assert.ErrorIs(t, err, ErrNilDependency)
	})
}
