package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/apperr"
	"github.com/d60-Lab/yatube/pkg/auth"
)

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	jwtCfg := config.JWTConfig{Secret: "test-secret", TTL: time.Hour}
	authSvc := NewAuthService(repository.NewUserRepository(f.db), jwtCfg)

	user, err := authSvc.Register(ctx, "alice", "alice@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, "hunter22", user.Password, "password must be stored hashed")

	token, logged, err := authSvc.Login(ctx, "alice", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)

	claims, err := auth.ParseToken(jwtCfg.Secret, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	authSvc := NewAuthService(repository.NewUserRepository(f.db), config.JWTConfig{Secret: "s", TTL: time.Hour})

	_, err := authSvc.Register(ctx, "alice", "", "hunter22")
	require.NoError(t, err)
	_, err = authSvc.Register(ctx, "alice", "", "hunter23")
	ve, ok := apperr.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "username", ve.Field)
}

func TestLoginBadCredentials(t *testing.T) {
	f := newFixture(t)
	authSvc := NewAuthService(repository.NewUserRepository(f.db), config.JWTConfig{Secret: "s", TTL: time.Hour})

	_, err := authSvc.Register(ctx, "alice", "", "hunter22")
	require.NoError(t, err)

	_, _, err = authSvc.Login(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, _, err = authSvc.Login(ctx, "nobody", "hunter22")
	assert.ErrorIs(t, err, ErrBadCredentials)
}
