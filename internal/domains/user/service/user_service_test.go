package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"kiosk-backend/internal/domains/user"
	"kiosk-backend/internal/mocks"
	"kiosk-backend/internal/shared/apperr"
	"kiosk-backend/pkg/jwt"
)

func newTestService(t *testing.T) (*userService, *mocks.Store, *jwt.Manager) {
	t.Helper()
	store := mocks.NewStore()
	manager := jwt.NewManager("test-secret", time.Hour)

	svc := NewUserService(store.UserRepo(), manager).(*userService)
	svc.bcryptCost = bcrypt.MinCost
	return svc, store, manager
}

func TestRegisterAndLogin(t *testing.T) {
	svc, store, manager := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Register(ctx, user.RegisterRequest{
		Email:    "Ada@Example.com",
		Password: "lovelace1815",
		Name:     " Ada Lovelace ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", dto.Email)
	assert.Equal(t, "Ada Lovelace", dto.Name)
	assert.NotEqual(t, "lovelace1815", store.Users[dto.ID].PasswordHash)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, user.RegisterRequest{
			Email:    "ada@example.com",
			Password: "another123",
			Name:     "Imposter",
		})
		assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	})

	t.Run("login", func(t *testing.T) {
		res, err := svc.Login(ctx, user.LoginRequest{Email: "ADA@example.com", Password: "lovelace1815"})
		require.NoError(t, err)

		claims, err := manager.ValidateAccessToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, dto.ID.String(), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, user.LoginRequest{Email: "ada@example.com", Password: "wrong-pass1"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, user.LoginRequest{Email: "nobody@example.com", Password: "lovelace1815"})
		assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	})
}

func TestRegister_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	cases := []user.RegisterRequest{
		{Email: "not-an-email", Password: "abcdefg1", Name: "X"},
		{Email: "x@example.com", Password: "short1", Name: "X"},
		{Email: "x@example.com", Password: "noNumbersHere", Name: "X"},
		{Email: "x@example.com", Password: "abcdefg1", Name: ""},
	}
	for _, req := range cases {
		_, err := svc.Register(context.Background(), req)
		assert.True(t, apperr.IsKind(err, apperr.KindValidation), "%+v", req)
	}
}

func TestSearchByName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for _, name := range []string{"Ada", "Adam", "Grace", "adele"} {
		_, err := svc.Register(ctx, user.RegisterRequest{
			Email:    name + "@example.com",
			Password: "password123",
			Name:     name,
		})
		require.NoError(t, err)
	}

	found, err := svc.SearchByName(ctx, "ad")
	require.NoError(t, err)
	names := make([]string, 0, len(found))
	for _, u := range found {
		names = append(names, u.Name)
	}
	assert.ElementsMatch(t, []string{"Ada", "Adam", "adele"}, names)

	empty, err := svc.SearchByName(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
