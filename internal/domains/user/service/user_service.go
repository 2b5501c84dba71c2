package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"kiosk-backend/internal/domains/user"
	"kiosk-backend/pkg/jwt"
)

// userService implement user.Service interface
type userService struct {
	repo       user.Repository
	jwtManager *jwt.Manager
	bcryptCost int
}

func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		bcryptCost: 12,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, user.NewInvalidInputError(err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Email:        user.NormalizeEmail(req.Email),
		PasswordHash: string(passwordHash),
		Name:         strings.TrimSpace(req.Name),
		Image:        req.Image,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", u.ID.String()).Msg("user registered")
	return u.ToDTO(), nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, user.NewInvalidInputError(err)
	}

	u, err := s.repo.FindByEmail(ctx, user.NormalizeEmail(req.Email))
	if errors.Is(err, user.ErrUserNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Email)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		User:        u.ToDTO(),
	}, nil
}

// ========================================
// PROFILE & SEARCH
// ========================================

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.ToDTO(), nil
}

// SearchByName matches a case-insensitive name prefix. Blank prefixes
// return nothing rather than the whole table.
func (s *userService) SearchByName(ctx context.Context, prefix string) ([]user.PublicUser, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return []user.PublicUser{}, nil
	}

	users, err := s.repo.SearchByNamePrefix(ctx, prefix, user.MaxSearchResults)
	if err != nil {
		return nil, err
	}

	out := make([]user.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.ToPublic())
	}
	return out, nil
}
