package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/d60-Lab/yatube/config"
	"github.com/d60-Lab/yatube/internal/model"
	"github.com/d60-Lab/yatube/internal/repository"
	"github.com/d60-Lab/yatube/pkg/apperr"
	"github.com/d60-Lab/yatube/pkg/auth"
)

var ErrBadCredentials = errors.New("invalid username or password")

// AuthService is the minimal identity adapter. The feed core never calls
// it; it exists so the service runs standalone instead of against an
// external identity provider.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*model.User, error)
	Login(ctx context.Context, username, password string) (string, *model.User, error)
}

type authService struct {
	userRepo repository.UserRepository
	jwt      config.JWTConfig
}

func NewAuthService(userRepo repository.UserRepository, jwt config.JWTConfig) AuthService {
	return &authService{userRepo: userRepo, jwt: jwt}
}

func (s *authService) Register(ctx context.Context, username, email, password string) (*model.User, error) {
	if err := validateText("username", username); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, &apperr.ValidationError{Field: "password", Message: "must be at least 6 characters"}
	}
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, &apperr.ValidationError{Field: "username", Message: "already taken"}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		ID:       uuid.New().String(),
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (string, *model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return "", nil, ErrBadCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return "", nil, ErrBadCredentials
	}
	token, err := auth.GenerateToken(s.jwt.Secret, user.ID, user.Username, s.jwt.TTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
