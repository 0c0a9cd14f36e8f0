package services

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/LekaAli/fes/internal/model"
	"github.com/LekaAli/fes/internal/repository"
	"github.com/LekaAli/fes/pkg/prom"
)

var (
	// ErrInvalidCredentials is deliberately opaque: a missing user and a
	// wrong password are indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserExists         = errors.New("username or email already registered")
)

type UserRepository interface {
	Create(ctx context.Context, p model.UserCreateRequest) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

type AuthService struct {
	userRepo UserRepository
}

func NewAuthService(userRepo UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

func (s *AuthService) Register(ctx context.Context, p model.UserCreateRequest) (*model.User, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			prom.IncCounterVec(prom.SystemAuth, prom.MetricLoginAttempts, "failure")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		prom.IncCounterVec(prom.SystemAuth, prom.MetricLoginAttempts, "failure")
		return nil, ErrInvalidCredentials
	}

	prom.IncCounterVec(prom.SystemAuth, prom.MetricLoginAttempts, "success")
	return user, nil
}

func (s *AuthService) GetUser(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
