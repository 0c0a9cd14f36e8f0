package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/LekaAli/fes/internal/model"
	"github.com/LekaAli/fes/pkg/pg"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already registered")
)

type UserRepository struct {
	*pg.DB
	gateway *Gateway
}

func NewUserRepository(db *pg.DB, gateway *Gateway) *UserRepository {
	return &UserRepository{
		db,
		gateway,
	}
}

// Create inserts a user through the gateway. The plaintext password rides in
// the mutation fields and is hashed there; this repository never sees a
// digest being built.
func (r *UserRepository) Create(ctx context.Context, p model.UserCreateRequest) (*model.User, error) {
	entity := &UserEntity{
		Username: p.Username,
		Email:    p.Email,
	}

	err := r.gateway.Apply(ctx, Mutation{
		Op:     OpAdd,
		Entity: entity,
		Fields: map[string]any{"password": p.Password},
	})
	if err != nil {
		if isDuplicateErr(err) {
			return nil, ErrDuplicateUser
		}
		return nil, err
	}

	return toUserModel(entity), nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var entity UserEntity

	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toUserModel(&entity), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var entity UserEntity

	err := r.Read(ctx).WithContext(ctx).Where("username = ?", username).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return toUserModel(&entity), nil
}

func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
