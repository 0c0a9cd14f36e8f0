package repository

import (
	"github.com/LekaAli/fes/internal/model"
)

type UserEntity struct {
	ID           int64  `db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string `db:"username"      gorm:"column:username;uniqueIndex;not null"`
	Email        string `db:"email"         gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string `db:"password_hash" gorm:"column:password_hash;not null"`
}

func (UserEntity) TableName() string {
	return "users"
}

// SetPasswordHash satisfies the gateway's credential hook.
func (e *UserEntity) SetPasswordHash(hash string) {
	e.PasswordHash = hash
}

func toUserModel(e *UserEntity) *model.User {
	if e == nil {
		return nil
	}
	return &model.User{
		ID:           e.ID,
		Username:     e.Username,
		Email:        e.Email,
		PasswordHash: e.PasswordHash,
	}
}
