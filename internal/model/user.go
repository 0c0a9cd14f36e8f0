package model

import "errors"

type User struct {
	ID           int64  `json:"id"       db:"id"            gorm:"primaryKey;autoIncrement;column:id"`
	Username     string `json:"username" db:"username"      gorm:"column:username;uniqueIndex;not null"`
	Email        string `json:"email"    db:"email"         gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string `json:"-"        db:"password_hash" gorm:"column:password_hash;not null"`
}

func (User) TableName() string { return "users" }

// UserCreateRequest is the registration input. Password travels as plaintext
// only up to the persistence gateway, which hashes it before the row is built.
type UserCreateRequest struct {
	Username string
	Email    string
	Password string
}

func (p UserCreateRequest) Validate() error {
	if p.Username == "" {
		return errors.New("username is required")
	}
	if p.Email == "" {
		return errors.New("email is required")
	}
	if p.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
