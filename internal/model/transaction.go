package model

import (
	"errors"
	"time"
)

// TransactionType is the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeCredit TransactionType = "credit"
	TransactionTypeDebit  TransactionType = "debit"
)

func (t TransactionType) Valid() bool {
	return t == TransactionTypeCredit || t == TransactionTypeDebit
}

type Transaction struct {
	ID          int64           `json:"id"          db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Amount      string          `json:"amount"      db:"amount"      gorm:"column:amount;not null"` // free-text monetary value
	Date        time.Time       `json:"date"        db:"date"        gorm:"column:date;autoCreateTime"`
	Type        TransactionType `json:"type"        db:"type"        gorm:"column:type;not null"`
	Description string          `json:"description" db:"description" gorm:"column:description;not null"`
}

func (Transaction) TableName() string { return "transactions" }

// TransactionCreateRequest is the input for recording a new entry.
type TransactionCreateRequest struct {
	Amount      string
	Date        time.Time // zero value means "now"
	Type        TransactionType
	Description string
}

func (p TransactionCreateRequest) Validate() error {
	if p.Amount == "" {
		return errors.New("amount is required")
	}
	if !p.Type.Valid() {
		return errors.New("type must be credit or debit")
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	return nil
}

// TransactionUpdateRequest carries the replacement field values for an edit.
// All fields except the id are overwritten.
type TransactionUpdateRequest struct {
	Amount      string
	Date        time.Time
	Type        TransactionType
	Description string
}

func (p TransactionUpdateRequest) Validate() error {
	if p.Amount == "" {
		return errors.New("amount is required")
	}
	if !p.Type.Valid() {
		return errors.New("type must be credit or debit")
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	return nil
}

// Fields returns the update as a column -> value set for the persistence
// gateway. The id is never part of it.
func (p TransactionUpdateRequest) Fields() map[string]any {
	f := map[string]any{
		"amount":      p.Amount,
		"type":        string(p.Type),
		"description": p.Description,
	}
	if !p.Date.IsZero() {
		f["date"] = p.Date
	}
	return f
}
