package repository

import (
	"time"

	"github.com/LekaAli/fes/internal/model"
)

type TransactionEntity struct {
	ID          int64     `db:"id"          gorm:"primaryKey;autoIncrement;column:id"`
	Amount      string    `db:"amount"      gorm:"column:amount;not null"`
	Date        time.Time `db:"date"        gorm:"column:date;autoCreateTime"`
	Type        string    `db:"type"        gorm:"column:type;not null"`
	Description string    `db:"description" gorm:"column:description;not null"`
}

func (TransactionEntity) TableName() string {
	return "transactions"
}

func toTransactionEntity(m *model.Transaction) *TransactionEntity {
	if m == nil {
		return nil
	}
	return &TransactionEntity{
		ID:          m.ID,
		Amount:      m.Amount,
		Date:        m.Date,
		Type:        string(m.Type),
		Description: m.Description,
	}
}

func toTransactionModel(e *TransactionEntity) *model.Transaction {
	if e == nil {
		return nil
	}
	return &model.Transaction{
		ID:          e.ID,
		Amount:      e.Amount,
		Date:        e.Date,
		Type:        model.TransactionType(e.Type),
		Description: e.Description,
	}
}

func toTransactionModels(entities []*TransactionEntity) []*model.Transaction {
	if entities == nil {
		return nil
	}
	models := make([]*model.Transaction, len(entities))
	for i, e := range entities {
		models[i] = toTransactionModel(e)
	}
	return models
}
