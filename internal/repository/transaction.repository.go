package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LekaAli/fes/internal/model"
	"github.com/LekaAli/fes/pkg/pg"
)

var (
	// ErrTransactionNotFound is returned when an id resolves to no row.
	ErrTransactionNotFound = errors.New("transaction not found")
)

type TransactionRepository struct {
	*pg.DB
	gateway *Gateway
}

func NewTransactionRepository(db *pg.DB, gateway *Gateway) *TransactionRepository {
	return &TransactionRepository{
		db,
		gateway,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	entity := &TransactionEntity{
		Amount:      p.Amount,
		Date:        p.Date, // zero value filled by autoCreateTime
		Type:        string(p.Type),
		Description: p.Description,
	}

	if err := r.gateway.Apply(ctx, Mutation{Op: OpAdd, Entity: entity}); err != nil {
		return nil, err
	}

	return toTransactionModel(entity), nil
}

func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Read(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	return toTransactionModel(&entity), nil
}

func (r *TransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	var entities []*TransactionEntity

	if err := r.Read(ctx).WithContext(ctx).Order("id ASC").Find(&entities).Error; err != nil {
		return nil, err
	}

	return toTransactionModels(entities), nil
}

// SumAmounts is the store-side aggregate behind the dashboard total. Amounts
// are stored as text, so the cast happens in the query; 0 when the table is
// empty.
func (r *TransactionRepository) SumAmounts(ctx context.Context) (float64, error) {
	var total float64

	err := r.Read(ctx).WithContext(ctx).
		Model(&TransactionEntity{}).
		Select("COALESCE(SUM(CAST(amount AS REAL)), 0)").
		Scan(&total).
		Error
	if err != nil {
		return 0, err
	}

	return total, nil
}

func (r *TransactionRepository) Update(ctx context.Context, id int64, fields map[string]any) (*model.Transaction, error) {
	var entity TransactionEntity

	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, err
	}

	if err := r.gateway.Apply(ctx, Mutation{Op: OpUpdate, Entity: &entity, Fields: fields}); err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

func (r *TransactionRepository) Delete(ctx context.Context, id int64) error {
	var entity TransactionEntity

	err := r.Write(ctx).WithContext(ctx).Where("id = ?", id).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		return err
	}

	return r.gateway.Apply(ctx, Mutation{Op: OpDelete, Entity: &entity})
}
