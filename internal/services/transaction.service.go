package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/LekaAli/fes/internal/model"
	"github.com/LekaAli/fes/internal/repository"
	"github.com/LekaAli/fes/pkg/prom"
)

var (
	ErrNotFound = errors.New("transaction not found")
)

type TransactionRepository interface {
	Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error)
	GetByID(ctx context.Context, id int64) (*model.Transaction, error)
	List(ctx context.Context) ([]*model.Transaction, error)
	SumAmounts(ctx context.Context) (float64, error)
	Update(ctx context.Context, id int64, fields map[string]any) (*model.Transaction, error)
	Delete(ctx context.Context, id int64) error
}

type TransactionService struct {
	repo TransactionRepository
}

func NewTransactionService(repo TransactionRepository) *TransactionService {
	return &TransactionService{
		repo: repo,
	}
}

func (s *TransactionService) Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsCreated)
	return created, nil
}

func (s *TransactionService) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	txn, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return txn, nil
}

func (s *TransactionService) List(ctx context.Context) ([]*model.Transaction, error) {
	return s.repo.List(ctx)
}

func (s *TransactionService) Update(ctx context.Context, id int64, p model.TransactionUpdateRequest) (*model.Transaction, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, id, p.Fields())
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return ErrNotFound
		}
		return err
	}

	prom.IncCounter(prom.SystemLedger, prom.MetricTransactionsDeleted)
	return nil
}

// DashboardAction is the explicit form of the selector + operation code pair
// the dashboard accepts.
type DashboardAction int

const (
	ActionList DashboardAction = iota
	ActionView
	ActionEditRedirect
	ActionDelete
)

// ResolveDashboardAction maps the raw query pair onto a tagged action. Any
// operation code without a selector, and any unknown code, falls back to the
// full listing.
func ResolveDashboardAction(transactionID int64, operationType int) DashboardAction {
	if transactionID == 0 {
		return ActionList
	}
	switch operationType {
	case 1:
		return ActionView
	case 2:
		return ActionEditRedirect
	case 3:
		return ActionDelete
	default:
		return ActionList
	}
}

// DashboardView is what the dashboard renders: the rows, their total, and an
// optional redirect target that overrides rendering entirely.
type DashboardView struct {
	Transactions []*model.Transaction
	Total        float64
	RedirectTo   string
}

func (s *TransactionService) Dashboard(ctx context.Context, transactionID int64, operationType int) (*DashboardView, error) {
	switch ResolveDashboardAction(transactionID, operationType) {
	case ActionView:
		txn, err := s.repo.GetByID(ctx, transactionID)
		if err != nil {
			if errors.Is(err, repository.ErrTransactionNotFound) {
				return &DashboardView{}, nil
			}
			return nil, err
		}
		return &DashboardView{
			Transactions: []*model.Transaction{txn},
			Total:        parseAmount(txn.Amount),
		}, nil

	case ActionEditRedirect:
		return &DashboardView{RedirectTo: fmt.Sprintf("/transactions/%d", transactionID)}, nil

	case ActionDelete:
		// deleting an id that is already gone is a no-op, not a failure
		if err := s.Delete(ctx, transactionID); err != nil && !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	}

	return s.listView(ctx)
}

func (s *TransactionService) listView(ctx context.Context) (*DashboardView, error) {
	transactions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.SumAmounts(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardView{
		Transactions: transactions,
		Total:        total,
	}, nil
}

// amounts are free text; anything unparsable counts as zero
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
