package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/LekaAli/fes/internal/model"
	"github.com/LekaAli/fes/internal/repository"
)

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(ctx context.Context, p model.TransactionCreateRequest) (*model.Transaction, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id int64) (*model.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context) ([]*model.Transaction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumAmounts(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTransactionRepository) Update(ctx context.Context, id int64, fields map[string]any) (*model.Transaction, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestTransactionService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects missing amount", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		_, err := svc.Create(ctx, model.TransactionCreateRequest{
			Type:        model.TransactionTypeCredit,
			Description: "salary",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("rejects unknown type", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		_, err := svc.Create(ctx, model.TransactionCreateRequest{
			Amount:      "10",
			Type:        "transfer",
			Description: "x",
		})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("valid request reaches the repository", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		expected := &model.Transaction{ID: 1, Amount: "10", Type: model.TransactionTypeDebit, Description: "coffee"}
		repo.On("Create", mock.Anything, mock.MatchedBy(func(p model.TransactionCreateRequest) bool {
			return p.Amount == "10" && p.Type == model.TransactionTypeDebit
		})).Return(expected, nil)

		created, err := svc.Create(ctx, model.TransactionCreateRequest{
			Amount:      "10",
			Type:        model.TransactionTypeDebit,
			Description: "coffee",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		repo.AssertExpectations(t)
	})
}

func TestResolveDashboardAction(t *testing.T) {
	assert.Equal(t, ActionList, ResolveDashboardAction(0, 0))
	assert.Equal(t, ActionList, ResolveDashboardAction(0, 1))
	assert.Equal(t, ActionView, ResolveDashboardAction(5, 1))
	assert.Equal(t, ActionEditRedirect, ResolveDashboardAction(5, 2))
	assert.Equal(t, ActionDelete, ResolveDashboardAction(5, 3))
	assert.Equal(t, ActionList, ResolveDashboardAction(5, 0))
	assert.Equal(t, ActionList, ResolveDashboardAction(5, 99))
}

func TestTransactionService_Dashboard(t *testing.T) {
	ctx := context.Background()

	t.Run("default lists everything with the summed total", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		rows := []*model.Transaction{
			{ID: 1, Amount: "100", Type: model.TransactionTypeCredit},
			{ID: 2, Amount: "50", Type: model.TransactionTypeDebit},
		}
		repo.On("List", mock.Anything).Return(rows, nil)
		repo.On("SumAmounts", mock.Anything).Return(float64(150), nil)

		view, err := svc.Dashboard(ctx, 0, 0)
		require.NoError(t, err)
		assert.Len(t, view.Transactions, 2)
		assert.Equal(t, float64(150), view.Total)
		assert.Empty(t, view.RedirectTo)
		repo.AssertExpectations(t)
	})

	t.Run("view shows one row and its amount as total", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		repo.On("GetByID", mock.Anything, int64(1)).
			Return(&model.Transaction{ID: 1, Amount: "100", Type: model.TransactionTypeCredit}, nil)

		view, err := svc.Dashboard(ctx, 1, 1)
		require.NoError(t, err)
		require.Len(t, view.Transactions, 1)
		assert.Equal(t, float64(100), view.Total)
		repo.AssertExpectations(t)
	})

	t.Run("view of a missing id is empty with zero total", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		repo.On("GetByID", mock.Anything, int64(42)).Return(nil, repository.ErrTransactionNotFound)

		view, err := svc.Dashboard(ctx, 42, 1)
		require.NoError(t, err)
		assert.Empty(t, view.Transactions)
		assert.Zero(t, view.Total)
	})

	t.Run("edit action redirects to the edit route", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		view, err := svc.Dashboard(ctx, 7, 2)
		require.NoError(t, err)
		assert.Equal(t, "/transactions/7", view.RedirectTo)
		repo.AssertNotCalled(t, "GetByID")
	})

	t.Run("delete removes the row then falls through to the listing", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		repo.On("Delete", mock.Anything, int64(1)).Return(nil)
		repo.On("List", mock.Anything).Return([]*model.Transaction{
			{ID: 2, Amount: "50", Type: model.TransactionTypeDebit},
		}, nil)
		repo.On("SumAmounts", mock.Anything).Return(float64(50), nil)

		view, err := svc.Dashboard(ctx, 1, 3)
		require.NoError(t, err)
		assert.Len(t, view.Transactions, 1)
		assert.Equal(t, float64(50), view.Total)
		repo.AssertExpectations(t)
	})

	t.Run("deleting a missing id still renders the listing", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		repo.On("Delete", mock.Anything, int64(9)).Return(repository.ErrTransactionNotFound)
		repo.On("List", mock.Anything).Return([]*model.Transaction{}, nil)
		repo.On("SumAmounts", mock.Anything).Return(float64(0), nil)

		view, err := svc.Dashboard(ctx, 9, 3)
		require.NoError(t, err)
		assert.Empty(t, view.Transactions)
		assert.Zero(t, view.Total)
	})
}

func TestTransactionService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("maps missing id to ErrNotFound", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		repo.On("Update", mock.Anything, int64(3), mock.Anything).Return(nil, repository.ErrTransactionNotFound)

		_, err := svc.Update(ctx, 3, model.TransactionUpdateRequest{
			Amount:      "1",
			Type:        model.TransactionTypeDebit,
			Description: "x",
		})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("rejects invalid update before touching the store", func(t *testing.T) {
		repo := new(MockTransactionRepository)
		svc := NewTransactionService(repo)

		_, err := svc.Update(ctx, 3, model.TransactionUpdateRequest{Amount: ""})
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Update")
	})
}
