package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LekaAli/fes/internal/model"
)

func newTransactionRepo(t *testing.T) (*TransactionRepository, *testDB) {
	db := setupTestDB(t)
	return NewTransactionRepository(db.DB, NewGateway(db.DB)), db
}

func TestTransactionRepository_Create(t *testing.T) {
	repo, _ := newTransactionRepo(t)
	ctx := context.Background()

	t.Run("persists all submitted fields", func(t *testing.T) {
		date := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		created, err := repo.Create(ctx, model.TransactionCreateRequest{
			Amount:      "100",
			Date:        date,
			Type:        model.TransactionTypeCredit,
			Description: "salary",
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "100", created.Amount)
		assert.Equal(t, model.TransactionTypeCredit, created.Type)
		assert.Equal(t, "salary", created.Description)
		assert.True(t, created.Date.Equal(date))
	})

	t.Run("date defaults to creation time when absent", func(t *testing.T) {
		created, err := repo.Create(ctx, model.TransactionCreateRequest{
			Amount:      "50",
			Type:        model.TransactionTypeDebit,
			Description: "groceries",
		})
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.False(t, stored.Date.IsZero())
	})
}

func TestTransactionRepository_GetByID(t *testing.T) {
	repo, _ := newTransactionRepo(t)
	ctx := context.Background()

	t.Run("missing id yields ErrTransactionNotFound", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 9999)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("round trip by assigned id", func(t *testing.T) {
		created, err := repo.Create(ctx, model.TransactionCreateRequest{
			Amount:      "42",
			Type:        model.TransactionTypeDebit,
			Description: "lunch",
		})
		require.NoError(t, err)

		got, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, got.ID)
		assert.Equal(t, "42", got.Amount)
	})
}

func TestTransactionRepository_SumAmounts(t *testing.T) {
	repo, _ := newTransactionRepo(t)
	ctx := context.Background()

	t.Run("zero when no rows exist", func(t *testing.T) {
		total, err := repo.SumAmounts(ctx)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("sums text amounts numerically", func(t *testing.T) {
		for _, p := range []model.TransactionCreateRequest{
			{Amount: "100", Type: model.TransactionTypeCredit, Description: "salary"},
			{Amount: "50", Type: model.TransactionTypeDebit, Description: "groceries"},
			{Amount: "25.50", Type: model.TransactionTypeDebit, Description: "fuel"},
		} {
			_, err := repo.Create(ctx, p)
			require.NoError(t, err)
		}

		total, err := repo.SumAmounts(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 175.50, total, 0.001)
	})
}

func TestTransactionRepository_Update(t *testing.T) {
	repo, _ := newTransactionRepo(t)
	ctx := context.Background()

	t.Run("missing id yields ErrTransactionNotFound", func(t *testing.T) {
		_, err := repo.Update(ctx, 12345, map[string]any{"amount": "1"})
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("all fields change, id does not", func(t *testing.T) {
		created, err := repo.Create(ctx, model.TransactionCreateRequest{
			Amount:      "100",
			Type:        model.TransactionTypeCredit,
			Description: "salary",
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, map[string]any{
			"amount":      "200",
			"type":        "debit",
			"description": "rent",
		})
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "200", updated.Amount)
		assert.Equal(t, model.TransactionTypeDebit, updated.Type)
		assert.Equal(t, "rent", updated.Description)
	})
}

func TestTransactionRepository_Delete(t *testing.T) {
	repo, _ := newTransactionRepo(t)
	ctx := context.Background()

	t.Run("missing id yields ErrTransactionNotFound", func(t *testing.T) {
		err := repo.Delete(ctx, 777)
		assert.ErrorIs(t, err, ErrTransactionNotFound)
	})

	t.Run("deleted rows leave listing and total", func(t *testing.T) {
		first, err := repo.Create(ctx, model.TransactionCreateRequest{
			Amount:      "100",
			Type:        model.TransactionTypeCredit,
			Description: "salary",
		})
		require.NoError(t, err)
		_, err = repo.Create(ctx, model.TransactionCreateRequest{
			Amount:      "50",
			Type:        model.TransactionTypeDebit,
			Description: "groceries",
		})
		require.NoError(t, err)

		require.NoError(t, repo.Delete(ctx, first.ID))

		all, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
		assert.NotEqual(t, first.ID, all[0].ID)

		total, err := repo.SumAmounts(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 50, total, 0.001)
	})
}
