package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

// TransactionRepository exposes persistence and aggregation queries for
// a user's transactions.
type TransactionRepository interface {
	Insert(ctx context.Context, tx *domain.Transaction) (int64, error)
	ListByUser(ctx context.Context, username string) ([]domain.Transaction, error)
	SumByTypeAndMonth(ctx context.Context, username string, year int, month time.Month) (income, expense decimal.Decimal, err error)
	CategoryTotals(ctx context.Context, username string, year int, month time.Month, txType domain.TransactionType) ([]domain.CategoryTotal, error)
	MostExpensiveDay(ctx context.Context, username string, year int, month time.Month) (time.Time, bool, error)
}
