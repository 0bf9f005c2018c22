package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

// amounts are REAL in storage; sums are rounded back to cents
const amountPlaces = 2

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) repository.TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Insert(ctx context.Context, tx *domain.Transaction) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
INSERT INTO transactions (username, type, amount, category, date)
VALUES (?, ?, ?, ?, ?)`,
		tx.Username,
		string(tx.Type),
		tx.Amount.InexactFloat64(),
		tx.Category,
		tx.DateString(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	tx.ID = id
	return id, nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, username string) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, username, type, amount, category, date
FROM transactions
WHERE username = ?
ORDER BY id DESC`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}

	return txs, rows.Err()
}

func (r *TransactionRepository) SumByTypeAndMonth(ctx context.Context, username string, year int, month time.Month) (decimal.Decimal, decimal.Decimal, error) {
	income, expense := decimal.Zero, decimal.Zero

	y, m := yearMonthArgs(year, month)
	rows, err := r.db.QueryContext(ctx, `
SELECT type, COALESCE(SUM(amount), 0)
FROM transactions
WHERE username = ? AND strftime('%Y', date) = ? AND strftime('%m', date) = ?
GROUP BY type`,
		username, y, m,
	)
	if err != nil {
		return income, expense, fmt.Errorf("query monthly totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			txType string
			total  decimal.Decimal
		)
		if err := rows.Scan(&txType, &total); err != nil {
			return income, expense, fmt.Errorf("scan monthly totals: %w", err)
		}
		if domain.TransactionType(txType) == domain.TransactionIncome {
			income = income.Add(total.Round(amountPlaces))
		} else {
			expense = expense.Add(total.Round(amountPlaces))
		}
	}
	if err := rows.Err(); err != nil {
		return income, expense, fmt.Errorf("iterate monthly totals: %w", err)
	}

	return income, expense, nil
}

func (r *TransactionRepository) CategoryTotals(ctx context.Context, username string, year int, month time.Month, txType domain.TransactionType) ([]domain.CategoryTotal, error) {
	y, m := yearMonthArgs(year, month)
	rows, err := r.db.QueryContext(ctx, `
SELECT category, SUM(amount) AS total
FROM transactions
WHERE username = ? AND type = ?
AND strftime('%Y', date) = ? AND strftime('%m', date) = ?
GROUP BY category`,
		username, string(txType), y, m,
	)
	if err != nil {
		return nil, fmt.Errorf("query category totals: %w", err)
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total); err != nil {
			return nil, fmt.Errorf("scan category total: %w", err)
		}
		ct.Total = ct.Total.Round(amountPlaces)
		totals = append(totals, ct)
	}

	return totals, rows.Err()
}

// MostExpensiveDay returns the date with the largest summed Expense amount
// in the month. Ties resolve to the earliest date.
func (r *TransactionRepository) MostExpensiveDay(ctx context.Context, username string, year int, month time.Month) (time.Time, bool, error) {
	y, m := yearMonthArgs(year, month)
	var day string
	err := r.db.QueryRowContext(ctx, `
SELECT date
FROM transactions
WHERE username = ? AND type = 'Expense'
AND strftime('%Y', date) = ? AND strftime('%m', date) = ?
GROUP BY date
ORDER BY ROUND(SUM(amount), 2) DESC, date ASC
LIMIT 1`,
		username, y, m,
	).Scan(&day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("query most expensive day: %w", err)
	}

	parsed, err := time.Parse(domain.DateLayout, day)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("parse day %q: %w", day, err)
	}
	return parsed, true, nil
}

func yearMonthArgs(year int, month time.Month) (string, string) {
	return fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", int(month))
}

func scanTransaction(scanner interface {
	Scan(dest ...any) error
}) (*domain.Transaction, error) {
	var (
		tx     domain.Transaction
		txType string
		date   string
	)
	if err := scanner.Scan(
		&tx.ID,
		&tx.Username,
		&txType,
		&tx.Amount,
		&tx.Category,
		&date,
	); err != nil {
		return nil, fmt.Errorf("scan transaction: %w", err)
	}

	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse transaction date %q: %w", date, err)
	}
	tx.Type = domain.TransactionType(txType)
	tx.Date = parsed
	return &tx, nil
}
