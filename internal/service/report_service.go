package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"fintrack/internal/async"
	"fintrack/internal/domain"
	"fintrack/internal/repository"
)

// NoExpenseDay is reported when a month has no expense rows.
const NoExpenseDay = "N/A"

// ReportService computes monthly summaries from stored transactions.
// Nothing is cached; each call reads the store.
type ReportService interface {
	MonthlyBalance(ctx context.Context, username string, year int, month time.Month) (domain.Balance, error)
	CategoryBreakdown(ctx context.Context, username string, year int, month time.Month, txType domain.TransactionType) ([]domain.CategoryTotal, error)
	MostExpensiveDay(ctx context.Context, username string, year int, month time.Month) (string, error)
	Overview(ctx context.Context, username string, year int, month time.Month) (*domain.Overview, error)
}

type reportService struct {
	txs repository.TransactionRepository
	log logrus.FieldLogger
}

func NewReportService(txs repository.TransactionRepository, log logrus.FieldLogger) ReportService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &reportService{txs: txs, log: log}
}

func (s *reportService) MonthlyBalance(ctx context.Context, username string, year int, month time.Month) (domain.Balance, error) {
	if err := checkMonth(month); err != nil {
		return domain.Balance{}, err
	}
	income, expense, err := s.txs.SumByTypeAndMonth(ctx, username, year, month)
	if err != nil {
		return domain.Balance{}, err
	}
	return domain.Balance{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}, nil
}

func (s *reportService) CategoryBreakdown(ctx context.Context, username string, year int, month time.Month, txType domain.TransactionType) ([]domain.CategoryTotal, error) {
	if err := checkMonth(month); err != nil {
		return nil, err
	}
	if !txType.Valid() {
		return nil, fmt.Errorf("unknown transaction type %q", txType)
	}
	return s.txs.CategoryTotals(ctx, username, year, month, txType)
}

func (s *reportService) MostExpensiveDay(ctx context.Context, username string, year int, month time.Month) (string, error) {
	if err := checkMonth(month); err != nil {
		return "", err
	}
	day, ok, err := s.txs.MostExpensiveDay(ctx, username, year, month)
	if err != nil {
		return "", err
	}
	if !ok {
		return NoExpenseDay, nil
	}
	return day.Format(domain.DateLayout), nil
}

// Overview loads the three monthly figures concurrently and derives the
// tips from them. The first failing query cancels the other two.
func (s *reportService) Overview(ctx context.Context, username string, year int, month time.Month) (*domain.Overview, error) {
	if err := checkMonth(month); err != nil {
		return nil, err
	}

	g, gctx := errgroup.WithContext(ctx)
	balanceF := async.Go(g, gctx, func(ctx context.Context) (domain.Balance, error) {
		b, err := s.MonthlyBalance(ctx, username, year, month)
		if err != nil {
			return b, fmt.Errorf("monthly balance: %w", err)
		}
		return b, nil
	})
	categoriesF := async.Go(g, gctx, func(ctx context.Context) ([]domain.CategoryTotal, error) {
		cats, err := s.CategoryBreakdown(ctx, username, year, month, domain.TransactionExpense)
		if err != nil {
			return nil, fmt.Errorf("category breakdown: %w", err)
		}
		return cats, nil
	})
	dayF := async.Go(g, gctx, func(ctx context.Context) (string, error) {
		day, err := s.MostExpensiveDay(ctx, username, year, month)
		if err != nil {
			return "", fmt.Errorf("most expensive day: %w", err)
		}
		return day, nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	balance, _ := balanceF.Result()
	categories, _ := categoriesF.Result()
	day, _ := dayF.Result()

	s.log.WithFields(logrus.Fields{
		"username": username,
		"year":     year,
		"month":    int(month),
	}).Debug("overview computed")

	return &domain.Overview{
		Year:             year,
		Month:            month,
		Balance:          balance,
		Categories:       categories,
		MostExpensiveDay: day,
		Tips:             DeriveTips(balance.Income, balance.Expense, categories),
	}, nil
}

func checkMonth(month time.Month) error {
	if month < time.January || month > time.December {
		return fmt.Errorf("month %d out of range", int(month))
	}
	return nil
}
