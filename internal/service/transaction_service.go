package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"fintrack/internal/domain"
	"fintrack/internal/repository"
	"fintrack/internal/validate"
)

// TransactionService coordinates recording and listing transactions.
type TransactionService interface {
	Add(ctx context.Context, username string, form validate.TransactionForm) (*domain.Transaction, error)
	List(ctx context.Context, username string) ([]domain.Transaction, error)
	History(ctx context.Context, username string, filter domain.HistoryFilter) ([]domain.Transaction, error)
}

type TransactionConfig struct {
	// WeekStart is the first day of the week used by the weekly filter.
	WeekStart time.Weekday
	Now       func() time.Time
	Logger    logrus.FieldLogger
}

type transactionService struct {
	txs       repository.TransactionRepository
	validator *validate.Validator
	cfg       TransactionConfig
}

func NewTransactionService(txs repository.TransactionRepository, validator *validate.Validator, cfg TransactionConfig) TransactionService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &transactionService{
		txs:       txs,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *transactionService) Add(ctx context.Context, username string, form validate.TransactionForm) (*domain.Transaction, error) {
	tx, err := s.validator.Transaction(username, form)
	if err != nil {
		return nil, err
	}
	if _, err := s.txs.Insert(ctx, tx); err != nil {
		return nil, err
	}

	s.cfg.Logger.WithFields(logrus.Fields{
		"username": username,
		"id":       tx.ID,
		"type":     tx.Type,
	}).Debug("transaction recorded")
	return tx, nil
}

func (s *transactionService) List(ctx context.Context, username string) ([]domain.Transaction, error) {
	return s.txs.ListByUser(ctx, username)
}

func (s *transactionService) History(ctx context.Context, username string, filter domain.HistoryFilter) ([]domain.Transaction, error) {
	txs, err := s.txs.ListByUser(ctx, username)
	if err != nil {
		return nil, err
	}
	return FilterHistory(txs, filter, s.cfg.Now(), s.cfg.WeekStart)
}
