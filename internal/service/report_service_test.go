package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
)

var errStoreDown = errors.New("store down")

// failingSumRepo fails the monthly sum and makes the other queries wait
// until their context ends.
type failingSumRepo struct {
	mu        sync.Mutex
	cancelled []string
}

func (r *failingSumRepo) wait(ctx context.Context, name string) error {
	<-ctx.Done()
	r.mu.Lock()
	r.cancelled = append(r.cancelled, name)
	r.mu.Unlock()
	return ctx.Err()
}

func (r *failingSumRepo) Insert(context.Context, *domain.Transaction) (int64, error) {
	return 0, nil
}

func (r *failingSumRepo) ListByUser(context.Context, string) ([]domain.Transaction, error) {
	return nil, nil
}

func (r *failingSumRepo) SumByTypeAndMonth(context.Context, string, int, time.Month) (decimal.Decimal, decimal.Decimal, error) {
	return decimal.Zero, decimal.Zero, errStoreDown
}

func (r *failingSumRepo) CategoryTotals(ctx context.Context, _ string, _ int, _ time.Month, _ domain.TransactionType) ([]domain.CategoryTotal, error) {
	return nil, r.wait(ctx, "categories")
}

func (r *failingSumRepo) MostExpensiveDay(ctx context.Context, _ string, _ int, _ time.Month) (time.Time, bool, error) {
	return time.Time{}, false, r.wait(ctx, "day")
}

func TestOverviewFailureCancelsOtherQueries(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	repo := &failingSumRepo{}
	reports := NewReportService(repo, log)

	done := make(chan error, 1)
	go func() {
		_, err := reports.Overview(context.Background(), "alice", 2025, time.April)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.ErrorIs(t, err, errStoreDown)
		assert.Contains(t, err.Error(), "monthly balance")
	case <-time.After(5 * time.Second):
		t.Fatal("overview kept waiting after the balance query failed")
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()
	assert.ElementsMatch(t, []string{"categories", "day"}, repo.cancelled)
}
