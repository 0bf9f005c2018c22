package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/domain"
)

func tx(id int64, typ domain.TransactionType, date string) domain.Transaction {
	parsed, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return domain.Transaction{ID: id, Username: "alice", Type: typ, Amount: decimal.NewFromInt(1), Category: "X", Date: parsed}
}

func ids(txs []domain.Transaction) []int64 {
	out := make([]int64, 0, len(txs))
	for _, t := range txs {
		out = append(out, t.ID)
	}
	return out
}

func TestStartOfWeek(t *testing.T) {
	// Wednesday afternoon
	now := time.Date(2025, 4, 16, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 4, 13, 0, 0, 0, 0, time.UTC), StartOfWeek(now, time.Sunday))
	assert.Equal(t, time.Date(2025, 4, 14, 0, 0, 0, 0, time.UTC), StartOfWeek(now, time.Monday))
	assert.Equal(t, time.Date(2025, 4, 16, 0, 0, 0, 0, time.UTC), StartOfWeek(now, time.Wednesday))
	assert.Equal(t, time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC), StartOfWeek(now, time.Thursday))
}

func TestFilterHistory(t *testing.T) {
	now := time.Date(2025, 4, 16, 15, 30, 0, 0, time.UTC)
	txs := []domain.Transaction{
		tx(7, domain.TransactionExpense, "2025-04-16"),
		tx(6, domain.TransactionIncome, "2025-04-13"), // week start, inclusive
		tx(5, domain.TransactionExpense, "2025-04-12"),
		tx(4, domain.TransactionExpense, "2025-04-01"),
		tx(3, domain.TransactionIncome, "2025-01-20"),
		tx(2, domain.TransactionExpense, "2024-04-30"),
		tx(1, domain.TransactionExpense, "2024-12-31"),
	}

	cases := []struct {
		filter domain.HistoryFilter
		want   []int64
	}{
		{domain.FilterAll, []int64{7, 6, 5, 4, 3, 2, 1}},
		{domain.FilterWeekly, []int64{7, 6}},
		{domain.FilterMonthly, []int64{7, 6, 5, 4, 2}},
		{domain.FilterYearly, []int64{7, 6, 5, 4, 3}},
	}
	for _, tc := range cases {
		t.Run(string(tc.filter), func(t *testing.T) {
			got, err := FilterHistory(txs, tc.filter, now, time.Sunday)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ids(got))
		})
	}

	_, err := FilterHistory(txs, "Daily", now, time.Sunday)
	assert.Error(t, err)
}

func TestParseHistoryFilter(t *testing.T) {
	f, err := ParseHistoryFilter("weekly")
	require.NoError(t, err)
	assert.Equal(t, domain.FilterWeekly, f)

	_, err = ParseHistoryFilter("hourly")
	assert.Error(t, err)
}

func TestSplitByType(t *testing.T) {
	txs := []domain.Transaction{
		tx(4, domain.TransactionIncome, "2025-04-04"),
		tx(3, domain.TransactionExpense, "2025-04-03"),
		tx(2, domain.TransactionIncome, "2025-04-02"),
		tx(1, domain.TransactionExpense, "2025-04-01"),
	}
	income, expense := SplitByType(txs)
	assert.Equal(t, []int64{4, 2}, ids(income))
	assert.Equal(t, []int64{3, 1}, ids(expense))
}
