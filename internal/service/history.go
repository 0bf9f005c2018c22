package service

import (
	"fmt"
	"strings"
	"time"

	"fintrack/internal/domain"
)

// ParseHistoryFilter accepts a filter name in any case.
func ParseHistoryFilter(s string) (domain.HistoryFilter, error) {
	for _, f := range []domain.HistoryFilter{
		domain.FilterAll,
		domain.FilterWeekly,
		domain.FilterMonthly,
		domain.FilterYearly,
	} {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown history filter %q", s)
}

// FilterHistory keeps the transactions that fall into the bucket selected
// by filter, relative to now. Input order is preserved.
//
// Monthly compares the month of year only, so the same month of earlier
// years is included.
func FilterHistory(txs []domain.Transaction, filter domain.HistoryFilter, now time.Time, weekStart time.Weekday) ([]domain.Transaction, error) {
	var keep func(domain.Transaction) bool
	switch filter {
	case domain.FilterAll, "":
		return txs, nil
	case domain.FilterWeekly:
		start := StartOfWeek(now, weekStart)
		keep = func(tx domain.Transaction) bool {
			return !inLocation(tx.Date, now.Location()).Before(start)
		}
	case domain.FilterMonthly:
		keep = func(tx domain.Transaction) bool {
			return tx.Date.Month() == now.Month()
		}
	case domain.FilterYearly:
		keep = func(tx domain.Transaction) bool {
			return tx.Date.Year() == now.Year()
		}
	default:
		return nil, fmt.Errorf("unknown history filter %q", filter)
	}

	out := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}

// StartOfWeek returns midnight of the most recent weekStart on or before now.
func StartOfWeek(now time.Time, weekStart time.Weekday) time.Time {
	offset := (int(now.Weekday()) - int(weekStart) + 7) % 7
	day := now.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

// SplitByType partitions transactions into income and expense groups,
// keeping their order.
func SplitByType(txs []domain.Transaction) (income, expense []domain.Transaction) {
	for _, tx := range txs {
		if tx.Type == domain.TransactionIncome {
			income = append(income, tx)
		} else {
			expense = append(expense, tx)
		}
	}
	return income, expense
}

// dates are stored without a zone; read them as wall-clock dates in loc
func inLocation(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
}
