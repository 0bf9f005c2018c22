package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar date format persisted in the transactions table.
const DateLayout = "2006-01-02"

// TransactionType tags a transaction as money coming in or going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "Income"
	TransactionExpense TransactionType = "Expense"
)

// Valid reports whether t is one of the two known tags.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense entry owned by a user.
type Transaction struct {
	ID       int64
	Username string
	Type     TransactionType
	Amount   decimal.Decimal
	Category string
	Date     time.Time
}

// DateString formats the transaction date the way it is stored.
func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// CategoryTotal is the summed amount of one category within a month.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// Balance holds the monthly income and expense totals.
type Balance struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Overview aggregates everything shown for a selected month.
type Overview struct {
	Year             int
	Month            time.Month
	Balance          Balance
	Categories       []CategoryTotal
	MostExpensiveDay string
	Tips             []string
}

// HistoryFilter selects which slice of the transaction history is listed.
type HistoryFilter string

const (
	FilterAll     HistoryFilter = "All"
	FilterWeekly  HistoryFilter = "Weekly"
	FilterMonthly HistoryFilter = "Monthly"
	FilterYearly  HistoryFilter = "Yearly"
)
