package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"fintrack/internal/domain"
)

const (
	TipGreatSaving     = "Great job! You saved over 50% of your income."
	TipHighSpending    = "Warning: You're spending more than 90% of your income."
	TipUncategorized   = "Expenses recorded, but no category breakdown. Categorize your transactions for insights."
	TipNoExpenses      = "No expenses this month. Great saving!"
	tipCategoryPattern = "High spending detected in %s. Consider reviewing it."
)

var (
	savingRatio   = decimal.NewFromFloat(0.5)
	spendingRatio = decimal.NewFromFloat(0.9)
	categoryShare = decimal.NewFromFloat(0.3)
)

// CategoryTip is the advice emitted when one category dominates spending.
func CategoryTip(category string) string {
	return fmt.Sprintf(tipCategoryPattern, category)
}

// DeriveTips turns a month's figures into advice. Every applicable rule
// contributes, in a fixed order; the saving and overspending rules never
// both apply.
func DeriveTips(income, expense decimal.Decimal, categories []domain.CategoryTotal) []string {
	tips := make([]string, 0, 4)

	if income.IsPositive() {
		ratio := expense.Div(income)
		if ratio.LessThan(savingRatio) {
			tips = append(tips, TipGreatSaving)
		} else if ratio.GreaterThan(spendingRatio) {
			tips = append(tips, TipHighSpending)
		}
	}

	if top, ok := largestCategory(categories); ok && top.Total.GreaterThan(categoryShare.Mul(expense)) {
		tips = append(tips, CategoryTip(top.Category))
	}

	if len(categories) == 0 && expense.IsPositive() {
		tips = append(tips, TipUncategorized)
	}

	if expense.IsZero() {
		tips = append(tips, TipNoExpenses)
	}

	return tips
}

// first one wins on ties
func largestCategory(categories []domain.CategoryTotal) (domain.CategoryTotal, bool) {
	if len(categories) == 0 {
		return domain.CategoryTotal{}, false
	}
	top := categories[0]
	for _, c := range categories[1:] {
		if c.Total.GreaterThan(top.Total) {
			top = c
		}
	}
	return top, true
}
