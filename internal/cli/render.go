package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fintrack/internal/domain"
	"fintrack/internal/service"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6A1B9A"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7f849c"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C62828"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF6C00"))
	incomeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#2E7D32"))
	expenseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C62828"))
)

func (a *App) renderProfile(user *domain.User) {
	fmt.Fprintln(a.out, titleStyle.Render("Profile"))
	for _, row := range [][2]string{
		{"Name", user.Name},
		{"Email", user.Email},
		{"Phone", user.Phone},
		{"Address", user.Address},
		{"Username", user.Username},
	} {
		fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-9s", row[0]+":")), row[1])
	}
}

func (a *App) renderHistory(filter domain.HistoryFilter, income, expense []domain.Transaction) {
	fmt.Fprintln(a.out, titleStyle.Render(fmt.Sprintf("Transaction History (%s)", filter)))

	fmt.Fprintln(a.out, expenseStyle.Render("Expenses"))
	if len(expense) == 0 {
		fmt.Fprintln(a.out, labelStyle.Render("  No expenses found"))
	}
	for _, tx := range expense {
		fmt.Fprintf(a.out, "  %s  %-20s %10s\n", tx.DateString(), tx.Category, tx.Amount.StringFixed(2))
	}

	fmt.Fprintln(a.out, incomeStyle.Render("Income"))
	if len(income) == 0 {
		fmt.Fprintln(a.out, labelStyle.Render("  No income found"))
	}
	for _, tx := range income {
		fmt.Fprintf(a.out, "  %s  %-20s %10s\n", tx.DateString(), tx.Category, tx.Amount.StringFixed(2))
	}
}

func (a *App) renderOverview(ov *domain.Overview) {
	fmt.Fprintln(a.out, titleStyle.Render(fmt.Sprintf("Monthly Overview %s %d", ov.Month, ov.Year)))
	fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Income: "), incomeStyle.Render(ov.Balance.Income.StringFixed(2)))
	fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Expense:"), expenseStyle.Render(ov.Balance.Expense.StringFixed(2)))
	fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Balance:"), ov.Balance.Balance.StringFixed(2))

	fmt.Fprintln(a.out, titleStyle.Render("Expenses by category"))
	if len(ov.Categories) == 0 {
		fmt.Fprintln(a.out, labelStyle.Render("  No expenses this month"))
	}
	for _, c := range ov.Categories {
		fmt.Fprintf(a.out, "  %-20s %10s\n", c.Category, c.Total.StringFixed(2))
	}
	fmt.Fprintf(a.out, "%s %s\n", labelStyle.Render("Most expensive day:"), ov.MostExpensiveDay)

	fmt.Fprintln(a.out, titleStyle.Render("Smart Tips"))
	if len(ov.Tips) == 0 {
		fmt.Fprintln(a.out, labelStyle.Render("  No tips for now. You're doing great!"))
	}
	for _, tip := range ov.Tips {
		fmt.Fprintf(a.out, "  %s\n", tipStyle(tip).Render(tip))
	}
}

func tipStyle(tip string) lipgloss.Style {
	switch {
	case tip == service.TipGreatSaving || tip == service.TipNoExpenses:
		return successStyle
	case tip == service.TipHighSpending:
		return warningStyle
	case strings.HasPrefix(tip, "High spending"):
		return noticeStyle
	}
	return lipgloss.NewStyle()
}
