// Package cli is the terminal front end: it parses subcommands, calls the
// services and renders their results.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"fintrack/internal/domain"
	"fintrack/internal/service"
	"fintrack/internal/validate"
)

// ErrUsage is returned for an unknown subcommand or bad flags.
var ErrUsage = errors.New("usage error")

// App wires subcommands to domain services.
type App struct {
	users   service.UserService
	txs     service.TransactionService
	reports service.ReportService
	out     io.Writer
	now     func() time.Time
}

func New(users service.UserService, txs service.TransactionService, reports service.ReportService, out io.Writer, now func() time.Time) *App {
	if now == nil {
		now = time.Now
	}
	return &App{
		users:   users,
		txs:     txs,
		reports: reports,
		out:     out,
		now:     now,
	}
}

type command struct {
	summary string
	run     func(ctx context.Context, args []string) error
}

func (a *App) commands() map[string]command {
	return map[string]command{
		"register":   {"create an account", a.register},
		"login":      {"check credentials", a.login},
		"profile":    {"show account details", a.profile},
		"add":        {"record an income or expense", a.add},
		"history":    {"list transactions (all, weekly, monthly, yearly)", a.history},
		"overview":   {"monthly totals, categories and tips", a.overview},
		"unregister": {"delete the account and its transactions", a.unregister},
	}
}

// Run executes the subcommand named by args[0].
func (a *App) Run(ctx context.Context, args []string) error {
	cmds := a.commands()
	if len(args) == 0 {
		a.usage(cmds)
		return ErrUsage
	}
	cmd, ok := cmds[args[0]]
	if !ok {
		a.usage(cmds)
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
	return cmd.run(ctx, args[1:])
}

func (a *App) usage(cmds map[string]command) {
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: fintrack [global flags] <command> [flags]")
	fmt.Fprintln(a.out, "commands:")
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-11s %s\n", name, cmds[name].summary)
	}
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parse(fs *pflag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrUsage, fs.Name(), err)
	}
	return nil
}

type credentials struct {
	username string
	password string
}

func credentialFlags(fs *pflag.FlagSet) *credentials {
	c := &credentials{}
	fs.StringVarP(&c.username, "username", "u", "", "account username")
	fs.StringVarP(&c.password, "password", "p", "", "account password")
	return c
}

func (a *App) authenticate(ctx context.Context, c *credentials) (*domain.User, error) {
	if strings.TrimSpace(c.username) == "" || strings.TrimSpace(c.password) == "" {
		return nil, &validate.Error{Field: "Username", Message: "Please enter all details"}
	}
	return a.users.Authenticate(ctx, c.username, c.password)
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register")
	var form validate.RegistrationForm
	fs.StringVar(&form.Name, "name", "", "full name")
	fs.StringVar(&form.Email, "email", "", "email address")
	fs.StringVar(&form.Phone, "phone", "", "10 digit phone number")
	fs.StringVar(&form.Address, "address", "", "postal address")
	fs.StringVarP(&form.Username, "username", "u", "", "account username")
	fs.StringVarP(&form.Password, "password", "p", "", "account password")
	fs.StringVar(&form.ConfirmPassword, "confirm", "", "repeat the password")
	if err := parse(fs, args); err != nil {
		return err
	}

	user, err := a.users.Register(ctx, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, successStyle.Render("Registration Successful!"))
	a.renderProfile(user)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	creds := credentialFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := a.authenticate(ctx, creds)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, successStyle.Render("Login Successful"))
	fmt.Fprintf(a.out, "Welcome, %s\n", user.Name)
	return nil
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := newFlagSet("profile")
	creds := credentialFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := a.authenticate(ctx, creds)
	if err != nil {
		return err
	}
	profile, err := a.users.Profile(ctx, user.Username)
	if err != nil {
		return err
	}
	a.renderProfile(profile)
	return nil
}

func (a *App) add(ctx context.Context, args []string) error {
	fs := newFlagSet("add")
	creds := credentialFlags(fs)
	var form validate.TransactionForm
	fs.StringVarP(&form.Type, "type", "t", string(domain.TransactionExpense), "Income or Expense")
	fs.StringVarP(&form.Amount, "amount", "a", "", "amount, up to two decimals")
	fs.StringVarP(&form.Category, "category", "c", "", "category label")
	fs.StringVarP(&form.Date, "date", "d", a.now().Format(domain.DateLayout), "date as YYYY-MM-DD")
	if err := parse(fs, args); err != nil {
		return err
	}
	user, err := a.authenticate(ctx, creds)
	if err != nil {
		return err
	}

	form.Type = normalizeType(form.Type)
	tx, err := a.txs.Add(ctx, user.Username, form)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, successStyle.Render("Transaction Added"))
	fmt.Fprintf(a.out, "#%d %s %s %s %s\n", tx.ID, tx.DateString(), tx.Type, tx.Amount.StringFixed(2), tx.Category)
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	fs := newFlagSet("history")
	creds := credentialFlags(fs)
	filterName := fs.StringP("filter", "f", string(domain.FilterAll), "All, Weekly, Monthly or Yearly")
	if err := parse(fs, args); err != nil {
		return err
	}
	filter, err := service.ParseHistoryFilter(*filterName)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	user, err := a.authenticate(ctx, creds)
	if err != nil {
		return err
	}

	txs, err := a.txs.History(ctx, user.Username, filter)
	if err != nil {
		return err
	}
	income, expense := service.SplitByType(txs)
	a.renderHistory(filter, income, expense)
	return nil
}

func (a *App) overview(ctx context.Context, args []string) error {
	fs := newFlagSet("overview")
	creds := credentialFlags(fs)
	now := a.now()
	year := fs.IntP("year", "y", now.Year(), "year")
	month := fs.IntP("month", "m", int(now.Month()), "month 1-12")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *month < 1 || *month > 12 {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrUsage)
	}
	user, err := a.authenticate(ctx, creds)
	if err != nil {
		return err
	}

	ov, err := a.reports.Overview(ctx, user.Username, *year, time.Month(*month))
	if err != nil {
		return err
	}
	a.renderOverview(ov)
	return nil
}

func (a *App) unregister(ctx context.Context, args []string) error {
	fs := newFlagSet("unregister")
	creds := credentialFlags(fs)
	if err := parse(fs, args); err != nil {
		return err
	}
	if strings.TrimSpace(creds.username) == "" || strings.TrimSpace(creds.password) == "" {
		return &validate.Error{Field: "Username", Message: "Please enter all details"}
	}
	if err := a.users.DeleteAccount(ctx, creds.username, creds.password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, successStyle.Render("Account deleted"))
	return nil
}

func normalizeType(s string) string {
	for _, t := range []domain.TransactionType{domain.TransactionIncome, domain.TransactionExpense} {
		if strings.EqualFold(s, string(t)) {
			return string(t)
		}
	}
	return s
}

// Message converts an error returned by Run into the line shown to the user.
func Message(err error) string {
	var vErr *validate.Error
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, service.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.Is(err, service.ErrUserAlreadyExists):
		return "Username already exists"
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return "Email already registered"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	}
	return err.Error()
}
