package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"fintrack/internal/repository/sqlite"
	"fintrack/internal/service"
	"fintrack/internal/validate"
)

var fixedNow = time.Date(2025, 4, 16, 12, 0, 0, 0, time.UTC)

func newApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fintrack.db")
	db, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.Migrate(path))

	log := logrus.New()
	log.SetOutput(io.Discard)
	now := func() time.Time { return fixedNow }

	v := validate.New(now)
	txRepo := sqlite.NewTransactionRepository(db)
	users, err := service.NewUserService(sqlite.NewUserRepository(db), v, bcrypt.MinCost, log)
	require.NoError(t, err)
	txs := service.NewTransactionService(txRepo, v, service.TransactionConfig{Now: now, Logger: log})
	reports := service.NewReportService(txRepo, log)

	out := &bytes.Buffer{}
	return New(users, txs, reports, out, now), out
}

func run(t *testing.T, app *App, out *bytes.Buffer, args string) (string, error) {
	t.Helper()
	out.Reset()
	err := app.Run(context.Background(), strings.Fields(args))
	return out.String(), err
}

const creds = "-u alice -p secret#123"

func register(t *testing.T, app *App, out *bytes.Buffer) {
	t.Helper()
	_, err := run(t, app, out, "register --name Alice --email alice@example.com --phone 0123456789 --address Home "+creds+" --confirm secret#123")
	require.NoError(t, err)
}

func TestRegisterAndLogin(t *testing.T) {
	app, out := newApp(t)
	register(t, app, out)

	got, err := run(t, app, out, "login -u ALICE -p secret#123")
	require.NoError(t, err)
	assert.Contains(t, got, "Login Successful")
	assert.Contains(t, got, "Welcome, Alice")

	_, err = run(t, app, out, "login -u alice -p nope#nope")
	require.Error(t, err)
	assert.Equal(t, "Invalid username or password", Message(err))

	_, err = run(t, app, out, "register --name Bob --email bob@example.com --phone 0123456789 --address Home "+creds+" --confirm secret#123")
	require.Error(t, err)
	assert.Equal(t, "Username already exists", Message(err))

	_, err = run(t, app, out, "login -u alice")
	require.Error(t, err)
	assert.Equal(t, "Please enter all details", Message(err))
}

func TestAddHistoryAndOverview(t *testing.T) {
	app, out := newApp(t)
	register(t, app, out)

	for _, args := range []string{
		"add " + creds + " -t expense -a 50 -c Food -d 2025-04-01",
		"add " + creds + " -t Expense -a 30 -c Food -d 2025-04-02",
		"add " + creds + " -t Expense -a 20 -c Transport -d 2025-04-02",
		"add " + creds + " -t income -a 500 -c Salary -d 2025-04-01",
	} {
		got, err := run(t, app, out, args)
		require.NoError(t, err, args)
		assert.Contains(t, got, "Transaction Added")
	}

	got, err := run(t, app, out, "history "+creds+" -f monthly")
	require.NoError(t, err)
	assert.Contains(t, got, "Transaction History (Monthly)")
	assert.Contains(t, got, "Transport")
	assert.Contains(t, got, "500.00")

	got, err = run(t, app, out, "overview "+creds+" -y 2025 -m 4")
	require.NoError(t, err)
	assert.Contains(t, got, "400.00")
	assert.Contains(t, got, "2025-04-02")
	assert.Contains(t, got, service.TipGreatSaving)
	assert.Contains(t, got, service.CategoryTip("Food"))

	got, err = run(t, app, out, "overview "+creds+" -y 2025 -m 3")
	require.NoError(t, err)
	assert.Contains(t, got, service.NoExpenseDay)
	assert.Contains(t, got, service.TipNoExpenses)
}

func TestAddValidationMessage(t *testing.T) {
	app, out := newApp(t)
	register(t, app, out)

	_, err := run(t, app, out, "add "+creds+" -a 12.345 -c Food")
	require.Error(t, err)
	assert.Equal(t, "Enter a valid amount", Message(err))
}

func TestUnregister(t *testing.T) {
	app, out := newApp(t)
	register(t, app, out)

	got, err := run(t, app, out, "unregister "+creds)
	require.NoError(t, err)
	assert.Contains(t, got, "Account deleted")

	_, err = run(t, app, out, "login "+creds)
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestUsage(t *testing.T) {
	app, out := newApp(t)

	got, err := run(t, app, out, "")
	assert.ErrorIs(t, err, ErrUsage)
	assert.Contains(t, got, "overview")

	_, err = run(t, app, out, "explode")
	assert.ErrorIs(t, err, ErrUsage)

	_, err = run(t, app, out, "history "+creds+" -f hourly")
	assert.ErrorIs(t, err, ErrUsage)
}
