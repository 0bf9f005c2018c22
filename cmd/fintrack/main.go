package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"fintrack/internal/cli"
	"fintrack/internal/config"
	"fintrack/internal/repository/sqlite"
	"fintrack/internal/service"
	"fintrack/internal/validate"
)

func main() {
	os.Exit(run())
}

func run() int {
	flags := pflag.NewFlagSet("fintrack", pflag.ContinueOnError)
	flags.SetInterspersed(false)
	flags.String("db", "", "path to the sqlite database")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("week-start", "", "first day of the week for the weekly history filter")
	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load(flags)
	if err != nil {
		logger.Errorf("load config: %v", err)
		return 1
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Errorf("parse log level: %v", err)
		return 1
	}
	logger.SetLevel(level)
	log := logger.WithField("session", uuid.NewString())

	weekStart, err := cfg.WeekStartDay()
	if err != nil {
		log.Errorf("week start: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		log.Errorf("open database: %v", err)
		return 1
	}
	defer db.Close()

	if err := sqlite.Migrate(cfg.Database.Path); err != nil {
		log.Errorf("migrate database: %v", err)
		return 1
	}

	userRepo := sqlite.NewUserRepository(db)
	txRepo := sqlite.NewTransactionRepository(db)
	validator := validate.New(nil)

	userService, err := service.NewUserService(userRepo, validator, cfg.Auth.BcryptCost, log)
	if err != nil {
		log.Errorf("setup user service: %v", err)
		return 1
	}
	txService := service.NewTransactionService(txRepo, validator, service.TransactionConfig{
		WeekStart: weekStart,
		Logger:    log,
	})
	reportService := service.NewReportService(txRepo, log)

	app := cli.New(userService, txService, reportService, os.Stdout, nil)
	log.Debugf("using database %s", cfg.Database.Path)

	if err := app.Run(ctx, flags.Args()); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			fmt.Fprintln(os.Stderr, err)
			return 2
		}
		fmt.Fprintln(os.Stderr, cli.Message(err))
		return 1
	}
	return 0
}
