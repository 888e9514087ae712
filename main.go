package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blogem/form-intake/config"
	"github.com/blogem/form-intake/database"
	"github.com/blogem/form-intake/logger"
	"github.com/blogem/form-intake/notifier"
	"github.com/blogem/form-intake/repositories"
	"github.com/blogem/form-intake/services"
)

var configPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "form-intake",
	Short: "Form intake service for comments, feedback, schedules, tech requests, and messages",
	Long: `form-intake accepts form submissions over HTTP, stores each form in its own table,
and announces accepted submissions by email and webhook.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the wired service graph shared by all commands
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	db       *sql.DB
	repos    *repositories.Repositories
	services *services.Services
}

// newApp loads the configuration, opens the store, and wires the services
func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	log := logger.New(cfg.Env)

	if cfg.Store.Path != database.MemoryPath {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := database.InitializeDatabase(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repos := repositories.NewRepositories(db)

	var mailer notifier.Mailer
	if m := notifier.NewSMTPMailer(notifier.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
		FromName: cfg.Mail.FromName,
	}); m != nil {
		mailer = m
	} else {
		log.Warn("mail host not configured, email notifications are disabled")
	}

	dispatcher := notifier.NewDispatcher(mailer, nil, repos.EventLog, log)

	return &app{
		cfg:      cfg,
		log:      log,
		db:       db,
		repos:    repos,
		services: services.NewServices(repos, dispatcher, nil, cfg, log),
	}, nil
}

// Close releases the store
func (a *app) Close() {
	if err := a.db.Close(); err != nil {
		a.log.Error("failed to close database", logger.Err(err))
	}
}
