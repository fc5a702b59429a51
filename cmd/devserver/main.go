package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/erazemk/foodcourt/internal/api"
	"github.com/erazemk/foodcourt/internal/config"
	"github.com/erazemk/foodcourt/internal/db"
	"github.com/erazemk/foodcourt/internal/logging"
	"github.com/erazemk/foodcourt/internal/metrics"
	"github.com/erazemk/foodcourt/internal/store"
)

func main() {
	fs := flag.NewFlagSet("devserver", flag.ContinueOnError)

	var configPath string
	fs.StringVar(&configPath, "config", "", "")
	fs.StringVar(&configPath, "c", "", "")

	var dbPath string
	fs.StringVar(&dbPath, "db", "", "")
	fs.StringVar(&dbPath, "d", "", "")

	var addr string
	fs.StringVar(&addr, "addr", "", "")
	fs.StringVar(&addr, "a", "", "")

	var adminEmail string
	fs.StringVar(&adminEmail, "email", "", "")
	fs.StringVar(&adminEmail, "e", "", "")

	var adminPassword string
	fs.StringVar(&adminPassword, "password", "", "")
	fs.StringVar(&adminPassword, "p", "", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	fs.Usage = func() {
		fmt.Fprint(os.Stdout, `Usage: devserver [flags]

Local food-court backend for exercising the admin client.

Flags:
  -c, -config <path>      YAML config file (default: none)
  -d, -db <path>          SQLite database path (default: foodcourt.sqlite3)
  -a, -addr <host:port>   listen address (default: :4000)
  -e, -email <address>    admin email on first run (default: admin@foodcourt.local)
  -p, -password <secret>  admin password on first run (default: generated)
  -l, -log <path>         log file path (default: no file, stdout/stderr only)
  -h, -help               show this help and exit
`)
	}

	if err := fs.Parse(os.Args[1:]); err != nil {
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		fs.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	if dbPath != "" {
		cfg.DevServer.DB = dbPath
	}
	if addr != "" {
		cfg.DevServer.Addr = addr
	}
	if adminEmail != "" {
		cfg.DevServer.AdminEmail = adminEmail
	}
	if adminPassword != "" {
		cfg.DevServer.AdminPassword = adminPassword
	}
	if logPath != "" {
		cfg.Logging.File = logPath
	}

	closeLog, err := logging.Setup(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	database, err := db.OpenWithSchema(cfg.DevServer.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer database.Close()

	// Create the admin when there are no users yet.
	password, created, err := api.EnsureAdmin(context.Background(), database, cfg.DevServer.AdminEmail, cfg.DevServer.AdminPassword)
	if err != nil {
		slog.Error("failed to create admin account", "error", err)
		os.Exit(1)
	}
	if created {
		printInitResult(cfg.DevServer.DB, cfg.DevServer.AdminEmail, password, cfg.DevServer.AdminPassword == "")
		fmt.Println()
	}

	slog.Info("database ready", "path", cfg.DevServer.DB)

	// Load JWT secret from database (auto-generated on first run).
	jwtSecret, err := store.GetJWTSecret(context.Background(), database)
	if err != nil {
		slog.Error("failed to get JWT secret", "error", err)
		os.Exit(1)
	}

	metrics.Register()

	server := &http.Server{
		Addr:              cfg.DevServer.Addr,
		Handler:           api.NewRouter(database, jwtSecret),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-quit
		slog.Info("shutdown signal received", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("server forced to shutdown", "error", err)
		}
	}()

	slog.Info("server started", "addr", cfg.DevServer.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped, closing database")
}

// printInitResult prints the database initialization result to stdout.
func printInitResult(dbPath, email, password string, generated bool) {
	fmt.Printf("Database ready: %s\n", dbPath)
	fmt.Println()
	fmt.Println("Admin account created:")
	fmt.Printf("  Email:    %s\n", email)
	if generated {
		fmt.Printf("  Password: %s\n", password)
		fmt.Println()
		fmt.Println("Save this password, it cannot be recovered.")
	} else {
		fmt.Println("  Password: as configured")
	}
	fmt.Printf("Log in with: foodcourt login -email %s\n", email)
}
