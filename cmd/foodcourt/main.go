package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/erazemk/foodcourt/internal/auth"
	"github.com/erazemk/foodcourt/internal/client"
	"github.com/erazemk/foodcourt/internal/config"
	"github.com/erazemk/foodcourt/internal/db"
	"github.com/erazemk/foodcourt/internal/form"
	"github.com/erazemk/foodcourt/internal/logging"
	"github.com/erazemk/foodcourt/internal/metrics"
	"github.com/erazemk/foodcourt/internal/model"
	"github.com/erazemk/foodcourt/internal/nav"
	"github.com/erazemk/foodcourt/internal/notify"
	"github.com/erazemk/foodcourt/internal/store"
	"github.com/erazemk/foodcourt/internal/submit"
	"github.com/erazemk/foodcourt/internal/tui"
)

const usage = `Usage: foodcourt <command> [flags]

Commands:
  login        log in and store the session
  logout       forget the stored session
  add          add a menu item from flags
  form         add a menu item in an interactive form
  categories   list the stall categories

Every command accepts:
  -c, -config <path>   YAML config file
  -url <base URL>      backend base URL
  -metrics-file <path> Prometheus textfile for submission counters
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	var code int
	switch os.Args[1] {
	case "login":
		code = cmdLogin(os.Args[2:])
	case "logout":
		code = cmdLogout(os.Args[2:])
	case "add":
		code = cmdAdd(os.Args[2:])
	case "form":
		code = cmdForm(os.Args[2:])
	case "categories":
		code = cmdCategories(os.Args[2:])
	case "-h", "-help", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n%s", os.Args[1], usage)
		code = 1
	}
	os.Exit(code)
}

// common holds the flags shared by every command.
type common struct {
	configPath  string
	baseURL     string
	metricsFile string
}

func (c *common) register(fs *flag.FlagSet) {
	fs.StringVar(&c.configPath, "config", "", "YAML config file")
	fs.StringVar(&c.configPath, "c", "", "YAML config file (shorthand)")
	fs.StringVar(&c.baseURL, "url", "", "backend base URL")
	fs.StringVar(&c.metricsFile, "metrics-file", "", "write submission counters to this Prometheus textfile on exit")
}

// load reads the configuration and applies flag overrides.
func (c *common) load() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.metricsFile != "" {
		cfg.Metrics.Textfile = c.metricsFile
	}
	if c.baseURL != "" {
		cfg.Backend.BaseURL = strings.TrimRight(c.baseURL, "/")
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setup loads config, installs the logger and returns a cleanup.
func setup(c *common) (*config.Config, func(), error) {
	cfg, err := c.load()
	if err != nil {
		return nil, nil, err
	}
	closeLog, err := logging.Setup(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		return nil, nil, err
	}
	return cfg, closeLog, nil
}

// exportMetrics writes the client counters to the configured textfile.
func exportMetrics(cfg *config.Config) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := metrics.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		slog.Error("failed to export metrics", "error", err)
	}
}

func newClient(cfg *config.Config) *client.Client {
	return client.New(cfg.Backend.BaseURL,
		client.WithTimeout(cfg.Backend.Timeout),
		client.WithDebug(cfg.Backend.Debug),
	)
}

func openSessions(cfg *config.Config) (*sql.DB, error) {
	database, err := db.OpenWithSchema(cfg.Session.Path)
	if err != nil {
		return nil, fmt.Errorf("opening session cache: %w", err)
	}
	return database, nil
}

// currentSession resolves the session: an explicit token wins over the
// stored one.
func currentSession(ctx context.Context, cfg *config.Config, database *sql.DB) (model.Session, error) {
	if cfg.Session.Token != "" {
		return auth.SessionFromToken(cfg.Session.Token)
	}
	return store.LoadSession(ctx, database, cfg.Backend.BaseURL)
}

func parse(fs *flag.FlagSet, args []string) (ok bool, code int) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return false, 0
		}
		return false, 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "unexpected argument: %s\n", fs.Arg(0))
		return false, 1
	}
	return true, 0
}

func cmdLogin(args []string) int {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	var c common
	c.register(fs)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (read from stdin if empty)")
	if ok, code := parse(fs, args); !ok {
		return code
	}

	cfg, closeLog, err := setup(&c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	if *email == "" {
		slog.Error("login requires -email")
		return 1
	}
	if *password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			slog.Error("reading password", "error", err)
			return 1
		}
		*password = strings.TrimRight(line, "\r\n")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Backend.Timeout+time.Second)
	defer cancel()

	reply, err := newClient(cfg).Login(ctx, *email, *password)
	if err != nil {
		slog.Error("login failed", "error", err)
		return 1
	}
	if !reply.Success || reply.Token == "" {
		msg := reply.Message
		if msg == "" {
			msg = "login failed"
		}
		slog.Error(msg)
		return 1
	}

	database, err := openSessions(cfg)
	if err != nil {
		slog.Error("failed to store session", "error", err)
		return 1
	}
	defer database.Close()

	s := model.Session{Token: reply.Token, Admin: reply.Admin}
	if err := store.SaveSession(ctx, database, cfg.Backend.BaseURL, s); err != nil {
		slog.Error("failed to store session", "error", err)
		return 1
	}

	slog.Info("logged in", "email", *email, "admin", reply.Admin, "backend", cfg.Backend.BaseURL)
	if !reply.Admin {
		slog.Warn("account is not an admin, adding items will be refused")
	}
	return 0
}

func cmdLogout(args []string) int {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	var c common
	c.register(fs)
	if ok, code := parse(fs, args); !ok {
		return code
	}

	cfg, closeLog, err := setup(&c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	database, err := openSessions(cfg)
	if err != nil {
		slog.Error("failed to open session cache", "error", err)
		return 1
	}
	defer database.Close()

	if err := store.ClearSession(context.Background(), database, cfg.Backend.BaseURL); err != nil {
		slog.Error("failed to clear session", "error", err)
		return 1
	}
	slog.Info("logged out", "backend", cfg.Backend.BaseURL)
	return 0
}

func cmdAdd(args []string) int {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	var c common
	c.register(fs)
	name := fs.String("name", "", "item name")
	description := fs.String("description", "", "item description")
	price := fs.String("price", "", "item price")
	category := fs.String("category", model.DefaultCategory, "stall category")
	imagePath := fs.String("image", "", "path to a JPEG or PNG image")
	if ok, code := parse(fs, args); !ok {
		return code
	}

	cfg, closeLog, err := setup(&c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()

	ctx := context.Background()
	database, err := openSessions(cfg)
	if err != nil {
		slog.Error("failed to open session cache", "error", err)
		return 1
	}
	defer database.Close()

	session, err := currentSession(ctx, cfg, database)
	if err != nil {
		slog.Warn("ignoring unusable session", "error", err)
		session = model.Session{}
	}

	sink := notify.LogSink{Logger: slog.Default()}
	guard := auth.NewGuard(sink, nav.NavigatorFunc(func(path string) {
		slog.Debug("redirected", "path", path)
	}))
	if err := guard.Check(session); err != nil {
		return 1
	}

	f := form.New(
		form.WithPreviewDir(cfg.Preview.Dir),
		form.WithPreviewDimension(cfg.Preview.MaxDimension),
	)
	defer f.Close()

	fields := []struct{ key, value string }{
		{form.FieldName, *name},
		{form.FieldDescription, *description},
		{form.FieldPrice, *price},
		{form.FieldCategory, *category},
	}
	for _, fv := range fields {
		if err := f.SetField(fv.key, fv.value); err != nil {
			slog.Error("invalid field", "field", fv.key, "value", fv.value, "error", err)
			return 1
		}
	}

	if *imagePath != "" {
		img, err := form.LoadImage(*imagePath)
		if err != nil {
			slog.Error("cannot use image", "path", *imagePath, "error", err)
			return 1
		}
		if err := f.SetImage(img); err != nil {
			slog.Error("cannot preview image", "path", *imagePath, "error", err)
			return 1
		}
	}

	if err := form.Validate(f.Snapshot()); err != nil {
		slog.Error("invalid item", "error", err)
		return 1
	}

	ctrl := submit.NewController(f, newClient(cfg), sink, func() model.Session { return session })
	out := ctrl.Submit(ctx)
	exportMetrics(cfg)
	if !out.OK() {
		return 1
	}
	return 0
}

func cmdForm(args []string) int {
	fs := flag.NewFlagSet("form", flag.ContinueOnError)
	var c common
	c.register(fs)
	if ok, code := parse(fs, args); !ok {
		return code
	}

	cfg, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	// The terminal belongs to the form; logs only go to the file.
	logger, closeLog, err := logging.New(cfg.Logging.Level, cfg.Logging.File, io.Discard, io.Discard)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer closeLog()
	slog.SetDefault(logger)

	database, err := openSessions(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer database.Close()

	load := func() (model.Session, error) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return currentSession(ctx, cfg, database)
	}
	session, err := load()
	if err != nil {
		slog.Warn("ignoring unusable session", "error", err)
		session = model.Session{}
	}

	f := form.New(
		form.WithPreviewDir(cfg.Preview.Dir),
		form.WithPreviewDimension(cfg.Preview.MaxDimension),
	)
	m := tui.New(tui.Deps{
		Form:         f,
		Uploader:     newClient(cfg),
		Session:      session,
		LoadSession:  load,
		PollInterval: 2 * time.Second,
	})
	defer m.Close()

	final, err := tea.NewProgram(m).Run()
	exportMetrics(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	if fm, ok := final.(tui.Model); ok && fm.Redirected() {
		fmt.Fprintln(os.Stderr, auth.MsgLoginFirst)
		return 1
	}
	return 0
}

func cmdCategories(args []string) int {
	fs := flag.NewFlagSet("categories", flag.ContinueOnError)
	if ok, code := parse(fs, args); !ok {
		return code
	}
	for i, name := range model.Categories {
		if i == 0 {
			fmt.Printf("%s (default)\n", name)
			continue
		}
		fmt.Println(name)
	}
	return 0
}
