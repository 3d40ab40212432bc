package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/opentrivia/internal/config"
	"github.com/five82/opentrivia/internal/opentdb"
	"github.com/five82/opentrivia/internal/prefs"
	"github.com/five82/opentrivia/internal/state"
	"github.com/five82/opentrivia/internal/ui"
)

const logPrefix = "opentrivia"

// Options configure the OpenTrivia application. Non-empty fields override the
// config file.
type Options struct {
	ConfigPath      string
	SettingsBackend string
	SettingsPath    string
	LogFile         string
	Ephemeral       bool // keep settings in memory only
}

// Env is the resolved runtime environment shared by the TUI and the CLI
// subcommands.
type Env struct {
	Config   config.Config
	Prefs    prefs.Store
	Settings prefs.Settings
	Client   *opentdb.Client
}

// Setup loads configuration, opens the settings store and builds the API
// client. Callers must Close the returned Env.
func Setup(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if v := strings.TrimSpace(opts.SettingsBackend); v != "" {
		cfg.SettingsBackend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(opts.SettingsPath); v != "" {
		cfg.SettingsPath = v
	}
	if v := strings.TrimSpace(opts.LogFile); v != "" {
		cfg.LogFile = v
	}
	if opts.Ephemeral {
		cfg.SettingsBackend = prefs.BackendMemory
	}

	store, err := prefs.Open(cfg.SettingsBackend, cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}

	client, err := opentdb.NewClient(cfg.BaseURL, opentdb.WithTimeout(cfg.RequestTimeout))
	if err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("init opentdb client: %w", err)
	}

	return &Env{
		Config:   cfg,
		Prefs:    store,
		Settings: prefs.Load(store),
		Client:   client,
	}, nil
}

// Close releases the settings store.
func (e *Env) Close() error {
	if e == nil || e.Prefs == nil {
		return nil
	}
	return e.Prefs.Close()
}

// Run boots the OpenTrivia TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Setup(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	closeLog, err := openLog(env.Config)
	if err != nil {
		return err
	}
	defer closeLog()

	log.Printf("starting: endpoint=%s settings=%s", env.Client.BaseURL(), env.Config.SettingsBackend)

	uiOpts := ui.Options{
		Context:         ctx,
		Fetcher:         env.Client,
		Store:           state.NewStore(),
		Prefs:           env.Prefs,
		Settings:        env.Settings,
		Endpoint:        endpointHost(env.Client.BaseURL()),
		LogFile:         env.Config.LogFile,
		FilterDebounce:  env.Config.FilterDebounce,
		RefreshThrottle: env.Config.RefreshThrottle,
		AutoRefresh:     env.Config.AutoRefresh,
	}
	err = ui.Run(uiOpts)
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// openLog sends the standard logger to the configured file for as long as the
// TUI owns the terminal.
func openLog(cfg config.Config) (func(), error) {
	if strings.TrimSpace(cfg.LogFile) == "" {
		return func() {}, nil
	}
	if err := os.MkdirAll(cfg.LogDir(), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(cfg.LogFile, logPrefix)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = f.Close() }, nil
}

func endpointHost(base string) string {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return base
	}
	return u.Host
}
