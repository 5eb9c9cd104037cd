package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"golang.org/x/term"

	"github.com/aerodesk/aerodesk/internal/app"
	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
	"github.com/aerodesk/aerodesk/internal/input"
	"github.com/aerodesk/aerodesk/internal/logging"
	"github.com/aerodesk/aerodesk/internal/server"
)

// loadConfig loads the user config and applies the command line overrides.
// A broken config falls back to the defaults.
func loadConfig() *config.UserConfig {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("Failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         asciiOnly,
		BorderStyle:       borderStyle,
		TaskbarPosition:   taskbarPosition,
		HideWindowButtons: hideWindowButtons,
		HideClock:         hideClock,
		NoAnimations:      noAnimations,
		ThemeName:         themeName,
		ContentFile:       contentFile,
	}, userConfig)

	return userConfig
}

// loadCatalog returns the configured content file, or the built-in catalog.
func loadCatalog(userConfig *config.UserConfig) (*content.Catalog, error) {
	path := userConfig.Desktop.ContentFile
	if path == "" {
		return content.DefaultCatalog(), nil
	}
	cat, err := content.LoadCatalogFile(path)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded content file", "path", path, "windows", len(cat.Windows))
	return cat, nil
}

// openVisits returns the visit store, or nil when visits are not remembered
// or the store cannot be located.
func openVisits(userConfig *config.UserConfig) *content.VisitStore {
	if !userConfig.RemembersVisits() {
		return nil
	}
	visits, err := content.DefaultVisitStore()
	if err != nil {
		log.Warn("Visits will not be remembered", "err", err)
		return nil
	}
	return visits
}

func logLevel(userConfig *config.UserConfig) string {
	if debugMode {
		return "debug"
	}
	return userConfig.Server.LogLevel
}

func runLocal() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("aerodesk needs a terminal; use `aerodesk ssh` or `aerodesk web` to serve it instead")
	}

	userConfig := loadConfig()

	// The TUI owns the screen, so log lines only go to the file, and only
	// when asked for.
	if debugMode {
		closeLog, err := logging.Setup(logging.Options{Level: "debug"})
		if err != nil {
			return err
		}
		defer func() { _ = closeLog() }()
		if path, err := config.GetConfigPath(); err == nil {
			log.Debug("configuration", "path", path)
		}
	} else {
		log.SetDefault(log.New(io.Discard))
	}

	cat, err := loadCatalog(userConfig)
	if err != nil {
		return err
	}

	app.SetInputHandler(input.HandleInput)

	desk, err := app.New(app.Options{
		Config:  userConfig,
		Catalog: cat,
		Visitor: server.VisitorName(os.Getenv("USER")),
		Visits:  openVisits(userConfig),
	})
	if err != nil {
		return err
	}

	opts := append(input.ProgramOptions(), tea.WithoutSignalHandler())
	p := tea.NewProgram(desk, opts...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// serverOptions resolves the shared server settings and installs the
// server logger, which also writes to stderr.
func serverOptions(userConfig *config.UserConfig, host string) (server.Options, func() error, error) {
	closeLog, err := logging.Setup(logging.Options{Level: logLevel(userConfig), Stderr: true})
	if err != nil {
		return server.Options{}, nil, err
	}

	cat, err := loadCatalog(userConfig)
	if err != nil {
		_ = closeLog()
		return server.Options{}, nil, err
	}

	if host == "" {
		host = userConfig.Server.Host
	}
	app.SetInputHandler(input.HandleInput)

	return server.Options{
		Host:    host,
		Config:  userConfig,
		Catalog: cat,
		Visits:  openVisits(userConfig),
		Logger:  log.Default(),
	}, closeLog, nil
}

func runSSHServer(host, port, keyPath string) error {
	userConfig := loadConfig()
	opts, closeLog, err := serverOptions(userConfig, host)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	opts.Port = port
	if opts.Port == "" {
		opts.Port = userConfig.Server.SSHPort
	}
	opts.HostKeyPath = keyPath
	if opts.HostKeyPath == "" {
		opts.HostKeyPath = userConfig.Server.HostKeyPath
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting AeroDesk SSH server", "host", opts.Host, "port", opts.Port, "version", version)
	if err := server.ServeSSH(ctx, opts); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runWebServer(host, port string) error {
	userConfig := loadConfig()
	opts, closeLog, err := serverOptions(userConfig, host)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	opts.Port = port
	if opts.Port == "" {
		opts.Port = userConfig.Server.WebPort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting AeroDesk web server", "host", opts.Host, "port", opts.Port, "version", version)
	if err := server.ServeWeb(ctx, opts); err != nil {
		return fmt.Errorf("web server error: %w", err)
	}
	return nil
}
