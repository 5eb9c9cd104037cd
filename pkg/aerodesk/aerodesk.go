// Package aerodesk provides the AeroDesk portfolio desktop as a Bubble Tea
// model that can be embedded in other programs or served remotely.
//
// # Basic Usage
//
//	model, err := aerodesk.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := tea.NewProgram(model, aerodesk.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model, err := aerodesk.New(
//		aerodesk.WithTheme("dracula"),
//		aerodesk.WithAnimations(false),
//		aerodesk.WithContentFile("portfolio.toml"),
//	)
//
// # Using with sip (Web Terminal)
//
//	server := sip.NewServer(sip.DefaultConfig())
//	server.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
//		model, _ := aerodesk.New(aerodesk.WithVisitor("guest"))
//		return model, aerodesk.ProgramOptions()
//	})
package aerodesk

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"

	"github.com/aerodesk/aerodesk/internal/app"
	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
	"github.com/aerodesk/aerodesk/internal/input"
)

// Model is the desktop model. It implements tea.Model.
type Model = app.Desktop

// Options configures an AeroDesk instance.
type Options struct {
	// Theme is the color theme name (e.g., "dracula", "nord").
	// Leave empty for the built-in Aero palette.
	Theme string

	// Animations enables the taskbar restore animation.
	Animations bool

	// ASCIIOnly uses ASCII characters instead of Unicode glyphs.
	ASCIIOnly bool

	// BorderStyle sets the window border style.
	// Valid values: "rounded", "normal", "thick", "double", "hidden", "block", "ascii"
	BorderStyle string

	// TaskbarPosition sets where the taskbar appears: "bottom" or "top".
	TaskbarPosition string

	// HideWindowButtons hides the minimize/full screen/close buttons.
	HideWindowButtons bool

	// ContentFile is a TOML catalog replacing the built-in portfolio.
	ContentFile string

	// Visitor names who is looking. Empty means "guest".
	Visitor string

	// RememberVisits greets returning visitors with the returning text.
	RememberVisits bool

	// Width is the initial width (set automatically if 0).
	Width int

	// Height is the initial height (set automatically if 0).
	Height int

	// Logger receives the desktop log. Nil uses the default charm logger.
	Logger *log.Logger

	// UserConfig is a custom user configuration. If nil, defaults are used.
	UserConfig *config.UserConfig
}

// Option is a functional option for configuring AeroDesk.
type Option func(*Options)

// WithTheme sets the color theme.
func WithTheme(name string) Option {
	return func(o *Options) {
		o.Theme = name
	}
}

// WithAnimations enables or disables the restore animation.
func WithAnimations(enabled bool) Option {
	return func(o *Options) {
		o.Animations = enabled
	}
}

// WithASCIIOnly enables ASCII-only mode.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithBorderStyle sets the window border style.
func WithBorderStyle(style string) Option {
	return func(o *Options) {
		o.BorderStyle = style
	}
}

// WithTaskbarPosition sets the taskbar position.
func WithTaskbarPosition(position string) Option {
	return func(o *Options) {
		o.TaskbarPosition = position
	}
}

// WithHideWindowButtons hides window control buttons.
func WithHideWindowButtons(hide bool) Option {
	return func(o *Options) {
		o.HideWindowButtons = hide
	}
}

// WithContentFile replaces the built-in catalog.
func WithContentFile(path string) Option {
	return func(o *Options) {
		o.ContentFile = path
	}
}

// WithVisitor names the visitor.
func WithVisitor(name string) Option {
	return func(o *Options) {
		o.Visitor = name
	}
}

// WithRememberVisits turns the persistent visit store on or off.
func WithRememberVisits(enabled bool) Option {
	return func(o *Options) {
		o.RememberVisits = enabled
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(o *Options) {
		o.Width = width
		o.Height = height
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Animations:     true,
		RememberVisits: true,
	}
}

// New creates a desktop with the given options. It fails when the content
// file cannot be loaded or its icons overlap.
func New(opts ...Option) (*Model, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return newModel(options)
}

// PTY reports a session's terminal size.
type PTY interface {
	Width() int
	Height() int
}

// NewForPTY creates a desktop sized for a PTY session.
func NewForPTY(pty PTY, opts ...Option) (*Model, error) {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	options.Width = pty.Width()
	options.Height = pty.Height()
	return newModel(options)
}

func newModel(options Options) (*Model, error) {
	app.SetInputHandler(input.HandleInput)

	userConfig := options.UserConfig
	if userConfig == nil {
		userConfig = config.DefaultConfig()
	}

	config.ApplyOverrides(config.Overrides{
		ASCIIOnly:         options.ASCIIOnly,
		BorderStyle:       options.BorderStyle,
		TaskbarPosition:   options.TaskbarPosition,
		HideWindowButtons: options.HideWindowButtons,
		NoAnimations:      !options.Animations,
		ContentFile:       options.ContentFile,
		ThemeName:         options.Theme,
	}, userConfig)

	cat := content.DefaultCatalog()
	if path := userConfig.Desktop.ContentFile; path != "" {
		c, err := content.LoadCatalogFile(path)
		if err != nil {
			return nil, err
		}
		cat = c
	}

	var visits *content.VisitStore
	if options.RememberVisits && userConfig.RemembersVisits() {
		if v, err := content.DefaultVisitStore(); err == nil {
			visits = v
		}
	}

	return app.New(app.Options{
		Config:  userConfig,
		Catalog: cat,
		Visitor: options.Visitor,
		Visits:  visits,
		Logger:  options.Logger,
		Width:   options.Width,
		Height:  options.Height,
	})
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// AeroDesk:
//
//	p := tea.NewProgram(model, aerodesk.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return input.ProgramOptions()
}

// FilterMouseMotion is a tea.WithFilter function that drops pointer motion
// unless a drag, resize or icon press is in progress.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	return input.MotionFilter(model, msg)
}

// Config re-exports the config loaders.
var Config = struct {
	// LoadUserConfig loads the user's configuration file.
	LoadUserConfig func() (*config.UserConfig, error)
	// DefaultConfig returns the default configuration.
	DefaultConfig func() *config.UserConfig
	// GetConfigPath returns the path to the configuration file.
	GetConfigPath func() (string, error)
}{
	LoadUserConfig: config.LoadUserConfig,
	DefaultConfig:  config.DefaultConfig,
	GetConfigPath:  config.GetConfigPath,
}
