package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// configRelPath is the config file location relative to the XDG config dirs.
const configRelPath = "aerodesk/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Desktop     DesktopConfig     `toml:"desktop"`
	Server      ServerConfig      `toml:"server"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle       string `toml:"border_style"`        // Border style: rounded, normal, thick, double, hidden, block, ascii
	HideWindowButtons bool   `toml:"hide_window_buttons"` // Hide the minimize, full screen and close buttons
	TaskbarPosition   string `toml:"taskbar_position"`    // Taskbar position: bottom, top
	AnimationsEnabled *bool  `toml:"animations_enabled"`  // Enable restore animations (default: true)
	HideClock         bool   `toml:"hide_clock"`          // Hide the taskbar clock
	HideTray          bool   `toml:"hide_tray"`           // Hide the CPU/RAM tray
	Wallpaper         string `toml:"wallpaper"`           // Wallpaper: aero, plain, dots
	Theme             string `toml:"theme"`               // Color theme name (e.g., dracula, nord, my-custom-theme)
}

// DesktopConfig holds window manager settings. Dimensions are in terminal cells.
type DesktopConfig struct {
	ContentFile      string `toml:"content_file"`      // Optional TOML catalog replacing the built-in one
	DefaultWidth     int    `toml:"default_width"`     // Initial window width
	DefaultHeight    int    `toml:"default_height"`    // Initial window height
	MinWidth         int    `toml:"min_width"`         // Minimum window width
	MinHeight        int    `toml:"min_height"`        // Minimum window height
	MobileBreakpoint int    `toml:"mobile_breakpoint"` // Viewport width below which windows fill the screen; 0 disables
	RememberVisits   *bool  `toml:"remember_visits"`   // Persist the "has visited" flag (default: true)
}

// ServerConfig holds settings for the ssh and web commands
type ServerConfig struct {
	Host        string `toml:"host"`          // Listen host
	SSHPort     string `toml:"ssh_port"`      // SSH port
	WebPort     string `toml:"web_port"`      // Web terminal port
	HostKeyPath string `toml:"host_key_path"` // SSH host key; empty uses the XDG data dir
	LogLevel    string `toml:"log_level"`     // debug, info, warn, error
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Window  map[string][]string `toml:"window"`
	Desktop map[string][]string `toml:"desktop"`
	System  map[string][]string `toml:"system"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			BorderStyle:     "rounded",
			TaskbarPosition: "bottom",
			Wallpaper:       "aero",
		},
		Desktop: DesktopConfig{
			DefaultWidth:     DefaultWindowWidth,
			DefaultHeight:    DefaultWindowHeight,
			MinWidth:         MinWindowWidth,
			MinHeight:        MinWindowHeight,
			MobileBreakpoint: MobileBreakpoint,
		},
		Server: ServerConfig{
			Host:     DefaultHost,
			SSHPort:  DefaultSSHPort,
			WebPort:  DefaultWebPort,
			LogLevel: "info",
		},
		Keybindings: KeybindingsConfig{
			Window: map[string][]string{
				"next_window":       {"tab"},
				"prev_window":       {"shift+tab"},
				"close_window":      {"ctrl+w"},
				"minimize_window":   {"alt+m"},
				"toggle_fullscreen": {"f11", "alt+f"},
				"move_left":         {"alt+left"},
				"move_right":        {"alt+right"},
				"move_up":           {"alt+up"},
				"move_down":         {"alt+down"},
				"grow_width":        {"alt+shift+right"},
				"shrink_width":      {"alt+shift+left"},
				"grow_height":       {"alt+shift+down"},
				"shrink_height":     {"alt+shift+up"},
			},
			Desktop: defaultDesktopKeybinds(),
			System: map[string][]string{
				"quit":        {"ctrl+c", "ctrl+q"},
				"toggle_logs": {"ctrl+l"},
				"toggle_help": {"f1"},
			},
		},
	}
}

func defaultDesktopKeybinds() map[string][]string {
	binds := map[string][]string{
		"toggle_search": {"ctrl+s", "super"},
		"toggle_power":  {"ctrl+p"},
		"dismiss":       {"esc"},
	}
	for i := 1; i <= MaxIconShortcuts; i++ {
		binds[fmt.Sprintf("open_icon_%d", i)] = []string{fmt.Sprintf("alt+%d", i)}
	}
	return binds
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return createDefaultConfig()
	}
	return LoadUserConfigFile(configPath)
}

// LoadUserConfigFile loads and validates the configuration at path.
// Missing settings are filled from the defaults.
func LoadUserConfigFile(path string) (*UserConfig, error) {
	// #nosec G304 - reading the user's own config is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("failed to parse config file at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingDesktop(&cfg, defaultCfg)
	fillMissingServer(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, e := range validation.Errors {
			log.Error("config error", "section", e.Field, "key", e.Key, "msg", e.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	for _, w := range validation.Warnings {
		log.Warn("config warning", "section", w.Field, "key", w.Key, "msg", w.Message)
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	cfg := DefaultConfig()
	if err := WriteConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to path with an explanatory header.
func WriteConfig(path string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# AeroDesk Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n")
	sb.WriteString("# Reset to defaults with: aerodesk config reset\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: rounded, normal, thick, double, hidden, block, ascii\n")
	sb.WriteString("# taskbar_position: bottom, top\n")
	sb.WriteString("# wallpaper: aero, plain, dots\n")
	sb.WriteString("# theme: any id listed by `aerodesk themes`; empty uses the Aero palette.\n")
	sb.WriteString("#   Custom themes: ~/.config/aerodesk/themes/*.json\n")
	sb.WriteString("#\n")
	sb.WriteString("# DESKTOP (sizes in terminal cells)\n")
	sb.WriteString("# content_file: path to a TOML catalog of windows and icons\n")
	sb.WriteString("# mobile_breakpoint: below this width windows fill the screen (0 disables)\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ResetConfig overwrites the config file with the defaults and returns its path.
func ResetConfig() (string, error) {
	path, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return "", fmt.Errorf("failed to get config path: %w", err)
	}
	if err := WriteConfig(path, DefaultConfig()); err != nil {
		return "", err
	}
	return path, nil
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.TaskbarPosition == "" {
		cfg.Appearance.TaskbarPosition = defaultCfg.Appearance.TaskbarPosition
	}
	if cfg.Appearance.Wallpaper == "" {
		cfg.Appearance.Wallpaper = defaultCfg.Appearance.Wallpaper
	}
}

// fillMissingDesktop fills in missing window manager settings with defaults
func fillMissingDesktop(cfg, defaultCfg *UserConfig) {
	d, def := &cfg.Desktop, defaultCfg.Desktop
	if d.DefaultWidth <= 0 {
		d.DefaultWidth = def.DefaultWidth
	}
	if d.DefaultHeight <= 0 {
		d.DefaultHeight = def.DefaultHeight
	}
	if d.MinWidth <= 0 {
		d.MinWidth = def.MinWidth
	}
	if d.MinHeight <= 0 {
		d.MinHeight = def.MinHeight
	}
	if d.MobileBreakpoint < 0 {
		d.MobileBreakpoint = def.MobileBreakpoint
	}
}

// fillMissingServer fills in missing server settings with defaults
func fillMissingServer(cfg, defaultCfg *UserConfig) {
	s, def := &cfg.Server, defaultCfg.Server
	if s.Host == "" {
		s.Host = def.Host
	}
	if s.SSHPort == "" {
		s.SSHPort = def.SSHPort
	}
	if s.WebPort == "" {
		s.WebPort = def.WebPort
	}
	if s.LogLevel == "" {
		s.LogLevel = def.LogLevel
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Window == nil {
		cfg.Keybindings.Window = make(map[string][]string)
	}
	if cfg.Keybindings.Desktop == nil {
		cfg.Keybindings.Desktop = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}

	fillMapDefaults(cfg.Keybindings.Window, defaultCfg.Keybindings.Window)
	fillMapDefaults(cfg.Keybindings.Desktop, defaultCfg.Keybindings.Desktop)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// AnimationsOn reports whether restore animations are enabled in cfg.
func (c *UserConfig) AnimationsOn() bool {
	return c.Appearance.AnimationsEnabled == nil || *c.Appearance.AnimationsEnabled
}

// RemembersVisits reports whether the "has visited" flag is persisted.
func (c *UserConfig) RemembersVisits() bool {
	return c.Desktop.RememberVisits == nil || *c.Desktop.RememberVisits
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// ConfigExists reports whether a config file is present at path.
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}
