// Package main implements AeroDesk, a portfolio dressed up as a desktop:
// windows, icons and a taskbar drawn in the terminal, served locally, over
// SSH or to a browser.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/aerodesk/aerodesk/internal/config"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	debugMode         bool
	asciiOnly         bool
	themeName         string
	borderStyle       string
	taskbarPosition   string
	hideWindowButtons bool
	hideClock         bool
	noAnimations      bool
	contentFile       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aerodesk",
		Short: "A portfolio desktop for the terminal",
		Long: `AeroDesk - a portfolio desktop for the terminal

Browse a portfolio the way you would browse a desktop: open windows from
icons, drag them by the title bar, resize them from the borders and switch
between them from the taskbar. Run it locally, serve it over SSH or serve it
to a browser.`,
		Example: `  # Run AeroDesk
  aerodesk

  # Run with your own portfolio
  aerodesk --content portfolio.toml

  # Run with a specific theme
  aerodesk --theme dracula

  # List themes with a colour preview
  aerodesk themes

  # Serve over SSH
  aerodesk ssh --port 2222

  # Serve to browsers
  aerodesk web --port 7681

  # Edit configuration
  aerodesk config edit`,
		Version: version,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runLocal()
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to the log file")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of Unicode glyphs")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "", "Color theme to use (e.g., dracula, nord). Leave empty for the Aero palette")
	rootCmd.PersistentFlags().StringVar(&borderStyle, "border-style", "", "Window border style: rounded, normal, thick, double, hidden, block, ascii (default: from config or rounded)")
	rootCmd.PersistentFlags().StringVar(&taskbarPosition, "taskbar-position", "", "Taskbar position: bottom, top (default: from config or bottom)")
	rootCmd.PersistentFlags().BoolVar(&hideWindowButtons, "hide-window-buttons", false, "Hide window control buttons (minimize, full screen, close)")
	rootCmd.PersistentFlags().BoolVar(&hideClock, "hide-clock", false, "Hide the taskbar clock")
	rootCmd.PersistentFlags().BoolVar(&noAnimations, "no-animations", false, "Disable the taskbar restore animation")
	rootCmd.PersistentFlags().StringVar(&contentFile, "content", "", "TOML catalog of windows and icons replacing the built-in portfolio")

	var sshHost, sshPort, sshKeyPath string

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Serve AeroDesk over SSH",
		Long: `Serve AeroDesk over SSH

Every connection gets its own desktop. The SSH user name is the visitor name
shown in the terminal window and used to greet returning visitors. The host
key is generated on first start if it does not exist.`,
		Example: `  # Start on the configured port
  aerodesk ssh

  # Listen on all interfaces
  aerodesk ssh --host 0.0.0.0 --port 22

  # Use a specific host key
  aerodesk ssh --key-path /etc/aerodesk/host_key`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSSHServer(sshHost, sshPort, sshKeyPath)
		},
	}

	sshCmd.Flags().StringVar(&sshHost, "host", "", "SSH server host (default: from config or "+config.DefaultHost+")")
	sshCmd.Flags().StringVar(&sshPort, "port", "", "SSH server port (default: from config or "+config.DefaultSSHPort+")")
	sshCmd.Flags().StringVar(&sshKeyPath, "key-path", "", "Path to SSH host key (auto-generated if missing)")

	var webHost, webPort string

	webCmd := &cobra.Command{
		Use:   "web",
		Short: "Serve AeroDesk to web browsers",
		Long: `Serve AeroDesk to web browsers

Every browser tab gets its own desktop. Browser visitors are greeted as
guests.`,
		Example: `  # Start on the configured port
  aerodesk web

  # Listen on all interfaces
  aerodesk web --host 0.0.0.0 --port 8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWebServer(webHost, webPort)
		},
	}

	webCmd.Flags().StringVar(&webHost, "host", "", "Web server host (default: from config or "+config.DefaultHost+")")
	webCmd.Flags().StringVar(&webPort, "port", "", "Web server port (default: from config or "+config.DefaultWebPort+")")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage AeroDesk configuration",
		Long:  `Manage AeroDesk configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		Long:  `Print the path to the AeroDesk configuration file`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the AeroDesk configuration file in your default editor

The editor is determined by checking $EDITOR, then $VISUAL, then vi.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return editConfigFile()
		},
	}

	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the AeroDesk configuration file to default settings

This overwrites your existing configuration.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return resetConfigToDefaults()
		},
	}

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	keybindsCmd := &cobra.Command{
		Use:     "keybinds",
		Aliases: []string{"keys", "kb"},
		Short:   "List keybindings",
		Long:    `Display all configured keybindings`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available themes",
		Long: `List every built-in and custom theme with a colour swatch

Custom themes are read from the themes directory next to the configuration
file. The swatch is reduced to what the terminal supports; without colour
support only the names are printed.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listThemes()
		},
	}

	rootCmd.AddCommand(sshCmd, webCmd, configCmd, keybindsCmd, themesCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
