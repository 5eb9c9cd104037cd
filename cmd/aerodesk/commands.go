package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/theme"
)

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

func editConfigFile() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	if !config.ConfigExists(path) {
		if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
			return err
		}
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		parts = []string{"vi"}
	}

	// #nosec G204 - the editor comes from the user's own environment
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, err := config.LoadUserConfigFile(path); err != nil {
		return fmt.Errorf("configuration saved but invalid: %w", err)
	}
	return nil
}

func resetConfigToDefaults() error {
	path, err := config.ResetConfig()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration reset to defaults: %s\n", path)
	return nil
}

func listKeybindings() error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		return err
	}
	printKeybindings(os.Stdout, config.GetKeybindings(config.NewKeybindRegistry(userConfig)))
	return nil
}

func printKeybindings(w io.Writer, sections []config.KeybindingSection) {
	title := lipgloss.NewStyle().Bold(true)
	for i, sec := range sections {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		_, _ = fmt.Fprintln(w, title.Render(sec.Title))
		for _, b := range sec.Bindings {
			_, _ = fmt.Fprintf(w, "  %-28s %s\n", b.Key, b.Description)
		}
	}
}

func listThemes() error {
	// Swatches are downsampled to what the terminal can show.
	out := colorprofile.NewWriter(os.Stdout, os.Environ())
	return printThemes(out, out.Profile)
}

func printThemes(w io.Writer, profile colorprofile.Profile) error {
	ids := theme.Available()
	width := 0
	for _, id := range ids {
		width = max(width, len(id))
	}

	for _, id := range ids {
		if profile == colorprofile.Ascii || profile == colorprofile.NoTTY {
			if _, err := fmt.Fprintln(w, id); err != nil {
				return err
			}
			continue
		}

		t, ok := theme.Lookup(id)
		if !ok {
			continue
		}
		var swatch strings.Builder
		for _, c := range theme.Swatch(t) {
			swatch.WriteString(lipgloss.NewStyle().Background(c).Render("  "))
		}
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, id, swatch.String()); err != nil {
			return err
		}
	}
	return nil
}
