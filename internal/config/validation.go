package config

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"charm.land/log/v2"
)

// ValidationIssue is one problem found in the user configuration.
type ValidationIssue struct {
	Field   string // config section, e.g. "appearance"
	Key     string
	Message string
}

// ValidationResult collects errors (fatal) and warnings (corrected or ignored).
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasErrors reports whether any fatal issue was found.
func (r *ValidationResult) HasErrors() bool { return len(r.Errors) > 0 }

// HasWarnings reports whether any non-fatal issue was found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

func (r *ValidationResult) errorf(field, key, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field, key, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationIssue{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

// ValidateConfig checks cfg. Recoverable problems are fixed in place and
// reported as warnings.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	r := &ValidationResult{}

	a := &cfg.Appearance
	if !slices.Contains(ValidBorderStyles, a.BorderStyle) {
		r.errorf("appearance", "border_style", "unknown style %q (valid: %s)", a.BorderStyle, strings.Join(ValidBorderStyles, ", "))
	}
	if a.TaskbarPosition != "bottom" && a.TaskbarPosition != "top" {
		r.errorf("appearance", "taskbar_position", "must be bottom or top, got %q", a.TaskbarPosition)
	}
	switch a.Wallpaper {
	case "aero", "plain", "dots":
	default:
		r.warnf("appearance", "wallpaper", "unknown wallpaper %q, using aero", a.Wallpaper)
		a.Wallpaper = "aero"
	}

	d := &cfg.Desktop
	if d.DefaultWidth < d.MinWidth {
		r.warnf("desktop", "default_width", "%d is below min_width %d, raised", d.DefaultWidth, d.MinWidth)
		d.DefaultWidth = d.MinWidth
	}
	if d.DefaultHeight < d.MinHeight {
		r.warnf("desktop", "default_height", "%d is below min_height %d, raised", d.DefaultHeight, d.MinHeight)
		d.DefaultHeight = d.MinHeight
	}

	if _, err := log.ParseLevel(cfg.Server.LogLevel); err != nil {
		r.warnf("server", "log_level", "unknown level %q, using info", cfg.Server.LogLevel)
		cfg.Server.LogLevel = "info"
	}

	validateKeybinds(r, "keybindings.window", cfg.Keybindings.Window, windowActions)
	validateKeybinds(r, "keybindings.desktop", cfg.Keybindings.Desktop, desktopActions)
	validateKeybinds(r, "keybindings.system", cfg.Keybindings.System, systemActions)
	checkConflicts(r, cfg.Keybindings)

	return r
}

func validateKeybinds(r *ValidationResult, field string, binds map[string][]string, known map[string]string) {
	for action, keys := range binds {
		if _, ok := known[action]; !ok {
			r.warnf(field, action, "unknown action, ignored")
			delete(binds, action)
			continue
		}
		for _, k := range keys {
			if strings.TrimSpace(k) == "" {
				r.errorf(field, action, "empty key")
			}
		}
	}
}

func checkConflicts(r *ValidationResult, kb KeybindingsConfig) {
	owner := make(map[string]string)
	var conflicts []string
	for _, m := range []map[string][]string{kb.System, kb.Window, kb.Desktop} {
		actions := make([]string, 0, len(m))
		for a := range m {
			actions = append(actions, a)
		}
		sort.Strings(actions)
		for _, a := range actions {
			for _, k := range m[a] {
				k = NormalizeKey(k)
				if prev, ok := owner[k]; ok && prev != a {
					conflicts = append(conflicts, fmt.Sprintf("%s is bound to both %s and %s", k, prev, a))
					continue
				}
				owner[k] = a
			}
		}
	}
	for _, c := range conflicts {
		r.warnf("keybindings", "", "%s; the first binding wins", c)
	}
}
