package config

import (
	"fmt"
	"sort"
	"strings"
)

// Action names used in the [keybindings] tables.
const (
	ActionNextWindow       = "next_window"
	ActionPrevWindow       = "prev_window"
	ActionCloseWindow      = "close_window"
	ActionMinimizeWindow   = "minimize_window"
	ActionToggleFullScreen = "toggle_fullscreen"
	ActionMoveLeft         = "move_left"
	ActionMoveRight        = "move_right"
	ActionMoveUp           = "move_up"
	ActionMoveDown         = "move_down"
	ActionGrowWidth        = "grow_width"
	ActionShrinkWidth      = "shrink_width"
	ActionGrowHeight       = "grow_height"
	ActionShrinkHeight     = "shrink_height"

	ActionToggleSearch = "toggle_search"
	ActionTogglePower  = "toggle_power"
	ActionDismiss      = "dismiss"
	// ActionOpenIconPrefix is followed by the 1-based icon index.
	ActionOpenIconPrefix = "open_icon_"

	ActionQuit       = "quit"
	ActionToggleLogs = "toggle_logs"
	ActionToggleHelp = "toggle_help"
)

var windowActions = map[string]string{
	ActionNextWindow:       "Focus next window",
	ActionPrevWindow:       "Focus previous window",
	ActionCloseWindow:      "Close window",
	ActionMinimizeWindow:   "Minimize window",
	ActionToggleFullScreen: "Toggle full screen",
	ActionMoveLeft:         "Move window left",
	ActionMoveRight:        "Move window right",
	ActionMoveUp:           "Move window up",
	ActionMoveDown:         "Move window down",
	ActionGrowWidth:        "Widen window",
	ActionShrinkWidth:      "Narrow window",
	ActionGrowHeight:       "Heighten window",
	ActionShrinkHeight:     "Shorten window",
}

var desktopActions = func() map[string]string {
	m := map[string]string{
		ActionToggleSearch: "Toggle start/search panel",
		ActionTogglePower:  "Toggle power menu",
		ActionDismiss:      "Close panels",
	}
	for i := 1; i <= MaxIconShortcuts; i++ {
		m[fmt.Sprintf("%s%d", ActionOpenIconPrefix, i)] = fmt.Sprintf("Open desktop icon %d", i)
	}
	return m
}()

var systemActions = map[string]string{
	ActionQuit:       "Quit",
	ActionToggleLogs: "Toggle log viewer",
	ActionToggleHelp: "Toggle help",
}

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

// KeybindRegistry resolves key strings to actions.
type KeybindRegistry struct {
	byKey    map[string]string
	byAction map[string][]string
	sections []struct {
		title   string
		binds   map[string][]string
		actions map[string]string
	}
}

// NewKeybindRegistry builds a registry from cfg. When a key is bound to more
// than one action the system bindings win, then window, then desktop.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		byKey:    make(map[string]string),
		byAction: make(map[string][]string),
	}
	r.add("System", cfg.Keybindings.System, systemActions)
	r.add("Windows", cfg.Keybindings.Window, windowActions)
	r.add("Desktop", cfg.Keybindings.Desktop, desktopActions)
	return r
}

func (r *KeybindRegistry) add(title string, binds map[string][]string, known map[string]string) {
	r.sections = append(r.sections, struct {
		title   string
		binds   map[string][]string
		actions map[string]string
	}{title, binds, known})

	actions := make([]string, 0, len(binds))
	for a := range binds {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, a := range actions {
		if _, ok := known[a]; !ok {
			continue
		}
		for _, k := range binds[a] {
			k = NormalizeKey(k)
			if _, taken := r.byKey[k]; taken {
				continue
			}
			r.byKey[k] = a
			r.byAction[a] = append(r.byAction[a], k)
		}
	}
}

// Action returns the action bound to key, or "".
func (r *KeybindRegistry) Action(key string) string {
	return r.byKey[NormalizeKey(key)]
}

// Keys returns the keys bound to action.
func (r *KeybindRegistry) Keys(action string) []string {
	return r.byAction[action]
}

// IconIndex parses an open_icon_N action, returning the 0-based index.
func IconIndex(action string) (int, bool) {
	rest, ok := strings.CutPrefix(action, ActionOpenIconPrefix)
	if !ok {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(rest, "%d", &n); err != nil || n < 1 || n > MaxIconShortcuts {
		return 0, false
	}
	return n - 1, true
}

// NormalizeKey canonicalizes a key string: lower case, trimmed, with "opt"
// and "option" treated as "alt".
func NormalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	parts := strings.Split(k, "+")
	for i, p := range parts {
		if p == "opt" || p == "option" {
			parts[i] = "alt"
		}
	}
	return strings.Join(parts, "+")
}

// GetKeybindings returns all keybinding sections for the help overlay
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		registry = NewKeybindRegistry(nil)
	}

	var sections []KeybindingSection
	for _, s := range registry.sections {
		sec := KeybindingSection{Title: s.title}
		actions := make([]string, 0, len(s.actions))
		for a := range s.actions {
			actions = append(actions, a)
		}
		sort.Strings(actions)
		for _, a := range actions {
			keys := registry.Keys(a)
			if len(keys) == 0 {
				continue
			}
			sec.Bindings = append(sec.Bindings, Keybinding{
				Key:         strings.Join(keys, " / "),
				Description: s.actions[a],
			})
		}
		sections = append(sections, sec)
	}

	sections = append(sections, KeybindingSection{
		Title: "Mouse",
		Bindings: []Keybinding{
			{"Click icon", "Open window"},
			{"Drag icon", "Move icon to another cell"},
			{"Drag title bar", "Move window"},
			{"Drag border", "Resize window"},
			{"Click taskbar entry", "Restore, focus or minimize"},
		},
	})
	return sections
}
