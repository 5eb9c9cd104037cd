package app

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aerodesk/aerodesk/internal/config"
)

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

func createID() string {
	return uuid.New().String()
}

// logsPerPage returns how many log lines fit in the log viewer.
func (d *Desktop) logsPerPage() int {
	maxDisplayHeight := max(d.Height-8, 8)
	// title, blank, blank, hint
	fixedLines := 4
	if len(d.LogMessages) > maxDisplayHeight-fixedLines {
		// scroll indicator and its blank line
		fixedLines = 6
	}
	return max(maxDisplayHeight-fixedLines, 1)
}

func (d *Desktop) maxLogScroll() int {
	return max(len(d.LogMessages)-d.logsPerPage(), 0)
}

// ScrollLogs moves the log viewer by delta lines.
func (d *Desktop) ScrollLogs(delta int) {
	d.LogScrollOffset = max(0, min(d.LogScrollOffset+delta, d.maxLogScroll()))
}

// Log adds a message to the log buffer and mirrors it to the logger.
func (d *Desktop) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	switch level {
	case "ERROR":
		d.logger.Error(message, "visitor", d.Visitor)
	case "WARN":
		d.logger.Warn(message, "visitor", d.Visitor)
	default:
		d.logger.Info(message, "visitor", d.Visitor)
	}

	// Sticky scroll: follow new messages when already at the bottom.
	wasAtBottom := d.ShowLogs && d.LogScrollOffset >= d.maxLogScroll()-2

	d.LogMessages = append(d.LogMessages, LogMessage{
		Time:    d.now(),
		Level:   level,
		Message: message,
	})
	if len(d.LogMessages) > config.MaxLogMessages {
		d.LogMessages = d.LogMessages[len(d.LogMessages)-config.MaxLogMessages:]
	}

	if wasAtBottom {
		d.LogScrollOffset = d.maxLogScroll()
	}
}

// LogInfo logs an informational message.
func (d *Desktop) LogInfo(format string, args ...any) {
	d.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (d *Desktop) LogWarn(format string, args ...any) {
	d.Log("WARN", format, args...)
}

// LogError logs an error message.
func (d *Desktop) LogError(format string, args ...any) {
	d.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification and logs it.
func (d *Desktop) ShowNotification(message, notifType string, duration time.Duration) {
	d.Notifications = append(d.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: d.now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		d.LogError("%s", message)
	case "warning":
		d.LogWarn("%s", message)
	default:
		d.LogInfo("%s", message)
	}
}

// CleanupNotifications removes expired notifications.
func (d *Desktop) CleanupNotifications() {
	now := d.now()
	var active []Notification
	for _, n := range d.Notifications {
		if now.Sub(n.StartTime) < n.Duration {
			active = append(active, n)
		}
	}
	d.Notifications = active
}
