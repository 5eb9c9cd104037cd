// Package logging configures the process-wide structured logger. Log lines
// go to a size-rotated file so they never interleave with the TUI.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures Setup.
type Options struct {
	// Path is the log file; empty uses DefaultPath.
	Path string
	// Level is a charm log level name: debug, info, warn, error.
	Level string
	// Stderr also writes to standard error. Use it for the servers, never
	// for the local TUI.
	Stderr bool
}

// DefaultPath returns $XDG_STATE_HOME/aerodesk/aerodesk.log.
func DefaultPath() (string, error) {
	p, err := xdg.StateFile("aerodesk/aerodesk.log")
	if err != nil {
		return "", fmt.Errorf("failed to get log path: %w", err)
	}
	return p, nil
}

// New returns a logger writing to w at the given level.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           lvl,
		Prefix:          "aerodesk",
	})
}

// Setup installs a rotating file logger as the default charm logger and
// returns a function that flushes and closes the file.
func Setup(opts Options) (func() error, error) {
	path := opts.Path
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     14, // days
	}

	var w io.Writer = file
	if opts.Stderr {
		w = io.MultiWriter(file, os.Stderr)
	}
	log.SetDefault(New(w, opts.Level))
	log.Debug("logging started", "file", path)

	return file.Close, nil
}
