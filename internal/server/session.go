// Package server serves AeroDesk to remote visitors, over SSH with wish and
// to web browsers with sip. Every connection gets its own desktop.
package server

import (
	"fmt"
	"net"
	"strings"
	"unicode"

	"charm.land/log/v2"

	"github.com/aerodesk/aerodesk/internal/app"
	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/content"
)

// Options is shared by the SSH and web servers.
type Options struct {
	Host string
	Port string
	// HostKeyPath is the SSH host key, generated when missing. Empty uses
	// DefaultHostKeyPath. The web server ignores it.
	HostKeyPath string

	Config  *config.UserConfig
	Catalog *content.Catalog
	// Visits remembers returning visitors; nil greets everyone as new.
	Visits *content.VisitStore
	Logger *log.Logger
}

func (o Options) addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

// maxVisitorName bounds the visitor name shown in the shell prompt.
const maxVisitorName = 32

// genericUsers are SSH user names that say nothing about who is connecting.
var genericUsers = map[string]bool{
	"":          true,
	"root":      true,
	"admin":     true,
	"anonymous": true,
	"aerodesk":  true,
	"guest":     true,
}

// VisitorName turns an SSH user name into the name a desktop greets and
// remembers. Generic names become "guest"; anything outside letters,
// digits, '.', '_' and '-' is dropped.
func VisitorName(user string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		}
		return -1
	}, user)

	if r := []rune(name); len(r) > maxVisitorName {
		name = string(r[:maxVisitorName])
	}
	if genericUsers[strings.ToLower(name)] {
		return "guest"
	}
	return name
}

// newDesktop builds the model for one connection. A zero size waits for the
// first window size message.
func (o Options) newDesktop(visitor string, width, height int) (*app.Desktop, error) {
	d, err := app.New(app.Options{
		Config:  o.Config,
		Catalog: o.Catalog,
		Visitor: visitor,
		Visits:  o.Visits,
		Logger:  o.logger(),
		Width:   width,
		Height:  height,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create desktop for %s: %w", visitor, err)
	}
	return d, nil
}
