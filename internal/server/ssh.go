package server

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/input"
)

// DefaultHostKeyPath returns $XDG_DATA_HOME/aerodesk/ssh_host_ed25519.
func DefaultHostKeyPath() (string, error) {
	p, err := xdg.DataFile("aerodesk/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("failed to get host key path: %w", err)
	}
	return p, nil
}

// NewSSHServer creates the wish server. Each session runs its own desktop
// sized from the client's PTY.
func NewSSHServer(opts Options) (*ssh.Server, error) {
	keyPath := opts.HostKeyPath
	if keyPath == "" {
		p, err := DefaultHostKeyPath()
		if err != nil {
			return nil, err
		}
		keyPath = p
	}

	srv, err := wish.NewServer(
		wish.WithAddress(opts.addr()),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(opts.sshHandler),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ssh server: %w", err)
	}
	return srv, nil
}

func (o Options) sshHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := s.Pty()
	visitor := VisitorName(s.User())

	d, err := o.newDesktop(visitor, pty.Window.Width, pty.Window.Height)
	if err != nil {
		o.logger().Error("session rejected", "visitor", visitor, "remote", s.RemoteAddr(), "err", err)
		wish.Fatalln(s, "aerodesk: "+err.Error())
		return nil, nil
	}
	o.logger().Info("session started", "visitor", visitor, "remote", s.RemoteAddr())
	return d, input.ProgramOptions()
}

// ServeSSH runs the SSH server until ctx is cancelled, then shuts it down
// gracefully.
func ServeSSH(ctx context.Context, opts Options) error {
	srv, err := NewSSHServer(opts)
	if err != nil {
		return err
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	opts.logger().Info("ssh server listening", "addr", srv.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
	}

	opts.logger().Info("shutting down ssh server")
	sctx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("ssh server shutdown: %w", err)
	}
	return nil
}
