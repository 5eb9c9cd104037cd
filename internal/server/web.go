package server

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/sip"

	"github.com/aerodesk/aerodesk/internal/input"
)

// ServeWeb serves the desktop to browsers until ctx is cancelled. Browser
// sessions carry no identity, so every visitor is a guest.
func ServeWeb(ctx context.Context, opts Options) error {
	cfg := sip.DefaultConfig()
	cfg.Host = opts.Host
	cfg.Port = opts.Port

	srv := sip.NewServer(cfg)
	opts.logger().Info("web server listening", "addr", opts.addr())

	err := srv.Serve(ctx, func(sess sip.Session) (tea.Model, []tea.ProgramOption) {
		d, err := opts.newDesktop("guest", 0, 0)
		if err != nil {
			opts.logger().Error("web session rejected", "err", err)
			return nil, nil
		}
		opts.logger().Info("web session started")
		return d, input.ProgramOptions()
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("web server: %w", err)
	}
	return nil
}
