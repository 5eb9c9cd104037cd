package app

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"

	"github.com/aerodesk/aerodesk/internal/config"
)

// TrayMsg carries one CPU and memory sample for the taskbar tray.
type TrayMsg struct {
	CPU float64
	RAM float64
	Err error
}

// SampleTrayCmd reads host CPU and memory usage.
func SampleTrayCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		var msg TrayMsg
		pct, err := cpu.PercentWithContext(ctx, 0, false)
		if err != nil {
			msg.Err = err
			return msg
		}
		if len(pct) > 0 {
			msg.CPU = pct[0]
		}

		v, err := mem.VirtualMemoryWithContext(ctx)
		if err != nil {
			msg.Err = err
			return msg
		}
		msg.RAM = v.UsedPercent
		return msg
	}
}

// TrayTickCmd schedules the next tray sample.
func TrayTickCmd() tea.Cmd {
	return tea.Tick(config.TrayUpdateInterval, func(time.Time) tea.Msg {
		return SampleTrayCmd()()
	})
}

// applyTray stores a sample. Only the first failure is logged so a host
// without the counters does not flood the log.
func (d *Desktop) applyTray(msg TrayMsg) {
	if msg.Err != nil {
		if !d.trayFailed {
			d.trayFailed = true
			d.LogWarn("Tray sampling failed: %v", msg.Err)
		}
		return
	}
	d.CPUPercent = msg.CPU
	d.RAMPercent = msg.RAM
	d.TrayReady = true
}
