package app

import (
	"testing"
	"time"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/wm"
)

func TestRestoreAnimationSettles(t *testing.T) {
	from := wm.Rect{Min: wm.Point{X: 10, Y: 28}, Size: wm.Size{Width: 16, Height: 1}}
	to := wm.Rect{Min: wm.Point{X: 4, Y: 2}, Size: wm.Size{Width: 56, Height: 16}}
	start := time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

	a := NewRestoreAnimation("about", from, to, start)
	if a.Rect() != from {
		t.Fatalf("first frame = %+v, want %+v", a.Rect(), from)
	}

	frame := time.Second / config.AnimationFPS
	now := start
	steps := 0
	for a.Step(now) {
		now = now.Add(frame)
		steps++
		if steps > 1000 {
			t.Fatal("animation never finished")
		}
	}
	if !a.Complete {
		t.Error("finished animation should be complete")
	}
	if a.Rect() != to {
		t.Errorf("final frame = %+v, want %+v", a.Rect(), to)
	}
	if now.Sub(start) > config.MaxAnimationDuration+frame {
		t.Errorf("animation ran for %v", now.Sub(start))
	}
	if a.Step(now) {
		t.Error("a complete animation stays complete")
	}
}

func TestRestoreAnimationStartsFromTaskbar(t *testing.T) {
	d, clock := newTestDesktop(t, Options{NoGreeting: true})
	d.Open("about")
	d.Registry.Minimize("about")
	if len(d.Animations) != 0 {
		t.Fatal("minimize does not animate")
	}

	d.Taskbar.Activate("about")
	a, ok := d.Animation("about")
	if !ok {
		t.Fatal("restoring from the taskbar should animate")
	}
	if got := a.Rect().Min.Y; got != d.TaskbarRow() {
		t.Errorf("animation starts at row %d, want the taskbar row %d", got, d.TaskbarRow())
	}

	_, cmd := d.Update(AnimationMsg(clock.t))
	if cmd == nil {
		t.Error("a running animation schedules the next frame")
	}

	clock.t = clock.t.Add(time.Second)
	if d.UpdateAnimations(clock.t) {
		t.Error("animations end after MaxAnimationDuration")
	}
	if _, ok := d.Animation("about"); ok {
		t.Error("finished animations are dropped")
	}
}

func TestRestoreAnimationDisabled(t *testing.T) {
	config.AnimationsEnabled = false
	defer func() { config.AnimationsEnabled = true }()

	d, _ := newTestDesktop(t, Options{NoGreeting: true})
	d.Open("about")
	d.Registry.Minimize("about")
	d.Taskbar.Activate("about")
	if len(d.Animations) != 0 {
		t.Error("no animation when animations are off")
	}
}

func TestCloseDropsAnimation(t *testing.T) {
	d, _ := newTestDesktop(t, Options{NoGreeting: true})
	d.Open("about")
	d.Registry.Minimize("about")
	d.Taskbar.Activate("about")
	d.Close("about")
	if len(d.Animations) != 0 {
		t.Error("closing a window drops its animation")
	}
}
