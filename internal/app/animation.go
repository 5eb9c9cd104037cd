package app

import (
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/harmonica"

	"github.com/aerodesk/aerodesk/internal/config"
	"github.com/aerodesk/aerodesk/internal/wm"
)

type springValue struct {
	pos, vel, target float64
}

// Animation springs a restored window out of its taskbar entry. It only
// affects how the window is drawn; the registry already holds the final
// geometry.
type Animation struct {
	WindowID  string
	StartTime time.Time
	Complete  bool

	spring     harmonica.Spring
	x, y, w, h springValue
}

// NewRestoreAnimation creates an animation from the rectangle from to the
// rectangle to, both in content coordinates.
func NewRestoreAnimation(id string, from, to wm.Rect, now time.Time) *Animation {
	return &Animation{
		WindowID:  id,
		StartTime: now,
		spring:    harmonica.NewSpring(harmonica.FPS(config.AnimationFPS), config.SpringFrequency, config.SpringDamping),
		x:         springValue{pos: float64(from.Min.X), target: float64(to.Min.X)},
		y:         springValue{pos: float64(from.Min.Y), target: float64(to.Min.Y)},
		w:         springValue{pos: float64(from.Size.Width), target: float64(to.Size.Width)},
		h:         springValue{pos: float64(from.Size.Height), target: float64(to.Size.Height)},
	}
}

// Step advances the animation by one frame and reports whether it is still
// running.
func (a *Animation) Step(now time.Time) bool {
	if a.Complete {
		return false
	}

	settled := true
	for _, v := range []*springValue{&a.x, &a.y, &a.w, &a.h} {
		v.pos, v.vel = a.spring.Update(v.pos, v.vel, v.target)
		if math.Abs(v.target-v.pos) >= config.AnimationSettleDistance || math.Abs(v.vel) >= config.AnimationSettleDistance {
			settled = false
		}
	}

	if settled || now.Sub(a.StartTime) >= config.MaxAnimationDuration {
		a.Complete = true
		for _, v := range []*springValue{&a.x, &a.y, &a.w, &a.h} {
			v.pos, v.vel = v.target, 0
		}
	}
	return !a.Complete
}

// Rect returns the rectangle to draw for the current frame.
func (a *Animation) Rect() wm.Rect {
	return wm.Rect{
		Min:  wm.Point{X: int(math.Round(a.x.pos)), Y: int(math.Round(a.y.pos))},
		Size: wm.Size{Width: max(int(math.Round(a.w.pos)), 1), Height: max(int(math.Round(a.h.pos)), 1)},
	}
}

// Animation returns the running animation of window id, if any.
func (d *Desktop) Animation(id string) (*Animation, bool) {
	for _, a := range d.Animations {
		if a.WindowID == id && !a.Complete {
			return a, true
		}
	}
	return nil, false
}

func (d *Desktop) startRestoreAnimation(id string) {
	if !config.AnimationsEnabled {
		return
	}
	to, ok := d.Registry.Bounds(id)
	if !ok {
		return
	}
	from, ok := d.entryRect(id)
	if !ok {
		return
	}
	from.Min = d.ToContent(from.Min)

	d.dropAnimations(id)
	d.Animations = append(d.Animations, NewRestoreAnimation(id, from, to, d.now()))
}

func (d *Desktop) dropAnimations(id string) {
	d.Animations = slices.DeleteFunc(d.Animations, func(a *Animation) bool {
		return a.WindowID == id
	})
}

// UpdateAnimations steps every animation and drops the finished ones. It
// reports whether any are still running.
func (d *Desktop) UpdateAnimations(now time.Time) bool {
	d.Animations = slices.DeleteFunc(d.Animations, func(a *Animation) bool {
		return !a.Step(now)
	})
	return len(d.Animations) > 0
}
