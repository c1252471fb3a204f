// Package shader runs a per-pixel procedural animation against a canvas
// surface, pacing frames against wall-clock time so slow frames shorten the
// next sleep instead of drifting the schedule.
package shader

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tuikit/gfx/canvas"
	"github.com/tuikit/gfx/imaging"
)

// Capability is the permission name gating shader execution.
const Capability = "shader"

// DefaultFPS is the frame rate used when none is requested.
const DefaultFPS = 30

// Permissions is the per-process capability-policy collaborator.
type Permissions interface {
	Granted(capability string) bool
}

// PerfMonitor is the external performance-monitoring collaborator.
type PerfMonitor interface {
	Register(id string, pixels int)
	Unregister(id string, pixels int)
	RecordFrameTime(d time.Duration)
}

// Resolution is the surface size snapshot taken at start.
type Resolution struct {
	Width  int
	Height int
}

// Source is the read-only per-frame view handed to the shader callback.
type Source struct {
	Width  int
	Height int

	// MouseX/MouseY are pixel coordinates, (-1,-1) when not hovered.
	MouseX, MouseY int
	// MouseU/MouseV are the normalized mouse position.
	MouseU, MouseV float64

	// Sample reads the backdrop: the image layer in standalone mode, or a
	// caller-supplied snapshot in compositing mode.
	Sample func(x, y int) canvas.Color
}

// Func computes one pixel. Channels are 0-255 and are clamped and floored;
// an alpha of zero maps to the transparent sentinel.
type Func func(x, y int, t float64, res Resolution, src *Source, u *Utils) (r, g, b, a float64)

// State tracks the runner lifecycle.
type State uint8

const (
	Idle State = iota
	Running
	Finished
	Stopped
)

// Options configure a runner.
type Options struct {
	FPS       int
	TimeLimit time.Duration // zero means unlimited

	Permissions Permissions
	Monitor     PerfMonitor
	Logger      *log.Logger

	// OnFrame requests a render after a frame has been written.
	OnFrame func()
	// OnFreeze is called when the run-time limit freezes the output, so
	// dependent caches (dithering, protocol output) can be invalidated.
	OnFreeze func()
}

var runnerSeq atomic.Uint64

// Runner drives a shader against one surface. All buffer mutation happens
// inside the frame callback; Stop is safe to call from the callback itself.
type Runner struct {
	surface *canvas.Surface
	fn      Func
	opts    Options
	utils   Utils
	id      string

	mu        sync.Mutex
	state     State
	timer     *time.Timer
	start     time.Time
	lastFrame time.Time
	interval  time.Duration
	res       Resolution
	pixels    int

	mouseX, mouseY int

	// shadow holds the previous frame for effects that difference frames;
	// reallocated only when the pixel count grows.
	shadow []canvas.Color

	warned bool
}

// NewRunner creates an idle runner for the surface.
func NewRunner(surface *canvas.Surface, fn Func, opts Options) *Runner {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	return &Runner{
		surface: surface,
		fn:      fn,
		opts:    opts,
		id:      fmt.Sprintf("shader-%d", runnerSeq.Add(1)),
		mouseX:  -1,
		mouseY:  -1,
	}
}

// ID identifies the runner to the performance monitor.
func (r *Runner) ID() string { return r.id }

// State returns the current lifecycle state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// SetMouse updates the hover position in surface pixels; (-1,-1) clears it.
func (r *Runner) SetMouse(x, y int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mouseX, r.mouseY = x, y
}

// Start captures the start time, resolution and frame interval and schedules
// the first frame. Starting while running is a no-op, as is starting without
// the shader capability; the denial logs one warning per surface at most.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == Running {
		return
	}
	if r.opts.Permissions != nil && !r.opts.Permissions.Granted(Capability) {
		if !r.warned && r.opts.Logger != nil {
			r.opts.Logger.Warn("shader capability not granted; shader will not run")
		}
		r.warned = true
		return
	}

	now := time.Now()
	r.start = now
	r.lastFrame = now
	r.interval = time.Second / time.Duration(r.opts.FPS)
	r.res = Resolution{Width: r.surface.Width(), Height: r.surface.Height()}
	r.pixels = r.res.Width * r.res.Height
	if cap(r.shadow) < r.pixels {
		r.shadow = make([]canvas.Color, r.pixels)
	}
	r.shadow = r.shadow[:r.pixels]
	r.state = Running

	if r.opts.Monitor != nil {
		r.opts.Monitor.Register(r.id, r.pixels)
	}
	r.timer = time.AfterFunc(0, r.frame)
}

// Stop releases the timer and unregisters from the performance monitor with
// the pixel count recorded at start.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopLocked(Stopped)
}

func (r *Runner) stopLocked(next State) {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	if r.state == Running && r.opts.Monitor != nil {
		r.opts.Monitor.Unregister(r.id, r.pixels)
	}
	if r.state == Running || next == Stopped {
		r.state = next
	}
}

// NextDelay computes the sleep before the next frame given the wall-clock
// time the previous frame actually took. Never negative: a slow frame just
// reschedules immediately rather than accumulating drift.
func (r *Runner) NextDelay(elapsed time.Duration) time.Duration {
	d := r.interval - elapsed
	if d < 0 {
		return 0
	}
	return d
}

func (r *Runner) frame() {
	r.mu.Lock()
	if r.state != Running {
		r.mu.Unlock()
		return
	}

	frameStart := time.Now()
	t := frameStart.Sub(r.start).Seconds()

	if r.opts.TimeLimit > 0 && frameStart.Sub(r.start) >= r.opts.TimeLimit {
		r.freezeLocked()
		r.mu.Unlock()
		if r.opts.OnFrame != nil {
			r.opts.OnFrame()
		}
		return
	}

	src := r.sourceLocked(nil)
	r.sweep(t, src)
	r.lastFrame = frameStart

	if r.opts.Monitor != nil {
		r.opts.Monitor.RecordFrameTime(time.Since(frameStart))
	}
	delay := r.NextDelay(time.Since(frameStart))
	if r.state == Running {
		r.timer = time.AfterFunc(delay, r.frame)
	}
	r.mu.Unlock()

	if r.opts.OnFrame != nil {
		r.opts.OnFrame()
	}
}

// RunFrame is the compositing variant: it runs one sweep synchronously from
// the render path against a caller-supplied snapshot of a prior paint pass.
// Only frame pacing is timer-driven; the sweep itself is always synchronous.
func (r *Runner) RunFrame(snapshot []canvas.Color, t float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.res.Width == 0 && r.res.Height == 0 {
		r.res = Resolution{Width: r.surface.Width(), Height: r.surface.Height()}
	}
	src := r.sourceLocked(snapshot)
	r.sweep(t, src)
}

func (r *Runner) sourceLocked(snapshot []canvas.Color) *Source {
	src := &Source{
		Width:  r.res.Width,
		Height: r.res.Height,
		MouseX: r.mouseX,
		MouseY: r.mouseY,
		MouseU: -1,
		MouseV: -1,
	}
	if r.mouseX >= 0 && r.mouseY >= 0 && r.res.Width > 0 && r.res.Height > 0 {
		src.MouseU = float64(r.mouseX) / float64(r.res.Width)
		src.MouseV = float64(r.mouseY) / float64(r.res.Height)
	}
	if snapshot != nil {
		w, h := r.res.Width, r.res.Height
		src.Sample = func(x, y int) canvas.Color {
			if x < 0 || x >= w || y < 0 || y >= h {
				return canvas.Transparent
			}
			return snapshot[y*w+x]
		}
	} else {
		src.Sample = r.surface.ImagePixel
	}
	return src
}

// sweep runs the callback once per pixel of the full surface. Once begun it
// always completes the whole pass.
func (r *Runner) sweep(t float64, src *Source) {
	w, h := r.res.Width, r.res.Height
	buf := r.surface.DrawLayer()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cr, cg, cb, ca := r.fn(x, y, t, r.res, src, &r.utils)
			i := y*w + x
			if i >= len(buf) {
				return
			}
			a := quantize(ca)
			if a == 0 {
				buf[i] = canvas.Transparent
				continue
			}
			buf[i] = canvas.RGBA(quantize(cr), quantize(cg), quantize(cb), a)
		}
	}
	r.surface.MarkDirty()
}

// freezeLocked unpacks the draw layer into a standalone image, copies it
// into the image layer, clears the draw layer and its shadow, invalidates
// dependent caches and marks the run finished.
func (r *Runner) freezeLocked() {
	w, h := r.surface.Width(), r.surface.Height()
	frozen := &imaging.Image{Width: w, Height: h, BPP: 4, Pix: make([]byte, w*h*4)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := r.surface.PixelColor(x, y)
			i := (y*w + x) * 4
			frozen.Pix[i] = c.R()
			frozen.Pix[i+1] = c.G()
			frozen.Pix[i+2] = c.B()
			frozen.Pix[i+3] = c.A()
		}
	}
	r.surface.SetImageRect(0, 0, w, h, frozen.Pix, frozen.BPP)
	r.surface.Clear()
	for i := range r.shadow {
		r.shadow[i] = canvas.Transparent
	}
	if r.opts.OnFreeze != nil {
		r.opts.OnFreeze()
	}
	r.stopLocked(Finished)
}

func quantize(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Floor(v))
}
