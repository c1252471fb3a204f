// Package component exposes the pixel surface as a bubbletea model: it owns
// a canvas, an encoder and an optional shader runner, translates terminal
// messages into surface operations, and renders itself into a screen buffer.
package component

import (
	"context"
	"image"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/log"

	"github.com/tuikit/gfx/canvas"
	"github.com/tuikit/gfx/config"
	"github.com/tuikit/gfx/encoder"
	"github.com/tuikit/gfx/imaging"
	"github.com/tuikit/gfx/logging"
	"github.com/tuikit/gfx/shader"
)

// redrawMsg paces screen refreshes while a shader animates. The id guards
// against stale ticks from a runner that was since replaced.
type redrawMsg struct {
	id string
}

// imageLoadedMsg carries a decoded and scaled raster back into Update.
type imageLoadedMsg struct {
	img *imaging.Image
	err error
}

// Model is a terminal graphics pane. The zero value is not usable; create
// one with New.
type Model struct {
	Style lipgloss.Style

	surface *canvas.Surface
	enc     *encoder.Encoder
	runner  *shader.Runner
	loader  *imaging.Loader

	cfg  *config.Config
	pos  image.Point
	cols int
	rows int

	graphics *encoder.GraphicsOutput
	log      *log.Logger
}

// New creates a component sized cols x rows cells, configured by cfg.
func New(cols, rows int, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = config.Default()
	}
	surface := canvas.New(cols, rows, canvas.Options{
		CellWidth:       cfg.CellWidth,
		CellHeight:      cfg.CellHeight,
		CharAspectRatio: cfg.CharAspectRatio,
		Scale:           cfg.Scale,
	})
	mode, err := encoder.ParseMode(cfg.Mode)
	logger := logging.Default().Get("component")
	if err != nil {
		logger.Warn("falling back to auto mode", "err", err)
		mode = encoder.ModeAuto
	}
	return &Model{
		surface: surface,
		enc:     encoder.New(mode, encoder.Detect()),
		loader:  imaging.NewLoader(cfg.FetchCacheSize, nil),
		cfg:     cfg,
		cols:    cols,
		rows:    rows,
		log:     logger,
	}
}

// Surface returns the underlying pixel surface for direct drawing.
func (m *Model) Surface() *canvas.Surface { return m.surface }

// Encoder returns the encoder, for mode and isoline configuration.
func (m *Model) Encoder() *encoder.Encoder { return m.enc }

// BufferSize returns the pixel dimensions of the surface.
func (m *Model) BufferSize() (w, h int) {
	return m.surface.Width(), m.surface.Height()
}

// SetSize resizes the component to cols x rows cells.
func (m *Model) SetSize(cols, rows int) {
	m.cols, m.rows = cols, rows
	m.surface.SetGridSize(cols, rows)
	m.enc.InvalidateCache()
}

// SetPosition places the component at a cell offset within the screen it is
// drawn into. Mouse coordinates are interpreted relative to this.
func (m *Model) SetPosition(pos image.Point) { m.pos = pos }

// IsDirty reports whether the surface changed since the last render.
func (m *Model) IsDirty() bool { return m.surface.Dirty() }

// MarkClean is called after the rendered frame has been flushed.
func (m *Model) MarkClean() { m.surface.MarkClean() }

// SetShader installs fn as the animated pixel source, replacing any
// previous runner. Start it with StartShader.
func (m *Model) SetShader(fn shader.Func) {
	if m.runner != nil {
		m.runner.Stop()
	}
	m.runner = shader.NewRunner(m.surface, fn, shader.Options{
		FPS:       m.cfg.ShaderFPS,
		TimeLimit: time.Duration(m.cfg.ShaderTimeLimit * float64(time.Second)),
		Logger:    m.log,
		// the frozen frame moves between layers, so cached protocol
		// output no longer matches
		OnFreeze: m.enc.InvalidateCache,
	})
}

// StartShader begins the animation and returns the command that keeps the
// screen refreshing while it runs.
func (m *Model) StartShader() tea.Cmd {
	if m.runner == nil {
		return nil
	}
	m.runner.Start()
	return m.redrawTick()
}

// StopShader halts the animation. The last frame stays on the surface.
func (m *Model) StopShader() {
	if m.runner != nil {
		m.runner.Stop()
	}
}

func (m *Model) redrawTick() tea.Cmd {
	id := m.runner.ID()
	interval := time.Second / time.Duration(m.cfg.ShaderFPS)
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return redrawMsg{id: id}
	})
}

// LoadImage fetches, decodes and scales src to the surface size, then blits
// it onto the image layer when the resulting message reaches Update.
func (m *Model) LoadImage(ctx context.Context, src string) tea.Cmd {
	w, h := m.surface.Width(), m.surface.Height()
	loader := m.loader
	return func() tea.Msg {
		data, err := loader.Load(ctx, src)
		if err != nil {
			return imageLoadedMsg{err: err}
		}
		img, err := imaging.Decode(data)
		if err != nil {
			return imageLoadedMsg{err: err}
		}
		if img.Width != w || img.Height != h {
			img = imaging.Scale(img, w, h)
		}
		return imageLoadedMsg{img: img}
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
	case tea.MouseClickMsg:
		m.forwardMouse(msg.X, msg.Y)
	case tea.MouseMotionMsg:
		m.forwardMouse(msg.X, msg.Y)
	case redrawMsg:
		if m.runner == nil || msg.id != m.runner.ID() {
			return nil
		}
		if m.runner.State() == shader.Running {
			return m.redrawTick()
		}
	case imageLoadedMsg:
		if msg.err != nil {
			m.log.Warn("image load failed", "err", msg.err)
			return nil
		}
		m.surface.ClearImage()
		m.surface.SetImageRect(0, 0, msg.img.Width, msg.img.Height, msg.img.Pix, msg.img.BPP)
	}
	return nil
}

func (m *Model) forwardMouse(x, y int) {
	if m.runner == nil {
		return
	}
	bw, bh := m.surface.CellBlock()
	px := int(float64((x-m.pos.X)*bw) * m.surface.Scale())
	py := int(float64((y-m.pos.Y)*bh) * m.surface.Scale())
	m.runner.SetMouse(px, py)
}

// Draw renders the component into scr at its configured position and
// returns any pixel protocol payload to emit after the screen is flushed.
func (m *Model) Draw(scr uv.Screen) *encoder.GraphicsOutput {
	bounds := image.Rect(m.pos.X, m.pos.Y, m.pos.X+m.cols, m.pos.Y+m.rows)
	m.graphics = m.enc.Render(m.surface, bounds, styleToUV(m.Style), scr)
	m.surface.MarkClean()
	return m.graphics
}

// View renders the component standalone. Pixel protocol output is appended
// after the cell content so the image lands over the reserved area.
func (m *Model) View() string {
	buf := uv.NewScreenBuffer(m.cols, m.rows)
	out := m.Draw(buf)
	s := buf.Render()
	if out != nil && !out.FromCache {
		s += string(out.Data)
	}
	return s
}
