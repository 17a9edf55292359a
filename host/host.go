// Package host runs a corlena.Engine inside an Ebitengine window: it reads
// mouse, wheel and touch input, calls the engine once per tick, and paints
// nodes, particles and draw paths from the returned frame.
//
//	e := corlena.NewEngine(0)
//	if err := host.Run(e, host.RunConfig{Title: "board", Width: 960, Height: 640}); err != nil {
//		log.Fatal(err)
//	}
package host

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween/ease"

	"github.com/phanxgames/corlena"
)

const (
	zoomStep     = 1.15
	zoomDuration = 0.15
	minZoom      = 0.1
	maxZoom      = 8
)

// RunConfig configures the host window.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ShowFPS    bool
	Background color.RGBA

	// ScreenshotDir receives PNGs queued with Game.Screenshot or F12.
	// Defaults to "screenshots".
	ScreenshotDir string

	// OnEvent, if set, is called for every gesture event after each frame.
	OnEvent func(corlena.Event)
	// OnUpdate, if set, is called before input is read each tick.
	OnUpdate func(e *corlena.Engine)
}

// Game implements ebiten.Game around an engine.
type Game struct {
	engine  *corlena.Engine
	cfg     RunConfig
	tracker *pointerTracker
	frame   corlena.Frame

	shots      []string
	pointerBuf []float32
	touchIDs   []ebiten.TouchID
	touchMap   [maxPointers]ebiten.TouchID
	touchUsed  [maxPointers]bool
}

// NewGame wraps e for use with ebiten.RunGame.
func NewGame(e *corlena.Engine, cfg RunConfig) *Game {
	if cfg.Width <= 0 {
		cfg.Width = 960
	}
	if cfg.Height <= 0 {
		cfg.Height = 640
	}
	if cfg.Background == (color.RGBA{}) {
		cfg.Background = color.RGBA{R: 0x23, G: 0x1e, B: 0x2d, A: 0xff}
	}
	if cfg.ScreenshotDir == "" {
		cfg.ScreenshotDir = defaultScreenshotDir
	}
	return &Game{engine: e, cfg: cfg, tracker: newPointerTracker()}
}

// Run opens a window and drives e until the window is closed.
func Run(e *corlena.Engine, cfg RunConfig) error {
	g := NewGame(e, cfg)
	ebiten.SetWindowTitle(g.cfg.Title)
	ebiten.SetWindowSize(g.cfg.Width, g.cfg.Height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run host: %w", err)
	}
	return nil
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	e := g.engine
	if g.cfg.OnUpdate != nil {
		g.cfg.OnUpdate(e)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.Screenshot("f12")
	}

	g.pointerBuf = g.pointerBuf[:0]
	g.readMouse()
	g.readTouches()
	g.readWheel()
	e.ApplyPointers(g.pointerBuf)

	g.frame = e.ProcessFrame(1.0 / float64(ebiten.TPS()))

	if g.cfg.OnEvent != nil {
		for _, ev := range corlena.DecodeEvents(g.frame.Events) {
			g.cfg.OnEvent(ev)
		}
	}
	return nil
}

func (g *Game) readMouse() {
	mx, my := ebiten.CursorPosition()
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	g.pointerBuf = g.tracker.track(g.engine, g.frame.Transforms, g.pointerBuf, 0, float64(mx), float64(my), pressed)
}

func (g *Game) readTouches() {
	g.touchIDs = ebiten.AppendTouchIDs(g.touchIDs[:0])

	var active [maxPointers]bool
	for _, tid := range g.touchIDs {
		slot := g.touchSlot(tid)
		if slot < 0 {
			continue
		}
		active[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		g.pointerBuf = g.tracker.track(g.engine, g.frame.Transforms, g.pointerBuf, slot, float64(tx), float64(ty), true)
	}

	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && !active[i] {
			g.pointerBuf = g.tracker.release(g.engine, g.pointerBuf, i)
			g.touchUsed[i] = false
			g.touchMap[i] = 0
		}
	}
}

// touchSlot maps a touch to a pointer slot (1-9). Returns -1 if all slots
// are taken.
func (g *Game) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if g.touchUsed[i] && g.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !g.touchUsed[i] {
			g.touchUsed[i] = true
			g.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (g *Game) readWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	factor := zoomStep
	if wy < 0 {
		factor = 1 / zoomStep
	}
	mx, my := ebiten.CursorPosition()
	scale, panX, panY := ZoomAbout(g.engine.View(), float64(mx), float64(my), factor)
	g.engine.AnimateView(scale, panX, panY, zoomDuration, ease.OutQuad)
}

// ZoomAbout returns the scale and pan that multiply v's scale by factor while
// keeping the world point under screen point (sx, sy) fixed. The scale is
// clamped to a usable range.
func ZoomAbout(v corlena.View, sx, sy, factor float64) (scale, panX, panY float64) {
	wx, wy := v.ScreenToWorld(sx, sy)
	scale = corlena.Clamp(v.Scale*factor, minZoom, maxZoom)
	ratio := v.PixelRatio
	if !(ratio > 0) {
		ratio = 1
	}
	panX = sx/ratio - wx*scale
	panY = sy/ratio - wy*scale
	return scale, panX, panY
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.cfg.Background)
	v := g.engine.View()
	s := float32(v.Scale * v.PixelRatio)

	g.drawPaths(screen, v, s)

	f := g.frame
	for i := 0; i+corlena.TransformStride <= len(f.Transforms); i += corlena.TransformStride {
		id := int32(f.Transforms[i])
		n, ok := g.engine.Node(id)
		if !ok {
			continue
		}
		x, y := v.WorldToScreen(float64(f.Transforms[i+1]), float64(f.Transforms[i+2]))
		w, h := float32(n.W)*s, float32(n.H)*s
		c := NodeColor(id)
		if n.Grabbing() {
			c = lighten(c)
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), w, h, c, true)
	}

	for i := 0; i+corlena.ParticleOutStride <= len(f.Particles); i += corlena.ParticleOutStride {
		x, y := v.WorldToScreen(float64(f.Particles[i]), float64(f.Particles[i+1]))
		r := f.Particles[i+4] * s
		alpha := uint8(math.Min(1, float64(f.Particles[i+5]))*200) + 55
		vector.DrawFilledCircle(screen, float32(x), float32(y), r, color.NRGBA{R: 0xff, G: 0xc8, B: 0x57, A: alpha}, true)
	}

	if g.cfg.ShowFPS {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f  nodes: %d  particles: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), g.engine.NodeCount(), g.engine.ParticleCount()), 4, 4)
	}
	g.flushScreenshots(screen)
}

// drawPaths strokes each path of the draw paths buffer segment by segment.
func (g *Game) drawPaths(screen *ebiten.Image, v corlena.View, s float32) {
	buf := g.frame.DrawPaths
	for i := 0; i+corlena.DrawPathHeaderStride <= len(buf); {
		col := UnpackColor(corlena.PackedColor(buf[i+1]))
		width := buf[i+2] * s
		closed := buf[i+3] != 0
		count := int(buf[i+4])
		pts := buf[i+corlena.DrawPathHeaderStride:]
		i += corlena.DrawPathHeaderStride + count*corlena.DrawPathPointStride
		if len(pts) < count*corlena.DrawPathPointStride {
			return
		}

		point := func(k int) (float32, float32) {
			q := pts[k*corlena.DrawPathPointStride:]
			x, y := v.WorldToScreen(float64(q[0]), float64(q[1]))
			return float32(x), float32(y)
		}
		for k := 1; k < count; k++ {
			x0, y0 := point(k - 1)
			x1, y1 := point(k)
			pw := width * float32(math.Max(0.2, float64(pts[k*corlena.DrawPathPointStride+2])))
			vector.StrokeLine(screen, x0, y0, x1, y1, pw, col, true)
		}
		if closed && count > 2 {
			x0, y0 := point(count - 1)
			x1, y1 := point(0)
			vector.StrokeLine(screen, x0, y0, x1, y1, width, col, true)
		}
	}
}

// Layout implements ebiten.Game.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

// Frame returns the last frame produced by Update.
func (g *Game) Frame() corlena.Frame {
	return g.frame
}

var palette = []color.RGBA{
	{R: 0xe6, G: 0x4d, B: 0x4d, A: 0xff},
	{R: 0x4d, G: 0xb3, B: 0xe6, A: 0xff},
	{R: 0x4d, G: 0xe6, B: 0x80, A: 0xff},
	{R: 0xff, G: 0xb3, B: 0x33, A: 0xff},
	{R: 0xcc, G: 0x4d, B: 0xe6, A: 0xff},
	{R: 0xe6, G: 0xe6, B: 0x4d, A: 0xff},
}

// NodeColor returns a stable fill color for node id.
func NodeColor(id int32) color.RGBA {
	i := int(id) % len(palette)
	if i < 0 {
		i += len(palette)
	}
	return palette[i]
}

func lighten(c color.RGBA) color.RGBA {
	l := func(v uint8) uint8 { return v + (255-v)/3 }
	return color.RGBA{R: l(c.R), G: l(c.G), B: l(c.B), A: c.A}
}

// UnpackColor converts a packed 0xRRGGBBAA value to a straight-alpha color.
func UnpackColor(rgba uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(rgba >> 24),
		G: uint8(rgba >> 16),
		B: uint8(rgba >> 8),
		A: uint8(rgba),
	}
}
