// Warpviz renders the z=0 slice of a smooth warp as a deformed grid and
// lets you flip the transform between its forward and Newton-inverted
// direction while the amplitude pulses.
//
// The grid is cached geometry: it rebuilds when the amplitude moves and
// when the transform reports a direction change, not on every draw. The
// mouse cursor is tracked continuously; its forward image and its
// recovered pre-image are both marked, with the solver diagnostics on
// the HUD.
//
// Keys:
//
//	I     toggle forward/inverse
//	Space pause the amplitude animation
//	R     reset
package main

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/katalvlaran/nwarp/internal/logging"
	"github.com/katalvlaran/nwarp/mat3"
	"github.com/katalvlaran/nwarp/warp"
)

const (
	windowTitle = "nwarp — Warp Viewer"
	screenW     = 800
	screenH     = 600

	worldHalf = 2.0 // the view covers [-2, 2] on both axes
	gridLines = 21  // polylines per direction
	gridSteps = 48  // segments per polyline

	rippleFreq   = 1.3
	maxAmplitude = 0.45 // keeps |amp*freq| < 1, so the warp stays bijective
	pulseSeconds = 3.0
)

// ripple is the demo warp: both axes of the z=0 plane wave against each
// other while z stays put. The amplitude pointer lets the animation move
// the shape under a live transform.
type ripple struct {
	amp *float32
}

var _ warp.Evaluator = ripple{}

func (r ripple) Forward(p mat3.Vec3) mat3.Vec3 {
	a := float64(*r.amp)
	return mat3.Vec3{
		p[0] + a*math.Sin(rippleFreq*p[1]),
		p[1] + a*math.Sin(rippleFreq*p[0]),
		p[2],
	}
}

func (r ripple) ForwardJacobian(p mat3.Vec3) (mat3.Vec3, mat3.Mat3) {
	a := float64(*r.amp)
	j := mat3.Identity()
	j[0][1] = a * rippleFreq * math.Cos(rippleFreq*p[1])
	j[1][0] = a * rippleFreq * math.Cos(rippleFreq*p[0])
	return r.Forward(p), j
}

type point struct {
	x, y float32
}

// Game implements ebiten.Game.
type Game struct {
	ev ripple
	tr *warp.Transform

	amp    float32
	tween  *gween.Tween
	rising bool
	paused bool

	dirty bool      // grid geometry needs a rebuild
	lines [][]point // cached screen-space polylines

	cursor   mat3.Vec3
	image    mat3.Vec3
	pick     warp.Result
	pickFail bool
}

func main() {
	logging.InitFromEnv()

	g := &Game{}
	g.ev = ripple{amp: &g.amp}

	tr, err := warp.New(g.ev,
		warp.WithTolerance(1e-9),
		warp.WithLogger(logging.L()),
		warp.WithOnChange(func() { g.dirty = true }),
	)
	if err != nil {
		log.Fatal(err)
	}
	g.tr = tr
	g.reset()

	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowSize(screenW, screenH)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func (g *Game) reset() {
	g.amp = 0
	g.tween = gween.New(0, maxAmplitude, pulseSeconds, ease.InOutSine)
	g.rising = true
	g.paused = false
	if g.tr.IsInverse() {
		g.tr.ToggleInverse() // fires the change hook, marking the grid dirty
	}
	g.dirty = true
}

// flip reverses the pulse once a half-cycle completes.
func (g *Game) flip() {
	if g.rising {
		g.tween = gween.New(maxAmplitude, 0, pulseSeconds, ease.InOutSine)
	} else {
		g.tween = gween.New(0, maxAmplitude, pulseSeconds, ease.InOutSine)
	}
	g.rising = !g.rising
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.tr.ToggleInverse()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reset()
	}

	if !g.paused {
		dt := float32(1.0 / float64(ebiten.TPS()))
		v, done := g.tween.Update(dt)
		g.amp = v
		if done {
			g.flip()
		}
		g.dirty = true
	}

	if g.dirty {
		g.rebuild()
		g.dirty = false
	}

	g.pickCursor()
	return nil
}

// rebuild pushes every grid node through the transform in its current
// direction and projects the result to screen space.
func (g *Game) rebuild() {
	g.lines = g.lines[:0]

	step := 2 * worldHalf / gridSteps
	gap := 2 * worldHalf / (gridLines - 1)
	for i := 0; i < gridLines; i++ {
		c := -worldHalf + float64(i)*gap

		horizontal := make([]point, 0, gridSteps+1)
		verticalLn := make([]point, 0, gridSteps+1)
		for s := 0; s <= gridSteps; s++ {
			t := -worldHalf + float64(s)*step
			horizontal = append(horizontal, g.toScreen(g.tr.TransformPoint(mat3.Vec3{t, c, 0})))
			verticalLn = append(verticalLn, g.toScreen(g.tr.TransformPoint(mat3.Vec3{c, t, 0})))
		}
		g.lines = append(g.lines, horizontal, verticalLn)
	}
}

// pickCursor runs the solver against the live cursor every frame, in
// both directions, so the HUD can show the engine diagnostics.
func (g *Game) pickCursor() {
	mx, my := ebiten.CursorPosition()
	g.cursor = g.toWorld(mx, my)
	g.image = g.ev.Forward(g.cursor)

	res, err := warp.InvertPointDetailed(g.ev, g.cursor, warp.WithTolerance(1e-9))
	g.pick = res
	g.pickFail = err != nil
}

func (g *Game) toScreen(w mat3.Vec3) point {
	scale := float64(screenH) / (2 * worldHalf) * 0.9
	return point{
		x: float32(screenW/2 + w[0]*scale),
		y: float32(screenH/2 - w[1]*scale),
	}
}

func (g *Game) toWorld(sx, sy int) mat3.Vec3 {
	scale := float64(screenH) / (2 * worldHalf) * 0.9
	return mat3.Vec3{
		(float64(sx) - screenW/2) / scale,
		(screenH/2 - float64(sy)) / scale,
		0,
	}
}

var (
	gridColor   = color.RGBA{R: 70, G: 90, B: 140, A: 255}
	axisColor   = color.RGBA{R: 120, G: 150, B: 210, A: 255}
	cursorColor = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	imageColor  = color.RGBA{R: 80, G: 220, B: 120, A: 255}
	pickColor   = color.RGBA{R: 240, G: 160, B: 60, A: 255}
)

func (g *Game) Draw(screen *ebiten.Image) {
	for i, ln := range g.lines {
		clr := gridColor
		// the two middle polylines are the warped axes
		if i == gridLines-1 || i == gridLines {
			clr = axisColor
		}
		for s := 1; s < len(ln); s++ {
			vector.StrokeLine(screen, ln[s-1].x, ln[s-1].y, ln[s].x, ln[s].y, 1, clr, true)
		}
	}

	cur := g.toScreen(g.cursor)
	img := g.toScreen(g.image)
	pre := g.toScreen(g.pick.Point)
	vector.StrokeLine(screen, cur.x, cur.y, img.x, img.y, 1, imageColor, true)
	vector.StrokeLine(screen, cur.x, cur.y, pre.x, pre.y, 1, pickColor, true)
	vector.DrawFilledCircle(screen, cur.x, cur.y, 4, cursorColor, true)
	vector.DrawFilledCircle(screen, img.x, img.y, 4, imageColor, true)
	vector.DrawFilledCircle(screen, pre.x, pre.y, 4, pickColor, true)

	mode := "forward"
	if g.tr.IsInverse() {
		mode = "inverse"
	}
	status := "ok"
	if g.pickFail {
		status = "no convergence"
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"mode=%s  amp=%.3f  [I] invert  [Space] pause  [R] reset", mode, g.amp), 4, 4)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"cursor=(%.2f, %.2f)  F(cursor)=(%.2f, %.2f)  inv(cursor)=(%.2f, %.2f)",
		g.cursor[0], g.cursor[1], g.image[0], g.image[1], g.pick.Point[0], g.pick.Point[1]), 4, 20)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"solve: %s  iterations=%d residual=%.2g", status, g.pick.Iterations, g.pick.Residual), 4, 36)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f",
		ebiten.ActualFPS(), ebiten.ActualTPS()), 4, screenH-16)
}

func (g *Game) Layout(_, _ int) (int, int) {
	return screenW, screenH
}
