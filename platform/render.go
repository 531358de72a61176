package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/plus3/takeashot/gallery"
)

// debug font cell size used by ebitenutil.DebugPrintAt
const (
	glyphWidth  = 6
	lineSpacing = 24
)

// spriteGeoM places a w×h sprite centred on t. World space is centred on the
// viewport with y up; screen space is top-left with y down.
func spriteGeoM(t gallery.Transform, w, h int, viewport gallery.Vec2) ebiten.GeoM {
	var m ebiten.GeoM
	m.Translate(-float64(w)/2, -float64(h)/2)
	if t.FlipX {
		m.Scale(-1, 1)
	}
	scale := float64(t.Scale)
	m.Scale(scale, scale)
	m.Translate(float64(t.X+viewport.X/2), float64(viewport.Y/2-t.Y))
	return m
}

// overlayOrigin positions line i of n centred on the screen.
func overlayOrigin(text string, i, n int, viewport gallery.Vec2) (x, y int) {
	x = int(viewport.X)/2 - len(text)*glyphWidth/2
	y = int(viewport.Y)/2 - n*lineSpacing/2 + i*lineSpacing
	return x, y
}

// Renderer draws a simulation's sprites back to front followed by the
// final-score text.
type Renderer struct {
	atlas    *Atlas
	viewport gallery.Vec2
	op       ebiten.DrawImageOptions
}

func NewRenderer(a *Atlas, viewport gallery.Vec2) *Renderer {
	return &Renderer{atlas: a, viewport: viewport}
}

func (r *Renderer) Draw(screen *ebiten.Image, sim *gallery.Simulation) {
	for d := range sim.Drawables() {
		cell := r.atlas.Cell(d.Sheet, d.Index)
		if cell == nil {
			continue
		}
		b := cell.Bounds()
		r.op.GeoM = spriteGeoM(d.Transform, b.Dx(), b.Dy(), r.viewport)
		screen.DrawImage(cell, &r.op)
	}

	lines := sim.OverlayLines()
	for i, line := range lines {
		x, y := overlayOrigin(line, i, len(lines), r.viewport)
		ebitenutil.DebugPrintAt(screen, line, x, y)
	}
}
