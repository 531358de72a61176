package platform

import (
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/plus3/takeashot/gallery/atlas"
)

// Atlas holds the loaded sprite sheets cut into per-index sub-images.
type Atlas struct {
	cells map[atlas.Sheet][]*ebiten.Image
}

// LoadAtlas reads every sheet from dir. A sheet whose size differs from the
// table in package atlas is rejected since its rectangles would be wrong.
func LoadAtlas(dir string) (*Atlas, error) {
	a := &Atlas{cells: make(map[atlas.Sheet][]*ebiten.Image, len(atlas.Sheets))}
	for _, sheet := range atlas.Sheets {
		path := filepath.Join(dir, sheet.File())
		img, _, err := ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("platform: failed to load %s: %w", path, err)
		}

		w, h := sheet.Size()
		if b := img.Bounds(); b.Dx() != w || b.Dy() != h {
			return nil, fmt.Errorf("platform: %s is %dx%d, want %dx%d", path, b.Dx(), b.Dy(), w, h)
		}

		rects := atlas.Rects(sheet)
		cells := make([]*ebiten.Image, len(rects))
		for i, r := range rects {
			cells[i] = img.SubImage(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)).(*ebiten.Image)
		}
		a.cells[sheet] = cells
	}
	return a, nil
}

// Cell returns the sub-image for a sprite, or nil for an unknown index.
func (a *Atlas) Cell(sheet atlas.Sheet, index int) *ebiten.Image {
	cells := a.cells[sheet]
	if index < 0 || index >= len(cells) {
		return nil
	}
	return cells[index]
}
