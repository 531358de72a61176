package atlas_test

import (
	"testing"

	"github.com/plus3/takeashot/gallery/atlas"
	"github.com/stretchr/testify/assert"
)

func TestTableSizes(t *testing.T) {
	assert.Len(t, atlas.Rects(atlas.Stall), atlas.TreePine+1)
	assert.Len(t, atlas.Rects(atlas.HUD), atlas.ScoreLabel+1)
	assert.Len(t, atlas.Rects(atlas.Objects), atlas.TargetWhite+1)
	assert.Nil(t, atlas.Rects(atlas.Sheet(9)))
}

func TestRectsFitInsideSheets(t *testing.T) {
	for _, sheet := range atlas.Sheets {
		width, height := sheet.Size()
		for i, r := range atlas.Rects(sheet) {
			assert.LessOrEqual(t, r.X+r.W, width, "%s[%d]", sheet, i)
			assert.LessOrEqual(t, r.Y+r.H, height, "%s[%d]", sheet, i)
			assert.Positive(t, r.W)
			assert.Positive(t, r.H)
		}
	}
}

func TestLookup(t *testing.T) {
	r, ok := atlas.Lookup(atlas.HUD, atlas.Crosshair)
	assert.True(t, ok)
	assert.Equal(t, atlas.Rect{X: 195, Y: 212, W: 50, H: 50}, r)

	_, ok = atlas.Lookup(atlas.Objects, -1)
	assert.False(t, ok)
	_, ok = atlas.Lookup(atlas.Objects, atlas.TargetWhite+1)
	assert.False(t, ok)
}

func TestSheetNames(t *testing.T) {
	assert.Equal(t, "spritesheet_stall.png", atlas.Stall.File())
	assert.Equal(t, "spritesheet_hud.png", atlas.HUD.File())
	assert.Equal(t, "spritesheet_objects.png", atlas.Objects.File())
	assert.Equal(t, "Sheet(7)", atlas.Sheet(7).String())
}
