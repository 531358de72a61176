// Package atlas describes the three sprite sheets the gallery draws from.
// Sprite indices are positional: index i of a sheet is Rects(sheet)[i].
package atlas

import "fmt"

// Sheet identifies one sprite sheet image.
type Sheet int

const (
	Stall Sheet = iota
	HUD
	Objects
)

func (s Sheet) String() string {
	switch s {
	case Stall:
		return "stall"
	case HUD:
		return "hud"
	case Objects:
		return "objects"
	default:
		return fmt.Sprintf("Sheet(%d)", int(s))
	}
}

// File is the sheet's image file name inside the assets directory.
func (s Sheet) File() string {
	return "spritesheet_" + s.String() + ".png"
}

// Size is the pixel size of the whole sheet image.
func (s Sheet) Size() (width, height int) {
	switch s {
	case Stall:
		return 794, 802
	case HUD:
		return 418, 421
	case Objects:
		return 736, 736
	default:
		return 0, 0
	}
}

// Sheets lists every sheet in load order.
var Sheets = []Sheet{Stall, HUD, Objects}

// Rect is a sub-image of a sheet in pixels, origin top-left.
type Rect struct {
	X, Y, W, H int
}

// Stall sheet indices.
const (
	StraightCurtain = iota
	TopCurtain
	SideCurtain
	CurtainRope
	WoodBackground
	GrassLight
	GrassDark
	WaterBack
	WaterFront
	CloudSmall
	CloudLarge
	TreeOak
	TreePine
)

// HUD sheet indices. Digits 0-9 occupy indices 0-9.
const (
	Digit0 = iota
	Digit1
	Digit2
	Digit3
	Digit4
	Digit5
	Digit6
	Digit7
	Digit8
	Digit9
	Colon
	Cross
	Plus
	Crosshair
	CrosshairFired
	ScoreLabel
)

// Objects sheet indices.
const (
	Rifle = iota
	RifleFired
	DuckYellow
	StickWood
	StickMetal
	TargetColored
	TargetRed
	DuckBrown
	TargetWhite
)

var stallRects = []Rect{
	{0, 0, 256, 80},
	{0, 598, 200, 63},
	{650, 0, 131, 426},
	{0, 762, 40, 21},
	{258, 0, 256, 256},
	{403, 600, 132, 200},
	{516, 0, 132, 216},
	{516, 218, 132, 224},
	{539, 444, 132, 223},
	{403, 516, 134, 82},
	{0, 663, 141, 84},
	{258, 516, 143, 244},
	{673, 428, 119, 255},
}

var hudRects = []Rect{
	{303, 382, 32, 37},
	{382, 0, 23, 36},
	{359, 271, 29, 37},
	{365, 111, 28, 36},
	{359, 233, 30, 36},
	{359, 310, 29, 36},
	{370, 378, 28, 36},
	{340, 73, 30, 36},
	{337, 378, 31, 37},
	{350, 0, 30, 36},
	{34, 387, 21, 32},
	{0, 387, 32, 32},
	{359, 348, 28, 28},
	{195, 212, 50, 50},
	{169, 330, 50, 50},
	{0, 278, 116, 39},
}

var objectRects = []Rect{
	{144, 0, 142, 319},
	{288, 0, 141, 319},
	{547, 0, 99, 95},
	{650, 258, 34, 127},
	{648, 0, 34, 127},
	{144, 595, 128, 128},
	{404, 451, 128, 128},
	{636, 638, 99, 95},
	{288, 321, 128, 128},
}

// Rects returns the sub-rectangle table of a sheet.
func Rects(s Sheet) []Rect {
	switch s {
	case Stall:
		return stallRects
	case HUD:
		return hudRects
	case Objects:
		return objectRects
	default:
		return nil
	}
}

// Lookup returns the rectangle for a sprite index.
func Lookup(s Sheet, index int) (Rect, bool) {
	rects := Rects(s)
	if index < 0 || index >= len(rects) {
		return Rect{}, false
	}
	return rects[index], true
}
