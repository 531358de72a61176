package platform

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/takeashot/gallery"
)

var mouseButtons = []struct {
	ebiten  ebiten.MouseButton
	gallery gallery.MouseButton
}{
	{ebiten.MouseButtonLeft, gallery.ButtonLeft},
	{ebiten.MouseButtonRight, gallery.ButtonRight},
	{ebiten.MouseButtonMiddle, gallery.ButtonMiddle},
}

// inputSource is the slice of ebiten input state the adapter reads.
type inputSource interface {
	CursorPosition() (x, y int)
	ButtonJustPressed(ebiten.MouseButton) bool
	ButtonJustReleased(ebiten.MouseButton) bool
	RestartJustPressed() bool
}

type ebitenInput struct{}

func (ebitenInput) CursorPosition() (int, int) { return ebiten.CursorPosition() }

func (ebitenInput) ButtonJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}

func (ebitenInput) ButtonJustReleased(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustReleased(b)
}

func (ebitenInput) RestartJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeySpace)
}

// InputAdapter turns ebiten's polled state into gallery input edges. Ebiten
// reports the cursor top-left origin, y down; the gallery wants bottom-left
// origin, y up.
type InputAdapter struct {
	src    inputSource
	height int

	lastX, lastY int
	seen         bool
}

func NewInputAdapter(screenHeight int) *InputAdapter {
	return &InputAdapter{src: ebitenInput{}, height: screenHeight}
}

// Poll queues this frame's edges. While mouseCaptured is set, for example
// when a debug panel is under the cursor, cursor moves and presses are left
// out; releases still go through so a shot never sticks in the fired pose.
func (a *InputAdapter) Poll(q *gallery.InputQueue, mouseCaptured bool) {
	if a.src.RestartJustPressed() {
		q.Restart()
	}

	if !mouseCaptured {
		x, y := a.src.CursorPosition()
		if !a.seen || x != a.lastX || y != a.lastY {
			q.MoveCursor(float32(x), float32(a.height-y))
			a.lastX, a.lastY, a.seen = x, y, true
		}
	}

	for _, b := range mouseButtons {
		if !mouseCaptured && a.src.ButtonJustPressed(b.ebiten) {
			q.Press(b.gallery)
		}
		if a.src.ButtonJustReleased(b.ebiten) {
			q.Release(b.gallery)
		}
	}
}
