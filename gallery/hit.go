package gallery

// IsHit reports whether mouse lies strictly inside the square of side hitBox
// centred on target. Points on the edge miss.
func IsHit(mouse, target Vec2, hitBox float32) bool {
	half := hitBox / 2
	inX := mouse.X > target.X-half && mouse.X < target.X+half
	inY := mouse.Y < target.Y+half && mouse.Y > target.Y-half
	return inX && inY
}
