package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsHit(t *testing.T) {
	target := Vec2{X: 100, Y: 50}
	tests := []struct {
		name  string
		mouse Vec2
		want  bool
	}{
		{"centre", Vec2{100, 50}, true},
		{"inside corner", Vec2{149, 99}, true},
		{"left edge", Vec2{50, 50}, false},
		{"right edge", Vec2{150, 50}, false},
		{"top edge", Vec2{100, 100}, false},
		{"bottom edge", Vec2{100, 0}, false},
		{"outside x", Vec2{151, 50}, false},
		{"outside y", Vec2{100, -1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHit(tt.mouse, target, 100))
		})
	}
}

func TestClockKindIndex(t *testing.T) {
	tests := []struct {
		timeLeft            uint
		minute, ten, second int
	}{
		{90, 1, 3, 0},
		{89, 1, 2, 9},
		{60, 1, 0, 0},
		{59, 0, 5, 9},
		{10, 0, 1, 0},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		minute, ok := ClockMinute.Index(tt.timeLeft)
		assert.True(t, ok)
		assert.Equal(t, tt.minute, minute, "minute of %d", tt.timeLeft)
		ten, _ := ClockTen.Index(tt.timeLeft)
		assert.Equal(t, tt.ten, ten, "ten of %d", tt.timeLeft)
		second, _ := ClockSecond.Index(tt.timeLeft)
		assert.Equal(t, tt.second, second, "second of %d", tt.timeLeft)
	}

	_, ok := ClockColon.Index(42)
	assert.False(t, ok)
}

func TestScoreKindIndex(t *testing.T) {
	tests := []struct {
		score                       uint
		thousand, hundred, ten, one int
	}{
		{0, 0, 0, 0, 0},
		{10, 0, 0, 1, 0},
		{355, 0, 3, 5, 5},
		{9999, 9, 9, 9, 9},
		{10000, 0, 0, 0, 0},
		{12345, 2, 3, 4, 5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.thousand, ScoreThousand.Index(tt.score), "thousands of %d", tt.score)
		assert.Equal(t, tt.hundred, ScoreHundred.Index(tt.score), "hundreds of %d", tt.score)
		assert.Equal(t, tt.ten, ScoreTen.Index(tt.score), "tens of %d", tt.score)
		assert.Equal(t, tt.one, ScoreOne.Index(tt.score), "ones of %d", tt.score)
	}
}

func TestSceneryWrap(t *testing.T) {
	assert.Equal(t, float32(650), advanceCloud(649))
	assert.Equal(t, float32(-650), advanceCloud(650))

	assert.Equal(t, float32(-660), advanceBackWave(-658))
	assert.Equal(t, float32(660), advanceBackWave(-659))

	assert.Equal(t, float32(660), advanceFrontWave(658))
	assert.Equal(t, float32(-655), advanceFrontWave(659))

	assert.Equal(t, float32(650), advanceTarget(600, 50))
	assert.Equal(t, float32(-650), advanceTarget(601, 50))
}

func TestBobTarget(t *testing.T) {
	y := float32(120)
	var seen []float32
	for range 4 {
		y = bobTarget(y, 120)
		seen = append(seen, y)
	}
	assert.Equal(t, []float32{60, 120, 60, 120}, seen)

	assert.Equal(t, float32(120), bobTarget(33, 120), "any other height snaps back to the start")
}

func TestScreenToWorld(t *testing.T) {
	viewport := Vec2{1280, 720}
	assert.Equal(t, Vec2{0, 0}, ScreenToWorld(Vec2{640, 360}, viewport))
	assert.Equal(t, Vec2{-640, -360}, ScreenToWorld(Vec2{0, 0}, viewport))
	assert.Equal(t, Vec2{640, 360}, ScreenToWorld(Vec2{1280, 720}, viewport))
}

func TestStateNames(t *testing.T) {
	assert.Equal(t, "Playing", Playing.String())
	assert.Equal(t, "GameOver", GameOver.String())
	assert.Equal(t, "GameState(5)", GameState(5).String())
	assert.Equal(t, "Colon", ClockColon.String())
	assert.Equal(t, "One", ScoreOne.String())
}

func TestIsHitBoundary(t *testing.T) {
	assert.False(t, IsHit(Vec2{0, 0}, Vec2{65, 0}, 128), "65 is past the 64 half-width")
	assert.True(t, IsHit(Vec2{0, 0}, Vec2{63, 0}, 128))
	assert.False(t, IsHit(Vec2{0, 0}, Vec2{64, 0}, 128), "edge is a miss")
}

func TestIsHitSymmetric(t *testing.T) {
	target := Vec2{X: -40, Y: 25}
	for _, hitBox := range []float32{16, 100, 128} {
		for dx := float32(-80); dx <= 80; dx += 4 {
			for dy := float32(-80); dy <= 80; dy += 4 {
				mouse := Vec2{target.X + dx, target.Y + dy}
				mirrored := Vec2{target.X - dx, target.Y - dy}
				assert.Equal(t, IsHit(mouse, target, hitBox), IsHit(mirrored, target, hitBox),
					"offset (%v, %v) box %v", dx, dy, hitBox)
			}
		}
	}
}

func TestScoreDigitsCoverEveryScore(t *testing.T) {
	for score := range uint(10000) {
		digits := []int{
			ScoreThousand.Index(score),
			ScoreHundred.Index(score),
			ScoreTen.Index(score),
			ScoreOne.Index(score),
		}
		rebuilt := 0
		for _, d := range digits {
			require.GreaterOrEqual(t, d, 0)
			require.LessOrEqual(t, d, 9)
			rebuilt = rebuilt*10 + d
		}
		require.Equal(t, int(score), rebuilt, "score %d", score)
	}
}

func TestClockDigitsCoverEverySecond(t *testing.T) {
	for timeLeft := range uint(90) {
		minute, _ := ClockMinute.Index(timeLeft)
		ten, _ := ClockTen.Index(timeLeft)
		second, _ := ClockSecond.Index(timeLeft)

		require.LessOrEqual(t, ten, 5, "time %d", timeLeft)
		require.LessOrEqual(t, second, 9, "time %d", timeLeft)
		require.Equal(t, int(timeLeft), minute*60+ten*10+second, "time %d", timeLeft)
	}
}
