package debugui

import (
	"testing"
	"time"

	"github.com/plus3/takeashot/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameHistoryAverage(t *testing.T) {
	h := NewFrameHistory(4)
	assert.Zero(t, h.Average())

	h.Push(10)
	h.Push(20)
	assert.InDelta(t, 15, h.Average(), 1e-6)

	for _, ms := range []float32{30, 40, 50, 60} {
		h.Push(ms)
	}
	// only the newest four survive
	assert.InDelta(t, 45, h.Average(), 1e-6)
	assert.Equal(t, []float32{50, 60, 30, 40}, h.Samples())
}

func TestFrameHistoryMinimumSize(t *testing.T) {
	h := NewFrameHistory(0)
	h.Push(7)
	h.Push(9)
	assert.Len(t, h.Samples(), 1)
	assert.InDelta(t, 9, h.Average(), 1e-6)
}

func TestFrameTimer(t *testing.T) {
	timer := NewFrameTimer()
	time.Sleep(5 * time.Millisecond)
	assert.GreaterOrEqual(t, timer.GetDeltaTime(), float32(0.005))
	assert.Less(t, timer.GetDeltaTime(), float32(0.005))
}

func TestSpawnPanels(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	watched := ecs.NewStorage(ecs.NewComponentRegistry())
	panel := SpawnPerformancePanel(storage, watched, nil)
	require.NotNil(t, panel)
	assert.Equal(t, "Performance", panel.Title)

	rendered := 0
	SpawnPanel(storage, func() { rendered++ })

	items := ecs.NewView[struct{ *ImguiItem }](storage)
	count := 0
	for item := range items.Iter() {
		require.NotNil(t, item.Render)
		count++
	}
	assert.Equal(t, 2, count)
	assert.Zero(t, rendered)
}

func TestInstall(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)

	Install(scheduler)

	assert.True(t, ecs.NewSingleton[ImguiInputState](storage).Exists())
	assert.False(t, ecs.NewSingleton[ImguiVisibility](storage).Get().Hidden)
	assert.Equal(t, 1, scheduler.GetStats().SystemCount)
}
