package platform

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/takeashot/ecs"
	"github.com/plus3/takeashot/ecs/debugui"
	debugui_ebiten "github.com/plus3/takeashot/ecs/debugui/ebiten"
	"github.com/plus3/takeashot/gallery"
)

// debugWorld is a second ECS world holding the ImGui panels that inspect the
// gallery simulation.
type debugWorld struct {
	scheduler  *ecs.Scheduler
	backend    *ecs.Singleton[debugui_ebiten.ImguiBackend]
	input      *ecs.Singleton[debugui.ImguiInputState]
	visibility *ecs.Singleton[debugui.ImguiVisibility]
}

func newDebugWorld(sim *gallery.Simulation, title string, width, height int) *debugWorld {
	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	scheduler := ecs.NewScheduler(storage)
	debugui.Install(scheduler)

	debugui.SpawnPerformancePanel(storage, sim.Storage(), sim.Scheduler())
	debugui.SpawnInspectors(storage, sim.Storage())
	debugui.SpawnPanel(storage, func() { renderGalleryPanel(sim) })

	return &debugWorld{
		scheduler:  scheduler,
		backend:    ecs.NewSingleton(storage, debugui_ebiten.NewImguiBackend(title, width, height)),
		input:      ecs.NewSingleton[debugui.ImguiInputState](storage),
		visibility: ecs.NewSingleton[debugui.ImguiVisibility](storage),
	}
}

func renderGalleryPanel(sim *gallery.Simulation) {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 420), imgui.CondOnce, imgui.NewVec2(0, 0))
	if !imgui.BeginV("Gallery", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	game := sim.Game()
	shots := sim.Shots()
	imgui.Text(fmt.Sprintf("State: %s", sim.State()))
	imgui.Text(fmt.Sprintf("Score: %d", game.Score))
	imgui.Text(fmt.Sprintf("Time Left: %ds", game.TimeLeft))
	imgui.Text(fmt.Sprintf("Ammo: %d", game.Ammo))
	imgui.Text(fmt.Sprintf("Aim: (%.0f, %.0f)", game.LastMouse.X, game.LastMouse.Y))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Shots: %d  Hits: %d  Points: %d", shots.TotalShots, shots.TotalHits, shots.TotalPoints))
	imgui.Text(fmt.Sprintf("Frames: %d", sim.Frames()))

	imgui.End()
}

// Update runs the panel systems inside one ImGui frame.
func (w *debugWorld) Update(dt float64) {
	if w.visibility.Get().Hidden {
		w.scheduler.Once(dt)
		return
	}
	w.backend.Get().BeginFrame()
	w.scheduler.Once(dt)
	w.backend.Get().EndFrame()
}

func (w *debugWorld) Draw(screen *ebiten.Image) {
	if w.visibility.Get().Hidden {
		return
	}
	w.backend.Get().Draw(screen)
}

func (w *debugWorld) Layout(width, height int) {
	w.backend.Get().Layout(width, height)
}

func (w *debugWorld) Toggle() {
	v := w.visibility.Get()
	v.Hidden = !v.Hidden
}

// WantsMouse reports whether a panel is using the mouse this frame.
func (w *debugWorld) WantsMouse() bool {
	return w.input.Get().WantCaptureMouse
}
