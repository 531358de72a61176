// Package debugui renders Dear ImGui panels from ECS entities. Each panel is
// an entity carrying an ImguiItem; ImguiSystem draws them every frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/takeashot/ecs"
)

// ImguiItem holds a Dear ImGui render function. Spawn one per panel.
type ImguiItem struct {
	Render func()
}

// ImguiInputState is a singleton mirroring whether ImGui wants the mouse or
// keyboard this frame. Game input should be dropped while it does.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiVisibility is a singleton toggling every panel at once.
type ImguiVisibility struct {
	Hidden bool
}

// ImguiSystem defers every ImguiItem's render function to the end of the
// frame and refreshes ImguiInputState. Hidden panels never capture input.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
	Visibility ecs.Singleton[ImguiVisibility]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	state := i.InputState.Get()
	if i.Visibility.Get().Hidden {
		*state = ImguiInputState{}
		return
	}

	io := imgui.CurrentIO()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Iter() {
		frame.Commands.Defer(item.Render)
	}
}
