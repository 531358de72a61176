package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/takeashot/ecs"
)

func NewComponentInspector(storage *ecs.Storage, browser *EntityBrowser) *ComponentInspector {
	return &ComponentInspector{storage: storage, browser: browser}
}

func (ci *ComponentInspector) Render() {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	id := ci.browser.Selected()
	if id == 0 {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("Entity ID: %d", id))
	imgui.Text(fmt.Sprintf("Archetype: 0x%X", id.ArchetypeId()))
	if parent, ok := ci.storage.Parent(id); ok {
		imgui.Text(fmt.Sprintf("Parent: %d", parent))
		imgui.SameLine()
		if imgui.Button("Select Parent") {
			ci.browser.Select(parent)
		}
	}
	imgui.Separator()

	for compType := range entityComponentTypes(ci.storage, id) {
		component := ci.storage.GetComponent(id, compType)
		if component == nil {
			continue
		}

		if imgui.TreeNodeStr(compType.String()) {
			ci.renderComponent(component, compType, id)
			imgui.TreePop()
		}
	}

	imgui.End()
}

// entityComponentTypes yields the component types of id's archetype.
func entityComponentTypes(storage *ecs.Storage, id ecs.EntityId) func(yield func(reflect.Type) bool) {
	return func(yield func(reflect.Type) bool) {
		for archetype := range storage.Archetypes() {
			if archetype.ID() != id.ArchetypeId() {
				continue
			}
			for _, t := range archetype.Types() {
				if !yield(t) {
					return
				}
			}
			return
		}
	}
}

func (ci *ComponentInspector) renderComponent(component any, compType reflect.Type, id ecs.EntityId) {
	val := reflect.ValueOf(component)
	if val.Kind() == reflect.Pointer {
		val = val.Elem()
	}

	for _, field := range globalReflectionCache.GetFields(compType) {
		fieldVal := val.Field(field.Index)
		if field.IsPointer && !fieldVal.IsNil() {
			fieldVal = fieldVal.Elem()
		}
		ci.renderField(field.Name, fieldVal, field, id, compType, []int{field.Index})
	}
}

// renderField draws one field. Scalar fields are editable; path locates the
// field from the component root for setField.
func (ci *ComponentInspector) renderField(name string, val reflect.Value, field FieldInfo, id ecs.EntityId, compType reflect.Type, path []int) {
	if !val.IsValid() {
		imgui.Text(fmt.Sprintf("%s: <invalid>", name))
		return
	}

	if field.IsPointer && val.Kind() == reflect.Pointer && val.IsNil() {
		imgui.Text(fmt.Sprintf("%s: nil", name))
		return
	}

	if field.IsPointer {
		// edits through pointers would reach shared data; show them read-only
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		return
	}

	switch val.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			setField(ci.storage, id, compType, path, reflect.ValueOf(int64(v)))
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			setField(ci.storage, id, compType, path, reflect.ValueOf(uint64(v)))
		}

	case reflect.Float32, reflect.Float64:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			setField(ci.storage, id, compType, path, reflect.ValueOf(float64(v)))
		}

	case reflect.Bool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			setField(ci.storage, id, compType, path, reflect.ValueOf(v))
		}

	case reflect.String:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			setField(ci.storage, id, compType, path, reflect.ValueOf(v))
		}

	case reflect.Struct:
		if imgui.TreeNodeStr(name) {
			for _, nf := range globalReflectionCache.GetFields(val.Type()) {
				nestedVal := val.Field(nf.Index)
				if nf.IsPointer && !nestedVal.IsNil() {
					nestedVal = nestedVal.Elem()
				}
				ci.renderField(nf.Name, nestedVal, nf, id, compType, extendPath(path, nf.Index))
			}
			imgui.TreePop()
		}

	case reflect.Slice:
		imgui.Text(fmt.Sprintf("%s: [%d items]", name, val.Len()))

	case reflect.Map:
		imgui.Text(fmt.Sprintf("%s: map[%d items]", name, val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
}

func extendPath(path []int, index int) []int {
	return append(append([]int(nil), path...), index)
}

// setField writes value into the component field at path, converting between
// numeric kinds. It reports whether the write happened.
func setField(storage *ecs.Storage, id ecs.EntityId, compType reflect.Type, path []int, value reflect.Value) bool {
	if !storage.Alive(id) {
		return false
	}
	component := storage.GetComponent(id, compType)
	if component == nil {
		return false
	}

	field := reflect.ValueOf(component).Elem()
	for _, index := range path {
		if field.Kind() != reflect.Struct || index >= field.NumField() {
			return false
		}
		field = field.Field(index)
	}
	if !field.CanSet() {
		return false
	}

	if value.Kind() != field.Kind() && !(isNumeric(value.Kind()) && isNumeric(field.Kind())) {
		return false
	}
	if !value.CanConvert(field.Type()) {
		return false
	}
	field.Set(value.Convert(field.Type()))
	return true
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
