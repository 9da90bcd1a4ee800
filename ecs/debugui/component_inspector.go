package debugui

import (
	"fmt"
	"reflect"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/scenecs/ecs"
)

var (
	einfoType     = reflect.TypeFor[ecs.EInfo]()
	transformType = reflect.TypeFor[ecs.Transform]()
)

func NewComponentInspectorComponent() ComponentInspectorComponent {
	return ComponentInspectorComponent{selected: ecs.Nil}
}

func (ci *ComponentInspectorComponent) Render(r *ecs.Registry, selection *Selection) {
	if !imgui.BeginV("Component Inspector", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ci.selected = selection.Entity

	if ci.selected.IsNil() {
		imgui.Text("No entity selected")
		imgui.End()
		return
	}
	if !r.Alive(ci.selected) {
		imgui.Text(fmt.Sprintf("Entity %s no longer exists", ci.selected))
		imgui.End()
		return
	}

	name := r.Name(ci.selected)
	imgui.Text(fmt.Sprintf("Entity: %s", ci.selected))
	imgui.SetNextItemWidth(200)
	if imgui.InputTextWithHint("Name", "", &name, imgui.InputTextFlagsNone, nil) {
		r.SetName(ci.selected, name)
	}
	if parent, ok := r.Parent(ci.selected); ok {
		imgui.Text(fmt.Sprintf("Parent: %s (%s)", r.Name(parent), parent))
	}
	imgui.Separator()

	for _, compType := range r.ComponentTypes(ci.selected) {
		if compType == einfoType {
			continue
		}
		if imgui.TreeNodeStr(compType.String()) {
			val := reflect.ValueOf(r.ComponentByType(ci.selected, compType)).Elem()
			if ci.renderValue(val) && compType == transformType {
				val.Addr().Interface().(*ecs.Transform).MatrixOutdated = true
			}
			imgui.TreePop()
		}
	}

	imgui.End()
}

// renderValue draws the exported fields of a struct and reports whether any
// of them was edited.
func (ci *ComponentInspectorComponent) renderValue(val reflect.Value) bool {
	if val.Kind() != reflect.Struct {
		imgui.Text(fmt.Sprintf("%v", val.Interface()))
		return false
	}

	changed := false
	for _, field := range layoutOf(val.Type()) {
		fieldVal := val.Field(field.Index)
		if field.Pointer {
			if fieldVal.IsNil() {
				imgui.Text(fmt.Sprintf("%s: nil", field.Name))
				continue
			}
			fieldVal = fieldVal.Elem()
		}
		if ci.renderField(field, fieldVal) {
			changed = true
		}
	}
	return changed
}

func (ci *ComponentInspectorComponent) renderField(field fieldLayout, val reflect.Value) bool {
	name := field.Name
	if field.ReadOnly || !val.CanSet() {
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
		return false
	}

	switch field.Widget {
	case widgetInt:
		v := int32(val.Int())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) {
			return setField(val, int64(v))
		}

	case widgetUint:
		v := int32(val.Uint())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputInt(fmt.Sprintf("##%s", name), &v) && v >= 0 {
			return setField(val, uint64(v))
		}

	case widgetFloat:
		v := float32(val.Float())
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(150)
		if imgui.InputFloat(fmt.Sprintf("##%s", name), &v) {
			return setField(val, float64(v))
		}

	case widgetBool:
		v := val.Bool()
		if imgui.Checkbox(name, &v) {
			return setField(val, v)
		}

	case widgetText:
		v := val.String()
		imgui.Text(fmt.Sprintf("%s:", name))
		imgui.SameLine()
		imgui.SetNextItemWidth(200)
		if imgui.InputTextWithHint(fmt.Sprintf("##%s", name), "", &v, imgui.InputTextFlagsNone, nil) {
			return setField(val, v)
		}

	case widgetStruct:
		changed := false
		if imgui.TreeNodeStr(name) {
			changed = ci.renderValue(val)
			imgui.TreePop()
		}
		return changed

	case widgetCount:
		imgui.Text(fmt.Sprintf("%s: %s[%d items]", name, val.Kind(), val.Len()))

	default:
		imgui.Text(fmt.Sprintf("%s: %v", name, val.Interface()))
	}
	return false
}

// setField stores v into field, converting between the widget's value type and
// the field's own kind. It reports false when the kinds do not match or the
// field cannot be set.
func setField(field reflect.Value, v any) bool {
	if !field.CanSet() {
		return false
	}
	switch x := v.(type) {
	case int64:
		if !field.CanInt() || field.OverflowInt(x) {
			return false
		}
		field.SetInt(x)
	case uint64:
		if !field.CanUint() || field.OverflowUint(x) {
			return false
		}
		field.SetUint(x)
	case float64:
		if !field.CanFloat() {
			return false
		}
		field.SetFloat(x)
	case bool:
		if field.Kind() != reflect.Bool {
			return false
		}
		field.SetBool(x)
	case string:
		if field.Kind() != reflect.String {
			return false
		}
		field.SetString(x)
	default:
		return false
	}
	return true
}
