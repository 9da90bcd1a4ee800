package debugui

import (
	"reflect"
	"strings"
	"sync"
)

// widget is the inspector control chosen for a field kind
type widget uint8

const (
	widgetValue widget = iota
	widgetInt
	widgetUint
	widgetFloat
	widgetBool
	widgetText
	widgetStruct
	widgetCount
)

// fieldLayout is how the component inspector draws one exported struct field.
// Options come from the `editor` struct tag: "readonly" renders the value as
// text, "hidden" leaves the field out.
type fieldLayout struct {
	Name     string
	Index    int
	Pointer  bool
	Widget   widget
	ReadOnly bool
}

func widgetFor(t reflect.Type) widget {
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return widgetInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return widgetUint
	case reflect.Float32, reflect.Float64:
		return widgetFloat
	case reflect.Bool:
		return widgetBool
	case reflect.String:
		return widgetText
	case reflect.Struct:
		return widgetStruct
	case reflect.Slice, reflect.Map:
		return widgetCount
	}
	return widgetValue
}

func parseEditorTag(tag string) (readOnly, hidden bool) {
	for _, opt := range strings.Split(tag, ",") {
		switch strings.TrimSpace(opt) {
		case "readonly":
			readOnly = true
		case "hidden":
			hidden = true
		}
	}
	return readOnly, hidden
}

func buildLayout(t reflect.Type) []fieldLayout {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var layout []fieldLayout
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		readOnly, hidden := parseEditorTag(f.Tag.Get("editor"))
		if hidden {
			continue
		}
		ft := f.Type
		pointer := ft.Kind() == reflect.Pointer
		if pointer {
			ft = ft.Elem()
		}
		layout = append(layout, fieldLayout{
			Name:     f.Name,
			Index:    i,
			Pointer:  pointer,
			Widget:   widgetFor(ft),
			ReadOnly: readOnly,
		})
	}
	return layout
}

// layouts memoizes buildLayout per component type
var layouts sync.Map

func layoutOf(t reflect.Type) []fieldLayout {
	if cached, ok := layouts.Load(t); ok {
		return cached.([]fieldLayout)
	}
	layout, _ := layouts.LoadOrStore(t, buildLayout(t))
	return layout.([]fieldLayout)
}
