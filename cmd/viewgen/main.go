// Command viewgen writes ecs/view_generated.go, the typed multi-component views.
//
//	go run ./cmd/viewgen -out ecs/view_generated.go -max 4
package main

import (
	"bytes"
	"flag"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"golang.org/x/tools/imports"
)

var letters = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

type viewSpec struct {
	N      int
	Types  []string
	Fields []field
}

type field struct {
	Name string
	Type string
}

// TypeParams renders "A any, B any"
func (v viewSpec) TypeParams() string {
	parts := make([]string, len(v.Types))
	for i, t := range v.Types {
		parts[i] = t + " any"
	}
	return strings.Join(parts, ", ")
}

// TypeArgs renders "A, B"
func (v viewSpec) TypeArgs() string {
	return strings.Join(v.Types, ", ")
}

// Pointers renders "*A, *B"
func (v viewSpec) Pointers() string {
	parts := make([]string, len(v.Types))
	for i, t := range v.Types {
		parts[i] = "*" + t
	}
	return strings.Join(parts, ", ")
}

// FieldList renders "a, b"
func (v viewSpec) FieldList() string {
	names := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		names[i] = f.Name
	}
	return strings.Join(names, ", ")
}

// Prose renders "A and B" or "A, B and C"
func (v viewSpec) Prose() string {
	if len(v.Types) == 1 {
		return v.Types[0]
	}
	return strings.Join(v.Types[:len(v.Types)-1], ", ") + " and " + v.Types[len(v.Types)-1]
}

const viewTemplate = `// Code generated by cmd/viewgen; DO NOT EDIT.

package ecs

import "iter"
{{range .}}
// View{{.N}} iterates the entities owning {{.Prose}}.
// Iteration is driven by the smallest pool, picked when iteration starts; each
// candidate is then tested for membership in the other pools.
//
// Iteration order is not stable across structural changes. Do not add or
// remove any of the viewed components while iterating.
type View{{.N}}[{{.TypeParams}}] struct {
{{- range .Fields}}
	{{.Name}} *Pool[{{.Type}}]
{{- end}}
	pools [{{.N}}]ErasedPool
}

// NewView{{.N}} creates a view over the pools of {{.Prose}}.
// Panics with ErrComponentNotRegistered if any type is not registered.
func NewView{{.N}}[{{.TypeParams}}](r *Registry) *View{{.N}}[{{.TypeArgs}}] {
{{- range .Fields}}
	{{.Name}} := PoolOf[{{.Type}}](r)
{{- end}}
	return &View{{.N}}[{{.TypeArgs}}]{
{{- range .Fields}}
		{{.Name}}: {{.Name}},
{{- end}}
		pools: [{{.N}}]ErasedPool{ {{- .FieldList -}} },
	}
}

func (v *View{{.N}}[{{.TypeArgs}}]) driver() ErasedPool {
	d := v.pools[0]
	for _, p := range v.pools[1:] {
		if p.Len() < d.Len() {
			d = p
		}
	}
	return d
}

// Contains reports whether id owns every viewed component
func (v *View{{.N}}[{{.TypeArgs}}]) Contains(id EntityId) bool {
	return {{range $i, $f := .Fields}}{{if $i}} && {{end}}v.{{$f.Name}}.Has(id){{end}}
}

// Get returns the components of id.
// Panics with ErrNotInView if id does not own all of them.
func (v *View{{.N}}[{{.TypeArgs}}]) Get(id EntityId) ({{.Pointers}}) {
	if !v.Contains(id) {
		violation(ErrNotInView, "entity %d", id)
	}
	return {{range $i, $f := .Fields}}{{if $i}}, {{end}}v.{{$f.Name}}.Get(id){{end}}
}

// Iter yields the id of every entity in the view
func (v *View{{.N}}[{{.TypeArgs}}]) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for _, id := range v.driver().Entities() {
			if !v.Contains(id) {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}

// Each calls fn for every entity in the view with its components
func (v *View{{.N}}[{{.TypeArgs}}]) Each(fn func(EntityId{{range .Types}}, *{{.}}{{end}})) {
	for _, id := range v.driver().Entities() {
		if !v.Contains(id) {
			continue
		}
		fn(id{{range .Fields}}, v.{{.Name}}.Get(id){{end}})
	}
}

// Find returns the position of id in iteration order, counting only members.
func (v *View{{.N}}[{{.TypeArgs}}]) Find(id EntityId) (int, bool) {
	if !v.Contains(id) {
		return -1, false
	}
	pos := 0
	for _, candidate := range v.driver().Entities() {
		if candidate == id {
			return pos, true
		}
		if v.Contains(candidate) {
			pos++
		}
	}
	return -1, false
}

// SizeHint is an upper bound on the number of entities in the view: the size
// of the smallest pool.
func (v *View{{.N}}[{{.TypeArgs}}]) SizeHint() int {
	return v.driver().Len()
}

// Sizes returns the size of each viewed pool, in type parameter order
func (v *View{{.N}}[{{.TypeArgs}}]) Sizes() [{{.N}}]int {
	return [{{.N}}]int{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}v.{{$f.Name}}.Len(){{end -}} }
}

// Count walks the view and returns the number of members
func (v *View{{.N}}[{{.TypeArgs}}]) Count() int {
	n := 0
	for _, id := range v.driver().Entities() {
		if v.Contains(id) {
			n++
		}
	}
	return n
}

// Entities collects the ids of every member
func (v *View{{.N}}[{{.TypeArgs}}]) Entities() []EntityId {
	var ids []EntityId
	for id := range v.Iter() {
		ids = append(ids, id)
	}
	return ids
}
{{end}}`

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		With().Timestamp().Logger()

	if err := run(os.Args[1:], log); err != nil {
		log.Fatal().Str("error", eris.ToString(err, true)).Msg("view generation failed")
	}
}

func run(args []string, log zerolog.Logger) error {
	fs := flag.NewFlagSet("viewgen", flag.ContinueOnError)
	out := fs.String("out", "view_generated.go", "Output file.")
	maxArity := fs.Int("max", 4, "Largest number of component types per view.")
	if err := fs.Parse(args); err != nil {
		return eris.Wrap(err, "parsing flags")
	}

	if *maxArity < 2 || *maxArity > len(letters) {
		return eris.Errorf("-max must be between 2 and %d, got %d", len(letters), *maxArity)
	}

	src, err := generate(*maxArity)
	if err != nil {
		return err
	}
	if err := os.WriteFile(*out, src, 0o644); err != nil {
		return eris.Wrapf(err, "writing %s", *out)
	}
	log.Info().Str("out", *out).Int("max", *maxArity).Msg("views generated")
	return nil
}

func generate(maxArity int) ([]byte, error) {
	specs := make([]viewSpec, 0, maxArity-1)
	for n := 2; n <= maxArity; n++ {
		spec := viewSpec{N: n, Types: letters[:n]}
		for _, t := range spec.Types {
			spec.Fields = append(spec.Fields, field{Name: strings.ToLower(t), Type: t})
		}
		specs = append(specs, spec)
	}

	tmpl, err := template.New("views").Parse(viewTemplate)
	if err != nil {
		return nil, eris.Wrap(err, "parsing view template")
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, specs); err != nil {
		return nil, eris.Wrap(err, "executing view template")
	}

	formatted, err := imports.Process("view_generated.go", buf.Bytes(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "formatting generated views")
	}
	return formatted, nil
}
