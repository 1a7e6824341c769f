package ast

import (
	"fmt"
	"strings"
)

// ExitID is the reserved target that ends a session.
const ExitID = "exit"

// StructuralError reports a tree that breaks one of the node invariants.
// Line is zero when the node was not built by the parser.
type StructuralError struct {
	Line   int
	Detail string
}

func (e *StructuralError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("Structural error on line %d: %s", e.Line, e.Detail)
	}
	return fmt.Sprintf("Structural error: %s", e.Detail)
}

func structuralf(format string, args ...interface{}) error {
	return &StructuralError{Detail: fmt.Sprintf(format, args...)}
}

// Directive is one of *Flavortext, *Get, *Lose or *Select.
type Directive interface {
	fmt.Stringer
	directive()
}

type Flavortext struct {
	Text string
}

type Get struct {
	Item string
}

type Lose struct {
	Item string
}

type Select struct {
	Options []*SelectOption
}

func (*Flavortext) directive() {}
func (*Get) directive()        {}
func (*Lose) directive()       {}
func (*Select) directive()     {}

func (d *Flavortext) String() string { return fmt.Sprintf("(Flavortext %q)", d.Text) }
func (d *Get) String() string        { return fmt.Sprintf("(Get %q)", d.Item) }
func (d *Lose) String() string       { return fmt.Sprintf("(Lose %q)", d.Item) }

func (d *Select) String() string {
	parts := make([]string, 0, len(d.Options))
	for _, opt := range d.Options {
		parts = append(parts, opt.String())
	}
	return fmt.Sprintf("(Select %s)", strings.Join(parts, " "))
}

// SelectCondition is the `has "x", has no "y" ?` guard of an option.
type SelectCondition struct {
	Included []string
	Excluded []string
}

func (c *SelectCondition) String() string {
	parts := []string{}
	for _, item := range c.Included {
		parts = append(parts, fmt.Sprintf("has %q", item))
	}
	for _, item := range c.Excluded {
		parts = append(parts, fmt.Sprintf("has no %q", item))
	}
	return fmt.Sprintf("(Condition %s)", strings.Join(parts, ", "))
}

type SelectOption struct {
	Condition *SelectCondition
	Label     string
	Target    Target
}

func NewSelectOption(cond *SelectCondition, label string, target Target) (*SelectOption, error) {
	if target == nil {
		return nil, structuralf("select option %q has no target", label)
	}
	return &SelectOption{Condition: cond, Label: label, Target: target}, nil
}

func (o *SelectOption) String() string {
	if o.Condition == nil {
		return fmt.Sprintf("(SelectOption %q => %s)", o.Label, o.Target)
	}
	return fmt.Sprintf("(SelectOption %s ? %q => %s)", o.Condition, o.Label, o.Target)
}

type Scene struct {
	ID         string
	Directives []Directive
	sel        *Select
}

// NewScene fails unless exactly one of the directives is a *Select.
func NewScene(id string, directives []Directive) (*Scene, error) {
	if id == "" {
		return nil, structuralf("scene has an empty identifier")
	}
	var sel *Select
	for _, d := range directives {
		s, ok := d.(*Select)
		if !ok {
			continue
		}
		if sel != nil {
			return nil, structuralf("scene '%s' has more than one select directive", id)
		}
		sel = s
	}
	if sel == nil {
		return nil, structuralf("scene '%s' has no select directive", id)
	}
	return &Scene{ID: id, Directives: directives, sel: sel}, nil
}

// Select returns the scene's only select directive.
func (s *Scene) Select() *Select {
	return s.sel
}

func (s *Scene) String() string {
	parts := make([]string, 0, len(s.Directives))
	for _, d := range s.Directives {
		parts = append(parts, d.String())
	}
	return fmt.Sprintf("(Scene %s %s)", s.ID, strings.Join(parts, " "))
}

type Module struct {
	ID     string
	Scenes []*Scene
}

func NewModule(id string, scenes []*Scene) (*Module, error) {
	if id == "" {
		return nil, structuralf("module has an empty identifier")
	}
	if len(scenes) == 0 {
		return nil, structuralf("module '%s' has no scenes", id)
	}
	return &Module{ID: id, Scenes: scenes}, nil
}

func (m *Module) Scene(id string) (*Scene, bool) {
	return findScene(m.Scenes, id)
}

func (m *Module) String() string {
	parts := make([]string, 0, len(m.Scenes))
	for _, s := range m.Scenes {
		parts = append(parts, s.String())
	}
	return fmt.Sprintf("(Module %s %s)", m.ID, strings.Join(parts, " "))
}

// File is the root of a parsed story file.
type File struct {
	Scenes  []*Scene
	Modules []*Module
}

func NewFile(modules []*Module, scenes []*Scene) (*File, error) {
	if len(modules) == 0 && len(scenes) == 0 {
		return nil, structuralf("file contains no scenes or modules")
	}
	for _, s := range scenes {
		if s.ID == ExitID {
			return nil, structuralf("'%s' is reserved and cannot name a top-level scene", ExitID)
		}
	}
	return &File{Scenes: scenes, Modules: modules}, nil
}

func (f *File) Module(id string) (*Module, bool) {
	for _, m := range f.Modules {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// Scene resolves ref against this file. Unscoped references search the
// top-level scenes, scoped ones the named module.
func (f *File) Scene(ref SceneReference) (*Scene, bool) {
	if !ref.Scoped() {
		return findScene(f.Scenes, ref.Scene)
	}
	m, ok := f.Module(ref.Module)
	if !ok {
		return nil, false
	}
	return m.Scene(ref.Scene)
}

// SceneIDs lists the scoped id of every scene in declaration order,
// top-level scenes first.
func (f *File) SceneIDs() []string {
	toret := []string{}
	for _, s := range f.Scenes {
		toret = append(toret, SceneReference{Scene: s.ID}.String())
	}
	for _, m := range f.Modules {
		for _, s := range m.Scenes {
			toret = append(toret, SceneReference{Module: m.ID, Scene: s.ID}.String())
		}
	}
	return toret
}

func (f *File) String() string {
	parts := []string{}
	for _, s := range f.Scenes {
		parts = append(parts, s.String())
	}
	for _, m := range f.Modules {
		parts = append(parts, m.String())
	}
	return fmt.Sprintf("(File %s)", strings.Join(parts, " "))
}

func findScene(scenes []*Scene, id string) (*Scene, bool) {
	for _, s := range scenes {
		if s.ID == id {
			return s, true
		}
	}
	return nil, false
}
