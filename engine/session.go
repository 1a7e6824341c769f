package engine

import (
	"strings"

	"narrate/engine/ast"
)

type State int

const (
	Running State = iota
	Exited
)

func (s State) String() string {
	if s == Exited {
		return "exited"
	}
	return "running"
}

// Session is everything a run mutates. Only the Engine writes to it.
type Session struct {
	Filename  string
	File      *ast.File
	Position  ast.SceneReference
	Inventory *Inventory
	State     State
}

// Inventory is an ordered list of item names. Duplicates are kept and the
// original case is preserved; membership checks ignore case.
type Inventory struct {
	items []string
}

func NewInventory(items ...string) *Inventory {
	return &Inventory{items: append([]string{}, items...)}
}

func (inv *Inventory) Get(item string) {
	inv.items = append(inv.items, item)
}

// Lose removes the first item matching case-insensitively. It reports
// whether anything was removed.
func (inv *Inventory) Lose(item string) bool {
	want := strings.ToLower(item)
	for i, have := range inv.items {
		if strings.ToLower(have) == want {
			inv.items = append(inv.items[:i], inv.items[i+1:]...)
			return true
		}
	}
	return false
}

func (inv *Inventory) Has(item string) bool {
	want := strings.ToLower(item)
	for _, have := range inv.items {
		if strings.ToLower(have) == want {
			return true
		}
	}
	return false
}

// Satisfies reports whether an option guarded by cond is visible. A nil
// condition is always satisfied.
func (inv *Inventory) Satisfies(cond *ast.SelectCondition) bool {
	if cond == nil {
		return true
	}
	for _, item := range cond.Included {
		if !inv.Has(item) {
			return false
		}
	}
	for _, item := range cond.Excluded {
		if inv.Has(item) {
			return false
		}
	}
	return true
}

func (inv *Inventory) Items() []string {
	return append([]string{}, inv.items...)
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}
