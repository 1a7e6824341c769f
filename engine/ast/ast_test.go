package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leave() *Select {
	return &Select{Options: []*SelectOption{{Label: "Leave", Target: SceneReference{Scene: ExitID}}}}
}

func mustScene(t *testing.T, id string) *Scene {
	t.Helper()
	s, err := NewScene(id, []Directive{&Flavortext{Text: "Hi"}, leave()})
	require.NoError(t, err)
	return s
}

func TestNewSceneSelectCount(t *testing.T) {
	_, err := NewScene("none", []Directive{&Flavortext{Text: "Hi"}, &Get{Item: "key"}})
	var sErr *StructuralError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "scene 'none' has no select directive", sErr.Detail)

	_, err = NewScene("two", []Directive{leave(), &Lose{Item: "key"}, leave()})
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "scene 'two' has more than one select directive", sErr.Detail)

	sel := leave()
	s, err := NewScene("one", []Directive{&Get{Item: "key"}, sel, &Flavortext{Text: "after"}})
	require.NoError(t, err)
	assert.Same(t, sel, s.Select())
	assert.Len(t, s.Directives, 3)
}

func TestNewModule(t *testing.T) {
	_, err := NewModule("empty", nil)
	var sErr *StructuralError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "module 'empty' has no scenes", sErr.Detail)

	m, err := NewModule("m", []*Scene{mustScene(t, "a"), mustScene(t, "b")})
	require.NoError(t, err)
	s, ok := m.Scene("b")
	require.True(t, ok)
	assert.Equal(t, "b", s.ID)
	_, ok = m.Scene("c")
	assert.False(t, ok)
}

func TestNewFile(t *testing.T) {
	_, err := NewFile(nil, nil)
	var sErr *StructuralError
	require.ErrorAs(t, err, &sErr)
	assert.Equal(t, "file contains no scenes or modules", sErr.Detail)

	_, err = NewFile(nil, []*Scene{mustScene(t, ExitID)})
	require.ErrorAs(t, err, &sErr)

	m, err := NewModule("m", []*Scene{mustScene(t, ExitID)})
	require.NoError(t, err)
	_, err = NewFile([]*Module{m}, nil)
	assert.NoError(t, err, "module scenes may be named exit")
}

func TestFileSceneLookup(t *testing.T) {
	top := mustScene(t, "main")
	inner := mustScene(t, "main")
	m, err := NewModule("cave", []*Scene{inner})
	require.NoError(t, err)
	f, err := NewFile([]*Module{m}, []*Scene{top})
	require.NoError(t, err)

	got, ok := f.Scene(SceneReference{Scene: "main"})
	require.True(t, ok)
	assert.Same(t, top, got)

	got, ok = f.Scene(SceneReference{Module: "cave", Scene: "main"})
	require.True(t, ok)
	assert.Same(t, inner, got)

	_, ok = f.Scene(SceneReference{Module: "forest", Scene: "main"})
	assert.False(t, ok)
	_, ok = f.Scene(SceneReference{Scene: "cave"})
	assert.False(t, ok)

	assert.Equal(t, []string{"main", "cave::main"}, f.SceneIDs())
}

func TestDuplicateScenesFirstWins(t *testing.T) {
	first := mustScene(t, "a")
	f, err := NewFile(nil, []*Scene{first, mustScene(t, "a")})
	require.NoError(t, err)
	got, ok := f.Scene(SceneReference{Scene: "a"})
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestSceneReference(t *testing.T) {
	assert.Equal(t, "main", SceneReference{Scene: "main"}.String())
	assert.Equal(t, "m::s", SceneReference{Module: "m", Scene: "s"}.String())
	assert.True(t, SceneReference{Scene: "exit"}.IsExit())
	assert.False(t, SceneReference{Module: "m", Scene: "exit"}.IsExit())
	assert.False(t, SceneReference{Scene: "Exit"}.IsExit())
}

func TestFileReference(t *testing.T) {
	_, err := NewFileReference("", "", "main")
	assert.Error(t, err)
	_, err = NewFileReference("b.nar", "", "")
	assert.Error(t, err)

	r, err := NewFileReference("b.nar", "m", "s")
	require.NoError(t, err)
	assert.Equal(t, SceneReference{Module: "m", Scene: "s"}, r.Ref())
	assert.Equal(t, `(FileReference "b.nar"::m::s)`, r.String())
}

func TestNewSelectOption(t *testing.T) {
	_, err := NewSelectOption(nil, "Go", nil)
	assert.Error(t, err)

	opt, err := NewSelectOption(&SelectCondition{Included: []string{"sword"}, Excluded: []string{"shield"}}, "Go", SceneReference{Scene: "exit"})
	require.NoError(t, err)
	assert.Equal(t, `(SelectOption (Condition has "sword", has no "shield") ? "Go" => exit)`, opt.String())
}

func TestRendering(t *testing.T) {
	s, err := NewScene("main", []Directive{
		&Flavortext{Text: "Hi"},
		&Get{Item: "key"},
		&Lose{Item: "map"},
		leave(),
	})
	require.NoError(t, err)
	f, err := NewFile(nil, []*Scene{s})
	require.NoError(t, err)
	assert.Equal(t,
		`(File (Scene main (Flavortext "Hi") (Get "key") (Lose "map") (Select (SelectOption "Leave" => exit))))`,
		f.String())
}

func TestParseSceneReference(t *testing.T) {
	tests := []struct {
		in   string
		want SceneReference
	}{
		{"main", SceneReference{Scene: "main"}},
		{"cave::entrance", SceneReference{Module: "cave", Scene: "entrance"}},
		{"room-2::a-b", SceneReference{Module: "room-2", Scene: "a-b"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSceneReference(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}

	for _, bad := range []string{"", "::main", "a::", "a::b::c", "a b", "-a", "select", "m::has"} {
		_, err := ParseSceneReference(bad)
		assert.Error(t, err, bad)
	}
}
