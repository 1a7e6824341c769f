package ast

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"

	"narrate/engine/lexer"
)

var scopedLexer = plexer.MustSimple([]plexer.SimpleRule{
	{Name: "Ident", Pattern: `[\p{L}\p{N}][\p{L}\p{N}-]*`},
	{Name: "Scope", Pattern: `::`},
})

type scopedID struct {
	First string  `parser:"@Ident"`
	Scene *string `parser:"( \"::\" @Ident )?"`
}

var scopedParser = participle.MustBuild[scopedID](
	participle.Lexer(scopedLexer),
)

// ParseSceneReference parses a scoped id written outside a story file, such
// as the entry scene given on the command line.
func ParseSceneReference(s string) (SceneReference, error) {
	id, err := scopedParser.ParseString("", s)
	if err != nil {
		return SceneReference{}, fmt.Errorf("invalid scoped scene id %q: %w", s, err)
	}
	ref := SceneReference{Scene: id.First}
	if id.Scene != nil {
		ref = SceneReference{Module: id.First, Scene: *id.Scene}
	}
	for _, part := range []string{ref.Module, ref.Scene} {
		if _, reserved := lexer.LookupKeyword(part); reserved {
			return SceneReference{}, fmt.Errorf("invalid scoped scene id %q: '%s' is a reserved keyword", s, part)
		}
	}
	return ref, nil
}
