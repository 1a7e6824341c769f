package lexer

import (
	"fmt"
	"strings"
)

type Kind int

const (
	Eof Kind = iota

	// Structural keywords
	Module
	EndModule
	Scene
	EndScene
	FileRef

	// Directive keywords
	Flavortext
	Select
	Get
	Lose
	Has
	No

	// Punctuation
	Colon
	Semicolon
	OpenBrace
	CloseBrace
	Comma
	OpenParen
	CloseParen
	Condition
	Arrow
	Scope

	String
	Identifier
)

var literals = map[Kind]string{
	Module:     "@module",
	EndModule:  "@end-module",
	Scene:      "@scene",
	EndScene:   "@end-scene",
	FileRef:    "@file",
	Flavortext: "flavortext",
	Select:     "select",
	Get:        "get",
	Lose:       "lose",
	Has:        "has",
	No:         "no",
	Colon:      ":",
	Semicolon:  ";",
	OpenBrace:  "{",
	CloseBrace: "}",
	Comma:      ",",
	OpenParen:  "(",
	CloseParen: ")",
	Condition:  "?",
	Arrow:      "=>",
	Scope:      "::",
}

var structural = map[string]Kind{
	"@module":     Module,
	"@end-module": EndModule,
	"@scene":      Scene,
	"@end-scene":  EndScene,
	"@file":       FileRef,
}

var directives = map[string]Kind{
	"flavortext": Flavortext,
	"select":     Select,
	"get":        Get,
	"lose":       Lose,
	"has":        Has,
	"no":         No,
}

// LookupKeyword reports the directive keyword spelled by word, if any.
func LookupKeyword(word string) (Kind, bool) {
	k, ok := directives[word]
	return k, ok
}

func (k Kind) String() string {
	switch k {
	case Eof:
		return "end of file"
	case String:
		return "string"
	case Identifier:
		return "identifier"
	}
	if lit, ok := literals[k]; ok {
		return fmt.Sprintf("'%s'", lit)
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) IsKeyword() bool {
	return k >= Module && k <= No
}

func (k Kind) IsPunctuation() bool {
	return k >= Colon && k <= Scope
}

// Token is a single lexeme. Value holds the payload of String and Identifier
// tokens and the canonical spelling of every other kind.
type Token struct {
	Kind  Kind
	Value string
	Line  int
}

func newToken(k Kind, line int) Token {
	return Token{Kind: k, Value: literals[k], Line: line}
}

func (t Token) String() string {
	switch {
	case t.Kind.IsKeyword():
		return fmt.Sprintf("(Keyword %s)", t.Value)
	case t.Kind.IsPunctuation():
		return fmt.Sprintf("(Punctuation '%s')", t.Value)
	case t.Kind == Eof:
		return "(End of file)"
	case t.Kind == String:
		escaped := strings.NewReplacer("\n", `\n`, `"`, `\"`).Replace(t.Value)
		return fmt.Sprintf(`(String "%s")`, escaped)
	default:
		return fmt.Sprintf("(Identifier %s)", t.Value)
	}
}
