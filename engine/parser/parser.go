package parser

import (
	"errors"
	"fmt"

	"narrate/engine/ast"
	"narrate/engine/lexer"
)

// SyntaxError is a grammar mismatch. Parsing stops at the first one.
type SyntaxError struct {
	Line     int
	Expected string
	Found    lexer.Token
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Parsing error on line %d: Expected %s, but got %s.", e.Line, e.Expected, e.Found)
}

// Parser is a recursive-descent parser with one token of lookahead.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
}

func New(lex *lexer.Lexer) (*Parser, error) {
	p := &Parser{lex: lex}
	if err := p.next(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParseString lexes and parses a whole story file.
func ParseString(src string) (*ast.File, error) {
	p, err := New(lexer.New(src))
	if err != nil {
		return nil, err
	}
	return p.ParseFile()
}

func (p *Parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.current = tok
	return nil
}

func (p *Parser) at(k lexer.Kind) bool {
	return p.current.Kind == k
}

func (p *Parser) fail(expected string) error {
	return &SyntaxError{Line: p.current.Line, Expected: expected, Found: p.current}
}

// consume checks the current token against k and moves past it, returning
// the consumed token.
func (p *Parser) consume(k lexer.Kind) (lexer.Token, error) {
	tok := p.current
	if tok.Kind != k {
		return tok, p.fail(k.String())
	}
	return tok, p.next()
}

// structural stamps line on construction errors coming out of the ast package.
func structural(err error, line int) error {
	var sErr *ast.StructuralError
	if errors.As(err, &sErr) && sErr.Line == 0 {
		sErr.Line = line
	}
	return err
}

// ParseFile consumes the whole token stream.
//
//	File := (Scene | Module)+
func (p *Parser) ParseFile() (*ast.File, error) {
	scenes := []*ast.Scene{}
	modules := []*ast.Module{}
	for !p.at(lexer.Eof) {
		switch p.current.Kind {
		case lexer.Scene:
			s, err := p.parseScene()
			if err != nil {
				return nil, err
			}
			scenes = append(scenes, s)
		case lexer.Module:
			m, err := p.parseModule()
			if err != nil {
				return nil, err
			}
			modules = append(modules, m)
		default:
			return nil, p.fail(`"@scene" or "@module"`)
		}
	}
	f, err := ast.NewFile(modules, scenes)
	return f, structural(err, p.current.Line)
}

//	Module := '@module' Id ':' Scene* '@end-module' Id
func (p *Parser) parseModule() (*ast.Module, error) {
	if _, err := p.consume(lexer.Module); err != nil {
		return nil, err
	}
	open, err := p.consume(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Colon); err != nil {
		return nil, err
	}
	scenes := []*ast.Scene{}
	for !p.at(lexer.EndModule) {
		if !p.at(lexer.Scene) {
			return nil, p.fail(`"@scene" or "@end-module"`)
		}
		s, err := p.parseScene()
		if err != nil {
			return nil, err
		}
		scenes = append(scenes, s)
	}
	if _, err := p.consume(lexer.EndModule); err != nil {
		return nil, err
	}
	closing, err := p.consume(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if closing.Value != open.Value {
		return nil, &ast.StructuralError{
			Line: closing.Line,
			Detail: fmt.Sprintf(`A module starting with "@module %s:" must end with "@end-module %s", not "@end-module %s"`,
				open.Value, open.Value, closing.Value),
		}
	}
	m, err := ast.NewModule(open.Value, scenes)
	return m, structural(err, open.Line)
}

//	Scene := '@scene' Id ':' Directive* '@end-scene'
func (p *Parser) parseScene() (*ast.Scene, error) {
	if _, err := p.consume(lexer.Scene); err != nil {
		return nil, err
	}
	id, err := p.consume(lexer.Identifier)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Colon); err != nil {
		return nil, err
	}
	directives := []ast.Directive{}
	for !p.at(lexer.EndScene) {
		d, err := p.parseDirective()
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	end, err := p.consume(lexer.EndScene)
	if err != nil {
		return nil, err
	}
	s, err := ast.NewScene(id.Value, directives)
	return s, structural(err, end.Line)
}

func (p *Parser) parseDirective() (ast.Directive, error) {
	switch p.current.Kind {
	case lexer.Flavortext:
		return p.parseFlavortext()
	case lexer.Select:
		return p.parseSelect()
	case lexer.Get:
		item, err := p.parseItemDirective(lexer.Get)
		if err != nil {
			return nil, err
		}
		return &ast.Get{Item: item}, nil
	case lexer.Lose:
		item, err := p.parseItemDirective(lexer.Lose)
		if err != nil {
			return nil, err
		}
		return &ast.Lose{Item: item}, nil
	}
	return nil, p.fail(`directive "flavortext", "select", "get", "lose" or "@end-scene"`)
}

//	Flavortext := 'flavortext' '{' String '}' ';'
func (p *Parser) parseFlavortext() (ast.Directive, error) {
	if _, err := p.consume(lexer.Flavortext); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.OpenBrace); err != nil {
		return nil, err
	}
	text, err := p.consume(lexer.String)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.CloseBrace); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Flavortext{Text: text.Value}, nil
}

//	Get  := 'get' String ';'
//	Lose := 'lose' String ';'
func (p *Parser) parseItemDirective(k lexer.Kind) (string, error) {
	if _, err := p.consume(k); err != nil {
		return "", err
	}
	item, err := p.consume(lexer.String)
	if err != nil {
		return "", err
	}
	if _, err := p.consume(lexer.Semicolon); err != nil {
		return "", err
	}
	return item.Value, nil
}

//	Select := 'select' '{' Option (',' Option)* '}' ';'
//
// A missing comma ends the option list, so a trailing comma is an error.
func (p *Parser) parseSelect() (ast.Directive, error) {
	if _, err := p.consume(lexer.Select); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.OpenBrace); err != nil {
		return nil, err
	}
	options := []*ast.SelectOption{}
	for {
		opt, err := p.parseOption()
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
		if !p.at(lexer.Comma) {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if _, err := p.consume(lexer.CloseBrace); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Semicolon); err != nil {
		return nil, err
	}
	return &ast.Select{Options: options}, nil
}

//	Option := Condition? String '=>' Target
func (p *Parser) parseOption() (*ast.SelectOption, error) {
	var cond *ast.SelectCondition
	if p.at(lexer.Has) {
		c, err := p.parseCondition()
		if err != nil {
			return nil, err
		}
		cond = c
	} else if !p.at(lexer.String) {
		return nil, p.fail(`"has" or an option label`)
	}
	label, err := p.consume(lexer.String)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Arrow); err != nil {
		return nil, err
	}
	target, err := p.parseTarget()
	if err != nil {
		return nil, err
	}
	opt, err := ast.NewSelectOption(cond, label.Value, target)
	return opt, structural(err, label.Line)
}

//	Condition := ('has' 'no'? String ','?)+ '?'
func (p *Parser) parseCondition() (*ast.SelectCondition, error) {
	cond := &ast.SelectCondition{}
	for !p.at(lexer.Condition) {
		if _, err := p.consume(lexer.Has); err != nil {
			return nil, err
		}
		excluded := p.at(lexer.No)
		if excluded {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
		item, err := p.consume(lexer.String)
		if err != nil {
			return nil, err
		}
		if excluded {
			cond.Excluded = append(cond.Excluded, item.Value)
		} else {
			cond.Included = append(cond.Included, item.Value)
		}
		if p.at(lexer.Comma) {
			if err := p.next(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.consume(lexer.Condition); err != nil {
		return nil, err
	}
	return cond, nil
}

//	Target := Id ('::' Id)?
//	        | '@file' '(' String ')' '::' Id ('::' Id)?
func (p *Parser) parseTarget() (ast.Target, error) {
	switch p.current.Kind {
	case lexer.Identifier:
		return p.parseSceneReference()
	case lexer.FileRef:
		return p.parseFileReference()
	}
	return nil, p.fail(`a scene identifier or "@file"`)
}

func (p *Parser) parseSceneReference() (ast.SceneReference, error) {
	first, err := p.consume(lexer.Identifier)
	if err != nil {
		return ast.SceneReference{}, err
	}
	if !p.at(lexer.Scope) {
		return ast.SceneReference{Scene: first.Value}, nil
	}
	if err := p.next(); err != nil {
		return ast.SceneReference{}, err
	}
	scene, err := p.consume(lexer.Identifier)
	if err != nil {
		return ast.SceneReference{}, err
	}
	return ast.SceneReference{Module: first.Value, Scene: scene.Value}, nil
}

func (p *Parser) parseFileReference() (*ast.FileReference, error) {
	at, err := p.consume(lexer.FileRef)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.OpenParen); err != nil {
		return nil, err
	}
	filename, err := p.consume(lexer.String)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.CloseParen); err != nil {
		return nil, err
	}
	if _, err := p.consume(lexer.Scope); err != nil {
		return nil, err
	}
	ref, err := p.parseSceneReference()
	if err != nil {
		return nil, err
	}
	r, err := ast.NewFileReference(filename.Value, ref.Module, ref.Scene)
	return r, structural(err, at.Line)
}
