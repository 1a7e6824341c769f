package lexer

import (
	"fmt"
	"strings"
	"unicode"
)

// Error is a lexical failure. Lexing stops at the first one.
type Error struct {
	Line  int
	Cause string
}

func (e *Error) Error() string {
	return fmt.Sprintf("TokenError on line %d: %s", e.Line, e.Cause)
}

// Lexer turns story source into tokens with one character of lookahead.
type Lexer struct {
	src  []rune
	pos  int
	line int
}

func New(src string) *Lexer {
	return &Lexer{
		src:  []rune(src),
		line: 1,
	}
}

// Line is the 1-based line the cursor is on.
func (l *Lexer) Line() int {
	return l.line
}

func (l *Lexer) done() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) current() rune {
	if l.done() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) advance() {
	if l.done() {
		return
	}
	if l.src[l.pos] == '\n' {
		l.line++
	}
	l.pos++
}

func (l *Lexer) errorf(format string, args ...interface{}) error {
	return &Error{Line: l.line, Cause: fmt.Sprintf(format, args...)}
}

// Next returns the next token. Once the input is exhausted every call
// returns an Eof token.
func (l *Lexer) Next() (Token, error) {
	for {
		if l.done() {
			return newToken(Eof, l.line), nil
		}
		ch := l.current()
		switch {
		case unicode.IsSpace(ch):
			l.advance()
		case ch == '#':
			l.skipComment()
		case ch == '@':
			return l.structural()
		case ch == '"':
			return l.str()
		case isAlnum(ch):
			return l.word()
		default:
			return l.punctuation()
		}
	}
}

func (l *Lexer) skipComment() {
	for !l.done() && l.current() != '\n' {
		l.advance()
	}
	l.advance()
}

func (l *Lexer) structural() (Token, error) {
	line := l.line
	var sb strings.Builder
	sb.WriteRune(l.current())
	l.advance()
	for !l.done() && (unicode.IsLetter(l.current()) || l.current() == '-') {
		sb.WriteRune(l.current())
		l.advance()
	}
	if k, ok := structural[sb.String()]; ok {
		return newToken(k, line), nil
	}
	return Token{}, l.errorf("Expected a structural keyword, got '%s' instead", sb.String())
}

func (l *Lexer) str() (Token, error) {
	line := l.line
	var sb strings.Builder
	l.advance()
	for {
		if l.done() {
			return Token{}, l.errorf("Unterminated string literal starting on line %d", line)
		}
		ch := l.current()
		if ch == '"' {
			l.advance()
			break
		}
		if ch == '\\' {
			l.advance()
			if l.done() {
				return Token{}, l.errorf("Unterminated string literal starting on line %d", line)
			}
			switch l.current() {
			case 'n':
				sb.WriteRune('\n')
				l.line++
			case 't':
				sb.WriteRune('\t')
			case '"':
				sb.WriteRune('"')
			default:
				return Token{}, l.errorf("Unrecognized escape sequence \\%c", l.current())
			}
			l.advance()
			continue
		}
		sb.WriteRune(ch)
		l.advance()
	}
	return Token{Kind: String, Value: collapseSpaces(sb.String()), Line: line}, nil
}

func (l *Lexer) word() (Token, error) {
	line := l.line
	var sb strings.Builder
	for !l.done() && (isAlnum(l.current()) || l.current() == '-') {
		sb.WriteRune(l.current())
		l.advance()
	}
	w := sb.String()
	if k, ok := directives[w]; ok {
		return newToken(k, line), nil
	}
	return Token{Kind: Identifier, Value: w, Line: line}, nil
}

func (l *Lexer) punctuation() (Token, error) {
	line := l.line
	ch := l.current()
	switch ch {
	case ':':
		l.advance()
		if l.current() == ':' {
			l.advance()
			return newToken(Scope, line), nil
		}
		return newToken(Colon, line), nil
	case '=':
		if l.peek() != '>' {
			l.advance()
			if l.done() {
				return Token{}, l.errorf("Unexpected '=' at end of input")
			}
			return Token{}, l.errorf("Unexpected sequence '=%c'", l.current())
		}
		l.advance()
		l.advance()
		return newToken(Arrow, line), nil
	case ';':
		l.advance()
		return newToken(Semicolon, line), nil
	case ',':
		l.advance()
		return newToken(Comma, line), nil
	case '?':
		l.advance()
		return newToken(Condition, line), nil
	case '{':
		l.advance()
		return newToken(OpenBrace, line), nil
	case '}':
		l.advance()
		return newToken(CloseBrace, line), nil
	case '(':
		l.advance()
		return newToken(OpenParen, line), nil
	case ')':
		l.advance()
		return newToken(CloseParen, line), nil
	}
	return Token{}, l.errorf("Unexpected character '%c'", ch)
}

// Tokenize lexes all of src. The result always ends with exactly one Eof.
func Tokenize(src string) ([]Token, error) {
	l := New(src)
	toret := []Token{}
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toret = append(toret, tok)
		if tok.Kind == Eof {
			return toret, nil
		}
	}
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func collapseSpaces(s string) string {
	for strings.Contains(s, "  ") {
		s = strings.ReplaceAll(s, "  ", " ")
	}
	return s
}
