package formula

import (
	"strings"
	"unicode"
)

const (
	charEquals   = '='
	charLParen   = '('
	charRParen   = ')'
	charLBracket = '['
	charRBracket = ']'
	charPeriod   = '.'
	charPlus     = '+'
	charMinus    = '-'
	charAsterisk = '*'
	charSlash    = '/'
)

// Lexer splits a formula into tokens.
type Lexer struct {
	runes []rune
	pos   int
}

// NewLexer creates a lexer for src.
func NewLexer(src string) *Lexer {
	return &Lexer{runes: []rune(src)}
}

// Tokenize returns every token of the source, ending with TokenEOF.
func (l *Lexer) Tokenize() ([]Token, error) {
	l.skipSpace()
	if l.current() == charEquals {
		l.pos++
	}

	var tokens []Token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (Token, error) {
	l.skipSpace()
	start := l.pos
	if start >= len(l.runes) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	ch := l.current()
	switch {
	case isDigit(ch) || (ch == charPeriod && isDigit(l.peek(1))):
		return l.scanNumber(), nil
	case ch == charLBracket:
		return l.scanBracketed()
	case isIdentStart(ch):
		return l.scanIdentifier(), nil
	}

	l.pos++
	switch ch {
	case charPlus, charMinus, charAsterisk, charSlash:
		return Token{Type: TokenOperator, Value: string(ch), Pos: start, Len: 1}, nil
	case charLParen:
		return Token{Type: TokenLeftParen, Value: "(", Pos: start, Len: 1}, nil
	case charRParen:
		return Token{Type: TokenRightParen, Value: ")", Pos: start, Len: 1}, nil
	}
	return Token{}, &SyntaxError{Token: string(ch), Pos: start, Msg: "unexpected character"}
}

func (l *Lexer) scanNumber() Token {
	start := l.pos
	for isDigit(l.current()) {
		l.pos++
	}
	if l.current() == charPeriod && isDigit(l.peek(1)) {
		l.pos++
		for isDigit(l.current()) {
			l.pos++
		}
	}
	return Token{Type: TokenNumber, Value: string(l.runes[start:l.pos]), Pos: start, Len: l.pos - start}
}

func (l *Lexer) scanIdentifier() Token {
	start := l.pos
	for l.pos < len(l.runes) && isIdentPart(l.current()) {
		l.pos++
	}
	return Token{Type: TokenReference, Value: string(l.runes[start:l.pos]), Pos: start, Len: l.pos - start}
}

func (l *Lexer) scanBracketed() (Token, error) {
	start := l.pos
	l.pos++ // '['
	for l.pos < len(l.runes) && l.current() != charRBracket {
		l.pos++
	}
	if l.pos >= len(l.runes) {
		return Token{}, &SyntaxError{Token: "[", Pos: start, Msg: "unterminated reference"}
	}
	name := strings.TrimSpace(string(l.runes[start+1 : l.pos]))
	l.pos++ // ']'
	if name == "" {
		return Token{}, &SyntaxError{Token: "[]", Pos: start, Msg: "empty reference"}
	}
	return Token{Type: TokenReference, Value: name, Pos: start, Len: l.pos - start}, nil
}

func (l *Lexer) skipSpace() {
	for l.pos < len(l.runes) && unicode.IsSpace(l.runes[l.pos]) {
		l.pos++
	}
}

func (l *Lexer) current() rune {
	return l.peek(0)
}

func (l *Lexer) peek(offset int) rune {
	pos := l.pos + offset
	if pos < 0 || pos >= len(l.runes) {
		return 0
	}
	return l.runes[pos]
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || unicode.IsDigit(ch) || ch == charPeriod
}

// FormatReference renders an item ID the way it must appear in a formula:
// bare when it is a valid identifier, bracketed otherwise.
func FormatReference(id string) string {
	runes := []rune(id)
	bare := len(runes) > 0 && isIdentStart(runes[0])
	for _, ch := range runes {
		if !isIdentPart(ch) {
			bare = false
			break
		}
	}
	if bare {
		return id
	}
	return "[" + id + "]"
}
