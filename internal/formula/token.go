package formula

// TokenType identifies the kind of a lexical token.
type TokenType int

const (
	TokenEOF TokenType = iota
	TokenNumber
	TokenReference
	TokenOperator
	TokenLeftParen
	TokenRightParen
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of formula"
	case TokenNumber:
		return "number"
	case TokenReference:
		return "reference"
	case TokenOperator:
		return "operator"
	case TokenLeftParen:
		return "'('"
	case TokenRightParen:
		return "')'"
	}
	return "token"
}

// Token is a lexical token with its position in the source.
type Token struct {
	Type TokenType

	// Value is the token text. For bracketed references it is the trimmed
	// text between the brackets.
	Value string

	// Pos is the rune offset of the token's first character.
	Pos int

	// Len is the number of runes the token spans in the source,
	// brackets included.
	Len int
}
