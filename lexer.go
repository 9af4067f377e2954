// lexer.go
package jive

import "fmt"

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Punctuation
	LROUND  // "("
	RROUND  // ")"
	LCURLY  // "{"
	RCURLY  // "}"
	LSQUARE // "["
	RSQUARE // "]"
	COMMA   // ","
	COLON   // ":"
	SEMI    // ";"
	PERIOD  // "."

	// Operators
	PLUS
	MINUS
	MULT
	DIV
	MOD
	ASSIGN  // "="
	EQ      // "=="
	NEQ     // "!="
	LESS    // "<" (there is no "<=" in the grammar)
	GREATER // ">" (there is no ">=" in the grammar)
	BANG    // "!"
	AND     // "&&"
	AMP     // "&"
	BAR     // "|"

	// Literals & identifiers
	ID
	INTEGER
	STRING

	// Keywords
	LET
	CONST
	FUNCTION
	IF
	ELSE
	FOR
)

// Token is a lexical token. Lexeme is the raw source slice, quotes included
// for STRING tokens. Line is 1-based, Col is 0-based.
type Token struct {
	Type   TokenType
	Lexeme string
	Line   int
	Col    int
}

// keywords map; matching is exact, case-sensitive, and whole runs only.
var keywords = map[string]TokenType{
	"let":   LET,
	"const": CONST,
	"fn":    FUNCTION,
	"if":    IF,
	"else":  ELSE,
	"for":   FOR,
}

// Lexer scans a jive source string into tokens.
type Lexer struct {
	src    string
	start  int // start index of current token
	cur    int // current index
	line   int // 1-based
	col    int // 0-based column within line
	tokens []Token

	// precise token start position
	tokStartLine int
	tokStartCol  int
}

// NewLexer creates a new lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
		col:  0,
	}
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (byte, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch, true
}

func (l *Lexer) addToken(tt TokenType) Token {
	tok := Token{
		Type:   tt,
		Lexeme: l.src[l.start:l.cur],
		Line:   l.tokStartLine,
		Col:    l.tokStartCol,
	}
	l.tokens = append(l.tokens, tok)
	l.start = l.cur
	return tok
}

func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch, _ := l.peek()
		switch ch {
		case ' ', '\r', '\n', '\t':
			l.advance()
			l.start = l.cur
		default:
			return
		}
	}
}

// helpers

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_' }

// ----- errors -----

type LexError struct {
	Line int
	Col  int
	Msg  string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("LEXICAL ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

func (l *Lexer) err(msg string) error {
	return &LexError{Line: l.tokStartLine, Col: l.tokStartCol, Msg: msg}
}

// ----- scanners -----

// scanString consumes a '"'-delimited literal. The content is taken verbatim:
// there are no escape sequences, so a literal '"' cannot appear inside.
func (l *Lexer) scanString() error {
	for {
		ch, ok := l.advance()
		if !ok {
			return l.err("string was not terminated")
		}
		if ch == '"' {
			return nil
		}
	}
}

// scanIdentifier consumes the rest of a [A-Za-z_]+ run.
func (l *Lexer) scanIdentifier() string {
	for {
		b, ok := l.peek()
		if !ok || !isAlpha(b) {
			break
		}
		l.advance()
	}
	return l.src[l.start:l.cur]
}

// scanNumber consumes the rest of a [0-9]+ run. Integers only: no sign,
// decimal point or exponent. A leading '-' is the parser's business.
func (l *Lexer) scanNumber() {
	for {
		b, ok := l.peek()
		if !ok || !isDigit(b) {
			break
		}
		l.advance()
	}
}

// ----- main scanner -----

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	l.tokStartLine = l.line
	l.tokStartCol = l.col
	l.start = l.cur

	if l.isAtEnd() {
		return l.addToken(EOF), nil
	}

	ch, _ := l.advance()

	// Single-char tokens & punctuation
	switch ch {
	case '(':
		return l.addToken(LROUND), nil
	case ')':
		return l.addToken(RROUND), nil
	case '{':
		return l.addToken(LCURLY), nil
	case '}':
		return l.addToken(RCURLY), nil
	case '[':
		return l.addToken(LSQUARE), nil
	case ']':
		return l.addToken(RSQUARE), nil
	case ',':
		return l.addToken(COMMA), nil
	case ':':
		return l.addToken(COLON), nil
	case ';':
		return l.addToken(SEMI), nil
	case '.':
		return l.addToken(PERIOD), nil
	case '+':
		return l.addToken(PLUS), nil
	case '-':
		return l.addToken(MINUS), nil
	case '*':
		return l.addToken(MULT), nil
	case '/':
		return l.addToken(DIV), nil
	case '%':
		return l.addToken(MOD), nil
	case '<':
		return l.addToken(LESS), nil
	case '>':
		return l.addToken(GREATER), nil
	case '|':
		return l.addToken(BAR), nil
	}

	// Two-char operators disambiguated by one-char lookahead
	switch ch {
	case '=':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(EQ), nil
		}
		return l.addToken(ASSIGN), nil
	case '&':
		if b, ok := l.peek(); ok && b == '&' {
			l.advance()
			return l.addToken(AND), nil
		}
		return l.addToken(AMP), nil
	case '!':
		if b, ok := l.peek(); ok && b == '=' {
			l.advance()
			return l.addToken(NEQ), nil
		}
		return l.addToken(BANG), nil
	}

	// Numbers
	if isDigit(ch) {
		l.scanNumber()
		return l.addToken(INTEGER), nil
	}

	// Strings
	if ch == '"' {
		if err := l.scanString(); err != nil {
			return Token{}, err
		}
		return l.addToken(STRING), nil
	}

	// Identifiers / keywords
	if isAlpha(ch) {
		lex := l.scanIdentifier()
		if tt, ok := keywords[lex]; ok {
			return l.addToken(tt), nil
		}
		return l.addToken(ID), nil
	}

	return Token{}, l.err(fmt.Sprintf("unrecognized character: %q (U+%04X)", ch, ch))
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
