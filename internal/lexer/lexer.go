// Package lexer implements the lexical scanner for rill source code.
//
// rill is indentation structured: the scanner tracks leading whitespace at
// the start of every logical line and emits synthetic INDENT and DEDENT
// tokens as the depth changes, in the same way handwritten scanners for
// offside-rule languages usually do. Inside parentheses newlines and
// indentation are insignificant.
//
// Column positions count Unicode code points from the start of the line,
// not bytes and not display cells. A tab or four spaces count as one
// indentation unit.
package lexer

import (
	"unicode"
	"unicode/utf8"
)

// Lexer is a scanner over a single source buffer.
type Lexer struct {
	input        string
	pending      []Token // queued synthetic tokens (INDENT/DEDENT/EOF)
	indents      []int   // indentation stack, always starts with 0
	position     int     // byte offset of ch
	readPosition int     // byte offset after ch
	line         int
	column       int
	ch           rune
	parenDepth   int
	atLineStart  bool
	eofEmitted   bool
}

// New creates a Lexer for the given input. A UTF-8 BOM is stripped if
// present.
func New(input string) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}
	l := &Lexer{
		input:       input,
		indents:     []int{0},
		line:        1,
		column:      0,
		atLineStart: true,
	}
	l.readChar()
	return l
}

// readChar advances to the next rune in the input.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		return
	}
	r, width := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.position = l.readPosition
	l.readPosition += width
	l.ch = r
	if r == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
}

// peekChar returns the next rune without consuming it.
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) pos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

// NextToken returns the next token in the input, ending with EOF.
// Once EOF has been returned, it is returned forever.
func (l *Lexer) NextToken() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}

	if l.atLineStart && l.parenDepth == 0 {
		if tok, ok := l.scanIndentation(); ok {
			return tok
		}
	}

	l.skipSpaces()
	l.skipComment()

	pos := l.pos()

	switch {
	case l.ch == 0:
		return l.emitEOF(pos)
	case l.ch == '\n':
		l.readChar()
		if l.parenDepth > 0 {
			return l.NextToken()
		}
		l.atLineStart = true
		return Token{Type: NEWLINE, Literal: "\\n", Pos: pos}
	case isLetter(l.ch):
		literal := l.readIdentifier()
		return Token{Type: LookupIdent(literal), Literal: literal, Pos: pos}
	case isDigit(l.ch):
		literal := l.readNumber()
		return Token{Type: NUMBER, Literal: literal, Pos: pos}
	}

	return l.scanOperator(pos)
}

// scanIndentation consumes leading whitespace of a fresh line and queues
// INDENT/DEDENT tokens as needed. Blank and comment-only lines are skipped
// entirely. Returns the first synthetic token, if any.
func (l *Lexer) scanIndentation() (Token, bool) {
	depth := 0
	for {
		switch l.ch {
		case ' ':
			depth++
			l.readChar()
			continue
		case '\t':
			depth += 4
			l.readChar()
			continue
		}
		break
	}
	if l.ch == '/' && l.peekChar() == '/' {
		l.skipComment()
	}
	if l.ch == '\n' {
		l.readChar()
		return l.scanIndentation()
	}
	l.atLineStart = false
	if l.ch == 0 {
		return Token{}, false
	}

	units := depth / 4
	pos := l.pos()
	current := l.indents[len(l.indents)-1]
	if units > current {
		l.indents = append(l.indents, units)
		return Token{Type: INDENT, Literal: "", Pos: pos}, true
	}
	var first *Token
	for units < l.indents[len(l.indents)-1] {
		l.indents = l.indents[:len(l.indents)-1]
		tok := Token{Type: DEDENT, Literal: "", Pos: pos}
		if first == nil {
			first = &tok
		} else {
			l.pending = append(l.pending, tok)
		}
	}
	if first != nil {
		return *first, true
	}
	return Token{}, false
}

// emitEOF closes any open indentation levels before the final EOF.
func (l *Lexer) emitEOF(pos Position) Token {
	if l.eofEmitted {
		return Token{Type: EOF, Literal: "", Pos: pos}
	}
	l.eofEmitted = true
	var first *Token
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		tok := Token{Type: DEDENT, Literal: "", Pos: pos}
		if first == nil {
			first = &tok
		} else {
			l.pending = append(l.pending, tok)
		}
	}
	l.pending = append(l.pending, Token{Type: EOF, Literal: "", Pos: pos})
	if first != nil {
		return *first
	}
	tok := l.pending[0]
	l.pending = l.pending[1:]
	return tok
}

func (l *Lexer) scanOperator(pos Position) Token {
	makeTwo := func(tt TokenType, lit string) Token {
		l.readChar()
		l.readChar()
		return Token{Type: tt, Literal: lit, Pos: pos}
	}
	makeOne := func(tt TokenType) Token {
		lit := string(l.ch)
		l.readChar()
		return Token{Type: tt, Literal: lit, Pos: pos}
	}

	switch l.ch {
	case '+':
		return makeOne(PLUS)
	case '-':
		if l.peekChar() == '>' {
			return makeTwo(ARROW, "->")
		}
		return makeOne(MINUS)
	case '*':
		return makeOne(STAR)
	case '/':
		return makeOne(SLASH)
	case '%':
		return makeOne(PERCENT)
	case '=':
		switch l.peekChar() {
		case '=':
			return makeTwo(EQ, "==")
		case '>':
			return makeTwo(FAT_ARROW, "=>")
		}
		return makeOne(ASSIGN)
	case '!':
		if l.peekChar() == '=' {
			return makeTwo(NOT_EQ, "!=")
		}
		return makeOne(ILLEGAL)
	case '<':
		if l.peekChar() == '=' {
			return makeTwo(LT_EQ, "<=")
		}
		return makeOne(LT)
	case '>':
		if l.peekChar() == '=' {
			return makeTwo(GT_EQ, ">=")
		}
		return makeOne(GT)
	case '(':
		l.parenDepth++
		return makeOne(LPAREN)
	case ')':
		if l.parenDepth > 0 {
			l.parenDepth--
		}
		return makeOne(RPAREN)
	case ':':
		return makeOne(COLON)
	case ',':
		return makeOne(COMMA)
	}
	return makeOne(ILLEGAL)
}

func (l *Lexer) skipSpaces() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' {
		l.readChar()
	}
}

func (l *Lexer) skipComment() {
	if l.ch == '/' && l.peekChar() == '/' {
		for l.ch != '\n' && l.ch != 0 {
			l.readChar()
		}
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.position
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber scans an integer or floating point literal, including an
// optional exponent. A trailing dot with no digits after it is not
// consumed, so `1.` lexes as NUMBER(1) followed by ILLEGAL(.).
func (l *Lexer) readNumber() string {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	if l.ch == 'e' || l.ch == 'E' {
		peek := l.peekChar()
		if isDigit(peek) || peek == '+' || peek == '-' {
			l.readChar()
			if l.ch == '+' || l.ch == '-' {
				l.readChar()
			}
			for isDigit(l.ch) {
				l.readChar()
			}
		}
	}
	return l.input[start:l.position]
}

func isLetter(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}
