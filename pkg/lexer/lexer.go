// Package lexer tokenizes Godot shading language source.
//
// The lexer is context free: every identifier-shaped word comes out as an
// IDENT (or BOOL for true/false) and is classified by the parser. It never
// fails; characters it does not recognize become ILLEGAL tokens so the
// parser can decide how to react.
package lexer

import (
	"unicode/utf8"
)

// Lexer tokenizes shader source code
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character, 0 at end of input
	line    int
	column  int

	comments []Comment // trivia collected for the next token
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readChar()
	return l
}

// Tokenize lexes the whole input. The result always ends with exactly one
// EOF token, which carries any trailing comments.
func Tokenize(input string) []Token {
	return New(input).Tokenize()
}

// Tokenize returns the remaining tokens of l, including the final EOF.
func (l *Lexer) Tokenize() []Token {
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}

func (l *Lexer) readChar() {
	if l.readPos > len(l.input) {
		return
	}
	if l.pos < len(l.input) && l.input[l.pos] == '\n' && l.readPos > 0 {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		l.readChar()
	}
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peekChar() byte {
	return l.peekAt(1)
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	tok := Token{Pos: l.pos, Line: l.line, Column: l.column}
	if len(l.comments) > 0 {
		tok.Comments = l.comments
		l.comments = nil
	}

	switch {
	case l.atEOF():
		tok.Type = TokenEOF
		tok.End = l.pos
		return tok
	case isLetter(l.ch):
		tok.Literal = l.readIdentifier()
		tok.Type = LookupWord(tok.Literal)
	case isDigit(l.ch):
		tok.Type, tok.Literal = l.readNumber()
	case l.ch == '"':
		tok.Type, tok.Literal = l.readString()
	default:
		tok.Type, tok.Literal = l.readPunctuation()
	}
	tok.End = l.pos
	return tok
}

// skipTrivia skips whitespace, escaped newlines and comments, collecting
// the comments for the next token.
func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v':
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.advance(2)
		case l.ch == '\\' && l.peekChar() == '\r' && l.peekAt(2) == '\n':
			l.advance(3)
		case l.ch == '/' && l.peekChar() == '/':
			l.readLineComment()
		case l.ch == '/' && l.peekChar() == '*':
			l.readBlockComment()
		default:
			return
		}
	}
}

// readLineComment consumes a // comment. A backslash escapes the following
// character, so a backslash-newline continues the comment on the next line.
func (l *Lexer) readLineComment() {
	start, line := l.pos, l.line
	l.advance(2)
	for !l.atEOF() && l.ch != '\n' {
		if l.ch == '\\' {
			for !l.atEOF() && l.ch == '\\' {
				l.readChar()
			}
			if l.atEOF() {
				break
			}
			if l.ch == '\r' && l.peekChar() == '\n' {
				l.readChar()
			}
		}
		l.readChar()
	}
	l.addComment(start, line)
}

// readBlockComment consumes a non-nesting /* */ comment. An unterminated
// comment runs to the end of the input.
func (l *Lexer) readBlockComment() {
	start, line := l.pos, l.line
	l.advance(2)
	for !l.atEOF() {
		if l.ch == '*' && l.peekChar() == '/' {
			l.advance(2)
			break
		}
		l.readChar()
	}
	l.addComment(start, line)
}

func (l *Lexer) addComment(start, line int) {
	l.comments = append(l.comments, Comment{
		Text: l.input[start:l.pos],
		Pos:  start,
		End:  l.pos,
		Line: line,
	})
}

func (l *Lexer) readIdentifier() string {
	pos := l.pos
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch)) {
		l.readChar()
	}
	return l.input[pos:l.pos]
}

// readNumber reads an integer, or a float when the digits are followed by a
// dot and at least one more digit. "5." and ".5" are not floats.
func (l *Lexer) readNumber() (TokenType, string) {
	pos := l.pos
	for !l.atEOF() && isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for !l.atEOF() && isDigit(l.ch) {
			l.readChar()
		}
		return TokenFloat, l.input[pos:l.pos]
	}
	return TokenInt, l.input[pos:l.pos]
}

// readString reads a double-quoted string with no escape processing. The
// literal keeps its quotes. A quote with no closing partner is ILLEGAL.
func (l *Lexer) readString() (TokenType, string) {
	pos := l.pos
	end := -1
	for i := pos + 1; i < len(l.input); i++ {
		if l.input[i] == '"' {
			end = i + 1
			break
		}
	}
	if end < 0 {
		l.readChar()
		return TokenIllegal, l.input[pos:l.pos]
	}
	l.advance(end - pos)
	return TokenString, l.input[pos:l.pos]
}

func (l *Lexer) readPunctuation() (TokenType, string) {
	for n := 3; n >= 1; n-- {
		if l.pos+n > len(l.input) {
			continue
		}
		lit := l.input[l.pos : l.pos+n]
		if tt, ok := punctuators[lit]; ok {
			l.advance(n)
			return tt, lit
		}
	}

	// One rune, or one raw byte when the input is not valid UTF-8 here.
	_, size := utf8.DecodeRuneInString(l.input[l.pos:])
	if size < 1 {
		size = 1
	}
	pos := l.pos
	l.advance(size)
	return TokenIllegal, l.input[pos:l.pos]
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
