package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	return l.peekN(0)
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) hasPrefix(s string) bool {
	return strings.HasPrefix(string(l.input[l.pos:min(len(l.input), l.pos+len(s))]), s)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func (l *Lexer) NextToken() Token {
	start := l.Position()
	if l.pos >= len(l.input) {
		return Token{Kind: TokenEOF, Span: Span{Start: start, End: start}}
	}

	ch := l.peek()
	switch {
	case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f':
		for c := l.peek(); c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'; c = l.peek() {
			l.advance()
		}
		return l.token(TokenWhitespace, start)
	case l.hasPrefix("//"):
		for l.peek() != 0 && l.peek() != '\n' {
			l.advance()
		}
		return l.token(TokenLineComment, start)
	case l.hasPrefix("/*"):
		l.advanceN(2)
		for l.pos < len(l.input) && !l.hasPrefix("*/") {
			l.advance()
		}
		l.advanceN(2)
		return l.token(TokenComment, start)
	case l.hasPrefix(`"""`):
		return l.scanTextBlock(start)
	case ch == '"':
		return l.scanQuoted(start, '"', TokenStringLiteral)
	case ch == '\'':
		return l.scanQuoted(start, '\'', TokenCharLiteral)
	case isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))):
		return l.scanNumber(start)
	case l.isIdentStart():
		return l.scanIdentOrKeyword(start)
	}

	for _, op := range operatorSpellings {
		if l.hasPrefix(op) {
			l.advanceN(len(op))
			return l.token(operators[op], start)
		}
	}

	_, size := utf8.DecodeRune(l.input[l.pos:])
	l.advanceN(size)
	return l.token(TokenError, start)
}

func (l *Lexer) isIdentStart() bool {
	ch := l.peek()
	if ch < utf8.RuneSelf {
		return isJavaLetter(ch)
	}
	r, _ := utf8.DecodeRune(l.input[l.pos:])
	return unicode.IsLetter(r)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for l.pos < len(l.input) {
		ch := l.peek()
		if ch < utf8.RuneSelf {
			if !isJavaLetter(ch) && !isDigit(ch) {
				break
			}
			l.advance()
			continue
		}
		r, size := utf8.DecodeRune(l.input[l.pos:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			break
		}
		l.advanceN(size)
	}
	tok := l.token(TokenIdent, start)
	tok.Kind = LookupKeyword(tok.Literal)
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	kind := TokenIntLiteral
	if l.peek() == '0' && strings.ContainsRune("xXbB", rune(l.peekN(1))) {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(kind, start)
	}

	digits := func() {
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	digits()
	if l.peek() == '.' && (isDigit(l.peekN(1)) || !isJavaLetter(l.peekN(1)) && l.peekN(1) != '.') {
		kind = TokenFloatLiteral
		l.advance()
		digits()
	}
	if l.peek() == 'e' || l.peek() == 'E' {
		kind = TokenFloatLiteral
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		digits()
	}
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		kind = TokenFloatLiteral
		l.advance()
	case 'l', 'L':
		l.advance()
	}
	return l.token(kind, start)
}

// scanQuoted scans a string or character literal. An unterminated literal
// stops at the end of the line.
func (l *Lexer) scanQuoted(start Position, quote byte, kind TokenKind) Token {
	l.advance()
	for {
		ch := l.peek()
		if ch == 0 || ch == '\n' {
			return l.token(TokenError, start)
		}
		l.advance()
		if ch == '\\' {
			l.advance()
			continue
		}
		if ch == quote {
			return l.token(kind, start)
		}
	}
}

func (l *Lexer) scanTextBlock(start Position) Token {
	l.advanceN(3)
	for l.pos < len(l.input) {
		if l.peek() == '\\' {
			l.advanceN(2)
			continue
		}
		if l.hasPrefix(`"""`) {
			l.advanceN(3)
			return l.token(TokenTextBlock, start)
		}
		l.advance()
	}
	return l.token(TokenError, start)
}

func isJavaLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_' || ch == '$'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
