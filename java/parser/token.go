package parser

import (
	"fmt"
	"sort"
)

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenWhitespace
	TokenComment
	TokenLineComment

	// Literals
	TokenIdent
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords. Contextual keywords (var, record, yield, sealed, permits,
	// when) are lexed as identifiers and recognized by the parser.
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile

	// Punctuation
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt
	TokenColonColon
	TokenQuestion
	TokenColon
	TokenArrow

	// Operators
	TokenAssign
	TokenEQ
	TokenNE
	TokenLT
	TokenLE
	TokenGT
	TokenGE
	TokenAnd
	TokenOr
	TokenNot
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenBitNot
	TokenShl
	TokenShr
	TokenUShr
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenIncrement
	TokenDecrement
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenWhitespace:    "Whitespace",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
	TokenIdent:         "Identifier",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
}

// keywords maps reserved words to their token kinds. It also provides the
// display names for keyword tokens.
var keywords = map[string]TokenKind{
	"abstract":     TokenAbstract,
	"assert":       TokenAssert,
	"boolean":      TokenBoolean,
	"break":        TokenBreak,
	"byte":         TokenByte,
	"case":         TokenCase,
	"catch":        TokenCatch,
	"char":         TokenChar,
	"class":        TokenClass,
	"const":        TokenConst,
	"continue":     TokenContinue,
	"default":      TokenDefault,
	"do":           TokenDo,
	"double":       TokenDouble,
	"else":         TokenElse,
	"enum":         TokenEnum,
	"extends":      TokenExtends,
	"final":        TokenFinal,
	"finally":      TokenFinally,
	"float":        TokenFloat,
	"for":          TokenFor,
	"goto":         TokenGoto,
	"if":           TokenIf,
	"implements":   TokenImplements,
	"import":       TokenImport,
	"instanceof":   TokenInstanceof,
	"int":          TokenInt,
	"interface":    TokenInterface,
	"long":         TokenLong,
	"native":       TokenNative,
	"new":          TokenNew,
	"package":      TokenPackage,
	"private":      TokenPrivate,
	"protected":    TokenProtected,
	"public":       TokenPublic,
	"return":       TokenReturn,
	"short":        TokenShort,
	"static":       TokenStatic,
	"strictfp":     TokenStrictfp,
	"super":        TokenSuper,
	"switch":       TokenSwitch,
	"synchronized": TokenSynchronized,
	"this":         TokenThis,
	"throw":        TokenThrow,
	"throws":       TokenThrows,
	"transient":    TokenTransient,
	"try":          TokenTry,
	"void":         TokenVoid,
	"volatile":     TokenVolatile,
	"while":        TokenWhile,
	"true":         TokenTrue,
	"false":        TokenFalse,
	"null":         TokenNull,
}

// operators lists every punctuation and operator spelling. The lexer
// matches them longest first.
var operators = map[string]TokenKind{
	"(":    TokenLParen,
	")":    TokenRParen,
	"{":    TokenLBrace,
	"}":    TokenRBrace,
	"[":    TokenLBracket,
	"]":    TokenRBracket,
	";":    TokenSemicolon,
	",":    TokenComma,
	".":    TokenDot,
	"...":  TokenEllipsis,
	"@":    TokenAt,
	"::":   TokenColonColon,
	"?":    TokenQuestion,
	":":    TokenColon,
	"->":   TokenArrow,
	"=":    TokenAssign,
	"==":   TokenEQ,
	"!=":   TokenNE,
	"<":    TokenLT,
	"<=":   TokenLE,
	">":    TokenGT,
	">=":   TokenGE,
	"&&":   TokenAnd,
	"||":   TokenOr,
	"!":    TokenNot,
	"&":    TokenBitAnd,
	"|":    TokenBitOr,
	"^":    TokenBitXor,
	"~":    TokenBitNot,
	"<<":   TokenShl,
	">>":   TokenShr,
	">>>":  TokenUShr,
	"+":    TokenPlus,
	"-":    TokenMinus,
	"*":    TokenStar,
	"/":    TokenSlash,
	"%":    TokenPercent,
	"++":   TokenIncrement,
	"--":   TokenDecrement,
	"+=":   TokenPlusAssign,
	"-=":   TokenMinusAssign,
	"*=":   TokenStarAssign,
	"/=":   TokenSlashAssign,
	"%=":   TokenPercentAssign,
	"&=":   TokenAndAssign,
	"|=":   TokenOrAssign,
	"^=":   TokenXorAssign,
	"<<=":  TokenShlAssign,
	">>=":  TokenShrAssign,
	">>>=": TokenUShrAssign,
}

var operatorSpellings []string

func init() {
	for word, kind := range keywords {
		tokenKindNames[kind] = word
	}
	for op, kind := range operators {
		tokenKindNames[kind] = op
		operatorSpellings = append(operatorSpellings, op)
	}
	sort.Slice(operatorSpellings, func(i, j int) bool {
		a, b := operatorSpellings[i], operatorSpellings[j]
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// LookupOperator returns the kind of an operator spelling, or TokenError.
func LookupOperator(op string) TokenKind {
	if kind, ok := operators[op]; ok {
		return kind
	}
	return TokenError
}

func (k TokenKind) isPrimitive() bool {
	switch k {
	case TokenBoolean, TokenByte, TokenChar, TokenShort,
		TokenInt, TokenLong, TokenFloat, TokenDouble:
		return true
	}
	return false
}

func (k TokenKind) isLiteral() bool {
	switch k {
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral,
		TokenStringLiteral, TokenTextBlock, TokenTrue, TokenFalse, TokenNull:
		return true
	}
	return false
}

func (k TokenKind) isAssign() bool {
	return k == TokenAssign || (k >= TokenPlusAssign && k <= TokenUShrAssign)
}
