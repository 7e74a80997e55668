package parser

import (
	"fmt"
	"io"
	"slices"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

type parseFunc func(*Parser) *Node

// SyntaxError describes input the parser could not make sense of. The
// parser always produces a tree; syntax errors are collected alongside it.
type SyntaxError struct {
	Pos     Position
	Message string
}

func (e SyntaxError) Error() string {
	if e.Pos.File == "" {
		return fmt.Sprintf("%s: %s", e.Pos, e.Message)
	}
	return fmt.Sprintf("%s:%s: %s", e.Pos.File, e.Pos, e.Message)
}

type Parser struct {
	file   string
	reader io.Reader
	input  []byte
	tokens []Token
	pos    int
	entry  parseFunc
	errors []SyntaxError
	err    error
}

func newParser(r io.Reader, entry parseFunc, opts []Option) *Parser {
	p := &Parser{reader: r, entry: entry}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	return newParser(r, (*Parser).parseCompilationUnit, opts)
}

func ParseExpression(r io.Reader, opts ...Option) *Parser {
	return newParser(r, func(p *Parser) *Node {
		expr := p.parseExpression()
		if !p.check(TokenEOF) {
			p.fail("unexpected " + p.peek().Kind.String() + " after expression")
		}
		return expr
	}, opts)
}

// Finish parses the whole input and returns the root node. It returns nil
// when the input cannot be read; Err reports why.
func (p *Parser) Finish() *Node {
	if p.input == nil {
		data, err := io.ReadAll(p.reader)
		if err != nil {
			p.err = err
			return nil
		}
		p.input = data
	}
	p.tokens = p.tokens[:0]
	p.errors = nil
	p.pos = 0
	p.tokenize()
	return p.entry(p)
}

func (p *Parser) Err() error {
	return p.err
}

// Errors returns the syntax errors found by the last call to Finish.
func (p *Parser) Errors() []SyntaxError {
	return p.errors
}

// Source returns the bytes read by Finish.
func (p *Parser) Source() []byte {
	return p.input
}

func (p *Parser) tokenize() {
	lexer := NewLexer(p.input, p.file)
	for {
		tok := lexer.NextToken()
		switch tok.Kind {
		case TokenWhitespace, TokenComment, TokenLineComment:
			continue
		case TokenError:
			p.errors = append(p.errors, SyntaxError{Pos: tok.Span.Start, Message: "invalid token " + tok.Literal})
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			return
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// checkWord reports whether the current token is the identifier word. Used
// for contextual keywords such as record, yield and permits.
func (p *Parser) checkWord(word string) bool {
	tok := p.peek()
	return tok.Kind == TokenIdent && tok.Literal == word
}

func (p *Parser) expect(kind TokenKind) *Token {
	if p.check(kind) {
		tok := p.advance()
		return &tok
	}
	p.fail("expected " + kind.String() + ", got " + p.peek().Kind.String())
	return nil
}

func (p *Parser) fail(msg string) {
	pos := p.peek().Span.Start
	if n := len(p.errors); n > 0 && p.errors[n-1].Pos.Offset == pos.Offset {
		return
	}
	p.errors = append(p.errors, SyntaxError{Pos: pos, Message: msg})
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			p.advance()
			return false
		}
		return true
	}
}

// speculate runs f and rewinds the parser afterwards.
func (p *Parser) speculate(f func() bool) bool {
	saved := p.pos
	ok := f()
	p.pos = saved
	return ok
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

// startAt starts a node whose span begins at an already parsed node.
func (p *Parser) startAt(kind NodeKind, first *Node) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: first.Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 {
		n.Span.End = p.tokens[p.pos-1].Span.End
	}
	if n.Span.End.Offset < n.Span.Start.Offset {
		n.Span.End = n.Span.Start
	}
	return n
}

func (p *Parser) leaf(kind NodeKind) *Node {
	tok := p.advance()
	return &Node{Kind: kind, Token: &tok, Span: tok.Span}
}

func (p *Parser) identifier() *Node {
	if p.check(TokenIdent) {
		return p.leaf(KindIdentifier)
	}
	p.fail("expected identifier, got " + p.peek().Kind.String())
	return nil
}

func (p *Parser) errorNode(msg string, recoverTo ...TokenKind) *Node {
	tok := p.peek()
	p.fail(msg)
	node := &Node{
		Kind:  KindError,
		Span:  tok.Span,
		Error: &Error{Message: msg, Got: &tok},
	}
	for !p.check(TokenEOF) && !p.match(recoverTo...) {
		p.advance()
	}
	return node
}

// splitGT consumes one '>' from a token starting with '>', leaving the
// rest of the token in the stream. Needed to close nested type arguments.
func (p *Parser) splitGT() bool {
	tok := p.peek()
	if tok.Kind == TokenGT {
		p.advance()
		return true
	}
	if len(tok.Literal) < 2 || tok.Literal[0] != '>' {
		return false
	}
	first, rest := tok, tok
	first.Kind, first.Literal = TokenGT, ">"
	first.Span.End = tok.Span.Start
	first.Span.End.Offset++
	first.Span.End.Column++
	rest.Kind, rest.Literal = LookupOperator(tok.Literal[1:]), tok.Literal[1:]
	rest.Span.Start = first.Span.End
	p.tokens[p.pos] = first
	p.tokens = slices.Insert(p.tokens, p.pos+1, rest)
	p.advance()
	return true
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.check(TokenPackage) || p.isAnnotatedPackage() {
		node.AddChild(p.parsePackageDecl())
	}
	for p.check(TokenImport) || p.check(TokenSemicolon) {
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		node.AddChild(p.parseImportDecl())
	}
	for !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		node.AddChild(p.parseTypeDecl())
		progress()
	}

	return p.finishNode(node)
}

func (p *Parser) isAnnotatedPackage() bool {
	return p.speculate(func() bool {
		for p.check(TokenAt) {
			p.skipAnnotation()
		}
		return p.check(TokenPackage)
	})
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)
	node.AddChild(p.parseModifiers())
	p.expect(TokenPackage)
	node.AddChild(p.parseQualifiedName())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect(TokenImport)

	if p.check(TokenStatic) {
		node.AddChild(p.leaf(KindModifier))
	}
	node.AddChild(p.parseQualifiedName())
	if p.check(TokenDot) && p.peekN(1).Kind == TokenStar {
		p.advance()
		node.AddChild(p.leaf(KindOperator))
	}

	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	if !p.check(TokenIdent) {
		return p.errorNode("expected identifier", TokenSemicolon, TokenLBrace)
	}
	node.AddChild(p.leaf(KindIdentifier))
	for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
		p.advance()
		node.AddChild(p.leaf(KindIdentifier))
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeDecl() *Node {
	modifiers := p.parseModifiers()
	if decl := p.parseTypeDeclAfterModifiers(modifiers); decl != nil {
		return decl
	}
	return p.errorNode("expected class, interface, enum, record, or @interface",
		TokenAt, TokenPublic, TokenPrivate, TokenProtected, TokenAbstract, TokenFinal,
		TokenClass, TokenInterface, TokenEnum)
}

// parseTypeDeclAfterModifiers returns nil when no type declaration starts
// at the current token.
func (p *Parser) parseTypeDeclAfterModifiers(modifiers *Node) *Node {
	switch {
	case p.check(TokenClass):
		return p.parseClassLike(KindClassDecl, modifiers)
	case p.check(TokenInterface):
		return p.parseClassLike(KindInterfaceDecl, modifiers)
	case p.check(TokenEnum):
		return p.parseClassLike(KindEnumDecl, modifiers)
	case p.check(TokenAt) && p.peekN(1).Kind == TokenInterface:
		return p.parseClassLike(KindAnnotationDecl, modifiers)
	case p.isRecordStart():
		return p.parseClassLike(KindRecordDecl, modifiers)
	}
	return nil
}

func (p *Parser) isRecordStart() bool {
	return p.checkWord("record") && p.peekN(1).Kind == TokenIdent &&
		(p.peekN(2).Kind == TokenLParen || p.peekN(2).Kind == TokenLT)
}

func (p *Parser) isModifierStart() bool {
	switch p.peek().Kind {
	case TokenPublic, TokenProtected, TokenPrivate,
		TokenAbstract, TokenStatic, TokenFinal,
		TokenStrictfp, TokenNative, TokenSynchronized,
		TokenTransient, TokenVolatile, TokenDefault:
		return true
	case TokenAt:
		return p.peekN(1).Kind != TokenInterface
	case TokenIdent:
		return p.isSealedModifier()
	}
	return false
}

func (p *Parser) isSealedModifier() bool {
	next := p.peekN(1).Kind
	if p.checkWord("sealed") {
		return next == TokenClass || next == TokenInterface || next == TokenAbstract ||
			next == TokenPublic || next == TokenStatic || next == TokenIdent
	}
	return p.checkWord("non") && next == TokenMinus &&
		p.peekN(2).Kind == TokenIdent && p.peekN(2).Literal == "sealed"
}

// parseModifiers returns nil when there are no modifiers.
func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)
	for p.isModifierStart() {
		switch {
		case p.check(TokenAt):
			node.AddChild(p.parseAnnotation())
		case p.checkWord("non"):
			start := p.leaf(KindModifier)
			p.advance()
			end := p.advance()
			start.Token = &Token{Kind: TokenIdent, Literal: "non-sealed", Span: Span{Start: start.Span.Start, End: end.Span.End}}
			start.Span = start.Token.Span
			node.AddChild(start)
		default:
			node.AddChild(p.leaf(KindModifier))
		}
	}
	if len(node.Children) == 0 {
		return nil
	}
	return p.finishNode(node)
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect(TokenAt)
	node.AddChild(p.parseQualifiedName())

	if p.check(TokenLParen) {
		p.advance()
		if p.check(TokenIdent) && p.peekN(1).Kind == TokenAssign {
			for {
				progress := p.mustProgress()
				element := p.startNode(KindAnnotationElement)
				element.AddChild(p.identifier())
				p.expect(TokenAssign)
				element.AddChild(p.parseElementValue())
				node.AddChild(p.finishNode(element))
				if !p.check(TokenComma) || !progress() {
					break
				}
				p.advance()
			}
		} else if !p.check(TokenRParen) {
			node.AddChild(p.parseElementValue())
		}
		p.expect(TokenRParen)
	}

	return p.finishNode(node)
}

func (p *Parser) parseElementValue() *Node {
	switch p.peek().Kind {
	case TokenAt:
		return p.parseAnnotation()
	case TokenLBrace:
		return p.parseArrayInit(p.parseElementValue)
	}
	return p.parseTernaryExpr()
}

func (p *Parser) skipAnnotation() {
	p.advance()
	p.parseQualifiedName()
	if p.check(TokenLParen) {
		p.skipBalanced(TokenLParen, TokenRParen)
	}
}

func (p *Parser) skipBalanced(open, close TokenKind) {
	depth := 0
	for !p.check(TokenEOF) {
		switch p.advance().Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

// parseClassLike parses class, interface, enum, record and annotation type
// declarations. They differ only in the header clauses and the body.
func (p *Parser) parseClassLike(kind NodeKind, modifiers *Node) *Node {
	node := p.startNode(kind)
	if modifiers != nil {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}
	if kind == KindAnnotationDecl {
		p.expect(TokenAt)
	}
	p.advance()
	node.AddChild(p.identifier())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if kind == KindRecordDecl {
		node.AddChild(p.parseParameters())
	}
	if p.check(TokenExtends) {
		clause := p.startNode(KindExtendsClause)
		p.advance()
		p.parseTypeList(clause)
		node.AddChild(p.finishNode(clause))
	}
	if p.check(TokenImplements) {
		clause := p.startNode(KindImplementsClause)
		p.advance()
		p.parseTypeList(clause)
		node.AddChild(p.finishNode(clause))
	}
	if p.checkWord("permits") {
		clause := p.startNode(KindPermitsClause)
		p.advance()
		p.parseTypeList(clause)
		node.AddChild(p.finishNode(clause))
	}

	node.AddChild(p.parseClassBody(kind))
	return p.finishNode(node)
}

func (p *Parser) parseTypeList(parent *Node) {
	for {
		progress := p.mustProgress()
		parent.AddChild(p.parseType())
		if !p.check(TokenComma) || !progress() {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseClassBody(owner NodeKind) *Node {
	node := p.startNode(KindClassBody)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}

	if owner == KindEnumDecl {
		for !p.check(TokenSemicolon) && !p.check(TokenRBrace) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseEnumConstant())
			if p.check(TokenComma) {
				p.advance()
			}
			if !progress() {
				break
			}
		}
		if p.check(TokenSemicolon) {
			p.advance()
		}
	}

	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseMember(owner))
		progress()
	}

	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstant() *Node {
	node := p.startNode(KindEnumConstant)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.identifier())
	if p.check(TokenLParen) {
		node.AddChild(p.parseArguments())
	}
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(KindClassDecl))
	}
	return p.finishNode(node)
}

func (p *Parser) parseMember(owner NodeKind) *Node {
	if p.check(TokenSemicolon) {
		p.advance()
		return nil
	}
	if p.check(TokenLBrace) || (p.check(TokenStatic) && p.peekN(1).Kind == TokenLBrace) {
		node := p.startNode(KindInitializer)
		if p.check(TokenStatic) {
			node.AddChild(p.leaf(KindModifier))
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	modifiers := p.parseModifiers()
	if decl := p.parseTypeDeclAfterModifiers(modifiers); decl != nil {
		return decl
	}

	node := p.startNode(KindFieldDecl)
	if modifiers != nil {
		node.Span.Start = modifiers.Span.Start
		node.AddChild(modifiers)
	}
	var typeParams *Node
	if p.check(TokenLT) {
		typeParams = p.parseTypeParameters()
	}

	if p.check(TokenIdent) && p.peekN(1).Kind == TokenLParen {
		node.Kind = KindConstructorDecl
		node.AddChild(typeParams)
		node.AddChild(p.identifier())
		node.AddChild(p.parseParameters())
		if p.check(TokenThrows) {
			node.AddChild(p.parseThrowsList())
		}
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}
	if owner == KindRecordDecl && p.check(TokenIdent) && p.peekN(1).Kind == TokenLBrace {
		node.Kind = KindConstructorDecl
		node.AddChild(p.identifier())
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	}

	typ := p.parseType()
	if typ.IsError() {
		return typ
	}
	if p.check(TokenIdent) && p.peekN(1).Kind == TokenLParen {
		node.Kind = KindMethodDecl
		node.AddChild(typeParams)
		node.AddChild(typ)
		node.AddChild(p.identifier())
		node.AddChild(p.parseParameters())
		p.skipDims()
		if p.check(TokenThrows) {
			node.AddChild(p.parseThrowsList())
		}
		if p.check(TokenDefault) {
			p.advance()
			node.AddChild(p.parseElementValue())
		}
		if p.check(TokenLBrace) {
			node.AddChild(p.parseBlock())
		} else {
			p.expect(TokenSemicolon)
		}
		return p.finishNode(node)
	}

	node.AddChild(typ)
	p.parseDeclarators(node)
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseDeclarators(parent *Node) {
	for {
		progress := p.mustProgress()
		parent.AddChild(p.parseVarDeclarator())
		if !p.check(TokenComma) || !progress() {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseVarDeclarator() *Node {
	node := p.startNode(KindVarDeclarator)
	node.AddChild(p.identifier())
	p.skipDims()
	if p.check(TokenAssign) {
		p.advance()
		node.AddChild(p.parseVarInitializer())
	}
	return p.finishNode(node)
}

func (p *Parser) parseVarInitializer() *Node {
	if p.check(TokenLBrace) {
		return p.parseArrayInit(p.parseVarInitializer)
	}
	return p.parseExpression()
}

func (p *Parser) parseArrayInit(element func() *Node) *Node {
	node := p.startNode(KindArrayInit)
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(element())
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) skipDims() {
	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		p.advance()
		p.advance()
	}
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect(TokenLParen)
	for !p.check(TokenRParen) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseParameter())
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	for p.check(TokenAt) {
		p.skipAnnotation()
	}
	if p.check(TokenEllipsis) {
		node.AddChild(p.leaf(KindOperator))
	}
	if p.check(TokenThis) {
		node.AddChild(p.leaf(KindThis))
	} else {
		node.AddChild(p.identifier())
	}
	p.skipDims()
	return p.finishNode(node)
}

func (p *Parser) parseThrowsList() *Node {
	node := p.startNode(KindThrowsList)
	p.expect(TokenThrows)
	p.parseTypeList(node)
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect(TokenLT)
	for {
		progress := p.mustProgress()
		param := p.startNode(KindTypeParameter)
		for p.check(TokenAt) {
			param.AddChild(p.parseAnnotation())
		}
		param.AddChild(p.identifier())
		if p.check(TokenExtends) {
			p.advance()
			param.AddChild(p.parseType())
			for p.check(TokenBitAnd) {
				p.advance()
				param.AddChild(p.parseType())
			}
		}
		node.AddChild(p.finishNode(param))
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	if !p.splitGT() {
		p.fail("expected >")
	}
	return p.finishNode(node)
}

func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)
	for p.check(TokenAt) {
		node.AddChild(p.parseAnnotation())
	}

	switch {
	case p.peek().Kind.isPrimitive() || p.check(TokenVoid):
		node.AddChild(p.leaf(KindIdentifier))
	case p.check(TokenIdent):
		node.AddChild(p.parseQualifiedName())
		if p.check(TokenLT) {
			node.AddChild(p.parseTypeArguments())
		}
		for p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
			p.advance()
			node.AddChild(p.parseQualifiedName())
			if p.check(TokenLT) {
				node.AddChild(p.parseTypeArguments())
			}
		}
	default:
		return p.errorNode("expected type", TokenIdent, TokenSemicolon, TokenRParen, TokenComma, TokenRBrace)
	}
	node = p.finishNode(node)

	for p.check(TokenLBracket) && p.peekN(1).Kind == TokenRBracket {
		wrapper := p.startAt(KindArrayType, node)
		wrapper.AddChild(node)
		p.advance()
		p.advance()
		node = p.finishNode(wrapper)
	}
	return node
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.expect(TokenLT)
	for !p.check(TokenGT) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		if p.check(TokenQuestion) {
			wildcard := p.startNode(KindWildcard)
			p.advance()
			if p.check(TokenExtends) || p.check(TokenSuper) {
				wildcard.AddChild(p.leaf(KindOperator))
				wildcard.AddChild(p.parseType())
			}
			node.AddChild(p.finishNode(wildcard))
		} else {
			node.AddChild(p.parseType())
		}
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	if !p.splitGT() {
		p.fail("expected >")
	}
	return p.finishNode(node)
}

// skipType advances over a type without building nodes. Used by lookahead.
func (p *Parser) skipType() bool {
	for p.check(TokenAt) {
		p.skipAnnotation()
	}
	switch {
	case p.peek().Kind.isPrimitive():
		p.advance()
	case p.check(TokenIdent):
		p.advance()
		for {
			if p.check(TokenLT) && !p.skipTypeArguments() {
				return false
			}
			if p.check(TokenDot) && p.peekN(1).Kind == TokenIdent {
				p.advance()
				p.advance()
				continue
			}
			break
		}
	default:
		return false
	}
	p.skipDims()
	return true
}

func (p *Parser) skipTypeArguments() bool {
	depth := 0
	for {
		switch p.advance().Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
		case TokenShr:
			depth -= 2
		case TokenUShr:
			depth -= 3
		case TokenIdent, TokenDot, TokenComma, TokenQuestion, TokenExtends, TokenSuper,
			TokenBitAnd, TokenLBracket, TokenRBracket, TokenAt,
			TokenBoolean, TokenByte, TokenChar, TokenShort, TokenInt, TokenLong, TokenFloat, TokenDouble:
		default:
			return false
		}
		if depth <= 0 {
			return depth == 0
		}
	}
}
