package parser

var binaryPrecedence = map[TokenKind]int{
	TokenOr:         1,
	TokenAnd:        2,
	TokenBitOr:      3,
	TokenBitXor:     4,
	TokenBitAnd:     5,
	TokenEQ:         6,
	TokenNE:         6,
	TokenLT:         7,
	TokenGT:         7,
	TokenLE:         7,
	TokenGE:         7,
	TokenInstanceof: 7,
	TokenShl:        8,
	TokenShr:        8,
	TokenUShr:       8,
	TokenPlus:       9,
	TokenMinus:      9,
	TokenStar:       10,
	TokenSlash:      10,
	TokenPercent:    10,
}

var exprRecovery = []TokenKind{TokenSemicolon, TokenComma, TokenRParen, TokenRBrace, TokenRBracket}

func (p *Parser) parseExpression() *Node {
	if p.isLambda() {
		return p.parseLambdaExpr()
	}
	lhs := p.parseTernaryExpr()
	if !p.peek().Kind.isAssign() {
		return lhs
	}
	node := p.startAt(KindAssignExpr, lhs)
	node.AddChild(lhs)
	node.AddChild(p.leaf(KindOperator))
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

func (p *Parser) parseTernaryExpr() *Node {
	cond := p.parseBinaryExpr(1)
	if !p.check(TokenQuestion) {
		return cond
	}
	node := p.startAt(KindTernaryExpr, cond)
	node.AddChild(cond)
	p.advance()
	node.AddChild(p.parseExpression())
	p.expect(TokenColon)
	node.AddChild(p.parseExpression())
	return p.finishNode(node)
}

// parseBinaryExpr is a precedence climbing parser over binaryPrecedence.
// All binary operators are left associative.
func (p *Parser) parseBinaryExpr(minPrec int) *Node {
	left := p.parseUnaryExpr()
	for {
		kind := p.peek().Kind
		prec := binaryPrecedence[kind]
		if prec == 0 || prec < minPrec {
			return left
		}
		if kind == TokenInstanceof {
			left = p.parseInstanceof(left)
			continue
		}
		node := p.startAt(KindBinaryExpr, left)
		node.AddChild(left)
		node.AddChild(p.leaf(KindOperator))
		node.AddChild(p.parseBinaryExpr(prec + 1))
		left = p.finishNode(node)
	}
}

func (p *Parser) parseInstanceof(expr *Node) *Node {
	node := p.startAt(KindInstanceofExpr, expr)
	node.AddChild(expr)
	p.expect(TokenInstanceof)
	if p.looksLikePattern() {
		node.AddChild(p.parsePattern())
	} else {
		node.AddChild(p.parseType())
	}
	return p.finishNode(node)
}

func (p *Parser) parseUnaryExpr() *Node {
	switch p.peek().Kind {
	case TokenPlus, TokenMinus, TokenIncrement, TokenDecrement, TokenNot, TokenBitNot:
		node := p.startNode(KindUnaryExpr)
		node.AddChild(p.leaf(KindOperator))
		node.AddChild(p.parseUnaryExpr())
		return p.finishNode(node)
	case TokenLParen:
		if p.isCast() {
			return p.parseCastExpr()
		}
	}
	return p.parsePostfixExpr()
}

func (p *Parser) isCast() bool {
	return p.speculate(func() bool {
		p.advance()
		primitive := p.peek().Kind.isPrimitive()
		if !p.skipType() {
			return false
		}
		for p.check(TokenBitAnd) {
			p.advance()
			if !p.skipType() {
				return false
			}
		}
		if !p.check(TokenRParen) {
			return false
		}
		p.advance()
		next := p.peek().Kind
		if primitive {
			return next != TokenEOF && binaryPrecedence[next] == 0 || next == TokenPlus || next == TokenMinus
		}
		switch {
		case next == TokenIdent, next.isLiteral(), next.isPrimitive():
			return true
		}
		switch next {
		case TokenLParen, TokenNot, TokenBitNot, TokenThis, TokenSuper, TokenNew, TokenSwitch:
			return true
		}
		return false
	})
}

func (p *Parser) parseCastExpr() *Node {
	node := p.startNode(KindCastExpr)
	p.expect(TokenLParen)
	node.AddChild(p.parseType())
	for p.check(TokenBitAnd) {
		p.advance()
		node.AddChild(p.parseType())
	}
	p.expect(TokenRParen)
	if p.isLambda() {
		node.AddChild(p.parseLambdaExpr())
	} else {
		node.AddChild(p.parseUnaryExpr())
	}
	return p.finishNode(node)
}

func (p *Parser) parsePostfixExpr() *Node {
	expr := p.parsePrimaryExpr()
	for {
		progress := p.mustProgress()
		switch p.peek().Kind {
		case TokenIncrement, TokenDecrement:
			node := p.startAt(KindPostfixExpr, expr)
			node.AddChild(expr)
			node.AddChild(p.leaf(KindOperator))
			expr = p.finishNode(node)
		case TokenDot:
			expr = p.parseSelector(expr)
		case TokenLBracket:
			if p.peekN(1).Kind == TokenRBracket {
				node := p.startAt(KindArrayType, expr)
				node.AddChild(expr)
				p.skipDims()
				expr = p.finishNode(node)
				break
			}
			node := p.startAt(KindArrayAccess, expr)
			node.AddChild(expr)
			p.advance()
			node.AddChild(p.parseExpression())
			p.expect(TokenRBracket)
			expr = p.finishNode(node)
		case TokenLParen:
			expr = p.parseCall(expr)
		case TokenColonColon:
			expr = p.parseMethodRef(expr)
		case TokenLT:
			if !p.isGenericMethodRef() {
				return expr
			}
			node := p.startAt(KindType, expr)
			node.AddChild(expr)
			node.AddChild(p.parseTypeArguments())
			expr = p.finishNode(node)
		default:
			return expr
		}
		if !progress() {
			return expr
		}
	}
}

// isGenericMethodRef detects a parameterized type used as a method
// reference target, as in List<String>::size.
func (p *Parser) isGenericMethodRef() bool {
	return p.speculate(func() bool {
		return p.skipTypeArguments() && p.check(TokenColonColon)
	})
}

func (p *Parser) parseSelector(target *Node) *Node {
	p.expect(TokenDot)
	switch {
	case p.check(TokenNew):
		return p.parseNewExpr(target)
	case p.check(TokenClass):
		node := p.startAt(KindClassLiteral, target)
		node.AddChild(target)
		p.advance()
		return p.finishNode(node)
	}

	node := p.startAt(KindFieldAccess, target)
	node.AddChild(target)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	switch {
	case p.check(TokenThis):
		node.AddChild(p.leaf(KindThis))
	case p.check(TokenSuper):
		node.AddChild(p.leaf(KindSuper))
	case p.check(TokenIdent):
		node.AddChild(p.leaf(KindIdentifier))
	default:
		node.AddChild(p.errorNode("expected member name", exprRecovery...))
	}
	return p.finishNode(node)
}

func (p *Parser) parseCall(target *Node) *Node {
	node := p.startAt(KindCallExpr, target)
	node.AddChild(target)
	node.AddChild(p.parseArguments())
	return p.finishNode(node)
}

func (p *Parser) parseArguments() *Node {
	node := p.startNode(KindArguments)
	p.expect(TokenLParen)
	if !p.check(TokenRParen) {
		p.parseExpressionList(node)
	}
	p.expect(TokenRParen)
	return p.finishNode(node)
}

func (p *Parser) parseMethodRef(target *Node) *Node {
	node := p.startAt(KindMethodRef, target)
	node.AddChild(target)
	p.expect(TokenColonColon)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}
	if p.check(TokenNew) {
		node.AddChild(p.leaf(KindIdentifier))
	} else {
		node.AddChild(p.identifier())
	}
	return p.finishNode(node)
}

func (p *Parser) parsePrimaryExpr() *Node {
	kind := p.peek().Kind
	switch {
	case kind.isLiteral():
		return p.leaf(KindLiteral)
	case kind == TokenIdent:
		return p.leaf(KindIdentifier)
	case kind == TokenThis:
		return p.leaf(KindThis)
	case kind == TokenSuper:
		return p.leaf(KindSuper)
	case kind == TokenNew:
		return p.parseNewExpr(nil)
	case kind == TokenSwitch:
		return p.parseSwitch(KindSwitchExpr)
	case kind == TokenLParen:
		node := p.startNode(KindParenExpr)
		p.advance()
		node.AddChild(p.parseExpression())
		p.expect(TokenRParen)
		return p.finishNode(node)
	case kind.isPrimitive() || kind == TokenVoid:
		// int.class, int[]::new
		return p.parseType()
	}
	return p.errorNode("expected expression", exprRecovery...)
}

// parseNewExpr parses class instance and array creation. outer is the
// qualifying instance of outer.new Inner(), or nil.
func (p *Parser) parseNewExpr(outer *Node) *Node {
	node := p.startNode(KindNewExpr)
	if outer != nil {
		node.Span.Start = outer.Span.Start
		node.AddChild(outer)
	}
	p.expect(TokenNew)
	if p.check(TokenLT) {
		node.AddChild(p.parseTypeArguments())
	}

	typ := p.parseType()
	node.AddChild(typ)
	if typ.Kind == KindArrayType || p.check(TokenLBracket) {
		node.Kind = KindNewArrayExpr
		for p.check(TokenLBracket) {
			p.advance()
			if !p.check(TokenRBracket) {
				node.AddChild(p.parseExpression())
			}
			p.expect(TokenRBracket)
		}
		if p.check(TokenLBrace) {
			node.AddChild(p.parseArrayInit(p.parseVarInitializer))
		}
		return p.finishNode(node)
	}

	node.AddChild(p.parseArguments())
	if p.check(TokenLBrace) {
		node.AddChild(p.parseClassBody(KindClassDecl))
	}
	return p.finishNode(node)
}

func (p *Parser) isLambda() bool {
	if p.check(TokenIdent) {
		return p.peekN(1).Kind == TokenArrow
	}
	if !p.check(TokenLParen) {
		return false
	}
	return p.speculate(func() bool {
		p.skipBalanced(TokenLParen, TokenRParen)
		return p.check(TokenArrow)
	})
}

func (p *Parser) parseLambdaExpr() *Node {
	node := p.startNode(KindLambdaExpr)
	params := p.startNode(KindParameters)

	if p.check(TokenIdent) {
		params.AddChild(p.inferredParameter())
	} else {
		p.expect(TokenLParen)
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			next := p.peekN(1).Kind
			if p.check(TokenIdent) && (next == TokenComma || next == TokenRParen) {
				params.AddChild(p.inferredParameter())
			} else {
				params.AddChild(p.parseParameter())
			}
			if !p.check(TokenComma) || !progress() {
				break
			}
			p.advance()
		}
		p.expect(TokenRParen)
	}
	node.AddChild(p.finishNode(params))

	p.expect(TokenArrow)
	if p.check(TokenLBrace) {
		node.AddChild(p.parseBlock())
	} else {
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) inferredParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.identifier())
	return p.finishNode(node)
}
