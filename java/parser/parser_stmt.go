package parser

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	if p.expect(TokenLBrace) == nil {
		return p.finishNode(node)
	}
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseBlockStatement())
		progress()
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseBlockStatement() *Node {
	if p.isLocalClassDecl() {
		node := p.startNode(KindLocalClassDecl)
		node.AddChild(p.parseTypeDecl())
		return p.finishNode(node)
	}
	if !p.isYieldStmt() && p.isLocalVarDecl() {
		node := p.parseLocalVarDecl()
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	}
	return p.parseStatement()
}

func (p *Parser) isLocalClassDecl() bool {
	return p.speculate(func() bool {
		for {
			switch {
			case p.check(TokenAt) && p.peekN(1).Kind != TokenInterface:
				p.skipAnnotation()
			case p.match(TokenFinal, TokenAbstract, TokenStatic, TokenStrictfp):
				p.advance()
			case p.isSealedModifier():
				p.advance()
			default:
				return p.match(TokenClass, TokenInterface, TokenEnum) || p.isRecordStart()
			}
		}
	})
}

func (p *Parser) isLocalVarDecl() bool {
	return p.speculate(func() bool {
		for p.check(TokenFinal) || p.check(TokenAt) {
			if p.check(TokenAt) {
				p.skipAnnotation()
			} else {
				p.advance()
			}
		}
		if !p.skipType() || !p.check(TokenIdent) {
			return false
		}
		switch p.peekN(1).Kind {
		case TokenAssign, TokenSemicolon, TokenComma, TokenLBracket, TokenColon:
			return true
		}
		return false
	})
}

func (p *Parser) parseLocalVarDecl() *Node {
	node := p.startNode(KindLocalVarDecl)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	p.parseDeclarators(node)
	return node
}

func (p *Parser) parseStatement() *Node {
	switch p.peek().Kind {
	case TokenLBrace:
		return p.parseBlock()
	case TokenSemicolon:
		node := p.startNode(KindEmptyStmt)
		p.advance()
		return p.finishNode(node)
	case TokenIf:
		return p.parseIfStmt()
	case TokenFor:
		return p.parseForStmt()
	case TokenWhile:
		node := p.startNode(KindWhileStmt)
		p.advance()
		node.AddChild(p.parseCondition())
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	case TokenDo:
		node := p.startNode(KindDoStmt)
		p.advance()
		node.AddChild(p.parseStatement())
		p.expect(TokenWhile)
		node.AddChild(p.parseCondition())
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	case TokenSwitch:
		return p.parseSwitch(KindSwitchStmt)
	case TokenReturn:
		return p.parseSimpleStmt(KindReturnStmt, true)
	case TokenThrow:
		return p.parseSimpleStmt(KindThrowStmt, true)
	case TokenBreak:
		return p.parseJumpStmt(KindBreakStmt)
	case TokenContinue:
		return p.parseJumpStmt(KindContinueStmt)
	case TokenTry:
		return p.parseTryStmt()
	case TokenSynchronized:
		node := p.startNode(KindSynchronizedStmt)
		p.advance()
		node.AddChild(p.parseCondition())
		node.AddChild(p.parseBlock())
		return p.finishNode(node)
	case TokenAssert:
		node := p.startNode(KindAssertStmt)
		p.advance()
		node.AddChild(p.parseExpression())
		if p.check(TokenColon) {
			p.advance()
			node.AddChild(p.parseExpression())
		}
		p.expect(TokenSemicolon)
		return p.finishNode(node)
	case TokenIdent:
		if p.isYieldStmt() {
			return p.parseSimpleStmt(KindYieldStmt, true)
		}
		if p.peekN(1).Kind == TokenColon {
			node := p.startNode(KindLabeledStmt)
			node.AddChild(p.identifier())
			p.advance()
			node.AddChild(p.parseStatement())
			return p.finishNode(node)
		}
	case TokenRBrace, TokenEOF:
		return p.errorNode("expected statement", TokenRBrace)
	}

	node := p.startNode(KindExprStmt)
	node.AddChild(p.parseExpression())
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) isYieldStmt() bool {
	if !p.checkWord("yield") {
		return false
	}
	next := p.peekN(1).Kind
	return !next.isAssign() && next != TokenDot && next != TokenLBracket &&
		next != TokenIncrement && next != TokenDecrement && next != TokenColon
}

// parseSimpleStmt parses statements of the form: keyword [expression] ';'.
func (p *Parser) parseSimpleStmt(kind NodeKind, withExpr bool) *Node {
	node := p.startNode(kind)
	p.advance()
	if withExpr && !p.check(TokenSemicolon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseJumpStmt(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.advance()
	if p.check(TokenIdent) {
		node.AddChild(p.leaf(KindIdentifier))
	}
	p.expect(TokenSemicolon)
	return p.finishNode(node)
}

func (p *Parser) parseCondition() *Node {
	p.expect(TokenLParen)
	expr := p.parseExpression()
	p.expect(TokenRParen)
	return expr
}

func (p *Parser) parseIfStmt() *Node {
	node := p.startNode(KindIfStmt)
	p.expect(TokenIf)
	node.AddChild(p.parseCondition())
	node.AddChild(p.parseStatement())
	if p.check(TokenElse) {
		p.advance()
		node.AddChild(p.parseStatement())
	}
	return p.finishNode(node)
}

func (p *Parser) parseForStmt() *Node {
	node := p.startNode(KindForStmt)
	p.expect(TokenFor)
	p.expect(TokenLParen)

	if p.isEnhancedFor() {
		node.Kind = KindEnhancedForStmt
		decl := p.startNode(KindLocalVarDecl)
		decl.AddChild(p.parseModifiers())
		decl.AddChild(p.parseType())
		decl.AddChild(p.parseVarDeclarator())
		node.AddChild(p.finishNode(decl))
		p.expect(TokenColon)
		node.AddChild(p.parseExpression())
		p.expect(TokenRParen)
		node.AddChild(p.parseStatement())
		return p.finishNode(node)
	}

	if !p.check(TokenSemicolon) {
		init := p.startNode(KindForInit)
		if p.isLocalVarDecl() {
			init.AddChild(p.finishNode(p.parseLocalVarDecl()))
		} else {
			p.parseExpressionList(init)
		}
		node.AddChild(p.finishNode(init))
	}
	p.expect(TokenSemicolon)
	if !p.check(TokenSemicolon) {
		node.AddChild(p.parseExpression())
	}
	p.expect(TokenSemicolon)
	if !p.check(TokenRParen) {
		update := p.startNode(KindForUpdate)
		p.parseExpressionList(update)
		node.AddChild(p.finishNode(update))
	}
	p.expect(TokenRParen)
	node.AddChild(p.parseStatement())
	return p.finishNode(node)
}

func (p *Parser) parseExpressionList(parent *Node) {
	for {
		progress := p.mustProgress()
		parent.AddChild(p.parseExpression())
		if !p.check(TokenComma) || !progress() {
			return
		}
		p.advance()
	}
}

func (p *Parser) isEnhancedFor() bool {
	return p.speculate(func() bool {
		for p.check(TokenFinal) || p.check(TokenAt) {
			if p.check(TokenAt) {
				p.skipAnnotation()
			} else {
				p.advance()
			}
		}
		return p.skipType() && p.check(TokenIdent) && p.peekN(1).Kind == TokenColon
	})
}

// parseSwitch parses switch statements and switch expressions, which share
// the same body syntax.
func (p *Parser) parseSwitch(kind NodeKind) *Node {
	node := p.startNode(kind)
	p.expect(TokenSwitch)
	node.AddChild(p.parseCondition())
	p.expect(TokenLBrace)
	for !p.check(TokenRBrace) && !p.check(TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseSwitchCase())
		progress()
	}
	p.expect(TokenRBrace)
	return p.finishNode(node)
}

func (p *Parser) parseSwitchCase() *Node {
	node := p.startNode(KindSwitchCase)
	if !p.match(TokenCase, TokenDefault) {
		return p.errorNode("expected case or default", TokenCase, TokenDefault, TokenRBrace)
	}

	for p.match(TokenCase, TokenDefault) {
		node.AddChild(p.parseSwitchLabel())
		if p.check(TokenArrow) {
			p.advance()
			switch {
			case p.check(TokenLBrace):
				node.AddChild(p.parseBlock())
			case p.check(TokenThrow):
				node.AddChild(p.parseStatement())
			default:
				stmt := p.startNode(KindExprStmt)
				stmt.AddChild(p.parseExpression())
				p.expect(TokenSemicolon)
				node.AddChild(p.finishNode(stmt))
			}
			return p.finishNode(node)
		}
		p.expect(TokenColon)
	}

	for !p.match(TokenCase, TokenDefault, TokenRBrace, TokenEOF) {
		progress := p.mustProgress()
		node.AddChild(p.parseBlockStatement())
		progress()
	}
	return p.finishNode(node)
}

func (p *Parser) parseSwitchLabel() *Node {
	node := p.startNode(KindSwitchLabel)
	if p.check(TokenDefault) {
		node.AddChild(p.leaf(KindModifier))
		return p.finishNode(node)
	}
	p.expect(TokenCase)
	for {
		progress := p.mustProgress()
		switch {
		case p.check(TokenDefault):
			node.AddChild(p.leaf(KindModifier))
		case p.looksLikePattern():
			node.AddChild(p.parsePattern())
		default:
			node.AddChild(p.parseTernaryExpr())
		}
		if !p.check(TokenComma) || !progress() {
			break
		}
		p.advance()
	}
	if p.checkWord("when") {
		guard := p.startNode(KindGuard)
		p.advance()
		guard.AddChild(p.parseExpression())
		node.AddChild(p.finishNode(guard))
	}
	return p.finishNode(node)
}

func (p *Parser) looksLikePattern() bool {
	return p.speculate(func() bool {
		for p.check(TokenFinal) || p.check(TokenAt) {
			if p.check(TokenAt) {
				p.skipAnnotation()
			} else {
				p.advance()
			}
		}
		if !p.skipType() {
			return false
		}
		return p.check(TokenLParen) || (p.check(TokenIdent) && !p.checkWord("when"))
	})
}

func (p *Parser) parsePattern() *Node {
	node := p.startNode(KindTypePattern)
	node.AddChild(p.parseModifiers())
	node.AddChild(p.parseType())
	if p.check(TokenLParen) {
		node.Kind = KindRecordPattern
		p.advance()
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parsePattern())
			if !p.check(TokenComma) || !progress() {
				break
			}
			p.advance()
		}
		p.expect(TokenRParen)
	}
	if p.check(TokenIdent) && !p.checkWord("when") {
		node.AddChild(p.leaf(KindIdentifier))
	}
	return p.finishNode(node)
}

func (p *Parser) parseTryStmt() *Node {
	node := p.startNode(KindTryStmt)
	p.expect(TokenTry)

	if p.check(TokenLParen) {
		p.advance()
		for !p.check(TokenRParen) && !p.check(TokenEOF) {
			progress := p.mustProgress()
			node.AddChild(p.parseResource())
			if p.check(TokenSemicolon) {
				p.advance()
			}
			if !progress() {
				break
			}
		}
		p.expect(TokenRParen)
	}

	node.AddChild(p.parseBlock())
	for p.check(TokenCatch) {
		node.AddChild(p.parseCatchClause())
	}
	if p.check(TokenFinally) {
		clause := p.startNode(KindFinallyClause)
		p.advance()
		clause.AddChild(p.parseBlock())
		node.AddChild(p.finishNode(clause))
	}
	if node.FirstChildOfKind(KindCatchClause) == nil && node.FirstChildOfKind(KindFinallyClause) == nil &&
		node.FirstChildOfKind(KindResource) == nil {
		p.fail("try without catch, finally or resources")
	}

	return p.finishNode(node)
}

func (p *Parser) parseResource() *Node {
	node := p.startNode(KindResource)
	if p.isLocalVarDecl() {
		node.AddChild(p.parseModifiers())
		node.AddChild(p.parseType())
		node.AddChild(p.parseVarDeclarator())
	} else {
		node.AddChild(p.parseExpression())
	}
	return p.finishNode(node)
}

func (p *Parser) parseCatchClause() *Node {
	node := p.startNode(KindCatchClause)
	p.expect(TokenCatch)
	p.expect(TokenLParen)

	node.AddChild(p.parseModifiers())
	types := p.startNode(KindCatchType)
	types.AddChild(p.parseType())
	for p.check(TokenBitOr) {
		p.advance()
		types.AddChild(p.parseType())
	}
	node.AddChild(p.finishNode(types))
	node.AddChild(p.identifier())

	p.expect(TokenRParen)
	node.AddChild(p.parseBlock())
	return p.finishNode(node)
}
