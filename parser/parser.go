// Package parser is a recursive-descent, Pratt-precedence parser that turns
// a lexer's token stream into the ast package's node types. It sits
// upstream of the resolver and evaluator, turning source into the syntax
// tree they consume.
package parser

import (
	"lumen/ast"
	"lumen/errors"
	"lumen/lexer"
	"lumen/token"
)

const (
	_ int = iota
	lowest
	assignPrec
	orPrec
	andPrec
	equality
	comparison
	bitwise
	term
	factor
	unaryPrec
	callPrec
)

var precedences = map[token.Type]int{
	token.ASSIGN:  assignPrec,
	token.OR_OR:   orPrec,
	token.AND_AND: andPrec,
	token.EQ:      equality,
	token.NOT_EQ:  equality,
	token.LT:      comparison,
	token.GT:      comparison,
	token.LT_EQ:   comparison,
	token.GT_EQ:   comparison,
	token.AMP:     bitwise,
	token.PIPE:    bitwise,
	token.CARET:   bitwise,
	token.PLUS:    term,
	token.MINUS:   term,
	token.STAR:    factor,
	token.SLASH:   factor,
	token.PERCENT: factor,
	token.LPAREN:  callPrec,
	token.DOT:     callPrec,
}

// Parser holds the token-stream cursor and the sink syntax errors are
// thrown to.
type Parser struct {
	toks []token.Token
	pos  int
	err  *errors.Sink
}

// New builds a Parser over src's full token stream, scanned via lexer.New.
func New(src string, startLine int, err *errors.Sink) *Parser {
	toks := lexer.New(src, startLine).Tokenize()
	return &Parser{toks: toks, err: err}
}

// FromTokens builds a Parser directly over an already-scanned token stream.
func FromTokens(toks []token.Token, err *errors.Sink) *Parser {
	return &Parser{toks: toks, err: err}
}

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *Parser) peek() token.Token {
	if p.pos+1 >= len(p.toks) {
		return token.Token{Kind: token.EOF}
	}
	return p.toks[p.pos+1]
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *Parser) check(kind token.Type) bool { return p.cur().Kind == kind }

func (p *Parser) match(kinds ...token.Type) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) expect(kind token.Type, expected string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	t := p.cur()
	p.err.Throw(errors.E0x306, t.Line, t.Pos, []string{expected})
	return t
}

// ParseProgram parses the full token stream into a statement list.
func (p *Parser) ParseProgram() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.EOF) {
		stmts = append(stmts, p.statement())
	}
	return stmts
}

func (p *Parser) statement() ast.Stmt {
	switch p.cur().Kind {
	case token.PUB:
		return p.pubDecl()
	case token.VAR:
		return p.varDecl(false)
	case token.FN:
		return p.funcDecl(false, false, false)
	case token.ASYNC:
		p.advance()
		p.expect(token.FN, "fn")
		return p.funcDeclBody(false, true, false)
	case token.MUT:
		p.advance()
		p.expect(token.FN, "fn")
		return p.funcDeclBody(false, false, true)
	case token.IF:
		return p.ifStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.LOOP:
		return p.loopStmt()
	case token.BREAK:
		p.advance()
		p.match(token.SEMICOLON)
		return &ast.Break{}
	case token.RETURN:
		return p.returnStmt()
	case token.USE:
		return p.useStmt()
	case token.MOD:
		return p.modStmt()
	case token.STRUCT:
		return p.structStmt()
	case token.IMPL:
		return p.implStmt()
	case token.ENUM:
		return p.enumStmt()
	case token.MATCH:
		return p.matchStmt()
	case token.LBRACE:
		return p.block()
	default:
		expr := p.expression(lowest)
		p.match(token.SEMICOLON)
		return &ast.ExpressionStmt{Expr: expr}
	}
}

func (p *Parser) pubDecl() ast.Stmt {
	p.advance() // 'pub'
	switch p.cur().Kind {
	case token.VAR:
		return p.varDecl(true)
	case token.FN:
		return p.funcDecl(true, false, false)
	default:
		t := p.cur()
		p.err.Throw(errors.E0x306, t.Line, t.Pos, []string{"'var' or 'fn' after 'pub'"})
		return p.statement()
	}
}

func (p *Parser) block() *ast.Block {
	p.expect(token.LBRACE, "'{'")
	var stmts []ast.Stmt
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		stmts = append(stmts, p.statement())
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Block{Stmts: stmts}
}

func (p *Parser) blockStmts() []ast.Stmt {
	return p.block().Stmts
}

func (p *Parser) varDecl(isPub bool) ast.Stmt {
	p.advance() // 'var'
	var names []token.Token
	names = append(names, p.expect(token.IDENT, "a name"))
	for p.match(token.COMMA) {
		names = append(names, p.expect(token.IDENT, "a name"))
	}

	decl := &ast.VarDecl{Names: names, IsPub: isPub}
	if isPub {
		decl.PubNames = names
	}

	if p.match(token.ASSIGN) {
		decl.Value = p.expression(lowest)
		if _, ok := decl.Value.(*ast.Func); ok {
			decl.IsFunc = true
		}
	}
	p.match(token.SEMICOLON)
	return decl
}

func (p *Parser) funcDecl(isPub, isAsync, isMut bool) ast.Stmt {
	p.advance() // 'fn'
	return p.funcDeclBody(isPub, isAsync, isMut)
}

func (p *Parser) funcDeclBody(isPub, isAsync, isMut bool) ast.Stmt {
	name := p.expect(token.IDENT, "a function name")
	params, retType := p.paramsAndReturn()
	body := p.blockStmts()
	return &ast.FuncDecl{
		Name: name, Params: params, ReturnType: retType, Body: body,
		IsPub: isPub, IsAsync: isAsync, IsMut: isMut,
	}
}

func (p *Parser) paramsAndReturn() ([]ast.Param, token.Token) {
	p.expect(token.LPAREN, "'('")
	var params []ast.Param
	if !p.check(token.RPAREN) {
		params = append(params, p.param())
		for p.match(token.COMMA) {
			params = append(params, p.param())
		}
	}
	p.expect(token.RPAREN, "')'")
	var retType token.Token
	if p.match(token.ARROW) {
		retType = p.typeToken()
	}
	return params, retType
}

func (p *Parser) param() ast.Param {
	name := p.expect(token.IDENT, "a parameter name")
	var typ token.Token
	if p.match(token.COLON) {
		typ = p.typeToken()
	}
	return ast.Param{Name: name, Type: typ}
}

func (p *Parser) typeToken() token.Token {
	switch p.cur().Kind {
	case token.NUMBER_TYPE, token.STRING_TYPE, token.CHAR_TYPE, token.BOOL_TYPE,
		token.ANY_TYPE, token.ARRAY_TYPE, token.FUNC_TYPE, token.VOID_TYPE, token.IDENT:
		return p.advance()
	default:
		t := p.cur()
		p.err.Throw(errors.E0x306, t.Line, t.Pos, []string{"a type name"})
		return p.advance()
	}
}

func (p *Parser) ifStmt() ast.Stmt {
	p.advance() // 'if'
	p.expect(token.LPAREN, "'('")
	cond := p.expression(lowest)
	p.expect(token.RPAREN, "')'")
	body := p.blockStmts()
	stmt := &ast.If{Cond: cond, Body: body}
	for p.check(token.ELIF) {
		p.advance()
		p.expect(token.LPAREN, "'('")
		ec := p.expression(lowest)
		p.expect(token.RPAREN, "')'")
		eb := p.blockStmts()
		stmt.ElseIfBranches = append(stmt.ElseIfBranches, ast.ElifBranch{Cond: ec, Body: eb})
	}
	if p.check(token.ELSE) {
		p.advance()
		stmt.ElseBranch = p.blockStmts()
	}
	return stmt
}

func (p *Parser) whileStmt() ast.Stmt {
	p.advance() // 'while'
	p.expect(token.LPAREN, "'('")
	cond := p.expression(lowest)
	p.expect(token.RPAREN, "')'")
	return &ast.While{Cond: cond, Body: p.blockStmts()}
}

func (p *Parser) loopStmt() ast.Stmt {
	p.advance() // 'loop'
	var count *int
	if p.check(token.NUMBER) {
		tok := p.advance()
		n := int(tok.Literal.Number.Value)
		count = &n
	}
	return &ast.Loop{Count: count, Body: p.blockStmts()}
}

func (p *Parser) returnStmt() ast.Stmt {
	p.advance() // 'return'
	var expr ast.Expr
	if !p.check(token.SEMICOLON) && !p.check(token.RBRACE) {
		expr = p.expression(lowest)
	}
	p.match(token.SEMICOLON)
	return &ast.Return{Expr: expr}
}

func (p *Parser) useStmt() ast.Stmt {
	p.advance() // 'use'
	var imports []ast.UseImport
	for {
		name := p.expect(token.IDENT, "an imported name")
		imp := ast.UseImport{Name: name}
		if p.match(token.AS) {
			alias := p.expect(token.IDENT, "an alias")
			imp.Alias = &alias
		}
		imports = append(imports, imp)
		if !p.match(token.COMMA) {
			break
		}
	}
	p.match(token.SEMICOLON)
	return &ast.Use{Imports: imports}
}

func (p *Parser) modStmt() ast.Stmt {
	p.advance() // 'mod'
	name := p.expect(token.IDENT, "a module name")
	p.match(token.SEMICOLON)
	return &ast.Mod{Name: name}
}

func (p *Parser) structStmt() ast.Stmt {
	p.advance() // 'struct'
	name := p.expect(token.IDENT, "a struct name")
	p.expect(token.LBRACE, "'{'")
	var fields []ast.Param
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		fields = append(fields, p.param())
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Struct{Name: name, Fields: fields}
}

func (p *Parser) implStmt() ast.Stmt {
	p.advance() // 'impl'
	name := p.expect(token.IDENT, "a type name")
	p.expect(token.LBRACE, "'{'")
	var methods []*ast.FuncDecl
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		p.expect(token.FN, "'fn'")
		m := p.funcDeclBody(false, false, false).(*ast.FuncDecl)
		m.IsImpl = true
		methods = append(methods, m)
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Impl{Name: name, Methods: methods}
}

func (p *Parser) enumStmt() ast.Stmt {
	p.advance() // 'enum'
	name := p.expect(token.IDENT, "an enum name")
	p.expect(token.LBRACE, "'{'")
	var variants []ast.EnumVariant
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		variants = append(variants, ast.EnumVariant{Name: p.expect(token.IDENT, "a variant name")})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Enum{Name: name, Variants: variants}
}

func (p *Parser) matchStmt() ast.Stmt {
	p.advance() // 'match'
	p.expect(token.LPAREN, "'('")
	cond := p.expression(lowest)
	p.expect(token.RPAREN, "')'")
	p.expect(token.LBRACE, "'{'")
	var cases []ast.MatchCase
	var def []ast.Stmt
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		if p.check(token.ELSE) {
			p.advance()
			p.expect(token.ARROW, "'->'")
			def = p.blockStmts()
			continue
		}
		caseExpr := p.expression(lowest)
		p.expect(token.ARROW, "'->'")
		body := p.blockStmts()
		cases = append(cases, ast.MatchCase{Case: caseExpr, Body: body})
		p.match(token.COMMA)
	}
	p.expect(token.RBRACE, "'}'")
	return &ast.Match{Cond: cond, Cases: cases, Default: def}
}

// --- Pratt expression parsing ------------------------------------------------

func (p *Parser) expression(minPrec int) ast.Expr {
	left := p.unary()
	for {
		kind := p.cur().Kind
		prec, ok := precedences[kind]
		if !ok || prec < minPrec {
			break
		}
		if kind == token.ASSIGN {
			left = p.finishAssign(left)
			continue
		}
		if kind == token.LPAREN {
			left = p.finishCall(left)
			continue
		}
		if kind == token.DOT {
			left = p.finishMethod(left)
			continue
		}
		op := p.advance()
		right := p.expression(prec + 1)
		left = ast.NewBinary(left, op, right)
	}
	return left
}

func (p *Parser) finishAssign(left ast.Expr) ast.Expr {
	v, ok := left.(*ast.Var)
	if !ok {
		t := p.cur()
		p.err.Throw(errors.E0x306, t.Line, t.Pos, []string{"an assignable name"})
		p.advance()
		return left
	}
	p.advance() // '='
	value := p.expression(assignPrec)
	return ast.NewAssign(v.Name, value)
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		args = append(args, p.expression(lowest))
		for p.match(token.COMMA) {
			args = append(args, p.expression(lowest))
		}
	}
	p.expect(token.RPAREN, "')'")
	return ast.NewCall(callee, args)
}

func (p *Parser) finishMethod(receiver ast.Expr) ast.Expr {
	p.advance() // '.'
	name := p.expect(token.IDENT, "a method name")
	p.expect(token.LPAREN, "'('")
	var args []ast.Expr
	if !p.check(token.RPAREN) {
		args = append(args, p.expression(lowest))
		for p.match(token.COMMA) {
			args = append(args, p.expression(lowest))
		}
	}
	p.expect(token.RPAREN, "')'")
	return ast.NewMethod(receiver, name, args)
}

func (p *Parser) unary() ast.Expr {
	if p.check(token.BANG) || p.check(token.MINUS) {
		op := p.advance()
		return ast.NewUnary(op, p.unary())
	}
	return p.primary()
}

func (p *Parser) primary() ast.Expr {
	switch p.cur().Kind {
	case token.NUMBER, token.STRING, token.CHAR, token.TRUE, token.FALSE, token.NULL:
		return ast.NewValue(p.advance())
	case token.IDENT:
		return ast.NewVar(p.advance())
	case token.LPAREN:
		p.advance()
		e := p.expression(lowest)
		p.expect(token.RPAREN, "')'")
		return ast.NewGrouping(e)
	case token.LBRACKET:
		return p.arrayLiteral()
	case token.LBRACE:
		return p.objectLiteral()
	case token.FN:
		return p.funcLiteral()
	case token.AWAIT:
		p.advance()
		return ast.NewAwait(p.expression(unaryPrec))
	default:
		t := p.cur()
		p.err.Throw(errors.E0x306, t.Line, t.Pos, []string{"an expression"})
		p.advance()
		return ast.NewValue(token.Token{Kind: token.NULL})
	}
}

func (p *Parser) arrayLiteral() ast.Expr {
	p.advance() // '['
	var items []ast.Expr
	if !p.check(token.RBRACKET) {
		items = append(items, p.expression(lowest))
		for p.match(token.COMMA) {
			items = append(items, p.expression(lowest))
		}
	}
	p.expect(token.RBRACKET, "']'")
	return ast.NewArray(items)
}

func (p *Parser) objectLiteral() ast.Expr {
	p.advance() // '{'
	var fields []ast.ObjectField
	for !p.check(token.RBRACE) && !p.check(token.EOF) {
		key := p.expect(token.IDENT, "a field name")
		p.expect(token.COLON, "':'")
		val := p.expression(lowest)
		fields = append(fields, ast.ObjectField{Key: key, Value: val})
		if !p.match(token.COMMA) {
			break
		}
	}
	p.expect(token.RBRACE, "'}'")
	return ast.NewObject(fields)
}

func (p *Parser) funcLiteral() ast.Expr {
	p.advance() // 'fn'
	params, retType := p.paramsAndReturn()
	body := p.blockStmts()
	return ast.NewFunc(params, retType, body)
}
