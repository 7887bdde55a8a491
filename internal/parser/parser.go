// Package parser implements Sol's recursive-descent parser: a single
// mutable token index, one-token lookahead via match/check, and a
// consume helper that fails fast with position + previous-token context.
// The helper shape (match, consume, check, advance, previous, atEnd) is
// a shape common to hand-written recursive-descent parsers; the grammar
// itself is Sol's own.
package parser

import (
	"github.com/solscript/sol/internal/ast"
	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/token"
)

// Parser turns a token sequence into a Program.
type Parser struct {
	tokens []token.Token
	idx    int
	err    error
}

// New creates a Parser over tokens (the scanner's output, including the
// trailing EOF).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs the parser to completion, returning the first ParseError
// encountered via panic/recover the way a single bad token aborts the
// whole pass ("fails fast").
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if pe, ok := r.(*diag.ParseError); ok {
				err = pe
				return
			}
			panic(r)
		}
	}()

	prog = &ast.Program{}
	for !p.atEnd() {
		prog.Decls = append(prog.Decls, p.declaration())
	}
	return prog, nil
}

func (p *Parser) declaration() ast.Decl {
	switch {
	case p.match(token.CONSTANT):
		return p.constDecl()
	case p.match(token.FUNCTION):
		return p.funcDecl()
	case p.match(token.STRUCTURE):
		return p.structureDecl()
	default:
		p.fail("expected a declaration ('constant', 'function', or 'structure')")
		return nil
	}
}

func (p *Parser) constDecl() ast.Decl {
	name := p.consume(token.IDENTIFIER, "expected an identifier after 'constant'")
	p.consume(token.EQUAL, "expected '=' in constant declaration")
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after constant declaration")
	return &ast.ConstDecl{Name: name.Lexeme, Init: expr}
}

func (p *Parser) funcDecl() ast.Decl {
	start := p.current().Position
	name := p.consume(token.IDENTIFIER, "expected a function name")
	p.consume(token.LEFT_PAREN, "expected '(' after function name")

	var params []ast.Param
	if !p.check(token.RIGHT_PAREN) {
		params = append(params, p.param())
		for p.match(token.COMMA) {
			if p.check(token.RIGHT_PAREN) {
				break // trailing comma
			}
			params = append(params, p.param())
		}
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after parameters")

	var ret *ast.TypeRef
	if p.match(token.ARROW) {
		ret = p.typeRef()
	}

	p.consume(token.LEFT_BRACE, "expected '{' before function body")
	body := p.blockStmts()

	return &ast.FuncDecl{Name: name.Lexeme, Params: params, ReturnType: ret, Body: body, Pos: start}
}

func (p *Parser) param() ast.Param {
	name := p.consume(token.IDENTIFIER, "expected a parameter name")
	typ := p.typeRef()
	return ast.Param{Name: name.Lexeme, Type: typ}
}

func (p *Parser) typeRef() *ast.TypeRef {
	name := p.consume(token.TYPE_NAME, "expected a type name")
	ref := &ast.TypeRef{Name: name.Lexeme}
	for p.match(token.LEFT_BRACKET) {
		p.consume(token.RIGHT_BRACKET, "expected ']' to close list type")
		ref = &ast.TypeRef{List: ref}
	}
	return ref
}

func (p *Parser) structureDecl() ast.Decl {
	name := p.consume(token.TYPE_NAME, "expected a structure name")
	p.consume(token.LEFT_BRACE, "expected '{' after structure name")

	var fields []ast.StructureField
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		fname := p.consume(token.IDENTIFIER, "expected a field name")
		ftype := p.typeRef()
		p.consume(token.SEMICOLON, "expected ';' after field declaration")
		fields = append(fields, ast.StructureField{Name: fname.Lexeme, Type: ftype})
	}
	p.consume(token.RIGHT_BRACE, "expected '}' after structure fields")

	return &ast.StructureDecl{Name: name.Lexeme, Fields: fields}
}

// ---- Statements ----

func (p *Parser) blockStmts() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		stmts = append(stmts, p.statement())
	}
	p.consume(token.RIGHT_BRACE, "expected '}' after block")
	return stmts
}

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.check(token.IF):
		return p.conditionalChain()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.BREAK):
		at := p.previous().Position
		p.consume(token.SEMICOLON, "expected ';' after 'break'")
		return &ast.BreakStmt{At: at}
	case p.match(token.CONTINUE):
		at := p.previous().Position
		p.consume(token.SEMICOLON, "expected ';' after 'continue'")
		return &ast.ContinueStmt{At: at}
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.VARIABLE):
		return p.varDeclStmt()
	case p.isAssignment():
		return p.assignStmt()
	default:
		return p.exprStmt()
	}
}

// isAssignment performs the 2-token lookahead that distinguishes a bare
// assignment (`NAME = expr;`) from an expression statement.
func (p *Parser) isAssignment() bool {
	return p.check(token.IDENTIFIER) && p.checkAt(1, token.EQUAL)
}

func (p *Parser) assignStmt() ast.Stmt {
	name := p.advance()
	p.advance() // '='
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after assignment")
	return &ast.AssignStmt{Name: name.Lexeme, Expr: expr, At: name.Position}
}

func (p *Parser) varDeclStmt() ast.Stmt {
	at := p.previous().Position
	name := p.consume(token.IDENTIFIER, "expected an identifier after 'variable'")
	p.consume(token.EQUAL, "expected '=' in variable declaration")
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after variable declaration")
	return &ast.VarDeclStmt{Name: name.Lexeme, Expr: expr, At: at}
}

func (p *Parser) exprStmt() ast.Stmt {
	at := p.current().Position
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after expression")
	return &ast.BareStmt{Expr: expr, At: at}
}

func (p *Parser) returnStmt() ast.Stmt {
	at := p.previous().Position
	if p.match(token.SEMICOLON) {
		return &ast.ReturnStmt{Expr: nil, At: at}
	}
	expr := p.expression()
	p.consume(token.SEMICOLON, "expected ';' after return value")
	return &ast.ReturnStmt{Expr: expr, At: at}
}

func (p *Parser) conditionalChain() ast.Stmt {
	at := p.current().Position
	p.consume(token.IF, "expected 'if'")
	ifBranch := ast.IfBranch{Cond: p.expression()}
	p.consume(token.LEFT_BRACE, "expected '{' after if condition")
	ifBranch.Block = p.blockStmts()

	chain := &ast.ConditionalChainStmt{If: ifBranch, At: at}

	for p.check(token.ELSE) && p.checkAt(1, token.IF) {
		p.advance() // else
		p.advance() // if
		branch := ast.IfBranch{Cond: p.expression()}
		p.consume(token.LEFT_BRACE, "expected '{' after else-if condition")
		branch.Block = p.blockStmts()
		chain.ElseIfs = append(chain.ElseIfs, branch)
	}

	if p.match(token.ELSE) {
		p.consume(token.LEFT_BRACE, "expected '{' after 'else'")
		chain.Else = p.blockStmts()
		chain.HasElse = true
	}

	return chain
}

func (p *Parser) whileStmt() ast.Stmt {
	at := p.previous().Position
	cond := p.expression()
	p.consume(token.LEFT_BRACE, "expected '{' after while condition")
	body := p.blockStmts()
	return &ast.WhileStmt{Cond: cond, Block: body, At: at}
}

func (p *Parser) forStmt() ast.Stmt {
	at := p.previous().Position
	idx := p.consume(token.IDENTIFIER, "expected an index variable name")
	p.consume(token.COMMA, "expected ',' after for-loop index name")
	elem := p.consume(token.IDENTIFIER, "expected an element variable name")
	p.consume(token.IN, "expected 'in' in for loop")
	iterable := p.expression()
	p.consume(token.LEFT_BRACE, "expected '{' after for-loop iterable")
	body := p.blockStmts()
	return &ast.ForStmt{IndexName: idx.Lexeme, ElementName: elem.Lexeme, Iterable: iterable, Block: body, At: at}
}

// ---- Expressions ----

func (p *Parser) expression() ast.Expr {
	return p.equality()
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EQUAL_EQUAL, token.BANG_EQUAL) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.comparison()}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.term()}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.PLUS, token.MINUS) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.factor()}
	}
	return expr
}

// factor implements the clean left-associative grammar
// (factor ::= unary (("*"|"/"|"%") unary)*) rather than an
// asymmetric factor-recurses-into-factor reading. `6/3/2` parses to
// ((6/3)/2) == 1, pinned by parser_test.go — see DESIGN.md.
func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.STAR, token.SLASH, token.PERCENT) {
		op := p.previous()
		expr = &ast.BinaryExpr{Left: expr, Op: op, Right: p.unary()}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		return &ast.UnaryExpr{Op: op, Operand: p.unary()}
	}
	return p.call()
}

// call implements the postfix chain: `a.b(c)[d]` composes freely.
func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LEFT_PAREN):
			expr = p.finishCall(expr)
		case p.match(token.DOT):
			name := p.consume(token.IDENTIFIER, "expected a field name after '.'")
			expr = &ast.FieldAccessExpr{Parent: expr, Field: name.Lexeme, At: name.Position}
		case p.match(token.LEFT_BRACKET):
			at := p.previous().Position
			index := p.expression()
			p.consume(token.RIGHT_BRACKET, "expected ']' after subscript")
			expr = &ast.SubExpr{Target: expr, Index: index, At: at}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	name, ok := callee.(*ast.IdentifierRef)
	if !ok {
		p.fail("can only call a named function")
	}
	at := p.previous().Position

	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		args = append(args, p.expression())
		for p.match(token.COMMA) {
			if p.check(token.RIGHT_PAREN) {
				break
			}
			args = append(args, p.expression())
		}
	}
	p.consume(token.RIGHT_PAREN, "expected ')' after arguments")

	return &ast.CallExpr{Callee: name.Name, Args: args, At: at}
}

func (p *Parser) primary() ast.Expr {
	tok := p.current()

	switch {
	case p.match(token.STRING):
		return &ast.StringLit{Value: tok.Literal, At: tok.Position}
	case p.match(token.NUMBER):
		return &ast.NumberLit{Value: tok.Number, At: tok.Position}
	case p.match(token.BOOLEAN):
		return &ast.BoolLit{Value: tok.Lexeme == "true", At: tok.Position}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.consume(token.RIGHT_PAREN, "expected ')' after expression")
		return expr
	case p.check(token.TYPE_NAME):
		return p.typePrimary()
	case p.match(token.IDENTIFIER):
		return &ast.IdentifierRef{Name: tok.Lexeme, At: tok.Position}
	default:
		p.fail("expected an expression")
		return nil
	}
}

// typePrimary disambiguates list literal / type cast / structure literal
// / bare type reference by the token immediately following TYPE_NAME.
func (p *Parser) typePrimary() ast.Expr {
	nameTok := p.advance() // consume TYPE_NAME

	switch {
	case p.match(token.LEFT_BRACKET):
		// T "[" list_body "]": list_body is fully optional, so "T[]" is
		// the zero-element list literal, not a bare type reference.
		elemType := &ast.TypeRef{Name: nameTok.Lexeme}
		if p.match(token.RIGHT_BRACKET) {
			return &ast.ListLit{ElemType: elemType, Elems: nil, At: nameTok.Position}
		}
		var elems []ast.Expr
		elems = append(elems, p.expression())
		for p.match(token.COMMA) {
			if p.check(token.RIGHT_BRACKET) {
				break
			}
			elems = append(elems, p.expression())
		}
		p.consume(token.RIGHT_BRACKET, "expected ']' to close list literal")
		return &ast.ListLit{ElemType: elemType, Elems: elems, At: nameTok.Position}

	case p.match(token.LEFT_PAREN):
		inner := p.expression()
		p.consume(token.RIGHT_PAREN, "expected ')' after cast expression")
		return &ast.TypeCast{Ref: &ast.TypeRef{Name: nameTok.Lexeme}, Expr: inner, At: nameTok.Position}

	case p.match(token.LEFT_BRACE):
		var fields []ast.StructFieldInit
		if !p.check(token.RIGHT_BRACE) {
			fields = append(fields, p.structFieldInit())
			for p.match(token.COMMA) {
				if p.check(token.RIGHT_BRACE) {
					break
				}
				fields = append(fields, p.structFieldInit())
			}
		}
		p.consume(token.RIGHT_BRACE, "expected '}' to close structure literal")
		return &ast.StructLit{TypeName: nameTok.Lexeme, Fields: fields, At: nameTok.Position}

	default:
		return &ast.TypeRefExpr{Ref: &ast.TypeRef{Name: nameTok.Lexeme}, At: nameTok.Position}
	}
}

func (p *Parser) structFieldInit() ast.StructFieldInit {
	name := p.consume(token.IDENTIFIER, "expected a field name")
	p.consume(token.COLON, "expected ':' after field name")
	expr := p.expression()
	return ast.StructFieldInit{Name: name.Lexeme, Expr: expr}
}

// ---- Helper functions ----

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, msg string) token.Token {
	if !p.check(kind) {
		p.fail(msg)
	}
	return p.advance()
}

func (p *Parser) check(kind token.Kind) bool {
	return !p.atEnd() && p.current().Kind == kind
}

func (p *Parser) checkAt(offset int, kind token.Kind) bool {
	i := p.idx + offset
	if i >= len(p.tokens) {
		return kind == token.EOF
	}
	return p.tokens[i].Kind == kind
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.atEnd() {
		p.idx++
	}
	return tok
}

func (p *Parser) atEnd() bool {
	return p.current().Kind == token.EOF
}

func (p *Parser) current() token.Token {
	return p.tokens[p.idx]
}

func (p *Parser) previous() token.Token {
	if p.idx > 0 {
		return p.tokens[p.idx-1]
	}
	return p.current()
}

func (p *Parser) fail(msg string) {
	tok := p.current()
	panic(&diag.ParseError{Pos: tok.Position, Message: msg + ", got " + tok.Kind.String(), Previous: p.previous().Lexeme})
}
