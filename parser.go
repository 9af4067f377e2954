// parser.go — recursive-descent parser for jive.
//
// The parser consumes the token stream produced by lexer.go and builds the
// tree defined in ast.go. Expressions use precedence climbing, lowest to
// highest:
//
//	assignment (right-assoc)
//	bitwise-or        "|"
//	logical-and       "&&"  (bitwise "&" lives on this level too)
//	equality          "==" "!="
//	relational        "<" ">"
//	additive          "+" "-"
//	multiplicative    "*" "/" "%"
//	unary             "!" "-"
//	call / member / index
//	primary
//
// Statement parsing dispatches on the leading token: let/const, fn, if, for,
// otherwise an expression statement. There is no error recovery: the whole
// parse either succeeds with one Program node or fails with a *ParseError.
package jive

import (
	"fmt"
	"strconv"
)

// ----- public API -----

// ParseSource tokenizes and parses a complete jive source string.
func ParseSource(src string) (*Program, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	return ParseProgram(toks)
}

// ParseProgram parses a token sequence (terminated by EOF) into a Program.
func ParseProgram(toks []Token) (*Program, error) {
	p := &parser{toks: toks}
	return p.program()
}

// ParseError reports a structural mismatch. Line is 1-based, Col 0-based.
type ParseError struct {
	Line int
	Col  int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("PARSE ERROR at %d:%d: %s", e.Line, e.Col, e.Msg)
}

// ----- parser internals -----

type parser struct {
	toks []Token
	i    int
}

func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}

func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) atEnd() bool { return p.peek().Type == EOF }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	g := p.peek()
	return Token{}, &ParseError{Line: g.Line, Col: g.Col, Msg: fmt.Sprintf("%s, found %s", msg, describe(g))}
}

func (p *parser) errAt(t Token, format string, args ...any) error {
	return &ParseError{Line: t.Line, Col: t.Col, Msg: fmt.Sprintf(format, args...)}
}

func describe(t Token) string {
	if t.Type == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Lexeme)
}

func at(t Token) pos { return pos{Line: t.Line, Col: t.Col} }

// ----- statements -----

func (p *parser) program() (*Program, error) {
	root := &Program{pos: at(p.peek())}
	for !p.atEnd() {
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		root.Stmts = append(root.Stmts, s)
	}
	return root, nil
}

func (p *parser) statement() (Stmt, error) {
	switch p.peek().Type {
	case LET, CONST:
		return p.varDecl()
	case FUNCTION:
		return p.fnDecl()
	case IF:
		return p.ifStmt()
	case FOR:
		return p.forStmt()
	default:
		return p.exprStmt()
	}
}

// varDecl parses `let name (= expr)? ;` / `const name = expr ;`.
func (p *parser) varDecl() (Stmt, error) {
	kw := p.peek()
	isConst := kw.Type == CONST
	p.i++

	name, err := p.need(ID, "expected variable name")
	if err != nil {
		return nil, err
	}

	var init Expr
	if p.match(ASSIGN) {
		init, err = p.expression()
		if err != nil {
			return nil, err
		}
	} else if isConst {
		return nil, p.errAt(name, "const declaration of %q requires an initializer", name.Lexeme)
	}

	if _, err := p.need(SEMI, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}
	return &VarDecl{pos: at(kw), Const: isConst, Name: name.Lexeme, Init: init}, nil
}

// fnDecl parses `fn name(a, b) { body }`.
func (p *parser) fnDecl() (Stmt, error) {
	kw := p.peek()
	p.i++

	name, err := p.need(ID, "expected function name after 'fn'")
	if err != nil {
		return nil, err
	}
	if _, err := p.need(LROUND, "expected '(' after function name"); err != nil {
		return nil, err
	}

	var params []string
	if p.peek().Type != RROUND {
		for {
			prm, err := p.need(ID, "expected parameter name")
			if err != nil {
				return nil, err
			}
			params = append(params, prm.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
	}
	if _, err := p.need(RROUND, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &FnDecl{pos: at(kw), Name: name.Lexeme, Params: params, Body: body}, nil
}

// ifStmt parses `if cond { ... } (else { ... } | else if ...)?`.
func (p *parser) ifStmt() (Stmt, error) {
	kw := p.peek()
	p.i++

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	then, err := p.block()
	if err != nil {
		return nil, err
	}

	var alt []Stmt
	if p.match(ELSE) {
		if p.peek().Type == IF {
			nested, err := p.ifStmt()
			if err != nil {
				return nil, err
			}
			alt = []Stmt{nested}
		} else {
			alt, err = p.block()
			if err != nil {
				return nil, err
			}
		}
	}
	return &IfStmt{pos: at(kw), Cond: cond, Then: then, Else: alt}, nil
}

// forStmt parses `for (init; cond; post) { body }`. The initializer is either
// a variable declaration or an expression statement; both consume the ';'.
func (p *parser) forStmt() (Stmt, error) {
	kw := p.peek()
	p.i++

	if _, err := p.need(LROUND, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var init Stmt
	var err error
	if p.peek().Type == LET || p.peek().Type == CONST {
		init, err = p.varDecl()
	} else {
		init, err = p.forClauseExpr()
	}
	if err != nil {
		return nil, err
	}

	cond, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMI, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	post, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(RROUND, "expected ')' after loop clauses"); err != nil {
		return nil, err
	}

	body, err := p.block()
	if err != nil {
		return nil, err
	}
	return &ForStmt{pos: at(kw), Init: init, Cond: cond, Post: post, Body: body}, nil
}

// forClauseExpr parses the expression form of a loop initializer plus its ';'.
func (p *parser) forClauseExpr() (Stmt, error) {
	start := p.peek()
	x, err := p.expression()
	if err != nil {
		return nil, err
	}
	if _, err := p.need(SEMI, "expected ';' after loop initializer"); err != nil {
		return nil, err
	}
	return &ExprStmt{pos: at(start), X: x}, nil
}

// block parses `{ stmt* }`.
func (p *parser) block() ([]Stmt, error) {
	if _, err := p.need(LCURLY, "expected '{'"); err != nil {
		return nil, err
	}
	stmts := []Stmt{}
	for p.peek().Type != RCURLY {
		if p.atEnd() {
			g := p.peek()
			return nil, p.errAt(g, "expected '}' to close block, found end of input")
		}
		s, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	p.i++ // consume '}'
	return stmts, nil
}

func (p *parser) exprStmt() (Stmt, error) {
	start := p.peek()
	x, err := p.expression()
	if err != nil {
		return nil, err
	}
	p.match(SEMI) // statement terminator is optional for expressions
	return &ExprStmt{pos: at(start), X: x}, nil
}

// ----- expressions (precedence climbing) -----

func (p *parser) expression() (Expr, error) { return p.assignment() }

// assignment is right-associative; the target must be an identifier or a
// member/index expression.
func (p *parser) assignment() (Expr, error) {
	left, err := p.bitwiseOr()
	if err != nil {
		return nil, err
	}
	if !p.match(ASSIGN) {
		return left, nil
	}
	eq := p.prev()
	value, err := p.assignment()
	if err != nil {
		return nil, err
	}
	switch left.(type) {
	case *Ident, *MemberExpr:
	default:
		return nil, p.errAt(eq, "invalid assignment target: expected a name or member expression")
	}
	line, col := left.Pos()
	return &AssignExpr{pos: pos{line, col}, Target: left, Value: value}, nil
}

func (p *parser) bitwiseOr() (Expr, error) {
	return p.binaryLevel(p.logicalAnd, BAR)
}

func (p *parser) logicalAnd() (Expr, error) {
	return p.binaryLevel(p.equality, AND, AMP)
}

func (p *parser) equality() (Expr, error) {
	return p.binaryLevel(p.relational, EQ, NEQ)
}

func (p *parser) relational() (Expr, error) {
	return p.binaryLevel(p.additive, LESS, GREATER)
}

func (p *parser) additive() (Expr, error) {
	return p.binaryLevel(p.multiplicative, PLUS, MINUS)
}

func (p *parser) multiplicative() (Expr, error) {
	return p.binaryLevel(p.unary, MULT, DIV, MOD)
}

// binaryLevel builds one left-associative precedence level over next.
func (p *parser) binaryLevel(next func() (Expr, error), ops ...TokenType) (Expr, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for p.match(ops...) {
		op := p.prev()
		right, err := next()
		if err != nil {
			return nil, err
		}
		line, col := left.Pos()
		left = &BinaryExpr{pos: pos{line, col}, Op: op.Lexeme, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	if p.match(BANG, MINUS) {
		op := p.prev()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &UnaryExpr{pos: at(op), Op: op.Lexeme, Operand: operand}, nil
	}
	return p.callMember()
}

// callMember parses a primary followed by any chain of calls, dot members
// and computed indexes.
func (p *parser) callMember() (Expr, error) {
	x, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.match(LROUND):
			var args []Expr
			if p.peek().Type != RROUND {
				for {
					a, err := p.expression()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if !p.match(COMMA) {
						break
					}
				}
			}
			if _, err := p.need(RROUND, "expected ')' after arguments"); err != nil {
				return nil, err
			}
			line, col := x.Pos()
			x = &CallExpr{pos: pos{line, col}, Callee: x, Args: args}

		case p.match(PERIOD):
			name, err := p.need(ID, "expected property name after '.'")
			if err != nil {
				return nil, err
			}
			line, col := x.Pos()
			x = &MemberExpr{
				pos:      pos{line, col},
				Object:   x,
				Property: &StringLit{pos: at(name), Value: name.Lexeme},
				Computed: false,
			}

		case p.match(LSQUARE):
			idx, err := p.expression()
			if err != nil {
				return nil, err
			}
			if _, err := p.need(RSQUARE, "expected ']' after index expression"); err != nil {
				return nil, err
			}
			line, col := x.Pos()
			x = &MemberExpr{pos: pos{line, col}, Object: x, Property: idx, Computed: true}

		default:
			return x, nil
		}
	}
}

func (p *parser) primary() (Expr, error) {
	tok := p.peek()
	switch tok.Type {
	case INTEGER:
		p.i++
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, p.errAt(tok, "integer literal out of range: %s", tok.Lexeme)
		}
		return &NumberLit{pos: at(tok), Value: n}, nil

	case STRING:
		p.i++
		return &StringLit{pos: at(tok), Value: tok.Lexeme[1 : len(tok.Lexeme)-1]}, nil

	case ID:
		p.i++
		return &Ident{pos: at(tok), Name: tok.Lexeme}, nil

	case LROUND:
		p.i++
		x, err := p.expression()
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "expected ')' after expression"); err != nil {
			return nil, err
		}
		return x, nil

	case LCURLY:
		return p.objectLit()

	case LSQUARE:
		return p.arrayLit()
	}
	return nil, p.errAt(tok, "unexpected token %s", describe(tok))
}

// objectLit parses `{ key: value, shorthand, "quoted": value }`.
func (p *parser) objectLit() (Expr, error) {
	open := p.peek()
	p.i++

	lit := &ObjectLit{pos: at(open)}
	for p.peek().Type != RCURLY {
		var key string
		switch p.peek().Type {
		case ID:
			key = p.peek().Lexeme
			p.i++
		case STRING:
			lex := p.peek().Lexeme
			key = lex[1 : len(lex)-1]
			p.i++
		default:
			return nil, p.errAt(p.peek(), "expected object key, found %s", describe(p.peek()))
		}

		var val Expr
		if p.match(COLON) {
			var err error
			val, err = p.expression()
			if err != nil {
				return nil, err
			}
		}
		lit.Props = append(lit.Props, Property{Key: key, Value: val})

		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RCURLY, "expected '}' after object literal"); err != nil {
		return nil, err
	}
	return lit, nil
}

// arrayLit parses `[ e, e, ... ]` with an optional trailing comma.
func (p *parser) arrayLit() (Expr, error) {
	open := p.peek()
	p.i++

	lit := &ArrayLit{pos: at(open)}
	for p.peek().Type != RSQUARE {
		e, err := p.expression()
		if err != nil {
			return nil, err
		}
		lit.Items = append(lit.Items, e)
		if !p.match(COMMA) {
			break
		}
	}
	if _, err := p.need(RSQUARE, "expected ']' after array literal"); err != nil {
		return nil, err
	}
	return lit, nil
}
