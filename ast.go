// ast.go — the jive syntax tree.
//
// The AST is a closed sum: every node the parser can produce is one of the
// structs below, and the evaluator's type switch in interpreter_exec.go is
// total over them. Reaching any other Node is an internal error, never a
// user-facing one.
//
// Every node remembers the line/col of its leading token so runtime errors
// can point back into the source.
package jive

// Node is any element of the syntax tree.
type Node interface {
	Pos() (line, col int)
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// pos is embedded by every concrete node.
type pos struct {
	Line int
	Col  int
}

func (p pos) Pos() (int, int) { return p.Line, p.Col }

// ----- statements -----

// Program is the root of every parse; never nested.
type Program struct {
	pos
	Stmts []Stmt
}

// VarDecl is `let name = expr;` or `const name = expr;`. Init is nil for an
// uninitialized let; const always has an initializer (the parser enforces it).
type VarDecl struct {
	pos
	Const bool
	Name  string
	Init  Expr
}

// FnDecl is `fn name(params) { body }`.
type FnDecl struct {
	pos
	Name   string
	Params []string
	Body   []Stmt
}

// IfStmt is `if cond { ... }` with an optional else block. An `else if` chain
// parses as an Else holding a single nested IfStmt.
type IfStmt struct {
	pos
	Cond Expr
	Then []Stmt
	Else []Stmt
}

// ForStmt is `for (init; cond; post) { body }`.
type ForStmt struct {
	pos
	Init Stmt
	Cond Expr
	Post Expr
	Body []Stmt
}

// ExprStmt wraps an expression used in statement position.
type ExprStmt struct {
	pos
	X Expr
}

func (*Program) stmtNode()  {}
func (*VarDecl) stmtNode()  {}
func (*FnDecl) stmtNode()   {}
func (*IfStmt) stmtNode()   {}
func (*ForStmt) stmtNode()  {}
func (*ExprStmt) stmtNode() {}

// ----- expressions -----

// NumberLit is a non-negative integer literal.
type NumberLit struct {
	pos
	Value int64
}

// StringLit holds the decoded content (quotes stripped, no escapes).
type StringLit struct {
	pos
	Value string
}

// Ident is a name reference. `true`, `false` and `null` are plain identifiers
// resolved against constant global bindings, not literal nodes.
type Ident struct {
	pos
	Name string
}

// UnaryExpr is prefix `!` or `-`.
type UnaryExpr struct {
	pos
	Op      string
	Operand Expr
}

// BinaryExpr covers arithmetic, comparison, logical and bitwise operators.
type BinaryExpr struct {
	pos
	Op    string
	Left  Expr
	Right Expr
}

// AssignExpr is `target = value`. Target is an Ident or a MemberExpr; the
// parser rejects anything else.
type AssignExpr struct {
	pos
	Target Expr
	Value  Expr
}

// MemberExpr is `obj.name` (Computed=false, Property is a StringLit holding
// the name) or `obj[expr]` (Computed=true, Property is arbitrary).
type MemberExpr struct {
	pos
	Object   Expr
	Property Expr
	Computed bool
}

// CallExpr is `callee(args...)`.
type CallExpr struct {
	pos
	Callee Expr
	Args   []Expr
}

// Property is one `key: value` entry of an object literal. A nil Value marks
// the shorthand form `{ key }`, which looks `key` up in the current scope.
type Property struct {
	Key   string
	Value Expr
}

// ObjectLit is `{ k: v, shorthand, ... }` preserving source order.
type ObjectLit struct {
	pos
	Props []Property
}

// ArrayLit is `[ e, e, ... ]`.
type ArrayLit struct {
	pos
	Items []Expr
}

func (*NumberLit) exprNode()  {}
func (*StringLit) exprNode()  {}
func (*Ident) exprNode()      {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*AssignExpr) exprNode() {}
func (*MemberExpr) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*ObjectLit) exprNode()  {}
func (*ArrayLit) exprNode()   {}
