// Package ast defines Sol's AST: three parallel sum families — Decl,
// Stmt, Expr — each a small closed interface implemented by tagged
// structs carrying a String method: one file, one struct per node,
// print-only String methods, no heap-cyclic visitor.
package ast

import (
	"strconv"
	"strings"

	"github.com/solscript/sol/internal/source"
	"github.com/solscript/sol/internal/token"
)

// Program is the parse tree root: an ordered list of top-level decls.
type Program struct {
	Decls []Decl
}

// Decl is a top-level declaration.
type Decl interface {
	declNode()
	String() string
}

// Stmt is a statement.
type Stmt interface {
	stmtNode()
	String() string
	Pos() source.Position
}

// Expr is an expression.
type Expr interface {
	exprNode()
	String() string
	Pos() source.Position
}

// TypeRef is a type expression: either a bare type name or `Elem[]`.
type TypeRef struct {
	Name string   // "" if List != nil
	List *TypeRef // set iff this is a ListTypeRef
}

func (t *TypeRef) String() string {
	if t.List != nil {
		return t.List.String() + "[]"
	}
	return t.Name
}

// Equal reports whether two type refs denote the same syntactic type.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if (t.List == nil) != (o.List == nil) {
		return false
	}
	if t.List != nil {
		return t.List.Equal(o.List)
	}
	return t.Name == o.Name
}

// ---- Declarations ----

type Param struct {
	Name string
	Type *TypeRef
}

type ConstDecl struct {
	Name string
	Init Expr
}

func (*ConstDecl) declNode() {}
func (d *ConstDecl) String() string {
	return "constant " + d.Name + " = " + d.Init.String() + ";"
}

type FuncDecl struct {
	Name       string
	Params     []Param
	ReturnType *TypeRef // nil => Nothing
	Body       []Stmt
	Pos        source.Position
}

func (*FuncDecl) declNode() {}
func (d *FuncDecl) String() string {
	sb := strings.Builder{}
	sb.WriteString("function " + d.Name + "(")
	for i, p := range d.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name + " " + p.Type.String())
	}
	sb.WriteString(")")
	if d.ReturnType != nil {
		sb.WriteString(" -> " + d.ReturnType.String())
	}
	sb.WriteString(" {\n")
	for _, s := range d.Body {
		sb.WriteString("  " + s.String() + "\n")
	}
	sb.WriteString("}")
	return sb.String()
}

type StructureField struct {
	Name string
	Type *TypeRef
}

type StructureDecl struct {
	Name   string
	Fields []StructureField
}

func (*StructureDecl) declNode() {}
func (d *StructureDecl) String() string {
	sb := strings.Builder{}
	sb.WriteString("structure " + d.Name + " {\n")
	for _, f := range d.Fields {
		sb.WriteString("  " + f.Name + " " + f.Type.String() + ";\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// ---- Statements ----

type VarDeclStmt struct {
	Name string
	Expr Expr
	At   source.Position
}

func (*VarDeclStmt) stmtNode()              {}
func (s *VarDeclStmt) Pos() source.Position { return s.At }
func (s *VarDeclStmt) String() string {
	return "variable " + s.Name + " = " + s.Expr.String() + ";"
}

type AssignStmt struct {
	Name string
	Expr Expr
	At   source.Position
}

func (*AssignStmt) stmtNode()             {}
func (s *AssignStmt) Pos() source.Position { return s.At }
func (s *AssignStmt) String() string       { return s.Name + " = " + s.Expr.String() + ";" }

type BareStmt struct {
	Expr Expr
	At   source.Position
}

func (*BareStmt) stmtNode()             {}
func (s *BareStmt) Pos() source.Position { return s.At }
func (s *BareStmt) String() string       { return s.Expr.String() + ";" }

type ReturnStmt struct {
	Expr Expr // nil => Nothing
	At   source.Position
}

func (*ReturnStmt) stmtNode()             {}
func (s *ReturnStmt) Pos() source.Position { return s.At }
func (s *ReturnStmt) String() string {
	if s.Expr == nil {
		return "return;"
	}
	return "return " + s.Expr.String() + ";"
}

type BreakStmt struct{ At source.Position }

func (*BreakStmt) stmtNode()             {}
func (s *BreakStmt) Pos() source.Position { return s.At }
func (s *BreakStmt) String() string       { return "break;" }

type ContinueStmt struct{ At source.Position }

func (*ContinueStmt) stmtNode()             {}
func (s *ContinueStmt) Pos() source.Position { return s.At }
func (s *ContinueStmt) String() string       { return "continue;" }

type IfBranch struct {
	Cond  Expr
	Block []Stmt
}

// ConditionalChainStmt models if / else-if* / else?.
type ConditionalChainStmt struct {
	If       IfBranch
	ElseIfs  []IfBranch
	Else     []Stmt // nil if absent
	HasElse  bool
	At       source.Position
}

func (*ConditionalChainStmt) stmtNode()             {}
func (s *ConditionalChainStmt) Pos() source.Position { return s.At }
func (s *ConditionalChainStmt) String() string {
	sb := strings.Builder{}
	sb.WriteString("if " + s.If.Cond.String() + " { ... }")
	for _, ei := range s.ElseIfs {
		sb.WriteString(" else if " + ei.Cond.String() + " { ... }")
	}
	if s.HasElse {
		sb.WriteString(" else { ... }")
	}
	return sb.String()
}

type WhileStmt struct {
	Cond  Expr
	Block []Stmt
	At    source.Position
}

func (*WhileStmt) stmtNode()             {}
func (s *WhileStmt) Pos() source.Position { return s.At }
func (s *WhileStmt) String() string       { return "while " + s.Cond.String() + " { ... }" }

type ForStmt struct {
	IndexName   string
	ElementName string
	Iterable    Expr
	Block       []Stmt
	At          source.Position
}

func (*ForStmt) stmtNode()             {}
func (s *ForStmt) Pos() source.Position { return s.At }
func (s *ForStmt) String() string {
	return "for " + s.IndexName + ", " + s.ElementName + " in " + s.Iterable.String() + " { ... }"
}

// ---- Expressions ----

type NumberLit struct {
	Value float64
	At    source.Position
}

func (*NumberLit) exprNode()             {}
func (e *NumberLit) Pos() source.Position { return e.At }
func (e *NumberLit) String() string       { return strconv.FormatFloat(e.Value, 'g', -1, 64) }

type StringLit struct {
	Value string
	At    source.Position
}

func (*StringLit) exprNode()             {}
func (e *StringLit) Pos() source.Position { return e.At }
func (e *StringLit) String() string       { return `"` + e.Value + `"` }

type BoolLit struct {
	Value bool
	At    source.Position
}

func (*BoolLit) exprNode()             {}
func (e *BoolLit) Pos() source.Position { return e.At }
func (e *BoolLit) String() string {
	if e.Value {
		return "true"
	}
	return "false"
}

// ListLit is a list literal `TypeRef[elem, ...]`.
type ListLit struct {
	ElemType *TypeRef
	Elems    []Expr
	At       source.Position
}

func (*ListLit) exprNode()             {}
func (e *ListLit) Pos() source.Position { return e.At }
func (e *ListLit) String() string {
	parts := make([]string, len(e.Elems))
	for i, el := range e.Elems {
		parts[i] = el.String()
	}
	return e.ElemType.String() + "[" + strings.Join(parts, ", ") + "]"
}

// StructFieldInit is one `name: expr` entry in a structure literal.
type StructFieldInit struct {
	Name string
	Expr Expr
}

// StructLit is a structure literal `TypeName{field: expr, ...}`.
type StructLit struct {
	TypeName string
	Fields   []StructFieldInit
	At       source.Position
}

func (*StructLit) exprNode()             {}
func (e *StructLit) Pos() source.Position { return e.At }
func (e *StructLit) String() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Name + ": " + f.Expr.String()
	}
	return e.TypeName + "{" + strings.Join(parts, ", ") + "}"
}

type IdentifierRef struct {
	Name string
	At   source.Position
}

func (*IdentifierRef) exprNode()             {}
func (e *IdentifierRef) Pos() source.Position { return e.At }
func (e *IdentifierRef) String() string       { return e.Name }

// TypeRefExpr is a bare type reference used as a value-level expression
// (e.g. the callee position of a cast with no call parens is invalid, but
// a bare `Type` expression node exists in the grammar's `primary`).
type TypeRefExpr struct {
	Ref *TypeRef
	At  source.Position
}

func (*TypeRefExpr) exprNode()             {}
func (e *TypeRefExpr) Pos() source.Position { return e.At }
func (e *TypeRefExpr) String() string       { return e.Ref.String() }

type CallExpr struct {
	Callee string
	Args   []Expr
	At     source.Position
}

func (*CallExpr) exprNode()             {}
func (e *CallExpr) Pos() source.Position { return e.At }
func (e *CallExpr) String() string {
	parts := make([]string, len(e.Args))
	for i, a := range e.Args {
		parts[i] = a.String()
	}
	return e.Callee + "(" + strings.Join(parts, ", ") + ")"
}

type BinaryExpr struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

func (*BinaryExpr) exprNode()             {}
func (e *BinaryExpr) Pos() source.Position { return e.Op.Position }
func (e *BinaryExpr) String() string {
	return "(" + e.Op.Lexeme + " " + e.Left.String() + " " + e.Right.String() + ")"
}

type UnaryExpr struct {
	Op      token.Token
	Operand Expr
}

func (*UnaryExpr) exprNode()             {}
func (e *UnaryExpr) Pos() source.Position { return e.Op.Position }
func (e *UnaryExpr) String() string       { return "(" + e.Op.Lexeme + " " + e.Operand.String() + ")" }

// TypeCast is `Type(expr)`.
type TypeCast struct {
	Ref  *TypeRef
	Expr Expr
	At   source.Position
}

func (*TypeCast) exprNode()             {}
func (e *TypeCast) Pos() source.Position { return e.At }
func (e *TypeCast) String() string       { return e.Ref.String() + "(" + e.Expr.String() + ")" }

// SubExpr is `target[index]`.
type SubExpr struct {
	Target Expr
	Index  Expr
	At     source.Position
}

func (*SubExpr) exprNode()             {}
func (e *SubExpr) Pos() source.Position { return e.At }
func (e *SubExpr) String() string       { return e.Target.String() + "[" + e.Index.String() + "]" }

// FieldAccessExpr is `parent.field`.
type FieldAccessExpr struct {
	Parent Expr
	Field  string
	At     source.Position
}

func (*FieldAccessExpr) exprNode()             {}
func (e *FieldAccessExpr) Pos() source.Position { return e.At }
func (e *FieldAccessExpr) String() string       { return e.Parent.String() + "." + e.Field }

// NothingExpr is the synthetic placeholder for "no value".
type NothingExpr struct{ At source.Position }

func (*NothingExpr) exprNode()             {}
func (e *NothingExpr) Pos() source.Position { return e.At }
func (e *NothingExpr) String() string       { return "nothing" }
