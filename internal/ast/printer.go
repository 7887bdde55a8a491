package ast

import (
	"fmt"
	"strings"
)

// Dump renders a parenthesized AST dump of the whole program, the basis
// for the `print-ast` CLI command. Unlike the per-node String() methods
// (used in diagnostics and kept terse), Dump recursively expands every
// block body, giving a full structural view of the tree. Dispatch is a
// type switch over the closed Decl/Stmt/Expr interfaces: tagged sum
// types plus exhaustive matching, in place of per-node visitor methods.
func Dump(p *Program) string {
	sb := &strings.Builder{}
	for _, d := range p.Decls {
		dumpDecl(sb, d, 0)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func dumpDecl(sb *strings.Builder, d Decl, depth int) {
	indent(sb, depth)
	switch n := d.(type) {
	case *ConstDecl:
		sb.WriteString("(constant " + n.Name + " " + dumpExprInline(n.Init) + ")")
	case *FuncDecl:
		ret := "Nothing"
		if n.ReturnType != nil {
			ret = n.ReturnType.String()
		}
		sb.WriteString(fmt.Sprintf("(function %s -> %s", n.Name, ret))
		for _, p := range n.Params {
			sb.WriteString(" (param " + p.Name + " " + p.Type.String() + ")")
		}
		sb.WriteByte('\n')
		dumpBlock(sb, n.Body, depth+1)
		indent(sb, depth)
		sb.WriteByte(')')
	case *StructureDecl:
		sb.WriteString("(structure " + n.Name)
		for _, f := range n.Fields {
			sb.WriteString(" (field " + f.Name + " " + f.Type.String() + ")")
		}
		sb.WriteByte(')')
	default:
		sb.WriteString(d.String())
	}
}

func dumpBlock(sb *strings.Builder, stmts []Stmt, depth int) {
	for _, s := range stmts {
		dumpStmt(sb, s, depth)
		sb.WriteByte('\n')
	}
}

func dumpStmt(sb *strings.Builder, s Stmt, depth int) {
	indent(sb, depth)
	switch n := s.(type) {
	case *VarDeclStmt:
		sb.WriteString(fmt.Sprintf("(variable %s %s)", n.Name, dumpExprInline(n.Expr)))
	case *AssignStmt:
		sb.WriteString(fmt.Sprintf("(assign %s %s)", n.Name, dumpExprInline(n.Expr)))
	case *BareStmt:
		sb.WriteString("(expr-stmt " + dumpExprInline(n.Expr) + ")")
	case *ReturnStmt:
		if n.Expr == nil {
			sb.WriteString("(return)")
		} else {
			sb.WriteString("(return " + dumpExprInline(n.Expr) + ")")
		}
	case *BreakStmt:
		sb.WriteString("(break)")
	case *ContinueStmt:
		sb.WriteString("(continue)")
	case *ConditionalChainStmt:
		sb.WriteString("(if " + dumpExprInline(n.If.Cond) + "\n")
		dumpBlock(sb, n.If.Block, depth+1)
		for _, ei := range n.ElseIfs {
			indent(sb, depth)
			sb.WriteString("(else-if " + dumpExprInline(ei.Cond) + "\n")
			dumpBlock(sb, ei.Block, depth+1)
			indent(sb, depth)
			sb.WriteByte(')')
			sb.WriteByte('\n')
		}
		if n.HasElse {
			indent(sb, depth)
			sb.WriteString("(else\n")
			dumpBlock(sb, n.Else, depth+1)
			indent(sb, depth)
			sb.WriteByte(')')
			sb.WriteByte('\n')
		}
		indent(sb, depth)
		sb.WriteByte(')')
	case *WhileStmt:
		sb.WriteString("(while " + dumpExprInline(n.Cond) + "\n")
		dumpBlock(sb, n.Block, depth+1)
		indent(sb, depth)
		sb.WriteByte(')')
	case *ForStmt:
		sb.WriteString(fmt.Sprintf("(for %s %s in %s\n", n.IndexName, n.ElementName, dumpExprInline(n.Iterable)))
		dumpBlock(sb, n.Block, depth+1)
		indent(sb, depth)
		sb.WriteByte(')')
	default:
		sb.WriteString(s.String())
	}
}

// dumpExprInline renders an expression in the same parenthesized form
// each node's String() already uses; expressions never need multi-line
// expansion since Sol has no block-bodied expressions.
func dumpExprInline(e Expr) string {
	if e == nil {
		return "()"
	}
	return e.String()
}
