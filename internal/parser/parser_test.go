package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solscript/sol/internal/ast"
	"github.com/solscript/sol/internal/lexer"
	"github.com/solscript/sol/internal/parser"
	"github.com/solscript/sol/internal/source"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	buf := source.New("t", src)
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	prog, err := parser.New(toks).Parse()
	require.NoError(t, err)
	return prog
}

func TestFactorIsLeftAssociative(t *testing.T) {
	prog := mustParse(t, `
		function main() {
			variable x = 6 / 3 / 2;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	decl := fn.Body[0].(*ast.VarDeclStmt)
	outer := decl.Expr.(*ast.BinaryExpr)
	require.Equal(t, "/", outer.Op.Lexeme)

	inner, ok := outer.Left.(*ast.BinaryExpr)
	require.True(t, ok, "left operand of the outer '/' must be the inner '6/3', not a right-nested factor")
	require.Equal(t, "/", inner.Op.Lexeme)
	require.Equal(t, float64(6), inner.Left.(*ast.NumberLit).Value)
	require.Equal(t, float64(3), inner.Right.(*ast.NumberLit).Value)
	require.Equal(t, float64(2), outer.Right.(*ast.NumberLit).Value)
}

func TestConstDecl(t *testing.T) {
	prog := mustParse(t, `constant limit = 10;`)
	decl := prog.Decls[0].(*ast.ConstDecl)
	require.Equal(t, "limit", decl.Name)
	require.Equal(t, float64(10), decl.Init.(*ast.NumberLit).Value)
}

func TestStructureDecl(t *testing.T) {
	prog := mustParse(t, `
		structure Point {
			x Number;
			y Number;
		}
	`)
	decl := prog.Decls[0].(*ast.StructureDecl)
	require.Equal(t, "Point", decl.Name)
	require.Len(t, decl.Fields, 2)
	require.Equal(t, "x", decl.Fields[0].Name)
	require.Equal(t, "Number", decl.Fields[0].Type.String())
}

func TestFunctionParamsTrailingCommaAndReturnType(t *testing.T) {
	prog := mustParse(t, `
		function add(a Number, b Number,) -> Number {
			return a + b;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "Number", fn.ReturnType.String())
}

func TestListLiteralWithTrailingComma(t *testing.T) {
	prog := mustParse(t, `
		function main() {
			variable xs = Number[1, 2, 3,];
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	decl := fn.Body[0].(*ast.VarDeclStmt)
	lit := decl.Expr.(*ast.ListLit)
	require.Len(t, lit.Elems, 3)
}

func TestEmptyListLiteral(t *testing.T) {
	prog := mustParse(t, `
		function main() {
			variable xs = Number[];
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	decl := fn.Body[0].(*ast.VarDeclStmt)
	lit := decl.Expr.(*ast.ListLit)
	require.Equal(t, "Number", lit.ElemType.String())
	require.Empty(t, lit.Elems)
}

func TestStructLiteral(t *testing.T) {
	prog := mustParse(t, `
		function main() {
			variable p = Point{x: 1, y: 2};
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	decl := fn.Body[0].(*ast.VarDeclStmt)
	lit := decl.Expr.(*ast.StructLit)
	require.Equal(t, "Point", lit.TypeName)
	require.Len(t, lit.Fields, 2)
}

func TestTypeCast(t *testing.T) {
	prog := mustParse(t, `
		function main() {
			variable s = String(42);
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	decl := fn.Body[0].(*ast.VarDeclStmt)
	cast := decl.Expr.(*ast.TypeCast)
	require.Equal(t, "String", cast.Ref.Name)
}

func TestConditionalChainWithElseIfsAndElse(t *testing.T) {
	prog := mustParse(t, `
		function classify(n Number) -> String {
			if n == 1 {
				return "one";
			} else if n == 2 {
				return "two";
			} else if n == 3 {
				return "three";
			} else {
				return "many";
			}
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	chain := fn.Body[0].(*ast.ConditionalChainStmt)
	require.Len(t, chain.ElseIfs, 2)
	require.True(t, chain.HasElse)
}

func TestPostfixChainComposesCallIndexAndField(t *testing.T) {
	prog := mustParse(t, `
		function main() {
			variable v = makeList()[0].x;
		}
	`)
	fn := prog.Decls[0].(*ast.FuncDecl)
	decl := fn.Body[0].(*ast.VarDeclStmt)
	field := decl.Expr.(*ast.FieldAccessExpr)
	require.Equal(t, "x", field.Field)
	sub := field.Parent.(*ast.SubExpr)
	require.Equal(t, float64(0), sub.Index.(*ast.NumberLit).Value)
	call := sub.Target.(*ast.CallExpr)
	require.Equal(t, "makeList", call.Callee)
}

func TestUnexpectedTokenIsParseError(t *testing.T) {
	buf := source.New("t", `function main() { variable x = ; }`)
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	_, err = parser.New(toks).Parse()
	require.Error(t, err)
	require.Contains(t, err.Error(), "ParseError")
}

func TestEmptyProgramParsesToNoDeclarations(t *testing.T) {
	prog := mustParse(t, "")
	require.Empty(t, prog.Decls)
}
