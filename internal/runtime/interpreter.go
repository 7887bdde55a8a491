package runtime

import (
	"io"
	"os"

	"github.com/solscript/sol/internal/ast"
	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/source"
	"github.com/solscript/sol/internal/value"
)

// builtinNames reserves the built-in identifiers so user declarations
// cannot shadow them.
var builtinNames = map[string]bool{
	"print": true,
	"run":   true,
}

// Interpreter is one evaluator instance: it owns the global declaration
// table, the process working directory/environment the `run` built-in
// consumes, and the I/O sinks print/run write through. No state is
// shared across instances.
type Interpreter struct {
	buf *source.Buffer

	functions  map[string]*ast.FuncDecl
	structures map[string]*ast.StructureDecl
	constants  map[string]*ast.ConstDecl
	constVals  map[string]value.Value // memoized const evaluations

	Stdout  io.Writer
	Stderr  io.Writer
	WorkDir string
	Environ []string
}

// New creates an Interpreter over the parsed program's source buffer,
// defaulting its I/O sinks and environment to the host process's.
func New(buf *source.Buffer) *Interpreter {
	wd, _ := os.Getwd()
	return &Interpreter{
		buf:        buf,
		functions:  map[string]*ast.FuncDecl{},
		structures: map[string]*ast.StructureDecl{},
		constants:  map[string]*ast.ConstDecl{},
		constVals:  map[string]value.Value{},
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
		WorkDir:    wd,
		Environ:    os.Environ(),
	}
}

// Interpret registers every top-level declaration, then calls `main`
// with no arguments. Absence of `main` is a runtime error.
func (in *Interpreter) Interpret(prog *ast.Program) error {
	if err := in.register(prog); err != nil {
		return err
	}

	main, ok := in.functions["main"]
	if !ok {
		return diag.NewRuntimeError(source.Position{}, diag.ErrNoMain, "no 'main' function declared")
	}
	if len(main.Params) != 0 {
		return diag.NewRuntimeError(main.Pos, diag.ErrTypeMismatch, "'main' must take no parameters")
	}

	_, err := in.callFunction(main, nil, source.Position{})
	return err
}

// register walks top-level declarations, checking global-name uniqueness
// across functions, structures, constants, and built-ins, then files
// each into its table.
func (in *Interpreter) register(prog *ast.Program) error {
	seen := map[string]bool{}
	for name := range builtinNames {
		seen[name] = true
	}

	for _, d := range prog.Decls {
		var name string
		var pos source.Position
		switch n := d.(type) {
		case *ast.FuncDecl:
			name, pos = n.Name, n.Pos
		case *ast.StructureDecl:
			name = n.Name
		case *ast.ConstDecl:
			name = n.Name
		}

		if seen[name] {
			return diag.NewRuntimeError(pos, diag.ErrDuplicateName, "'%s' is already declared", name)
		}
		seen[name] = true

		switch n := d.(type) {
		case *ast.FuncDecl:
			in.functions[n.Name] = n
		case *ast.StructureDecl:
			in.structures[n.Name] = n
		case *ast.ConstDecl:
			in.constants[n.Name] = n
		}
	}
	return nil
}

// resolveConst evaluates (and memoizes) a top-level constant's
// initializer on first use.
func (in *Interpreter) resolveConst(name string) (value.Value, error) {
	if v, ok := in.constVals[name]; ok {
		return v, nil
	}
	decl, ok := in.constants[name]
	if !ok {
		return nil, diag.NewRuntimeError(source.Position{}, diag.ErrUndefinedName, "undefined name '%s'", name)
	}
	// Top-level constants have no enclosing frame; identifiers in their
	// initializers resolve only to other top-level constants.
	v, err := in.evalExpr(decl.Init, nil)
	if err != nil {
		return nil, err
	}
	in.constVals[name] = v
	return v, nil
}
