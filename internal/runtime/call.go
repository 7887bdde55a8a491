package runtime

import (
	"github.com/solscript/sol/internal/ast"
	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/source"
	"github.com/solscript/sol/internal/value"
)

// resolveType turns a syntactic TypeRef into a runtime Type descriptor,
// validating that structure names are actually declared. A nil ref (no
// explicit return type) denotes Nothing.
func (in *Interpreter) resolveType(ref *ast.TypeRef) (value.Type, error) {
	if ref == nil {
		return value.Nothing, nil
	}
	if ref.List != nil {
		elem, err := in.resolveType(ref.List)
		if err != nil {
			return value.Type{}, err
		}
		return value.ListOf(elem), nil
	}
	switch ref.Name {
	case "Number":
		return value.Number, nil
	case "String":
		return value.String, nil
	case "Boolean":
		return value.Boolean, nil
	case "Nothing":
		return value.Nothing, nil
	default:
		if _, ok := in.structures[ref.Name]; ok {
			return value.StructureOf(ref.Name), nil
		}
		return value.Type{}, diag.NewRuntimeError(source.Position{}, diag.ErrUndefinedName,
			"unknown type '%s'", ref.Name)
	}
}

// callFunction implements a user-defined function call: a call frame
// holds the bound arguments, a nested block frame holds the body's own
// variables, and the body's Return signal (or Nothing, if it ran to
// completion) becomes the call's value after a return-type check.
func (in *Interpreter) callFunction(fn *ast.FuncDecl, args []value.Value, callPos source.Position) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, diag.NewRuntimeError(callPos, diag.ErrTypeMismatch,
			"'%s' expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	callFrame := NewFrame(nil)
	for i, param := range fn.Params {
		want, err := in.resolveType(param.Type)
		if err != nil {
			return nil, err
		}
		if !args[i].Type().Equal(want) {
			return nil, diag.NewRuntimeError(callPos, diag.ErrTypeMismatch,
				"'%s' parameter '%s' expects %s, got %s", fn.Name, param.Name, want, args[i].Type())
		}
		callFrame.DefineArg(param.Name, args[i])
	}

	bodyFrame := NewFrame(callFrame)
	sig, err := in.execBlock(fn.Body, bodyFrame)
	if err != nil {
		return nil, err
	}

	var result value.Value = value.TheNothing
	if sig.kind == signalReturn {
		result = sig.value
	} else if sig.kind != signalNone {
		return nil, diag.NewRuntimeError(fn.Pos, diag.ErrEscapedSignal,
			"'%s': break/continue outside of a loop", fn.Name)
	}

	wantReturn, err := in.resolveType(fn.ReturnType)
	if err != nil {
		return nil, err
	}
	if !result.Type().Equal(wantReturn) {
		return nil, diag.NewRuntimeError(fn.Pos, diag.ErrTypeMismatch,
			"'%s' declared to return %s, but returned %s", fn.Name, wantReturn, result.Type())
	}
	return result, nil
}
