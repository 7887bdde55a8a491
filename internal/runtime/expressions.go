package runtime

import (
	"math"

	"github.com/solscript/sol/internal/ast"
	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/token"
	"github.com/solscript/sol/internal/value"
)

// evalExpr dispatches on the AST node's dynamic type: a type switch
// stands in for a per-node polymorphic Evaluate method. A
// nil frame means "top-level constant initializer context": identifiers
// there resolve only to other top-level constants. Other expression
// kinds (calls, casts, list and structure literals) are not rejected in
// that context.
func (in *Interpreter) evalExpr(e ast.Expr, frame *Frame) (value.Value, error) {
	switch n := e.(type) {
	case *ast.NumberLit:
		return value.Num(n.Value), nil
	case *ast.StringLit:
		return value.Str(n.Value), nil
	case *ast.BoolLit:
		return value.Bool(n.Value), nil
	case *ast.NothingExpr:
		return value.TheNothing, nil

	case *ast.ListLit:
		return in.evalListLit(n, frame)
	case *ast.StructLit:
		return in.evalStructLit(n, frame)

	case *ast.IdentifierRef:
		return in.evalIdentifier(n, frame)

	case *ast.TypeRefExpr:
		return nil, diag.NewRuntimeError(n.At, diag.ErrTypeMismatch, "a type reference is not a value")

	case *ast.CallExpr:
		return in.evalCall(n, frame)

	case *ast.BinaryExpr:
		return in.evalBinary(n, frame)

	case *ast.UnaryExpr:
		return in.evalUnary(n, frame)

	case *ast.TypeCast:
		return in.evalCast(n, frame)

	case *ast.SubExpr:
		return in.evalSub(n, frame)

	case *ast.FieldAccessExpr:
		return in.evalFieldAccess(n, frame)

	default:
		return nil, diag.NewRuntimeError(e.Pos(), diag.ErrTypeMismatch, "unhandled expression kind")
	}
}

func (in *Interpreter) evalIdentifier(n *ast.IdentifierRef, frame *Frame) (value.Value, error) {
	if frame != nil {
		if v, err := frame.Get(n.At, n.Name); err == nil {
			return v, nil
		}
	}
	if _, ok := in.constants[n.Name]; ok {
		return in.resolveConst(n.Name)
	}
	return nil, diag.NewRuntimeError(n.At, diag.ErrUndefinedName, "undefined name '%s'", n.Name)
}

func (in *Interpreter) evalListLit(n *ast.ListLit, frame *Frame) (value.Value, error) {
	elemType, err := in.resolveType(n.ElemType)
	if err != nil {
		return nil, err
	}
	items := make([]value.Value, len(n.Elems))
	for i, elemExpr := range n.Elems {
		v, err := in.evalExpr(elemExpr, frame)
		if err != nil {
			return nil, err
		}
		if !v.Type().Equal(elemType) {
			return nil, diag.NewRuntimeError(elemExpr.Pos(), diag.ErrTypeMismatch,
				"list element %d: expected %s, got %s", i, elemType, v.Type())
		}
		items[i] = v
	}
	return &value.List{ElemType: elemType, Items: items}, nil
}

func (in *Interpreter) evalStructLit(n *ast.StructLit, frame *Frame) (value.Value, error) {
	decl, ok := in.structures[n.TypeName]
	if !ok {
		return nil, diag.NewRuntimeError(n.At, diag.ErrUndefinedName, "undefined structure '%s'", n.TypeName)
	}

	fields := make(map[string]value.Value, len(n.Fields))
	for _, f := range n.Fields {
		if _, dup := fields[f.Name]; dup {
			return nil, diag.NewRuntimeError(n.At, diag.ErrDuplicateName,
				"duplicate field '%s' in %s literal", f.Name, n.TypeName)
		}
		v, err := in.evalExpr(f.Expr, frame)
		if err != nil {
			return nil, err
		}
		fields[f.Name] = v
	}

	if len(fields) != len(decl.Fields) {
		return nil, diag.NewRuntimeError(n.At, diag.ErrTypeMismatch,
			"%s literal must initialize exactly %d field(s), got %d", n.TypeName, len(decl.Fields), len(fields))
	}

	order := make([]string, len(decl.Fields))
	for i, declField := range decl.Fields {
		order[i] = declField.Name
		v, present := fields[declField.Name]
		if !present {
			return nil, diag.NewRuntimeError(n.At, diag.ErrFieldNotFound,
				"%s literal is missing field '%s'", n.TypeName, declField.Name)
		}
		want, err := in.resolveType(declField.Type)
		if err != nil {
			return nil, err
		}
		if !v.Type().Equal(want) {
			return nil, diag.NewRuntimeError(n.At, diag.ErrTypeMismatch,
				"%s.%s expects %s, got %s", n.TypeName, declField.Name, want, v.Type())
		}
	}

	return &value.Structure{Name: n.TypeName, FieldOrder: order, Fields: fields}, nil
}

func (in *Interpreter) evalCall(n *ast.CallExpr, frame *Frame) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.evalExpr(a, frame)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	switch n.Callee {
	case "print":
		return in.builtinPrint(n.At, args)
	case "run":
		return in.builtinRun(n.At, args)
	}

	fn, ok := in.functions[n.Callee]
	if !ok {
		return nil, diag.NewRuntimeError(n.At, diag.ErrUndefinedName, "undefined function '%s'", n.Callee)
	}
	return in.callFunction(fn, args, n.At)
}

func (in *Interpreter) evalBinary(n *ast.BinaryExpr, frame *Frame) (value.Value, error) {
	left, err := in.evalExpr(n.Left, frame)
	if err != nil {
		return nil, err
	}
	right, err := in.evalExpr(n.Right, frame)
	if err != nil {
		return nil, err
	}

	switch n.Op.Kind {
	case token.EQUAL_EQUAL, token.BANG_EQUAL:
		if left.Type().Kind == value.KindNothing || right.Type().Kind == value.KindNothing {
			return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrNothingRead, "Nothing cannot be compared")
		}
		if !left.Type().Equal(right.Type()) {
			return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch,
				"operands to '%s' must have the same type, got %s and %s", n.Op.Lexeme, left.Type(), right.Type())
		}
		eq := value.Equal(left, right)
		if n.Op.Kind == token.BANG_EQUAL {
			eq = !eq
		}
		return value.Bool(eq), nil
	}

	if !left.Type().Equal(right.Type()) {
		return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch,
			"operands to '%s' must have the same type, got %s and %s", n.Op.Lexeme, left.Type(), right.Type())
	}

	switch n.Op.Kind {
	case token.PLUS:
		if ls, ok := left.(value.Str); ok {
			return ls + right.(value.Str), nil
		}
		if ln, ok := left.(value.Num); ok {
			return ln + right.(value.Num), nil
		}
		return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch,
			"'+' requires two Numbers or two Strings, got %s", left.Type())

	case token.MINUS, token.STAR, token.SLASH, token.PERCENT:
		a, aok := left.(value.Num)
		b, bok := right.(value.Num)
		if !aok || !bok {
			return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch,
				"'%s' requires two Numbers, got %s", n.Op.Lexeme, left.Type())
		}
		switch n.Op.Kind {
		case token.MINUS:
			return a - b, nil
		case token.STAR:
			return a * b, nil
		case token.SLASH:
			return a / b, nil
		default: // PERCENT
			return value.Num(math.Mod(float64(a), float64(b))), nil
		}

	case token.LESS, token.LESS_EQUAL, token.GREATER, token.GREATER_EQUAL:
		a, aok := left.(value.Num)
		b, bok := right.(value.Num)
		if !aok || !bok {
			return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch,
				"'%s' requires two Numbers, got %s", n.Op.Lexeme, left.Type())
		}
		switch n.Op.Kind {
		case token.LESS:
			return value.Bool(a < b), nil
		case token.LESS_EQUAL:
			return value.Bool(a <= b), nil
		case token.GREATER:
			return value.Bool(a > b), nil
		default:
			return value.Bool(a >= b), nil
		}
	}

	return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch, "unhandled operator '%s'", n.Op.Lexeme)
}

func (in *Interpreter) evalUnary(n *ast.UnaryExpr, frame *Frame) (value.Value, error) {
	operand, err := in.evalExpr(n.Operand, frame)
	if err != nil {
		return nil, err
	}
	switch n.Op.Kind {
	case token.MINUS:
		num, ok := operand.(value.Num)
		if !ok {
			return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch, "unary '-' requires a Number, got %s", operand.Type())
		}
		return -num, nil
	case token.BANG:
		b, ok := operand.(value.Bool)
		if !ok {
			return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch, "unary '!' requires a Boolean, got %s", operand.Type())
		}
		return !b, nil
	default:
		return nil, diag.NewRuntimeError(n.Op.Position, diag.ErrTypeMismatch, "unhandled unary operator '%s'", n.Op.Lexeme)
	}
}

// evalCast implements Sol's only defined cast, String(x). String→String
// is a no-op; Number→String uses Number's formatting rule; every other
// source type is unimplemented.
func (in *Interpreter) evalCast(n *ast.TypeCast, frame *Frame) (value.Value, error) {
	v, err := in.evalExpr(n.Expr, frame)
	if err != nil {
		return nil, err
	}
	if n.Ref.Name != "String" || n.Ref.List != nil {
		return nil, diag.NewRuntimeError(n.At, diag.ErrCastNotSupported, "cast to %s is not supported", n.Ref)
	}
	switch vv := v.(type) {
	case value.Str:
		return vv, nil
	case value.Num:
		return value.Str(vv.String()), nil
	default:
		return nil, diag.NewRuntimeError(n.At, diag.ErrCastNotSupported, "cannot cast %s to String", v.Type())
	}
}

func (in *Interpreter) evalSub(n *ast.SubExpr, frame *Frame) (value.Value, error) {
	target, err := in.evalExpr(n.Target, frame)
	if err != nil {
		return nil, err
	}
	list, ok := target.(*value.List)
	if !ok {
		return nil, diag.NewRuntimeError(n.At, diag.ErrTypeMismatch, "subscript target must be a List, got %s", target.Type())
	}
	idxVal, err := in.evalExpr(n.Index, frame)
	if err != nil {
		return nil, err
	}
	idxNum, ok := idxVal.(value.Num)
	if !ok {
		return nil, diag.NewRuntimeError(n.At, diag.ErrTypeMismatch, "subscript index must be a Number, got %s", idxVal.Type())
	}
	idx := int(math.Floor(float64(idxNum)))
	if idx < 0 || idx >= len(list.Items) {
		return nil, diag.NewRuntimeError(n.At, diag.ErrIndexOutOfRange, "index %d out of range for list of length %d", idx, len(list.Items))
	}
	return list.Items[idx], nil
}

func (in *Interpreter) evalFieldAccess(n *ast.FieldAccessExpr, frame *Frame) (value.Value, error) {
	parent, err := in.evalExpr(n.Parent, frame)
	if err != nil {
		return nil, err
	}
	s, ok := parent.(*value.Structure)
	if !ok {
		return nil, diag.NewRuntimeError(n.At, diag.ErrTypeMismatch, "field access target must be a Structure, got %s", parent.Type())
	}
	v, ok := s.Fields[n.Field]
	if !ok {
		return nil, diag.NewRuntimeError(n.At, diag.ErrFieldNotFound, "%s has no field '%s'", s.Name, n.Field)
	}
	return v, nil
}
