package runtime

import (
	"github.com/solscript/sol/internal/ast"
	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/value"
)

// execBlock runs a statement list in frame, stopping and propagating the
// first non-None signal a statement produces.
func (in *Interpreter) execBlock(stmts []ast.Stmt, frame *Frame) (signal, error) {
	for _, stmt := range stmts {
		sig, err := in.execStmt(stmt, frame)
		if err != nil {
			return noSignal, err
		}
		if sig.kind != signalNone {
			return sig, nil
		}
	}
	return noSignal, nil
}

func (in *Interpreter) execStmt(s ast.Stmt, frame *Frame) (signal, error) {
	switch n := s.(type) {
	case *ast.BareStmt:
		_, err := in.evalExpr(n.Expr, frame)
		return noSignal, err

	case *ast.VarDeclStmt:
		v, err := in.evalExpr(n.Expr, frame)
		if err != nil {
			return noSignal, err
		}
		return noSignal, frame.DeclareVar(n.At, n.Name, v)

	case *ast.AssignStmt:
		v, err := in.evalExpr(n.Expr, frame)
		if err != nil {
			return noSignal, err
		}
		return noSignal, frame.Reassign(n.At, n.Name, v)

	case *ast.ReturnStmt:
		if n.Expr == nil {
			return signal{kind: signalReturn, value: value.TheNothing}, nil
		}
		v, err := in.evalExpr(n.Expr, frame)
		if err != nil {
			return noSignal, err
		}
		return signal{kind: signalReturn, value: v}, nil

	case *ast.BreakStmt:
		return signal{kind: signalBreak}, nil

	case *ast.ContinueStmt:
		return signal{kind: signalContinue}, nil

	case *ast.ConditionalChainStmt:
		return in.execConditionalChain(n, frame)

	case *ast.WhileStmt:
		return in.execWhile(n, frame)

	case *ast.ForStmt:
		return in.execFor(n, frame)

	default:
		return noSignal, diag.NewRuntimeError(s.Pos(), diag.ErrEscapedSignal, "unhandled statement kind")
	}
}

// execConditionalChain evaluates the `if` condition, then each `else if`
// in order, executing exactly one matching branch in a fresh block scope
// — subsequent conditions are never evaluated once one has matched.
func (in *Interpreter) execConditionalChain(n *ast.ConditionalChainStmt, frame *Frame) (signal, error) {
	ok, err := in.evalBoolean(n.If.Cond, frame)
	if err != nil {
		return noSignal, err
	}
	if ok {
		return in.execBlock(n.If.Block, NewFrame(frame))
	}

	for _, ei := range n.ElseIfs {
		ok, err := in.evalBoolean(ei.Cond, frame)
		if err != nil {
			return noSignal, err
		}
		if ok {
			return in.execBlock(ei.Block, NewFrame(frame))
		}
	}

	if n.HasElse {
		return in.execBlock(n.Else, NewFrame(frame))
	}
	return noSignal, nil
}

// execWhile runs a while loop. It absorbs Break (terminating the loop)
// and Continue (skipping to the next condition check); Return propagates
// outward unchanged.
func (in *Interpreter) execWhile(n *ast.WhileStmt, frame *Frame) (signal, error) {
	for {
		ok, err := in.evalBoolean(n.Cond, frame)
		if err != nil {
			return noSignal, err
		}
		if !ok {
			return noSignal, nil
		}

		sig, err := in.execBlock(n.Block, NewFrame(frame))
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
}

// execFor runs a for loop. The iterable must be a List; each iteration
// gets a fresh block scope binding the index and element.
func (in *Interpreter) execFor(n *ast.ForStmt, frame *Frame) (signal, error) {
	iterVal, err := in.evalExpr(n.Iterable, frame)
	if err != nil {
		return noSignal, err
	}
	list, ok := iterVal.(*value.List)
	if !ok {
		return noSignal, diag.NewRuntimeError(n.At, diag.ErrTypeMismatch,
			"for loop requires a List, got %s", iterVal.Type())
	}

	for i, item := range list.Items {
		iterFrame := NewFrame(frame)
		iterFrame.DefineConst(n.IndexName, value.Num(i))
		iterFrame.DefineConst(n.ElementName, item)

		sig, err := in.execBlock(n.Block, iterFrame)
		if err != nil {
			return noSignal, err
		}
		switch sig.kind {
		case signalBreak:
			return noSignal, nil
		case signalReturn:
			return sig, nil
		}
	}
	return noSignal, nil
}

func (in *Interpreter) evalBoolean(e ast.Expr, frame *Frame) (bool, error) {
	v, err := in.evalExpr(e, frame)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, diag.NewRuntimeError(e.Pos(), diag.ErrTypeMismatch,
			"condition must be a Boolean, got %s", v.Type())
	}
	return bool(b), nil
}
