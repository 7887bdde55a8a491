package runtime

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"

	"github.com/solscript/sol/internal/diag"
	"github.com/solscript/sol/internal/source"
	"github.com/solscript/sol/internal/value"
)

// builtinPrint writes a single String argument to Stdout with a trailing
// newline and no surrounding quotes.
func (in *Interpreter) builtinPrint(pos source.Position, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, diag.NewRuntimeError(pos, diag.ErrTypeMismatch, "print expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(value.Str)
	if !ok {
		return nil, diag.NewRuntimeError(pos, diag.ErrTypeMismatch, "print expects a String, got %s", args[0].Type())
	}
	fmt.Fprintln(in.Stdout, string(s))
	return value.TheNothing, nil
}

// builtinRun spawns the command named by its single List(String) argument,
// with args[0] as the executable and the rest as its arguments. Output is
// streamed line by line to the interpreter's own Stdout/Stderr as the
// subprocess produces it; a nonzero exit becomes a RuntimeError.
func (in *Interpreter) builtinRun(pos source.Position, args []value.Value) (value.Value, error) {
	if len(args) != 1 {
		return nil, diag.NewRuntimeError(pos, diag.ErrTypeMismatch, "run expects 1 argument, got %d", len(args))
	}
	list, ok := args[0].(*value.List)
	if !ok || list.ElemType.Kind != value.KindString {
		return nil, diag.NewRuntimeError(pos, diag.ErrTypeMismatch, "run expects a String[] argument")
	}
	if len(list.Items) == 0 {
		return nil, diag.NewRuntimeError(pos, diag.ErrTypeMismatch, "run requires at least an executable name")
	}

	argv := make([]string, len(list.Items))
	for i, item := range list.Items {
		argv[i] = string(item.(value.Str))
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = in.WorkDir
	cmd.Env = in.Environ

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, diag.NewRuntimeError(pos, diag.ErrSubprocess, "run: %s", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, diag.NewRuntimeError(pos, diag.ErrSubprocess, "run: %s", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, diag.NewRuntimeError(pos, diag.ErrSubprocess, "run: %s", err)
	}

	done := make(chan struct{}, 2)
	go streamLines(in.Stdout, stdout, done)
	go streamLines(in.Stderr, stderr, done)
	<-done
	<-done

	if err := cmd.Wait(); err != nil {
		return nil, diag.NewRuntimeError(pos, diag.ErrSubprocess, "run: %s exited with error: %s", argv[0], err)
	}
	return value.TheNothing, nil
}

func streamLines(dst io.Writer, src io.Reader, done chan<- struct{}) {
	scanner := bufio.NewScanner(src)
	for scanner.Scan() {
		fmt.Fprintln(dst, scanner.Text())
	}
	done <- struct{}{}
}
