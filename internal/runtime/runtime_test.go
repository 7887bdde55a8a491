package runtime_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solscript/sol/internal/lexer"
	"github.com/solscript/sol/internal/parser"
	"github.com/solscript/sol/internal/runtime"
	"github.com/solscript/sol/internal/source"
)

func run(t *testing.T, src string) (stdout string, err error) {
	t.Helper()
	buf := source.New("t", src)
	toks, scanErr := lexer.New(buf).Scan()
	require.NoError(t, scanErr)
	prog, parseErr := parser.New(toks).Parse()
	require.NoError(t, parseErr)

	in := runtime.New(buf)
	var out bytes.Buffer
	in.Stdout = &out
	err = in.Interpret(prog)
	return out.String(), err
}

func TestHelloWorld(t *testing.T) {
	out, err := run(t, `
		function main() {
			print("hello, world");
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "hello, world\n", out)
}

func TestArithmeticAndStringCast(t *testing.T) {
	out, err := run(t, `
		function main() {
			variable total = (2 + 3) * 4 - 1;
			print("total: " + String(total));
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "total: 19\n", out)
}

func TestConditionalChainPicksFirstMatch(t *testing.T) {
	out, err := run(t, `
		function main() {
			variable n = 2;
			if n == 1 {
				print("one");
			} else if n == 2 {
				print("two");
			} else {
				print("many");
			}
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "two\n", out)
}

func TestWhileLoopWithBreak(t *testing.T) {
	out, err := run(t, `
		function main() {
			variable i = 0;
			while true {
				if i == 3 {
					break;
				}
				print(String(i));
				i = i + 1;
			}
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n1\n2\n", out)
}

func TestForLoopOverListComputesMax(t *testing.T) {
	out, err := run(t, `
		function main() {
			variable biggest = 0;
			for i, v in Number[4, 9, 2, 7] {
				if v > biggest {
					biggest = v;
				}
			}
			print(String(biggest));
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "9\n", out)
}

func TestRecursiveFibonacci(t *testing.T) {
	out, err := run(t, `
		function fib(n Number) -> Number {
			if n < 2 {
				return n;
			}
			return fib(n - 1) + fib(n - 2);
		}
		function main() {
			print(String(fib(10)));
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "55\n", out)
}

func TestStructureFieldAccess(t *testing.T) {
	out, err := run(t, `
		structure Point {
			x Number;
			y Number;
		}
		function main() {
			variable p = Point{x: 3, y: 4};
			print(String(p.x + p.y));
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
}

func TestEarlyReturnSkipsRestOfFunction(t *testing.T) {
	out, err := run(t, `
		function first(n Number) -> Number {
			if n > 0 {
				return n;
			}
			return 0 - 1;
		}
		function main() {
			print(String(first(5)));
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "5\n", out)
}

func TestReturnTypeMismatchIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		function give() -> Number {
			return "not a number";
		}
		function main() {
			give();
		}
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "RuntimeError")
}

func TestMissingMainIsRuntimeError(t *testing.T) {
	_, err := run(t, `
		function helper() {
		}
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no 'main'")
}

func TestNothingCannotBeCompared(t *testing.T) {
	_, err := run(t, `
		function give() {
			return;
		}
		function main() {
			if give() == give() {
				print("unreachable");
			}
		}
	`)
	require.Error(t, err)
}

func TestReassignmentMustPreserveType(t *testing.T) {
	_, err := run(t, `
		function main() {
			variable x = 1;
			x = "now a string";
		}
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "cannot reassign")
}

func TestForLoopElementCannotBeReassigned(t *testing.T) {
	_, err := run(t, `
		function main() {
			for i, v in Number[1, 2, 3] {
				v = 9;
			}
		}
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "constant")
}

func TestGlobalConstant(t *testing.T) {
	out, err := run(t, `
		constant limit = 3;
		function main() {
			print(String(limit + 1));
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "4\n", out)
}

func TestFunctionParameterCannotBeReassigned(t *testing.T) {
	_, err := run(t, `
		function addOne(n Number) -> Number {
			n = n + 1;
			return n;
		}
		function main() {
			print(String(addOne(1)));
		}
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "parameter")
}

func TestEmptyListLiteralEvaluatesToZeroElementList(t *testing.T) {
	out, err := run(t, `
		function main() {
			variable xs = Number[];
			variable total = 0;
			for i, v in xs {
				total = total + v;
			}
			print(String(total));
		}
	`)
	require.NoError(t, err)
	require.Equal(t, "0\n", out)
}

func TestSubscriptOutOfRange(t *testing.T) {
	_, err := run(t, `
		function main() {
			variable xs = Number[1, 2];
			print(String(xs[5]));
		}
	`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "out of range")
}
