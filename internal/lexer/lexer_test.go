package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solscript/sol/internal/lexer"
	"github.com/solscript/sol/internal/source"
	"github.com/solscript/sol/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScanPunctuationAndOperators(t *testing.T) {
	buf := source.New("t", "== != -> <= >= { } [ ] ( ) . , : ;")
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.EQUAL_EQUAL, token.BANG_EQUAL, token.ARROW, token.LESS_EQUAL,
		token.GREATER_EQUAL, token.LEFT_BRACE, token.RIGHT_BRACE,
		token.LEFT_BRACKET, token.RIGHT_BRACKET, token.LEFT_PAREN,
		token.RIGHT_PAREN, token.DOT, token.COMMA, token.COLON,
		token.SEMICOLON, token.EOF,
	}, kinds(toks))
}

func TestScanKeywordsBooleansAndIdentifiers(t *testing.T) {
	buf := source.New("t", "function main true false count")
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.FUNCTION, token.IDENTIFIER, token.BOOLEAN, token.BOOLEAN,
		token.IDENTIFIER, token.EOF,
	}, kinds(toks))
}

func TestScanTypeNameIsUppercaseLeading(t *testing.T) {
	buf := source.New("t", "Number Counter[]")
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, token.TYPE_NAME, toks[0].Kind)
	require.Equal(t, "Number", toks[0].Lexeme)
	require.Equal(t, token.TYPE_NAME, toks[1].Kind)
	require.Equal(t, "Counter", toks[1].Lexeme)
}

func TestScanStringLiteralPreservesContentsVerbatim(t *testing.T) {
	buf := source.New("t", `"hello \n world"`)
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, token.STRING, toks[0].Kind)
	require.Equal(t, `hello \n world`, toks[0].Literal)
}

func TestScanUnterminatedStringIsScanError(t *testing.T) {
	buf := source.New("t", `"unterminated`)
	_, err := lexer.New(buf).Scan()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unterminated string")
}

func TestScanNumberLiteralIsIntegerOnly(t *testing.T) {
	buf := source.New("t", "42.5")
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, token.NUMBER, toks[0].Kind)
	require.Equal(t, float64(42), toks[0].Number)
	require.Equal(t, token.DOT, toks[1].Kind)
	require.Equal(t, token.NUMBER, toks[2].Kind)
	require.Equal(t, float64(5), toks[2].Number)
}

func TestScanLineCommentRunsToEndOfLine(t *testing.T) {
	buf := source.New("t", "variable # a comment\nvariable")
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.VARIABLE, token.VARIABLE, token.EOF}, kinds(toks))
}

func TestScanCommentAtEndOfFileWithNoTrailingNewline(t *testing.T) {
	buf := source.New("t", "variable #done")
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.VARIABLE, token.EOF}, kinds(toks))
}

func TestScanReportsPositionOfUnexpectedCharacter(t *testing.T) {
	buf := source.New("t", "variable x = 1 @ 2;")
	_, err := lexer.New(buf).Scan()
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected character")
	require.Contains(t, err.Error(), "[1, 16]")
}

func TestScanEmptyProgramYieldsOnlyEOF(t *testing.T) {
	buf := source.New("t", "")
	toks, err := lexer.New(buf).Scan()
	require.NoError(t, err)
	require.Equal(t, []token.Kind{token.EOF}, kinds(toks))
}
