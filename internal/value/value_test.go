package value_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solscript/sol/internal/value"
)

func TestNumStringFormatsIntegralValuesWithoutDecimalPoint(t *testing.T) {
	require.Equal(t, "3", value.Num(3).String())
	require.Equal(t, "3.5", value.Num(3.5).String())
	require.Equal(t, "-2", value.Num(-2).String())
}

func TestListTypeIsParameterizedByElementType(t *testing.T) {
	a := value.ListOf(value.Number)
	b := value.ListOf(value.Number)
	c := value.ListOf(value.String)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestStructureTypeIdentityIsByDeclaredName(t *testing.T) {
	a := value.StructureOf("Point")
	b := value.StructureOf("Point")
	c := value.StructureOf("Vector")
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestEqualRequiresMatchingTypes(t *testing.T) {
	require.False(t, value.Equal(value.Num(1), value.Str("1")))
}

func TestEqualComparesListsElementwise(t *testing.T) {
	a := &value.List{ElemType: value.Number, Items: []value.Value{value.Num(1), value.Num(2)}}
	b := &value.List{ElemType: value.Number, Items: []value.Value{value.Num(1), value.Num(2)}}
	c := &value.List{ElemType: value.Number, Items: []value.Value{value.Num(1), value.Num(3)}}
	require.True(t, value.Equal(a, b))
	require.False(t, value.Equal(a, c))
}

func TestEqualComparesStructuresByNameAndFields(t *testing.T) {
	a := &value.Structure{Name: "Point", FieldOrder: []string{"x", "y"}, Fields: map[string]value.Value{"x": value.Num(1), "y": value.Num(2)}}
	b := &value.Structure{Name: "Point", FieldOrder: []string{"x", "y"}, Fields: map[string]value.Value{"x": value.Num(1), "y": value.Num(2)}}
	c := &value.Structure{Name: "Point", FieldOrder: []string{"x", "y"}, Fields: map[string]value.Value{"x": value.Num(1), "y": value.Num(9)}}
	require.True(t, value.Equal(a, b))
	require.False(t, value.Equal(a, c))
}

func TestStrQuotedKeepsQuotesStringDoesNot(t *testing.T) {
	s := value.Str("hi")
	require.Equal(t, "hi", s.String())
	require.Equal(t, `"hi"`, s.Quoted())
}
