// Package value implements Sol's runtime value variant and type
// descriptors. The closed Value interface plays the role an Object
// interface does in a Lox-style tree-walker; List and Structure are
// additions this language needs that Lox does not.
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags a Type descriptor's shape.
type Kind int

const (
	KindNothing Kind = iota
	KindBoolean
	KindNumber
	KindString
	KindList
	KindStructure
)

// Type is a runtime type descriptor. Two Types are equal iff their
// shape and arguments are equal: for KindList that means the element
// Types recursively match; for KindStructure, the declared name matches.
type Type struct {
	Kind Kind
	Elem *Type  // set iff Kind == KindList
	Name string // set iff Kind == KindStructure
}

var (
	Nothing = Type{Kind: KindNothing}
	Boolean = Type{Kind: KindBoolean}
	Number  = Type{Kind: KindNumber}
	String  = Type{Kind: KindString}
)

// ListOf returns the descriptor for a list of elem.
func ListOf(elem Type) Type {
	return Type{Kind: KindList, Elem: &elem}
}

// StructureOf returns the descriptor for a structure named name.
func StructureOf(name string) Type {
	return Type{Kind: KindStructure, Name: name}
}

// Equal reports whether two type descriptors denote the same Sol type.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindList:
		return t.Elem.Equal(*o.Elem)
	case KindStructure:
		return t.Name == o.Name
	default:
		return true
	}
}

func (t Type) String() string {
	switch t.Kind {
	case KindNothing:
		return "Nothing"
	case KindBoolean:
		return "Boolean"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindList:
		return t.Elem.String() + "[]"
	case KindStructure:
		return t.Name
	default:
		return "?"
	}
}

// Value is any Sol runtime value.
type Value interface {
	Type() Type
	fmt.Stringer
	// Quoted renders the value the way a diagnostic context would (e.g.
	// strings keep their surrounding quotes), unlike String which is what
	// `print` emits.
	Quoted() string
}

// NothingValue is the sole inhabitant of the Nothing type: only legal as
// a function's return placeholder, never as a readable value.
type NothingValue struct{}

func (NothingValue) Type() Type      { return Nothing }
func (NothingValue) String() string  { return "nothing" }
func (NothingValue) Quoted() string  { return "nothing" }

var TheNothing = NothingValue{}

// Bool is a Sol Boolean value.
type Bool bool

func (b Bool) Type() Type     { return Boolean }
func (b Bool) String() string { return strconv.FormatBool(bool(b)) }
func (b Bool) Quoted() string { return b.String() }

// Num is a Sol Number value, always a 64-bit float.
type Num float64

func (n Num) Type() Type { return Number }

// String prints without a decimal point when the value is integral,
// otherwise in standard decimal form.
func (n Num) String() string {
	f := float64(n)
	if f == float64(int64(f)) && !isNegZero(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (n Num) Quoted() string { return n.String() }

func isNegZero(f float64) bool {
	return f == 0 && math.Signbit(f)
}

// Str is a Sol String value.
type Str string

func (s Str) Type() Type     { return String }
func (s Str) String() string { return string(s) }
func (s Str) Quoted() string { return `"` + string(s) + `"` }

// List is a Sol List value: a homogeneous, fixed-shape element type
// tagged at construction, holding its elements in order.
type List struct {
	ElemType Type
	Items    []Value
}

func (l *List) Type() Type { return ListOf(l.ElemType) }

func (l *List) String() string {
	parts := make([]string, len(l.Items))
	for i, it := range l.Items {
		parts[i] = it.Quoted()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) Quoted() string { return l.String() }

// Structure is a Sol structure value: an ordered field map keyed by the
// declared field names, carrying its declared type name.
type Structure struct {
	Name       string
	FieldOrder []string
	Fields     map[string]Value
}

func (s *Structure) Type() Type { return StructureOf(s.Name) }

func (s *Structure) String() string {
	parts := make([]string, 0, len(s.FieldOrder))
	for _, name := range s.FieldOrder {
		parts = append(parts, name+": "+s.Fields[name].Quoted())
	}
	return s.Name + "{" + strings.Join(parts, ", ") + "}"
}

func (s *Structure) Quoted() string { return s.String() }

// Equal implements value equality: comparable only if type descriptors
// match; Nothing is never comparable (caller must reject it before
// calling Equal).
func Equal(a, b Value) bool {
	if !a.Type().Equal(b.Type()) {
		return false
	}
	switch av := a.(type) {
	case Bool:
		return av == b.(Bool)
	case Num:
		return av == b.(Num)
	case Str:
		return av == b.(Str)
	case *List:
		bv := b.(*List)
		if len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !Equal(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *Structure:
		bv := b.(*Structure)
		if av.Name != bv.Name || len(av.Fields) != len(bv.Fields) {
			return false
		}
		for k, v := range av.Fields {
			bval, ok := bv.Fields[k]
			if !ok || !Equal(v, bval) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
