// Package value implements the tagged Value sum type: every runtime
// value carries its static Type plus exactly one live payload selected
// by Tag. Grounded on original_source's value.h (a C tagged union)
// generalized to a Go struct whose tag/payload consistency is enforced
// only through the New* constructors; no other package writes the
// payload fields directly.
package value

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gmofishsauce/yapc/internal/types"
)

// Tag selects which payload field of a Value is live.
type Tag int

const (
	TagNone Tag = iota
	TagInt
	TagUint
	TagFloat
	TagChar
	TagString
	TagBool
	TagArray
	TagStruct
)

// StructInstance is the heap-allocated field map for a struct value,
// ordered the same as the declaring types.Type.Members so iteration
// (printing, field-by-field copy) is deterministic.
type StructInstance struct {
	TypeName string
	Order    []string
	Fields   map[string]*Value
}

// Value is the tagged runtime value. It is always constructed through
// one of the New* functions below or copied from an existing Value;
// field writes from outside this package are a misuse the interpreter
// never performs.
type Value struct {
	Type *types.Type
	Tag  Tag

	I int64
	U uint64
	F float64
	C byte
	S string
	B bool

	Elems  []Value
	Struct *StructInstance
}

// NewInt constructs a signed-integer Value of the given type.
func NewInt(t *types.Type, i int64) Value { return Value{Type: t, Tag: TagInt, I: i} }

// NewUint constructs an unsigned-integer Value of the given type.
func NewUint(t *types.Type, u uint64) Value { return Value{Type: t, Tag: TagUint, U: u} }

// NewFloat constructs a floating-point Value of the given type.
func NewFloat(t *types.Type, f float64) Value { return Value{Type: t, Tag: TagFloat, F: f} }

// NewChar constructs a char Value.
func NewChar(c byte) Value { return Value{Type: types.Scalar(types.Char), Tag: TagChar, C: c} }

// NewString constructs a string Value. The caller-supplied type should
// carry ArraySize == len(s), matching the "LHS adopts the RHS's
// length" rule. internal/checker passes types.Scalar(types.String) for
// string literals and does not set ArraySize afterwards.
func NewString(t *types.Type, s string) Value { return Value{Type: t, Tag: TagString, S: s} }

// NewBool constructs a bool Value.
func NewBool(b bool) Value { return Value{Type: types.Scalar(types.Bool), Tag: TagBool, B: b} }

// NewArray constructs an array Value from already-evaluated elements.
func NewArray(t *types.Type, elems []Value) Value {
	return Value{Type: t, Tag: TagArray, Elems: elems}
}

// NewStruct constructs a struct Value over an already-populated instance.
func NewStruct(t *types.Type, inst *StructInstance) Value {
	return Value{Type: t, Tag: TagStruct, Struct: inst}
}

// Zero returns the zero Value appropriate for t, used to materialize an
// injected "= 0"-equivalent default and to seed declared-but-undefined
// slots before the checker assigns a real initializer.
func Zero(t *types.Type) Value {
	if t == nil {
		return Value{}
	}
	switch {
	case types.IsSignedInt(t.Specifier):
		return NewInt(t, 0)
	case types.IsUnsignedInt(t.Specifier):
		return NewUint(t, 0)
	case types.IsFloat(t.Specifier):
		return NewFloat(t, 0)
	case t.Specifier == types.Bool:
		return NewBool(false)
	case t.Specifier == types.Char:
		return NewChar(0)
	case t.Specifier == types.String:
		return NewString(t, "")
	default:
		return Value{Type: t}
	}
}

// Format renders v the way the `print` built-in does: the same
// conversion original_source/src/value.h splits into InlinePrintValue
// (no trailing newline, used for nested array elements) and
// PrintValue (adds the newline). Format implements the former; callers
// that want the newline-terminated whole-line form append "\n"
// themselves (see internal/interp's print statement handling).
func Format(v Value) string {
	switch v.Tag {
	case TagInt:
		return strconv.FormatInt(v.I, 10)
	case TagUint:
		return strconv.FormatUint(v.U, 10)
	case TagFloat:
		return strconv.FormatFloat(v.F, 'f', -1, bitsOf(v.Type))
	case TagChar:
		return string(rune(v.C))
	case TagString:
		return v.S
	case TagBool:
		if v.B {
			return "true"
		}
		return "false"
	case TagArray:
		parts := make([]string, len(v.Elems))
		for i, e := range v.Elems {
			parts[i] = Format(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case TagStruct:
		parts := make([]string, 0, len(v.Struct.Order))
		for _, name := range v.Struct.Order {
			parts = append(parts, fmt.Sprintf("%s: %s", name, Format(*v.Struct.Fields[name])))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "<none>"
	}
}

func bitsOf(t *types.Type) int {
	if t != nil && t.Specifier == types.F32 {
		return 32
	}
	return 64
}

// Equal compares two Values by tag and payload, the way the test
// harness compares a `check` symbol's Value against an expected
// literal: exact integer/unsigned equality, bit-exact float equality,
// and ordinary equality for char/string/bool.
func Equal(a, b Value) bool {
	if a.Tag != b.Tag {
		return false
	}
	switch a.Tag {
	case TagInt:
		return a.I == b.I
	case TagUint:
		return a.U == b.U
	case TagFloat:
		return a.F == b.F
	case TagChar:
		return a.C == b.C
	case TagString:
		return a.S == b.S
	case TagBool:
		return a.B == b.B
	case TagArray:
		if len(a.Elems) != len(b.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equal(a.Elems[i], b.Elems[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
