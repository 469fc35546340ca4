// Package types implements the static-type descriptor as a
// specifier/category pair plus the ordered lists needed for struct
// members and function parameters. Grounded on
// lang/yparse/types.go's Type/BaseType split, generalized from the
// teacher's three machine-word base types to the source language's full
// sized-integer, float, bool, char, string, enum and struct set.
package types

import (
	"fmt"
	"strings"
)

// Specifier is the scalar "what kind of value" axis of a Type.
type Specifier int

const (
	SpecNone Specifier = iota
	I8
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
	Bool
	Char
	String
	Void
	EnumSpec
	StructSpec
)

var specNames = map[Specifier]string{
	SpecNone: "<none>", I8: "i8", I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	F32: "f32", F64: "f64", Bool: "bool", Char: "char", String: "string",
	Void: "void", EnumSpec: "enum", StructSpec: "struct",
}

func (s Specifier) String() string { return specNames[s] }

// Category is the orthogonal "what shape" axis: a Type is either a plain
// scalar/aggregate value (CatNone), an array of ArraySize elements of the
// nested type, a function signature, or an identifier denoting a named
// enum constant.
type Category int

const (
	CatNone Category = iota
	CatArray
	CatFunction
	CatEnumMember
)

// Member is one ordered struct field: a name paired with its declared Type.
type Member struct {
	Name string
	Type *Type
}

// Param is one ordered function parameter: a name paired with its
// declared Type.
type Param struct {
	Name string
	Type *Type
}

// Type is the static-type descriptor attached to every AST node and
// every Symbol. It is always used by pointer so struct/function
// descriptors can be shared between the declaring Symbol and every
// reference to it.
type Type struct {
	Specifier Specifier
	Category  Category
	ArraySize int // only meaningful when Category == CatArray

	Members []Member // struct fields, declaration order; nil otherwise
	Params  []Param  // function parameters, declaration order; nil otherwise
	Return  *Type    // function return type; nil otherwise

	EnumName string // name of the owning enum, when Specifier == EnumSpec
	                // or Category == CatEnumMember
}

// Scalar constructs a bare scalar/aggregate type with no array or
// function dressing — the common case for literals and declarations.
func Scalar(s Specifier) *Type {
	return &Type{Specifier: s}
}

// Array wraps elem as a fixed-size array type of the given size.
func Array(elem *Type, size int) *Type {
	return &Type{Specifier: elem.Specifier, Category: CatArray, ArraySize: size, Members: elem.Members, EnumName: elem.EnumName}
}

// ElementType returns the type of a single element of an array type,
// i.e. the same specifier with the array category stripped. Used when
// assigning into an array slot.
func (t *Type) ElementType() *Type {
	if t == nil {
		return nil
	}
	cp := *t
	cp.Category = CatNone
	cp.ArraySize = 0
	return &cp
}

// Exact reports whether two types "match exactly":
// Specifier and Category agree. ArraySize is deliberately excluded — it
// is a property of the value occupying a slot, not of the static type
// used for assignment compatibility.
func (t *Type) Exact(other *Type) bool {
	if t == nil || other == nil {
		return t == other
	}
	return t.Specifier == other.Specifier && t.Category == other.Category
}

// BitWidth returns the bit width of a numeric specifier, or 0 for
// non-numeric specifiers.
func BitWidth(s Specifier) int {
	switch s {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	case I64, U64, F64:
		return 64
	default:
		return 0
	}
}

// IsSignedInt reports whether s is one of the signed integer specifiers.
func IsSignedInt(s Specifier) bool {
	switch s {
	case I8, I16, I32, I64:
		return true
	default:
		return false
	}
}

// IsUnsignedInt reports whether s is one of the unsigned integer specifiers.
func IsUnsignedInt(s Specifier) bool {
	switch s {
	case U8, U16, U32, U64:
		return true
	default:
		return false
	}
}

// IsInt reports whether s is any sized integer specifier, signed or not.
func IsInt(s Specifier) bool { return IsSignedInt(s) || IsUnsignedInt(s) }

// IsFloat reports whether s is f32 or f64.
func IsFloat(s Specifier) bool { return s == F32 || s == F64 }

// IsNumeric reports whether s is an integer or floating specifier.
func IsNumeric(s Specifier) bool { return IsInt(s) || IsFloat(s) }

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	base := t.Specifier.String()
	if t.Specifier == StructSpec || t.Specifier == EnumSpec {
		base = t.EnumName
	}
	switch t.Category {
	case CatArray:
		return fmt.Sprintf("%s[%d]", base, t.ArraySize)
	case CatFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.Type.String()
		}
		ret := "void"
		if t.Return != nil {
			ret = t.Return.String()
		}
		return fmt.Sprintf("(%s) :: %s", strings.Join(parts, ", "), ret)
	case CatEnumMember:
		return t.EnumName + "." + base
	default:
		return base
	}
}

// LookupMember returns the field named name and true, or (Member{},
// false) if no such field exists. Linear search mirrors the rest of this
// small-language compiler's other O(n) symbol lookups.
func (t *Type) LookupMember(name string) (Member, bool) {
	if t == nil {
		return Member{}, false
	}
	for _, m := range t.Members {
		if m.Name == name {
			return m, true
		}
	}
	return Member{}, false
}
