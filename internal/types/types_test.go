package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExactIgnoresArraySize(t *testing.T) {
	a := Array(Scalar(I32), 4)
	b := Array(Scalar(I32), 9)
	require.True(t, a.Exact(b))
	require.NotEqual(t, a.ArraySize, b.ArraySize)
}

func TestExactDistinguishesCategory(t *testing.T) {
	scalar := Scalar(I32)
	array := Array(Scalar(I32), 1)
	require.False(t, scalar.Exact(array))
}

func TestBitWidth(t *testing.T) {
	require.Equal(t, 8, BitWidth(I8))
	require.Equal(t, 64, BitWidth(U64))
	require.Equal(t, 0, BitWidth(Bool))
}

func TestLookupMember(t *testing.T) {
	st := &Type{Specifier: StructSpec, EnumName: "Point", Members: []Member{
		{Name: "x", Type: Scalar(I32)},
		{Name: "y", Type: Scalar(I32)},
	}}
	m, ok := st.LookupMember("y")
	require.True(t, ok)
	require.Equal(t, I32, m.Type.Specifier)

	_, ok = st.LookupMember("z")
	require.False(t, ok)
}

func TestStringRendersArrayAndFunction(t *testing.T) {
	arr := Array(Scalar(U8), 3)
	require.Equal(t, "u8[3]", arr.String())

	fn := &Type{Category: CatFunction, Params: []Param{{Name: "n", Type: Scalar(I32)}}, Return: Scalar(Bool)}
	require.Equal(t, "(i32) :: bool", fn.String())
}
