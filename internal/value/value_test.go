package value

import (
	"testing"

	"github.com/gmofishsauce/yapc/internal/types"
	"github.com/stretchr/testify/require"
)

func TestFormatScalars(t *testing.T) {
	require.Equal(t, "7", Format(NewInt(types.Scalar(types.I32), 7)))
	require.Equal(t, "7", Format(NewUint(types.Scalar(types.U8), 7)))
	require.Equal(t, "true", Format(NewBool(true)))
	require.Equal(t, "a", Format(NewChar('a')))
	require.Equal(t, "hi", Format(NewString(types.Scalar(types.String), "hi")))
}

func TestFormatArrayAndStruct(t *testing.T) {
	arr := NewArray(types.Array(types.Scalar(types.I32), 3), []Value{
		NewInt(types.Scalar(types.I32), 1),
		NewInt(types.Scalar(types.I32), 2),
		NewInt(types.Scalar(types.I32), 3),
	})
	require.Equal(t, "[1, 2, 3]", Format(arr))

	inst := &StructInstance{TypeName: "Point", Order: []string{"x", "y"}, Fields: map[string]*Value{
		"x": ptr(NewInt(types.Scalar(types.I32), 1)),
		"y": ptr(NewInt(types.Scalar(types.I32), 2)),
	}}
	st := NewStruct(&types.Type{Specifier: types.StructSpec, EnumName: "Point"}, inst)
	require.Equal(t, "{x: 1, y: 2}", Format(st))
}

func ptr(v Value) *Value { return &v }

func TestEqualIsBitExactForFloats(t *testing.T) {
	a := NewFloat(types.Scalar(types.F64), 0.1)
	b := NewFloat(types.Scalar(types.F64), 0.1)
	require.True(t, Equal(a, b))

	c := NewFloat(types.Scalar(types.F64), 0.1000001)
	require.False(t, Equal(a, c))
}

func TestZeroPerSpecifier(t *testing.T) {
	require.Equal(t, TagInt, Zero(types.Scalar(types.I8)).Tag)
	require.Equal(t, TagUint, Zero(types.Scalar(types.U8)).Tag)
	require.Equal(t, TagBool, Zero(types.Scalar(types.Bool)).Tag)
	require.Equal(t, "", Zero(types.Scalar(types.String)).S)
}
