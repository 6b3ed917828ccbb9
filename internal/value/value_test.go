package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFalsey(t *testing.T) {
	h := NewHeap()

	assert.True(t, IsFalsey(Nil()))
	assert.True(t, IsFalsey(Bool(false)))
	assert.False(t, IsFalsey(Bool(true)))
	assert.False(t, IsFalsey(Number(0)))
	assert.False(t, IsFalsey(FromObj(h.CopyString(""))))
}

func TestEqual(t *testing.T) {
	h := NewHeap()

	assert.True(t, Equal(Nil(), Nil()))
	assert.True(t, Equal(Bool(true), Bool(true)))
	assert.False(t, Equal(Bool(true), Bool(false)))
	assert.True(t, Equal(Number(1.5), Number(1.5)))
	assert.False(t, Equal(Number(math.NaN()), Number(math.NaN())))
	assert.False(t, Equal(Nil(), Bool(false)))
	assert.False(t, Equal(Number(0), Bool(false)))

	a := FromObj(h.CopyString("abc"))
	b := FromObj(h.CopyString("ab" + "c"))
	assert.True(t, Equal(a, b))
	assert.False(t, Equal(a, FromObj(h.CopyString("abd"))))

	// Identity, not content, decides equality for objects.
	foreign := FromObj(&ObjString{Chars: "abc", Hash: HashString("abc")})
	assert.False(t, Equal(a, foreign))
}

func TestHash(t *testing.T) {
	h := NewHeap()

	assert.Equal(t, uint32(0), Hash(Bool(true)))
	assert.Equal(t, uint32(1), Hash(Bool(false)))
	assert.Equal(t, uint32(2), Hash(Nil()))
	assert.Equal(t, uint32(3), Hash(Empty()))
	assert.Equal(t, uint32(0x3ff00000), Hash(Number(0)))
	assert.Equal(t, uint32(0x40000000), Hash(Number(1)))

	s := h.CopyString("key")
	assert.Equal(t, HashString("key"), Hash(FromObj(s)))
}

func TestHashString(t *testing.T) {
	// FNV-1a reference values.
	assert.Equal(t, uint32(2166136261), HashString(""))
	assert.Equal(t, uint32(0xe40c292c), HashString("a"))
	assert.Equal(t, uint32(0xbf9cf968), HashString("foobar"))
}

func TestValueString(t *testing.T) {
	h := NewHeap()

	tests := []struct {
		v    Value
		want string
	}{
		{Nil(), "nil"},
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Number(3), "3"},
		{Number(2.5), "2.5"},
		{Number(-0.125), "-0.125"},
		{Number(0.1 + 0.2), "0.3"},
		{Number(1.0 / 3.0), "0.333333"},
		{Number(1e6), "1e+06"},
		{Number(123456), "123456"},
		{Number(1e-5), "1e-05"},
		{Number(math.Inf(1)), "inf"},
		{Number(math.Inf(-1)), "-inf"},
		{Number(math.NaN()), "nan"},
		{FromObj(h.CopyString("hi there")), "hi there"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.v.String())
	}
}

func TestTypeName(t *testing.T) {
	h := NewHeap()

	assert.Equal(t, "nil", TypeName(Nil()))
	assert.Equal(t, "bool", TypeName(Bool(true)))
	assert.Equal(t, "number", TypeName(Number(1)))
	assert.Equal(t, "string", TypeName(FromObj(h.CopyString("s"))))
}

func TestAsString(t *testing.T) {
	h := NewHeap()
	s := h.CopyString("x")

	assert.Same(t, s, FromObj(s).AsString())
	assert.True(t, FromObj(s).IsString())
	assert.Nil(t, Number(1).AsString())
	assert.False(t, Nil().IsString())
}
