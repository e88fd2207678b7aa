package ezresp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareVariantOrder(t *testing.T) {
	// The variant tag dominates the payload
	require.Equal(t, -1, SimpleString("zzz").Compare(SimpleError("aaa")))
	require.Equal(t, 1, Null().Compare(Array(Integer(1))))
	require.Equal(t, -1, Integer(100).Compare(BulkString("a")))

	// Array and Pushes carry the same shape but are distinct variants
	require.Equal(t, -1, Array(Integer(1)).Compare(Pushes(Integer(1))))
}

func TestCompareScalars(t *testing.T) {
	require.Equal(t, 0, SimpleString("a").Compare(SimpleString("a")))
	require.Equal(t, -1, SimpleString("a").Compare(SimpleString("b")))
	require.Equal(t, 1, SimpleString("b").Compare(SimpleString("a")))

	require.Equal(t, -1, Integer(-5).Compare(Integer(3)))
	require.Equal(t, 0, Integer(3).Compare(Integer(3)))

	require.Equal(t, -1, Boolean(false).Compare(Boolean(true)))
	require.Equal(t, 0, Boolean(true).Compare(Boolean(true)))

	require.Equal(t, 0, Null().Compare(Null()))

	require.Equal(t, -1, VerbatimString("mkd", "z").Compare(VerbatimString("txt", "a")))
	require.Equal(t, -1, VerbatimString("txt", "a").Compare(VerbatimString("txt", "b")))
}

func TestCompareAggregates(t *testing.T) {
	// Element-wise, then by length: a prefix orders before an extension
	require.Equal(t, -1, Array(Integer(1)).Compare(Array(Integer(1), Integer(2))))
	require.Equal(t, -1, Array(Integer(1), Integer(2)).Compare(Array(Integer(2))))
	require.Equal(t, 0, Array(Integer(1), Integer(2)).Compare(Array(Integer(1), Integer(2))))

	// Maps compare keys first, then values
	a := Map([]Value{SimpleString("a")}, []Value{Integer(2)})
	b := Map([]Value{SimpleString("b")}, []Value{Integer(1)})
	c := Map([]Value{SimpleString("a")}, []Value{Integer(3)})
	require.Equal(t, -1, a.Compare(b))
	require.Equal(t, -1, a.Compare(c))
	require.Equal(t, 0, a.Compare(Map([]Value{SimpleString("a")}, []Value{Integer(2)})))
}

func TestEqualIsStructural(t *testing.T) {
	left, err := ParseMessage("*2\r\n%1\r\n+k\r\n:1\r\n~2\r\n:2\r\n:1\r\n")
	require.NoError(t, err)

	right := Array(
		Map([]Value{SimpleString("k")}, []Value{Integer(1)}),
		Set(Integer(1), Integer(2)),
	)
	require.True(t, left.Equal(right))

	// Any nested difference breaks equality
	other := Array(
		Map([]Value{SimpleString("k")}, []Value{Integer(1)}),
		Set(Integer(1), Integer(3)),
	)
	require.False(t, left.Equal(other))
}

func TestSetCanonicalization(t *testing.T) {
	// Insertion order never matters
	a := Set(Integer(3), Integer(1), Integer(2))
	b := Set(Integer(2), Integer(3), Integer(1))
	require.Equal(t, a, b)
	require.Equal(t, []Value{Integer(1), Integer(2), Integer(3)}, a.Elems)

	// Duplicates collapse, including structurally equal aggregates
	c := Set(Array(Integer(1)), Array(Integer(1)), Integer(7))
	require.Len(t, c.Elems, 2)

	// Mixed variants sort by tag first
	d := Set(Boolean(true), SimpleString("s"), Integer(1))
	require.Equal(t, []Value{SimpleString("s"), Integer(1), Boolean(true)}, d.Elems)
}
