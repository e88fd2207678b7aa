package ezresp

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypePredicates(t *testing.T) {
	tests := []struct {
		v    Value
		pred func(Value) bool
	}{
		{SimpleString("hello"), Value.IsSimpleString},
		{SimpleError("hello"), Value.IsSimpleError},
		{Integer(42), Value.IsInteger},
		{BulkString("hello"), Value.IsBulkString},
		{Array(), Value.IsArray},
		{Null(), Value.IsNull},
		{Boolean(true), Value.IsBoolean},
		{Double(3.14), Value.IsDouble},
		{BigNumber("1234567890"), Value.IsBigNumber},
		{BulkError("hello"), Value.IsBulkError},
		{VerbatimString("txt", "hello"), Value.IsVerbatimString},
		{Map(nil, nil), Value.IsMap},
		{Set(), Value.IsSet},
		{Pushes(), Value.IsPushes},
	}
	for i, tt := range tests {
		require.True(t, tt.pred(tt.v), tt.v.Type.String())
		// Each predicate matches exactly one variant
		for j, other := range tests {
			if i != j {
				require.False(t, tt.pred(other.v), "%s predicate on %s", tt.v.Type, other.v.Type)
			}
		}
	}
}

func TestIsStringLike(t *testing.T) {
	stringLike := []Value{
		SimpleString("hello"),
		SimpleError("hello"),
		BulkString("hello"),
		BulkError("hello"),
		Double(3.14),
		BigNumber("1234567890"),
		VerbatimString("txt", "hello"),
	}
	for _, v := range stringLike {
		require.True(t, v.IsStringLike(), v.Type.String())
	}

	notStringLike := []Value{
		Integer(1), Null(), Boolean(true), Array(), Map(nil, nil), Set(), Pushes(),
	}
	for _, v := range notStringLike {
		require.False(t, v.IsStringLike(), v.Type.String())
	}
}

func TestIsArrayLike(t *testing.T) {
	require.True(t, Array().IsArrayLike())
	require.True(t, Pushes().IsArrayLike())
	require.False(t, Set().IsArrayLike())
	require.False(t, SimpleString("hello").IsArrayLike())
}

func TestAsStr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{SimpleString("hello"), "hello"},
		{SimpleError("hello"), "hello"},
		{BulkString("hello"), "hello"},
		{BulkError("hello"), "hello"},
		{Double(3.14), "3.14"},
		{BigNumber("1234567890"), "1234567890"},
		// The text portion, not the encoding tag
		{VerbatimString("txt", "hello"), "hello"},
	}
	for _, tt := range tests {
		s, ok := tt.v.AsStr()
		require.True(t, ok, tt.v.Type.String())
		require.Equal(t, tt.want, s, tt.v.Type.String())
	}

	_, ok := Integer(1).AsStr()
	require.False(t, ok)
	_, ok = Array().AsStr()
	require.False(t, ok)
}

func TestAsInt64(t *testing.T) {
	n, ok := Integer(42).AsInt64()
	require.True(t, ok)
	require.Equal(t, int64(42), n)

	_, ok = SimpleString("42").AsInt64()
	require.False(t, ok)
	_, ok = Double(42).AsInt64()
	require.False(t, ok)
}

func TestAsFloat64(t *testing.T) {
	f, ok := Double(math.Pi).AsFloat64()
	require.True(t, ok)
	require.Equal(t, math.Pi, f)

	// The canonical renderings re-parse, including the non-finite ones
	f, ok = Double(math.Inf(1)).AsFloat64()
	require.True(t, ok)
	require.True(t, math.IsInf(f, 1))

	f, ok = Double(math.Inf(-1)).AsFloat64()
	require.True(t, ok)
	require.True(t, math.IsInf(f, -1))

	f, ok = Double(math.NaN()).AsFloat64()
	require.True(t, ok)
	require.True(t, math.IsNaN(f))

	_, ok = Integer(1).AsFloat64()
	require.False(t, ok)
	_, ok = BigNumber("123").AsFloat64()
	require.False(t, ok)
}

func TestAsBool(t *testing.T) {
	b, ok := Boolean(true).AsBool()
	require.True(t, ok)
	require.True(t, b)

	b, ok = Boolean(false).AsBool()
	require.True(t, ok)
	require.False(t, b)

	_, ok = Integer(1).AsBool()
	require.False(t, ok)
}

func TestAsArray(t *testing.T) {
	// Arrays and pushes are handled uniformly
	elems, ok := Array(Integer(1), Integer(2)).AsArray()
	require.True(t, ok)
	require.Equal(t, []Value{Integer(1), Integer(2)}, elems)

	elems, ok = Pushes(Integer(1)).AsArray()
	require.True(t, ok)
	require.Equal(t, []Value{Integer(1)}, elems)

	_, ok = Set(Integer(1)).AsArray()
	require.False(t, ok)
	_, ok = SimpleString("hello").AsArray()
	require.False(t, ok)
}

func TestAsMap(t *testing.T) {
	m := Map(
		[]Value{SimpleString("first"), SimpleString("second")},
		[]Value{Integer(1), Integer(2)},
	)
	keys, vals, ok := m.AsMap()
	require.True(t, ok)
	require.Equal(t, []Value{SimpleString("first"), SimpleString("second")}, keys)
	require.Equal(t, []Value{Integer(1), Integer(2)}, vals)

	_, _, ok = Array().AsMap()
	require.False(t, ok)
}

func TestAsSet(t *testing.T) {
	elems, ok := Set(Integer(2), Integer(1)).AsSet()
	require.True(t, ok)
	require.Equal(t, []Value{Integer(1), Integer(2)}, elems)

	_, ok = Array().AsSet()
	require.False(t, ok)
}

func TestStringMap(t *testing.T) {
	m := Map(
		[]Value{SimpleString("key1"), BulkString("key2"), VerbatimString("txt", "key3")},
		[]Value{SimpleString("value1"), Integer(2), Null()},
	)
	res, err := m.StringMap()
	require.NoError(t, err)
	require.Len(t, res, 3)
	require.Equal(t, SimpleString("value1"), res["key1"])
	require.Equal(t, Integer(2), res["key2"])
	require.Equal(t, Null(), res["key3"])

	// Not a map at all
	_, err = SimpleString("hello").StringMap()
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNotAMap))

	// A non-string key fails and the error identifies it
	m = Map(
		[]Value{SimpleString("ok"), Array(Integer(1))},
		[]Value{Integer(1), Integer(2)},
	)
	_, err = m.StringMap()
	require.Error(t, err)
	var kerr *KeyNotStringError
	require.True(t, errors.As(err, &kerr))
	require.Equal(t, Array(Integer(1)), kerr.Key)

	// Duplicate string keys: the later entry wins
	m = Map(
		[]Value{SimpleString("k"), SimpleString("k")},
		[]Value{Integer(1), Integer(2)},
	)
	res, err = m.StringMap()
	require.NoError(t, err)
	require.Len(t, res, 1)
	require.Equal(t, Integer(2), res["k"])
}

func TestStringMapFromWire(t *testing.T) {
	v, err := ParseMessage("%2\r\n+first\r\n:1\r\n+second\r\n:2\r\n")
	require.NoError(t, err)

	m, err := v.StringMap()
	require.NoError(t, err)
	require.Equal(t, Integer(1), m["first"])
	require.Equal(t, Integer(2), m["second"])
}
