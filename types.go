// Package ezresp decodes RESP3 protocol messages (the line-oriented,
// type-tagged wire format used by Redis-like data stores) into a typed,
// recursively-structured Value, and encodes Values back to wire form.
//
// The decoder works on a single complete in-memory message; it does no I/O
// and keeps no state between calls, so it is safe to use concurrently on
// independent inputs.
package ezresp

import (
	"math"
	"strconv"
)

// Wire type markers. Every RESP3 value starts with exactly one of these
// bytes, which selects the production that follows.
const (
	markerSimpleString   = '+' // +<string>\r\n
	markerSimpleError    = '-' // -<string>\r\n
	markerInteger        = ':' // :<number>\r\n
	markerBulkString     = '$' // $<length>\r\n<bytes>\r\n
	markerArray          = '*' // *<length>\r\n<value>...
	markerNull           = '_' // _\r\n
	markerBoolean        = '#' // #t\r\n or #f\r\n
	markerDouble         = ',' // ,<floating-point-number>\r\n
	markerBigNumber      = '(' // (<sign?><digits>\r\n
	markerBulkError      = '!' // !<length>\r\n<bytes>\r\n
	markerVerbatimString = '=' // =<length>\r\n<3-byte encoding>:<bytes>\r\n
	markerMap            = '%' // %<pairs>\r\n(<key><value>)...
	markerSet            = '~' // ~<length>\r\n<value>...
	markerPush           = '>' // ><length>\r\n<value>...
)

// crlf terminates every line of the protocol. A bare CR or a bare LF is
// never a valid terminator.
const crlf = "\r\n"

// Type identifies which variant a Value holds. The declaration order of the
// variants below is the canonical order used by Compare.
type Type int

const (
	TypeInvalid Type = iota
	TypeSimpleString
	TypeSimpleError
	TypeInteger
	TypeBulkString
	TypeArray
	TypeNull
	TypeBoolean
	TypeDouble
	TypeBigNumber
	TypeBulkError
	TypeVerbatimString
	TypeMap
	TypeSet
	TypePushes
)

func (t Type) String() string {
	switch t {
	case TypeSimpleString:
		return "simple string"
	case TypeSimpleError:
		return "simple error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk string"
	case TypeArray:
		return "array"
	case TypeNull:
		return "null"
	case TypeBoolean:
		return "boolean"
	case TypeDouble:
		return "double"
	case TypeBigNumber:
		return "big number"
	case TypeBulkError:
		return "bulk error"
	case TypeVerbatimString:
		return "verbatim string"
	case TypeMap:
		return "map"
	case TypeSet:
		return "set"
	case TypePushes:
		return "push"
	}
	return "invalid"
}

// Value is a single decoded RESP3 value. Only the fields belonging to the
// variant named by Type are meaningful; all other fields are zero.
//
// Text payloads decoded from a message are substrings of the input and share
// its backing storage, so decoding copies no character data (the one
// exception is Double, whose Str holds a synthesized canonical rendering).
// A decoded Value is never modified afterwards.
type Value struct {
	Type Type

	// Str holds the text payload of every string-like variant. For a
	// VerbatimString it is the text portion only, for a Double the
	// canonical rendering of the number ("inf", "-inf", "NaN", or the
	// shortest decimal form), and for a BigNumber the exact digit run
	// including any sign.
	Str string

	// Enc is the 3-byte encoding tag of a VerbatimString ("txt", "mkd", ...).
	Enc string

	// Int is the payload of an Integer.
	Int int64

	// Bool is the payload of a Boolean.
	Bool bool

	// Elems holds the elements of an Array or Pushes value in wire order,
	// or of a Set in canonical order with duplicates removed.
	Elems []Value

	// MapKeys and MapVals are the parallel key and value sequences of a
	// Map, in wire order. They always have equal length, and index i of
	// one corresponds to index i of the other. Keys are not required to
	// be strings at this level.
	MapKeys []Value
	MapVals []Value
}

// SimpleString returns a Value holding a simple string.
func SimpleString(s string) Value {
	return Value{Type: TypeSimpleString, Str: s}
}

// SimpleError returns a Value holding a simple error.
func SimpleError(s string) Value {
	return Value{Type: TypeSimpleError, Str: s}
}

// Integer returns a Value holding a signed 64-bit integer.
func Integer(n int64) Value {
	return Value{Type: TypeInteger, Int: n}
}

// BulkString returns a Value holding a bulk string. The payload may contain
// any bytes, including CR and LF.
func BulkString(s string) Value {
	return Value{Type: TypeBulkString, Str: s}
}

// BulkError returns a Value holding a bulk error.
func BulkError(s string) Value {
	return Value{Type: TypeBulkError, Str: s}
}

// Null returns the null Value. All three wire spellings of null decode to
// this one value.
func Null() Value {
	return Value{Type: TypeNull}
}

// Boolean returns a Value holding a boolean.
func Boolean(b bool) Value {
	return Value{Type: TypeBoolean, Bool: b}
}

// Double returns a Value holding a double. The float is stored in its
// canonical textual rendering, so Double(math.Inf(1)) and a decoded ",+inf"
// message compare equal.
func Double(f float64) Value {
	return Value{Type: TypeDouble, Str: formatDouble(f)}
}

// BigNumber returns a Value holding an arbitrary-precision integer, kept as
// its textual form (an optional sign followed by decimal digits). The digits
// are never interpreted numerically.
func BigNumber(digits string) Value {
	return Value{Type: TypeBigNumber, Str: digits}
}

// VerbatimString returns a Value holding a verbatim string with the given
// 3-byte encoding tag and text.
func VerbatimString(encoding, text string) Value {
	return Value{Type: TypeVerbatimString, Enc: encoding, Str: text}
}

// Array returns a Value holding the given elements in order.
func Array(elems ...Value) Value {
	return Value{Type: TypeArray, Elems: elems}
}

// Pushes returns a Value holding a server push with the given elements.
func Pushes(elems ...Value) Value {
	return Value{Type: TypePushes, Elems: elems}
}

// Map returns a Value holding a map with the given parallel key and value
// sequences. Both slices must have the same length.
func Map(keys, vals []Value) Value {
	return Value{Type: TypeMap, MapKeys: keys, MapVals: vals}
}

// Set returns a Value holding a set of the given elements. Duplicates under
// structural equality are collapsed and the remaining elements are stored in
// canonical order.
func Set(elems ...Value) Value {
	return Value{Type: TypeSet, Elems: canonicalize(elems)}
}

// formatDouble renders a float in the canonical form stored by Double
// values. Equivalent input spellings ("inf" and "+inf", "nan" and "NaN")
// collapse to a single rendering.
func formatDouble(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "NaN"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
