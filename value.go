package ezresp

import (
	"errors"
	"fmt"
)

// ErrNotAMap is returned by StringMap when the Value is not a Map.
var ErrNotAMap = errors.New("ezresp: value is not a map")

// KeyNotStringError is returned by StringMap when a map key is not a
// string-like value. Key is the offending key.
type KeyNotStringError struct {
	Key Value
}

func (e *KeyNotStringError) Error() string {
	return fmt.Sprintf("ezresp: map key is not a string: got %s", e.Key.Type)
}

// IsSimpleString reports whether the Value is a simple string.
func (v Value) IsSimpleString() bool { return v.Type == TypeSimpleString }

// IsSimpleError reports whether the Value is a simple error.
func (v Value) IsSimpleError() bool { return v.Type == TypeSimpleError }

// IsInteger reports whether the Value is an integer.
func (v Value) IsInteger() bool { return v.Type == TypeInteger }

// IsBulkString reports whether the Value is a bulk string.
func (v Value) IsBulkString() bool { return v.Type == TypeBulkString }

// IsArray reports whether the Value is an array.
func (v Value) IsArray() bool { return v.Type == TypeArray }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.Type == TypeNull }

// IsBoolean reports whether the Value is a boolean.
func (v Value) IsBoolean() bool { return v.Type == TypeBoolean }

// IsDouble reports whether the Value is a double.
func (v Value) IsDouble() bool { return v.Type == TypeDouble }

// IsBigNumber reports whether the Value is a big number.
func (v Value) IsBigNumber() bool { return v.Type == TypeBigNumber }

// IsBulkError reports whether the Value is a bulk error.
func (v Value) IsBulkError() bool { return v.Type == TypeBulkError }

// IsVerbatimString reports whether the Value is a verbatim string.
func (v Value) IsVerbatimString() bool { return v.Type == TypeVerbatimString }

// IsMap reports whether the Value is a map.
func (v Value) IsMap() bool { return v.Type == TypeMap }

// IsSet reports whether the Value is a set.
func (v Value) IsSet() bool { return v.Type == TypeSet }

// IsPushes reports whether the Value is a server push.
func (v Value) IsPushes() bool { return v.Type == TypePushes }

// IsStringLike reports whether AsStr would succeed: true for simple strings,
// simple errors, bulk strings, bulk errors, doubles, big numbers and
// verbatim strings.
func (v Value) IsStringLike() bool {
	switch v.Type {
	case TypeSimpleString, TypeSimpleError, TypeBulkString, TypeBulkError,
		TypeDouble, TypeBigNumber, TypeVerbatimString:
		return true
	}
	return false
}

// IsArrayLike reports whether AsArray would succeed: true for arrays and
// server pushes.
func (v Value) IsArrayLike() bool {
	return v.Type == TypeArray || v.Type == TypePushes
}

// AsStr returns the text payload of any string-like Value. For a verbatim
// string this is the text portion, not the encoding tag.
func (v Value) AsStr() (string, bool) {
	if !v.IsStringLike() {
		return "", false
	}
	return v.Str, true
}

// AsInt64 returns the payload of an Integer.
func (v Value) AsInt64() (int64, bool) {
	if v.Type != TypeInteger {
		return 0, false
	}
	return v.Int, true
}

// AsFloat64 returns the payload of a Double re-parsed as a float. The parse
// always succeeds for validly decoded Doubles, including the canonical
// "inf", "-inf" and "NaN" renderings.
func (v Value) AsFloat64() (float64, bool) {
	if v.Type != TypeDouble {
		return 0, false
	}
	f, err := parseDouble(v.Str)
	if err != nil {
		return 0, false
	}
	return f, true
}

// AsBool returns the payload of a Boolean.
func (v Value) AsBool() (bool, bool) {
	if v.Type != TypeBoolean {
		return false, false
	}
	return v.Bool, true
}

// AsArray returns the element sequence of an Array or a Pushes value
// uniformly, so callers that only care about a sequence of values need not
// distinguish the two.
func (v Value) AsArray() ([]Value, bool) {
	if !v.IsArrayLike() {
		return nil, false
	}
	return v.Elems, true
}

// AsMap returns the parallel key and value sequences of a Map, in wire
// order.
func (v Value) AsMap() (keys, vals []Value, ok bool) {
	if v.Type != TypeMap {
		return nil, nil, false
	}
	return v.MapKeys, v.MapVals, true
}

// AsSet returns the elements of a Set in canonical order.
func (v Value) AsSet() ([]Value, bool) {
	if v.Type != TypeSet {
		return nil, false
	}
	return v.Elems, true
}

// StringMap reinterprets a Map as an association from string key to value.
// The wire grammar allows keys of any type, so this is a deliberate
// narrowing conversion: it fails with ErrNotAMap if the Value is not a Map,
// and with a *KeyNotStringError carrying the first offending key if any key
// is not string-like. When two entries share the same string key, the later
// one wins.
func (v Value) StringMap() (map[string]Value, error) {
	if v.Type != TypeMap {
		return nil, ErrNotAMap
	}
	m := make(map[string]Value, len(v.MapKeys))
	for i, key := range v.MapKeys {
		s, ok := key.AsStr()
		if !ok {
			return nil, &KeyNotStringError{Key: key}
		}
		m[s] = v.MapVals[i]
	}
	return m, nil
}
