package ezresp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidValue is returned when a Value cannot be written to wire form,
// either because its payload violates the grammar (a simple string holding
// CR or LF, a verbatim encoding tag that is not 3 bytes) or because the
// Value was not built by this package's constructors or decoder.
var ErrInvalidValue = errors.New("ezresp: value is not encodable")

// Encode returns the wire form of v as a single complete message.
//
// Encoding is canonical rather than byte-preserving: a Null decoded from
// "$-1\r\n" encodes as "_\r\n", a Double decoded from ",+inf\r\n" encodes
// as ",inf\r\n", and a Set writes its elements in canonical order. Decoding
// the result always yields a Value equal to v.
func (v Value) Encode() ([]byte, error) {
	return v.Append(nil)
}

// Append appends the wire form of v to buf and returns the extended buffer.
func (v Value) Append(buf []byte) ([]byte, error) {
	switch v.Type {
	case TypeSimpleString, TypeSimpleError:
		// Simple payloads are terminated by the first CRLF, so they
		// may contain neither CR nor LF
		if strings.ContainsAny(v.Str, crlf) {
			return nil, fmt.Errorf("%w: %s payload contains CR or LF", ErrInvalidValue, v.Type)
		}
		marker := byte(markerSimpleString)
		if v.Type == TypeSimpleError {
			marker = markerSimpleError
		}
		buf = append(buf, marker)
		buf = append(buf, v.Str...)
		return append(buf, crlf...), nil

	case TypeInteger:
		buf = append(buf, markerInteger)
		buf = strconv.AppendInt(buf, v.Int, 10)
		return append(buf, crlf...), nil

	case TypeBulkString, TypeBulkError:
		marker := byte(markerBulkString)
		if v.Type == TypeBulkError {
			marker = markerBulkError
		}
		buf = append(buf, marker)
		buf = strconv.AppendInt(buf, int64(len(v.Str)), 10)
		buf = append(buf, crlf...)
		buf = append(buf, v.Str...)
		return append(buf, crlf...), nil

	case TypeNull:
		return append(buf, "_\r\n"...), nil

	case TypeBoolean:
		if v.Bool {
			return append(buf, "#t\r\n"...), nil
		}
		return append(buf, "#f\r\n"...), nil

	case TypeDouble:
		if _, err := parseDouble(v.Str); err != nil {
			return nil, fmt.Errorf("%w: double rendering %q", ErrInvalidValue, v.Str)
		}
		buf = append(buf, markerDouble)
		buf = append(buf, v.Str...)
		return append(buf, crlf...), nil

	case TypeBigNumber:
		if !isBigNumber(v.Str) {
			return nil, fmt.Errorf("%w: big number %q", ErrInvalidValue, v.Str)
		}
		buf = append(buf, markerBigNumber)
		buf = append(buf, v.Str...)
		return append(buf, crlf...), nil

	case TypeVerbatimString:
		if len(v.Enc) != 3 || strings.ContainsAny(v.Enc, crlf+":") {
			return nil, fmt.Errorf("%w: verbatim encoding tag %q", ErrInvalidValue, v.Enc)
		}
		buf = append(buf, markerVerbatimString)
		// The declared length covers the tag and the ':' separator
		buf = strconv.AppendInt(buf, int64(len(v.Str)+4), 10)
		buf = append(buf, crlf...)
		buf = append(buf, v.Enc...)
		buf = append(buf, ':')
		buf = append(buf, v.Str...)
		return append(buf, crlf...), nil

	case TypeArray, TypeSet, TypePushes:
		var marker byte
		switch v.Type {
		case TypeArray:
			marker = markerArray
		case TypeSet:
			marker = markerSet
		default:
			marker = markerPush
		}
		buf = append(buf, marker)
		buf = strconv.AppendInt(buf, int64(len(v.Elems)), 10)
		buf = append(buf, crlf...)
		var err error
		for _, e := range v.Elems {
			buf, err = e.Append(buf)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil

	case TypeMap:
		if len(v.MapKeys) != len(v.MapVals) {
			return nil, fmt.Errorf("%w: map has %d keys but %d values", ErrInvalidValue, len(v.MapKeys), len(v.MapVals))
		}
		buf = append(buf, markerMap)
		buf = strconv.AppendInt(buf, int64(len(v.MapKeys)), 10)
		buf = append(buf, crlf...)
		var err error
		for i := range v.MapKeys {
			buf, err = v.MapKeys[i].Append(buf)
			if err != nil {
				return nil, err
			}
			buf, err = v.MapVals[i].Append(buf)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	}

	return nil, fmt.Errorf("%w: type %s", ErrInvalidValue, v.Type)
}
