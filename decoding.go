package ezresp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxDepth bounds how deeply aggregate values may nest. Each array, map, set
// or push level costs one unit, so adversarial input like thousands of
// nested single-element arrays fails with ErrDepthExceeded instead of
// exhausting the call stack.
const MaxDepth = 512

// ErrProtocol is the root of every decode failure. All the more specific
// sentinels below wrap it, so errors.Is(err, ErrProtocol) matches any
// malformed message.
var ErrProtocol = errors.New("ezresp: protocol error")

var (
	ErrUnknownType    = fmt.Errorf("%w: unknown type marker", ErrProtocol)
	ErrBadTerminator  = fmt.Errorf("%w: missing CRLF terminator", ErrProtocol)
	ErrUnexpectedEnd  = fmt.Errorf("%w: unexpected end of input", ErrProtocol)
	ErrBadLength      = fmt.Errorf("%w: malformed length", ErrProtocol)
	ErrLengthMismatch = fmt.Errorf("%w: declared length does not match payload", ErrProtocol)
	ErrBadInteger     = fmt.Errorf("%w: malformed integer", ErrProtocol)
	ErrBadDouble      = fmt.Errorf("%w: malformed double", ErrProtocol)
	ErrBadBigNumber   = fmt.Errorf("%w: malformed big number", ErrProtocol)
	ErrBadBoolean     = fmt.Errorf("%w: malformed boolean", ErrProtocol)
	ErrBadVerbatim    = fmt.Errorf("%w: malformed verbatim string", ErrProtocol)
	ErrTrailingInput  = fmt.Errorf("%w: trailing bytes after message", ErrProtocol)
	ErrDepthExceeded  = fmt.Errorf("%w: nesting deeper than MaxDepth", ErrProtocol)
)

// ParseError is the error type returned by ParseMessage and ParseValue. It
// carries the byte offset of the mismatch and wraps one of the sentinel
// errors above, so callers can report the position and still match the
// category with errors.Is.
type ParseError struct {
	Offset int
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseMessage decodes input as exactly one complete message. It fails if
// any bytes remain after the value, so "+OK\r\nEXTRA" is rejected although
// "+OK\r\n" alone succeeds. This is the strict entry point most callers
// should use.
func ParseMessage(input string) (Value, error) {
	v, rest, err := ParseValue(input)
	if err != nil {
		return Value{}, err
	}
	if rest != "" {
		return Value{}, &ParseError{Offset: len(input) - len(rest), Err: ErrTrailingInput}
	}
	return v, nil
}

// ParseValue decodes one value production from the start of input and
// returns it together with the unconsumed remainder. Text payloads of the
// returned Value are substrings of input and share its backing storage.
//
// A failure anywhere aborts the whole parse: there is no partial value and
// no recovery.
func ParseValue(input string) (Value, string, error) {
	d := &decoder{in: input}
	v, err := d.value()
	if err != nil {
		return Value{}, "", err
	}
	return v, d.in[d.pos:], nil
}

// decoder walks an in-memory message one pass forward. pos always points at
// the next unconsumed byte.
type decoder struct {
	in    string
	pos   int
	depth int
}

// fail wraps err with the current input position.
func (d *decoder) fail(err error) error {
	return &ParseError{Offset: d.pos, Err: err}
}

// failAt wraps err with an explicit position, for mismatches noticed after
// the offending bytes were already consumed.
func (d *decoder) failAt(pos int, err error) error {
	return &ParseError{Offset: pos, Err: err}
}

// value parses one value production, dispatching on the leading marker
// byte. The marker set is fixed and disjoint, so exactly one production can
// match.
func (d *decoder) value() (Value, error) {
	if d.depth >= MaxDepth {
		return Value{}, d.fail(ErrDepthExceeded)
	}
	d.depth++
	defer func() { d.depth-- }()

	if d.pos == len(d.in) {
		return Value{}, d.fail(ErrUnexpectedEnd)
	}
	marker := d.in[d.pos]
	d.pos++

	switch marker {
	case markerSimpleString, markerSimpleError:
		return d.simple(marker)
	case markerInteger:
		return d.integer()
	case markerBulkString, markerBulkError:
		return d.bulk(marker)
	case markerNull:
		return d.null()
	case markerBoolean:
		return d.boolean()
	case markerDouble:
		return d.double()
	case markerBigNumber:
		return d.bigNumber()
	case markerVerbatimString:
		return d.verbatim()
	case markerArray, markerMap, markerSet, markerPush:
		return d.aggregate(marker)
	}
	return Value{}, d.failAt(d.pos-1, ErrUnknownType)
}

// line consumes all bytes up to the next CRLF and the CRLF itself, and
// returns the bytes before it. The returned payload can contain neither CR
// nor LF: the first occurrence of either must begin the two-byte
// terminator, so a bare LF or a stray CR fails.
func (d *decoder) line() (string, error) {
	i := strings.IndexAny(d.in[d.pos:], crlf)
	if i < 0 {
		return "", d.failAt(len(d.in), ErrUnexpectedEnd)
	}
	start := d.pos
	end := start + i
	if !strings.HasPrefix(d.in[end:], crlf) {
		return "", d.failAt(end, ErrBadTerminator)
	}
	d.pos = end + 2
	return d.in[start:end], nil
}

// take consumes exactly n raw bytes, which may include CR and LF.
func (d *decoder) take(n int) (string, error) {
	if len(d.in)-d.pos < n {
		return "", d.failAt(len(d.in), ErrUnexpectedEnd)
	}
	s := d.in[d.pos : d.pos+n]
	d.pos += n
	return s, nil
}

// term consumes a mandatory CRLF. mismatch is the category reported when
// the next bytes are present but are not CRLF; length-prefixed productions
// pass ErrLengthMismatch here since a missing terminator right after a
// declared payload means the length did not match.
func (d *decoder) term(mismatch error) error {
	if strings.HasPrefix(d.in[d.pos:], crlf) {
		d.pos += 2
		return nil
	}
	if len(d.in)-d.pos < 2 {
		return d.failAt(len(d.in), ErrUnexpectedEnd)
	}
	return d.fail(mismatch)
}

// length parses a non-negative decimal length prefix line.
func (d *decoder) length() (int, error) {
	start := d.pos
	s, err := d.line()
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		// Negative lengths land here too; only "-1" is ever legal,
		// and the callers that allow it check for it before calling
		return 0, d.failAt(start, ErrBadLength)
	}
	return int(n), nil
}

func (d *decoder) simple(marker byte) (Value, error) {
	s, err := d.line()
	if err != nil {
		return Value{}, err
	}
	if marker == markerSimpleError {
		return SimpleError(s), nil
	}
	return SimpleString(s), nil
}

func (d *decoder) integer() (Value, error) {
	start := d.pos
	s, err := d.line()
	if err != nil {
		return Value{}, err
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, d.failAt(start, ErrBadInteger)
	}
	return Integer(n), nil
}

// bulk parses a bulk string or bulk error: a length line, exactly that many
// raw payload bytes, then a terminator. "$-1" is the null bulk string; a
// negative length is never legal for bulk errors.
func (d *decoder) bulk(marker byte) (Value, error) {
	if marker == markerBulkString && strings.HasPrefix(d.in[d.pos:], "-1\r\n") {
		d.pos += 4
		return Null(), nil
	}
	n, err := d.length()
	if err != nil {
		return Value{}, err
	}
	payload, err := d.take(n)
	if err != nil {
		return Value{}, err
	}
	if err := d.term(ErrLengthMismatch); err != nil {
		return Value{}, err
	}
	if marker == markerBulkError {
		return BulkError(payload), nil
	}
	return BulkString(payload), nil
}

func (d *decoder) null() (Value, error) {
	if err := d.term(ErrBadTerminator); err != nil {
		return Value{}, err
	}
	return Null(), nil
}

func (d *decoder) boolean() (Value, error) {
	if d.pos == len(d.in) {
		return Value{}, d.fail(ErrUnexpectedEnd)
	}
	c := d.in[d.pos]
	if c != 't' && c != 'f' {
		return Value{}, d.fail(ErrBadBoolean)
	}
	d.pos++
	if err := d.term(ErrBadTerminator); err != nil {
		return Value{}, err
	}
	return Boolean(c == 't'), nil
}

// double parses a floating-point line and stores its canonical rendering,
// so ",inf" and ",+inf" decode to the same value and ",nan" becomes "NaN".
func (d *decoder) double() (Value, error) {
	start := d.pos
	s, err := d.line()
	if err != nil {
		return Value{}, err
	}
	f, err := parseDouble(s)
	if err != nil {
		return Value{}, d.failAt(start, ErrBadDouble)
	}
	return Double(f), nil
}

// parseDouble accepts the double literal grammar: "+inf", "-inf", or a
// floating-point literal, which itself may spell inf or nan.
func parseDouble(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func (d *decoder) bigNumber() (Value, error) {
	start := d.pos
	s, err := d.line()
	if err != nil {
		return Value{}, err
	}
	if !isBigNumber(s) {
		return Value{}, d.failAt(start, ErrBadBigNumber)
	}
	// Stored as the exact slice including the sign, never interpreted
	return BigNumber(s), nil
}

// isBigNumber reports whether s is an optional sign followed by one or more
// decimal digits.
func isBigNumber(s string) bool {
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	if len(s) == 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// verbatim parses a verbatim string: a length line, a 3-byte encoding tag,
// a ':' separator, then length-4 payload bytes (the 4 accounts for the tag
// and the separator), then a terminator.
func (d *decoder) verbatim() (Value, error) {
	lengthStart := d.pos
	n, err := d.length()
	if err != nil {
		return Value{}, err
	}
	if n < 4 {
		return Value{}, d.failAt(lengthStart, ErrBadLength)
	}
	enc, err := d.take(3)
	if err != nil {
		return Value{}, err
	}
	sep, err := d.take(1)
	if err != nil {
		return Value{}, err
	}
	if sep != ":" {
		return Value{}, d.failAt(d.pos-1, ErrBadVerbatim)
	}
	payload, err := d.take(n - 4)
	if err != nil {
		return Value{}, err
	}
	if err := d.term(ErrLengthMismatch); err != nil {
		return Value{}, err
	}
	return VerbatimString(enc, payload), nil
}

// aggregate parses the four length-prefixed recursive productions. A map of
// N pairs holds 2N values, de-interleaved by index parity afterwards; the
// other three hold N. "*-1" is the null array.
func (d *decoder) aggregate(marker byte) (Value, error) {
	if marker == markerArray && strings.HasPrefix(d.in[d.pos:], "-1\r\n") {
		d.pos += 4
		return Null(), nil
	}
	n, err := d.length()
	if err != nil {
		return Value{}, err
	}
	total := n
	if marker == markerMap {
		total = 2 * n
	}

	var elems []Value
	if total > 0 {
		// A value is at least three bytes on the wire ("_\r\n"), so
		// cap the allocation by what the remaining input could hold
		max := (len(d.in)-d.pos)/3 + 1
		if total < max {
			max = total
		}
		elems = make([]Value, 0, max)
	}
	for i := 0; i < total; i++ {
		v, err := d.value()
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, v)
	}

	switch marker {
	case markerArray:
		return Value{Type: TypeArray, Elems: elems}, nil
	case markerPush:
		return Value{Type: TypePushes, Elems: elems}, nil
	case markerSet:
		return Value{Type: TypeSet, Elems: canonicalize(elems)}, nil
	}

	// Map: even indices are keys, odd indices are values, relative order
	// preserved within each
	var keys, vals []Value
	if n > 0 {
		keys = make([]Value, 0, n)
		vals = make([]Value, 0, n)
	}
	for i, v := range elems {
		if i%2 == 0 {
			keys = append(keys, v)
		} else {
			vals = append(vals, v)
		}
	}
	return Value{Type: TypeMap, MapKeys: keys, MapVals: vals}, nil
}
