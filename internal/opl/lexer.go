package opl

import (
	"time"
	"unicode/utf8"

	"golang.org/x/exp/constraints"

	"github.com/osmium-go/osmcore/internal/oerr"
)

const maxIntLen = 16

func skipSpace(data []byte, pos *int) {
	for *pos < len(data) && (data[*pos] == ' ' || data[*pos] == '\t') {
		*pos++
	}
}

func isTerminator(c byte) bool {
	return c == ' ' || c == '\t' || c == ',' || c == '=' || c == 0
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexVal(c byte) uint32 {
	switch {
	case c >= '0' && c <= '9':
		return uint32(c - '0')
	case c >= 'a' && c <= 'f':
		return uint32(c-'a') + 10
	default:
		return uint32(c-'A') + 10
	}
}

// parseEscaped decodes a "%HHHH...%" unicode escape (up to 8 hex digits)
// starting at data[*pos], where data[*pos] == '%', and appends the
// decoded rune to dst. It advances *pos past the closing '%'.
func parseEscaped(data []byte, pos *int, dst []byte) ([]byte, error) {
	start := *pos
	*pos++ // skip opening '%'
	var v uint32
	n := 0
	for *pos < len(data) && isHexDigit(data[*pos]) && n < 8 {
		v = v*16 + hexVal(data[*pos])
		*pos++
		n++
	}
	if n == 0 || *pos >= len(data) || data[*pos] != '%' {
		*pos = start
		return dst, &oerr.OPLError{Msg: "invalid escape sequence"}
	}
	*pos++ // skip closing '%'
	var buf [utf8.UTFMax]byte
	w := utf8.EncodeRune(buf[:], rune(v))
	return append(dst, buf[:w]...), nil
}

// parseString decodes a field value, which is terminated by a space, tab,
// comma, equals sign, or end of line/NUL, and may contain "%HHHH...%"
// escapes.
func parseString(data []byte, pos *int) (string, error) {
	var out []byte
	for *pos < len(data) {
		c := data[*pos]
		if isTerminator(c) {
			break
		}
		if c == '%' {
			var err error
			out, err = parseEscaped(data, pos, out)
			if err != nil {
				return "", err
			}
			continue
		}
		out = append(out, c)
		*pos++
	}
	return string(out), nil
}

// Integer is any signed or unsigned builtin integer type parseInt can
// target.
type Integer interface {
	constraints.Integer
}

// parseInt decodes a decimal, optionally '-'-prefixed integer of at most
// 16 digits, mirroring opl_parse_int<T>'s overflow-by-type-width check:
// the same textual value may succeed for a wide target type and fail for
// a narrow one.
func parseInt[T Integer](data []byte, pos *int) (T, error) {
	start := *pos
	neg := false
	if *pos < len(data) && data[*pos] == '-' {
		neg = true
		*pos++
	}
	n := maxIntLen
	var value int64
	digits := 0
	for *pos < len(data) && data[*pos] >= '0' && data[*pos] <= '9' {
		if n == 0 {
			*pos = start
			return 0, &oerr.OPLError{Msg: "integer too long"}
		}
		value = value*10 + int64(data[*pos]-'0')
		*pos++
		n--
		digits++
	}
	if digits == 0 {
		*pos = start
		return 0, &oerr.OPLError{Msg: "expected integer"}
	}
	if neg {
		value = -value
	}

	var zero T
	isSigned := zero-1 < zero
	if isSigned {
		minV, maxV := signedRange[T]()
		if value < minV || value > maxV {
			*pos = start
			return 0, &oerr.OPLError{Msg: "integer out of range"}
		}
	} else {
		if neg {
			*pos = start
			return 0, &oerr.OPLError{Msg: "integer out of range"}
		}
		maxV := unsignedRange[T]()
		if uint64(value) > maxV {
			*pos = start
			return 0, &oerr.OPLError{Msg: "integer out of range"}
		}
	}
	return T(value), nil
}

func signedRange[T Integer]() (int64, int64) {
	var v T
	switch any(v).(type) {
	case int8:
		return -128, 127
	case int16:
		return -32768, 32767
	case int32:
		return -2147483648, 2147483647
	default: // int64, int
		return -9223372036854775808, 9223372036854775807
	}
}

func unsignedRange[T Integer]() uint64 {
	var v T
	switch any(v).(type) {
	case uint8:
		return 255
	case uint16:
		return 65535
	case uint32:
		return 4294967295
	default: // uint64, uint
		return 18446744073709551615
	}
}

// parseVisible accepts the literal characters 'V' (visible) or 'D'
// (deleted) — not "true"/"false".
func parseVisible(data []byte, pos *int) (bool, error) {
	if *pos >= len(data) {
		return false, &oerr.OPLError{Msg: "expected V or D"}
	}
	switch data[*pos] {
	case 'V':
		*pos++
		return true, nil
	case 'D':
		*pos++
		return false, nil
	default:
		return false, &oerr.OPLError{Msg: "expected V or D"}
	}
}

// parseTimestamp decodes an exactly-20-byte ISO8601 UTC timestamp
// ("2006-01-02T15:04:05Z"). An empty timestamp (the next byte is a
// terminator) is valid and yields the zero time.Time.
func parseTimestamp(data []byte, pos *int) (time.Time, error) {
	if *pos >= len(data) || isTerminator(data[*pos]) {
		return time.Time{}, nil
	}
	if *pos+timestampLen > len(data) {
		return time.Time{}, &oerr.OPLError{Msg: "truncated timestamp"}
	}
	raw := string(data[*pos : *pos+timestampLen])
	ts, err := time.Parse("2006-01-02T15:04:05Z", raw)
	if err != nil {
		return time.Time{}, &oerr.OPLError{Msg: "invalid timestamp"}
	}
	*pos += timestampLen
	return ts, nil
}
