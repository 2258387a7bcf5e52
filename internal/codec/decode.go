package codec

import (
	"fmt"
	"strings"
)

// Policy selects how the decoder treats padding and group boundaries.
type Policy int

const (
	// PolicyLegacy decodes symbol by symbol with no length or placement
	// checks. Padding counts as a zero value and suppresses a byte only when
	// that byte reconstructs to zero.
	PolicyLegacy Policy = iota

	// PolicyStrict follows RFC 4648: padding only closes the final group,
	// the final group holds at least two symbols and unused bits are zero.
	PolicyStrict
)

func (p Policy) String() string {
	switch p {
	case PolicyLegacy:
		return "legacy"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy maps a configuration value to a Policy. Empty means legacy.
func ParsePolicy(value string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "legacy":
		return PolicyLegacy, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyLegacy, fmt.Errorf("unsupported decode policy: %s", value)
	}
}

// DecodedLen returns the most bytes Decode can write for m input symbols.
func DecodedLen(m int) int {
	n := m / 4 * 3
	if r := m % 4; r > 1 {
		n += r - 1
	}
	return n
}

// Decode decodes src into dst under PolicyLegacy and returns the number of
// bytes written. dst must hold DecodedLen(len(src)) bytes; a zero terminator
// follows the data when there is room. On error the bytes decoded before the
// failing symbol remain in dst and are reported by the count.
func Decode(dst, src []byte) (int, error) {
	return decodeLegacy(dst, src)
}

// DecodeString returns the bytes represented by s under PolicyLegacy.
func DecodeString(s string) ([]byte, error) {
	return Decoder{}.DecodeString(s)
}

// Decoder decodes under a fixed Policy. The zero value is a legacy decoder.
type Decoder struct {
	Policy Policy
}

// Decode decodes src into dst under d.Policy.
func (d Decoder) Decode(dst, src []byte) (int, error) {
	if d.Policy == PolicyStrict {
		return decodeStrict(dst, src)
	}
	return decodeLegacy(dst, src)
}

// DecodeString returns the bytes represented by s under d.Policy.
func (d Decoder) DecodeString(s string) ([]byte, error) {
	buf := make([]byte, DecodedLen(len(s)))
	n, err := d.Decode(buf, []byte(s))
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func decodeLegacy(dst, src []byte) (int, error) {
	var (
		n       int
		phase   int
		partial byte
	)

	for i, c := range src {
		v, pad, ok := lookup(c)
		if !ok {
			return n, corrupt(ErrInvalidCharacter, i, c)
		}

		var out byte
		emit := true
		switch phase {
		case 0:
			partial = v << 2
			emit = false
		case 1:
			out = partial | (v&0x30)>>4
			partial = (v & 0x0f) << 4
		case 2:
			out = partial | (v&0x3c)>>2
			partial = (v & 0x03) << 6
		case 3:
			out = partial | v
			partial = 0
		}
		phase = (phase + 1) % 4

		// A byte made only of padding carries no data.
		if emit && !(pad && out == 0) {
			dst[n] = out
			n++
		}
	}

	if n < len(dst) {
		dst[n] = 0
	}
	return n, nil
}

func decodeStrict(dst, src []byte) (int, error) {
	data := len(src)
	for data > 0 && src[data-1] == PadChar {
		data--
	}

	for i, c := range src[:data] {
		_, pad, ok := lookup(c)
		if !ok {
			return 0, corrupt(ErrInvalidCharacter, i, c)
		}
		if pad {
			return 0, corrupt(ErrInvalidPadding, i, c)
		}
	}

	if pads := len(src) - data; pads > 0 && (pads > 2 || len(src)%4 != 0) {
		return 0, corrupt(ErrInvalidPadding, data, PadChar)
	}

	switch data % 4 {
	case 1:
		return 0, corrupt(ErrTruncatedInput, data-1, src[data-1])
	case 2, 3:
		last := src[data-1]
		v, _, _ := lookup(last)
		mask := byte(0x0f)
		if data%4 == 3 {
			mask = 0x03
		}
		if v&mask != 0 {
			return 0, corrupt(ErrInvalidPadding, data-1, last)
		}
	}

	return decodeLegacy(dst, src[:data])
}
