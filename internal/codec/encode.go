package codec

// EncodedLen returns the number of symbols Encode writes for n input bytes.
func EncodedLen(n int, padding bool) int {
	if padding {
		return (n + 2) / 3 * 4
	}
	return (n*4 + 2) / 3
}

// Encode writes the Base64 form of src into dst and returns the number of
// symbols written. dst must hold at least EncodedLen(len(src), padding)
// bytes; when it has room for one more, a zero terminator follows the data
// and is not counted. Empty input writes nothing.
func Encode(dst, src []byte, padding bool) int {
	if len(src) == 0 {
		return 0
	}

	var (
		out     int
		phase   int
		partial byte
	)

	for _, b := range src {
		switch phase {
		case 0:
			dst[out] = alphabet[b>>2]
			partial = (b & 0x03) << 4
			out++
		case 1:
			dst[out] = alphabet[partial|b>>4]
			partial = (b & 0x0f) << 2
			out++
		case 2:
			dst[out] = alphabet[partial|b>>6]
			dst[out+1] = alphabet[b&0x3f]
			partial = 0
			out += 2
		}
		phase = (phase + 1) % 3
	}

	// Flush the partial character left by a short final group.
	if phase > 0 {
		dst[out] = alphabet[partial]
		out++
		if padding {
			for ; phase < 3; phase++ {
				dst[out] = PadChar
				out++
			}
		}
	}

	if out < len(dst) {
		dst[out] = 0
	}
	return out
}

// AppendEncode appends the encoding of src to dst.
func AppendEncode(dst, src []byte, padding bool) []byte {
	n := EncodedLen(len(src), padding)
	start := len(dst)
	if cap(dst)-start < n {
		grown := make([]byte, start, start+n)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:start+n]
	Encode(dst[start:], src, padding)
	return dst
}

// EncodeToString returns the encoding of src.
func EncodeToString(src []byte, padding bool) string {
	buf := make([]byte, EncodedLen(len(src), padding))
	Encode(buf, src, padding)
	return string(buf)
}

// Encoder carries the padding choice for callers that configure it once.
type Encoder struct {
	Padding bool
}

// EncodedLen returns the encoded size of n bytes under e.
func (e Encoder) EncodedLen(n int) int {
	return EncodedLen(n, e.Padding)
}

// Encode is Encode with e.Padding.
func (e Encoder) Encode(dst, src []byte) int {
	return Encode(dst, src, e.Padding)
}

// EncodeToString is EncodeToString with e.Padding.
func (e Encoder) EncodeToString(src []byte) string {
	return EncodeToString(src, e.Padding)
}
