package codec

const (
	// PadChar is the padding symbol appended to short final groups.
	PadChar = '='

	alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

	// tableBase is the lowest character code covered by decodeTable ('+').
	tableBase = 43
)

// Sentinels stored in decodeTable next to the 6-bit values.
const (
	invalidEntry int8 = -1
	paddingEntry int8 = -2
)

// decodeTable maps c-tableBase to a 6-bit value or a sentinel for every code
// in '+'..'z'. Anything outside that span is invalid without a lookup.
var decodeTable = [80]int8{
	62, -1, -1, -1, 63, // + , - . /
	52, 53, 54, 55, 56, 57, 58, 59, 60, 61, // 0-9
	-1, -1, -1, -2, -1, -1, -1, // : ; < = > ? @
	0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12,
	13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, // A-Z
	-1, -1, -1, -1, -1, -1, // [ \ ] ^ _ `
	26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38,
	39, 40, 41, 42, 43, 44, 45, 46, 47, 48, 49, 50, 51, // a-z
}

// Alphabet returns the 64 data symbols in value order.
func Alphabet() string {
	return alphabet
}

// Symbol returns the symbol for a 6-bit value. It panics if v > 63.
func Symbol(v byte) byte {
	return alphabet[v]
}

// lookup classifies a single input byte.
func lookup(c byte) (value byte, pad bool, ok bool) {
	idx := int(c) - tableBase
	if idx < 0 || idx >= len(decodeTable) {
		return 0, false, false
	}

	switch e := decodeTable[idx]; e {
	case invalidEntry:
		return 0, false, false
	case paddingEntry:
		return 0, true, true
	default:
		return byte(e), false, true
	}
}
