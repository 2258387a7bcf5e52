// Package codec implements the standard Base64 alphabet (RFC 4648 section 4)
// as a pair of allocation-free transforms over caller-owned buffers.
//
// The encoder walks the input one byte at a time with a three-phase byte
// counter, carrying the bits that do not fit a 6-bit symbol into the next
// step. The decoder mirrors it with a four-phase counter and a fixed reverse
// table covering the character codes '+' (43) through 'z' (122).
//
// Decoding has two policies. PolicyLegacy accepts padding wherever the bit
// arithmetic allows and performs no length check. PolicyStrict rejects
// padding outside the final group, truncated groups and non-zero pad bits.
//
// All functions are safe for concurrent use.
package codec
