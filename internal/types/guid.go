package types

import (
	"fmt"

	"github.com/google/uuid"
)

// GuidStringLength is the length of the canonical GUID string form,
// e.g. "01234567-89ab-cdef-0123-456789abcdef".
const GuidStringLength = 36

// Guid is a 16-byte globally unique identifier as stored in GPT
// structures. Unlike an RFC 4122 UUID, the first three fields are
// little-endian, so the byte representation differs from the string
// representation. The type is a plain value; the zero value is the
// all-zero GUID used to mark unused partition entries.
type Guid [16]byte

// ZeroGuid is the all-zero GUID.
var ZeroGuid = Guid{}

// GuidVariant describes the variant field of a GUID.
type GuidVariant int

const (
	GuidVariantReservedNcs GuidVariant = iota
	GuidVariantRfc4122
	GuidVariantReservedMicrosoft
	GuidVariantReservedFuture
)

// GuidParseErrorKind discriminates the ways a GUID string can be malformed.
type GuidParseErrorKind int

const (
	// GuidParseErrorLength indicates the string is not exactly 36 bytes.
	GuidParseErrorLength GuidParseErrorKind = iota

	// GuidParseErrorSeparator indicates a missing `-` separator.
	GuidParseErrorSeparator

	// GuidParseErrorHex indicates an invalid ASCII hex digit.
	GuidParseErrorHex
)

// GuidParseError describes why a GUID string failed to parse. For
// separator and hex errors, Index is the byte index of the offending
// character within the input string.
type GuidParseError struct {
	Kind  GuidParseErrorKind
	Index int
}

func (e *GuidParseError) Error() string {
	switch e.Kind {
	case GuidParseErrorSeparator:
		return fmt.Sprintf("GUID string is missing a separator (`-`) at index %d", e.Index)
	case GuidParseErrorHex:
		return fmt.Sprintf("GUID string contains invalid ASCII hex at index %d", e.Index)
	default:
		return fmt.Sprintf("GUID string has wrong length (expected %d bytes)", GuidStringLength)
	}
}

// NewGuid constructs a Guid from its five standard fields. The integer
// fields are given in their natural numeric form and are stored
// little-endian per the GPT convention.
func NewGuid(timeLow uint32, timeMid, timeHighAndVersion uint16, clockSeqHighAndReserved, clockSeqLow byte, node [6]byte) Guid {
	var g Guid
	g[0] = byte(timeLow)
	g[1] = byte(timeLow >> 8)
	g[2] = byte(timeLow >> 16)
	g[3] = byte(timeLow >> 24)
	g[4] = byte(timeMid)
	g[5] = byte(timeMid >> 8)
	g[6] = byte(timeHighAndVersion)
	g[7] = byte(timeHighAndVersion >> 8)
	g[8] = clockSeqHighAndReserved
	g[9] = clockSeqLow
	copy(g[10:], node[:])
	return g
}

// GuidFromBytes constructs a Guid from its exact on-disk byte representation.
func GuidFromBytes(b [16]byte) Guid {
	return Guid(b)
}

// GuidFromRandomBytes constructs a version 4 GUID from 16 random bytes,
// forcing the variant and version bits per RFC 4122 section 4.4.
func GuidFromRandomBytes(b [16]byte) Guid {
	b[7] = (b[7] & 0x0f) | 0x40
	b[8] = (b[8] & 0x3f) | 0x80
	return Guid(b)
}

// GuidFromUUID converts an RFC 4122 UUID into a GPT GUID by
// byte-swapping the three leading big-endian fields.
func GuidFromUUID(u uuid.UUID) Guid {
	var g Guid
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])
	return g
}

// NewRandomGuid generates a fresh version 4 GUID.
func NewRandomGuid() Guid {
	return GuidFromUUID(uuid.New())
}

// Bytes returns the exact on-disk byte representation.
func (g Guid) Bytes() [16]byte {
	return [16]byte(g)
}

// UUID converts the GUID to an RFC 4122 UUID, reversing the
// little-endian storage of the three leading fields.
func (g Guid) UUID() uuid.UUID {
	var u uuid.UUID
	u[0], u[1], u[2], u[3] = g[3], g[2], g[1], g[0]
	u[4], u[5] = g[5], g[4]
	u[6], u[7] = g[7], g[6]
	copy(u[8:], g[8:])
	return u
}

// IsZero reports whether every byte of the GUID is zero. A partition
// entry whose type GUID is zero is unused.
func (g Guid) IsZero() bool {
	return g == ZeroGuid
}

// Variant returns the GUID's variant field, derived from the top bits
// of the clock_seq_high_and_reserved byte.
func (g Guid) Variant() GuidVariant {
	b := g[8]
	switch {
	case b&0x80 == 0:
		return GuidVariantReservedNcs
	case b&0xc0 == 0x80:
		return GuidVariantRfc4122
	case b&0xe0 == 0xc0:
		return GuidVariantReservedMicrosoft
	default:
		return GuidVariantReservedFuture
	}
}

// Version returns the GUID's version field, the high nibble of the
// time_high_and_version field.
func (g Guid) Version() uint8 {
	return g[7] >> 4
}

// String formats the GUID in the canonical lower-hex hyphenated form.
func (g Guid) String() string {
	return fmt.Sprintf("%02x%02x%02x%02x-%02x%02x-%02x%02x-%02x%02x-%02x%02x%02x%02x%02x%02x",
		g[3], g[2], g[1], g[0],
		g[5], g[4],
		g[7], g[6],
		g[8], g[9],
		g[10], g[11], g[12], g[13], g[14], g[15])
}

// guidByteOrder maps each hex pair of the string form, in string order,
// to the byte it occupies in the mixed-endian binary form.
var guidByteOrder = [16]struct{ strPos, bytePos int }{
	{0, 3}, {2, 2}, {4, 1}, {6, 0},
	{9, 5}, {11, 4},
	{14, 7}, {16, 6},
	{19, 8}, {21, 9},
	{24, 10}, {26, 11}, {28, 12}, {30, 13}, {32, 14}, {34, 15},
}

// ParseGuid parses the canonical 36-character hyphenated form,
// accepting upper or lower case hex. Errors carry the index of the
// first offending character.
func ParseGuid(s string) (Guid, error) {
	if len(s) != GuidStringLength {
		return ZeroGuid, &GuidParseError{Kind: GuidParseErrorLength}
	}
	for _, sep := range []int{8, 13, 18, 23} {
		if s[sep] != '-' {
			return ZeroGuid, &GuidParseError{Kind: GuidParseErrorSeparator, Index: sep}
		}
	}
	var g Guid
	for _, pos := range guidByteOrder {
		hi, ok := unhex(s[pos.strPos])
		if !ok {
			return ZeroGuid, &GuidParseError{Kind: GuidParseErrorHex, Index: pos.strPos}
		}
		lo, ok := unhex(s[pos.strPos+1])
		if !ok {
			return ZeroGuid, &GuidParseError{Kind: GuidParseErrorHex, Index: pos.strPos + 1}
		}
		g[pos.bytePos] = hi<<4 | lo
	}
	return g, nil
}

// MustParseGuid is like ParseGuid but panics on malformed input. Use it
// only for literal strings.
func MustParseGuid(s string) Guid {
	g, err := ParseGuid(s)
	if err != nil {
		panic(err)
	}
	return g
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
