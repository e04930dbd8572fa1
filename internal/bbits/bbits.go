// Package bbits implements the handful of bitboard operations the rest of
// the engine builds on: popcount, least-significant-bit scan/pop, and
// Carry-Rippler subset enumeration.
//
// Grounded on treepeck-chego/bitutil/bitutil.go, which hand-rolls the LSB
// scan via a De Bruijn-style multiply-and-lookup rather than calling
// math/bits directly; that scheme is kept here since it is the teacher's
// own idiom and widely used across the pack's engines. Popcount is the
// one place we switch to math/bits.OnesCount64 (a straight win with no
// loss of idiom — the teacher's own flat-layout chego.go already reaches
// for math/bits for the same purpose).
package bbits

import "math/bits"

// bitScanMagic is a precalculated De Bruijn-style constant used to form
// indices into bitScanLookup.
const bitScanMagic uint64 = 0x07EDD5E59A4E28C2

// bitScanLookup is a precalculated lookup table of LSB indices for 64-bit
// integers. See http://pradu.us/old/Nov27_2008/Buzz/research/magic/Bitboards.pdf
// section 3.2.
var bitScanLookup = [64]int{
	63, 0, 58, 1, 59, 47, 53, 2,
	60, 39, 48, 27, 54, 33, 42, 3,
	61, 51, 37, 40, 49, 18, 28, 20,
	55, 30, 34, 11, 43, 14, 22, 4,
	62, 57, 46, 52, 38, 26, 32, 41,
	50, 36, 17, 19, 29, 10, 13, 21,
	56, 45, 25, 31, 35, 16, 9, 12,
	44, 24, 15, 8, 23, 7, 6, 5,
}

// LSB returns the index of the least significant set bit. Callers must
// not pass an empty bitboard.
func LSB(bb uint64) int {
	return bitScanLookup[(bb&-bb)*bitScanMagic>>58]
}

// PopLSB removes and returns the index of the least significant set bit.
// Returns -1 for an empty bitboard.
func PopLSB(bb *uint64) int {
	if *bb == 0 {
		return -1
	}
	sq := LSB(*bb)
	*bb &= *bb - 1
	return sq
}

// Count returns the number of set bits.
func Count(bb uint64) int { return bits.OnesCount64(bb) }

// CarryRippler iterates all subsets of mask, including the empty subset
// and mask itself, via the classic `sub = (sub - mask) & mask` trick used
// to enumerate blocker permutations when building magic attack tables.
// The callback is invoked once per subset; iteration stops when the
// generated subset returns to zero.
func CarryRippler(mask uint64, visit func(subset uint64)) {
	sub := uint64(0)
	for {
		visit(sub)
		sub = (sub - mask) & mask
		if sub == 0 {
			break
		}
	}
}

// File/rank bitboard masks, used throughout attack generation to stop
// leaper and slider shifts from wrapping around board edges.
const (
	FileA uint64 = 0x0101010101010101
	FileH uint64 = FileA << 7
	Rank1 uint64 = 0xFF
	Rank2 uint64 = Rank1 << 8
	Rank4 uint64 = Rank1 << (8 * 3)
	Rank5 uint64 = Rank1 << (8 * 4)
	Rank7 uint64 = Rank1 << (8 * 6)
	Rank8 uint64 = Rank1 << (8 * 7)

	NotFileA  uint64 = ^FileA
	NotFileH  uint64 = ^FileH
	NotFileAB uint64 = ^(FileA | FileA<<1)
	NotFileGH uint64 = ^(FileH | FileH>>1)
	NotRank1  uint64 = ^Rank1
	NotRank8  uint64 = ^Rank8

	Full  uint64 = ^uint64(0)
	Empty uint64 = 0
)
