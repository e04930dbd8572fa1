// Package tt implements the shared, lock-free transposition table: a
// fixed-size array of 16-byte packed entries probed and stored by every
// search worker without a mutex, keyed by the position's Zobrist hash.
//
// Grounded on original_source/engine/src/transpositions.rs: the two-
// atomic-word-per-slot layout (hash in one atomic.Uint64, move/score/
// eval/depth/info packed into a second), the age+depth+type replacement
// rule in Insert, the `(hash * size) >> 64` fast-range index reduction,
// and the first-1000-slots occupancy sample are all carried over
// directly; only the bit-packing syntax changes from Rust's
// std::mem::transmute to explicit Go shifts. The atomic-pointer Table
// shape in other_examples/9e68b1ca_herohde-morlock__pkg-search-
// transposition.go was the secondary reference for using sync/atomic
// rather than a mutex for a search-shared structure in idiomatic Go.
package tt

import (
	"sync/atomic"

	"github.com/arbiterchess/core/move"
)

// Bound reports whether a stored score is exact or a bound established
// by alpha-beta cutoff.
type Bound uint8

const (
	BoundExact Bound = iota
	BoundUpper
	BoundLower
)

// entrySize is the size in bytes of one logical TT entry (two uint64
// words), used to convert a requested table size in MiB into a slot
// count.
const entrySize = 16

// MateScore and MateThreshold bound the range search.go treats as a
// "found mate" score; entries storing such a score need their distance
// re-based relative to the node they're stored at (AdjustStore) and
// relative to the node they're probed from (AdjustProbe).
const (
	MateScore     = 32000
	MateThreshold = MateScore - 1024
)

// packedEntry is the lock-free slot: a hash word for collision
// detection and a data word packing move/score/eval/depth/bound/age/pv.
type packedEntry struct {
	hash atomic.Uint64
	data atomic.Uint64
}

// Entry is the unpacked, caller-facing view of a slot.
type Entry struct {
	Hash  uint64
	Move  move.Move
	Score int16
	Eval  int16
	Depth uint8
	Bound Bound
	Age   uint8
	PV    bool
}

func packData(e Entry) uint64 {
	info := uint64(e.Age&0x1F)<<3 | boolBit(e.PV)<<2 | uint64(e.Bound)&0x3
	return uint64(e.Move) |
		uint64(uint16(e.Score))<<16 |
		uint64(uint16(e.Eval))<<32 |
		uint64(e.Depth)<<48 |
		info<<56
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

func unpackData(hash, data uint64) Entry {
	info := uint8(data >> 56)
	return Entry{
		Hash:  hash,
		Move:  move.Move(uint16(data)),
		Score: int16(uint16(data >> 16)),
		Eval:  int16(uint16(data >> 32)),
		Depth: uint8(data >> 48),
		Bound: Bound(info & 0x3),
		PV:    info&0x4 != 0,
		Age:   info >> 3,
	}
}

func (p *packedEntry) load() (Entry, bool) {
	hash := p.hash.Load()
	data := p.data.Load()
	if hash == 0 && data == 0 {
		return Entry{}, false
	}
	return unpackData(hash, data), true
}

func (p *packedEntry) store(e Entry) {
	data := packData(e)
	// Store the data word first and the hash word second, matching the
	// teacher source's store order; a torn read (data from one store,
	// hash from the next) is caught by load()'s caller re-checking Hash
	// against the probed position's own hash before trusting the entry.
	p.data.Store(data)
	p.hash.Store(e.Hash)
}

// Table is the shared, resizable transposition table.
type Table struct {
	slots []packedEntry
	age   atomic.Uint32
}

// New allocates a table sized to hold roughly mb megabytes of entries.
func New(mb int) *Table {
	t := &Table{}
	t.Resize(mb)
	return t
}

// Resize reallocates the table for a new size in megabytes, discarding
// all prior content (matching SetHashSize's documented semantics in
// spec §6 — it is never called mid-search).
func (t *Table) Resize(mb int) {
	n := (mb << 20) / entrySize
	if n < 1 {
		n = 1
	}
	t.slots = make([]packedEntry, n)
}

// Clear wipes every slot without reallocating, for the UCI `ucinewgame`
// / engine.NewGame path.
func (t *Table) Clear() {
	for i := range t.slots {
		t.slots[i].hash.Store(0)
		t.slots[i].data.Store(0)
	}
	t.age.Store(0)
}

// NewSearch bumps the table's age counter, marking every entry stored
// before this point as one generation older for replacement purposes.
func (t *Table) NewSearch() { t.age.Add(1) }

func (t *Table) index(hash uint64) uint64 {
	hi, _ := bitsMulHi(hash, uint64(len(t.slots)))
	return hi
}

// bitsMulHi computes (a*b) >> 64 via the standard 64x64->128 split-
// multiply trick, giving a uniform index in [0, b) without a division —
// the Go equivalent of the teacher source's `(hash as u128 * size) >> 64`.
func bitsMulHi(a, b uint64) (hi, lo uint64) {
	const mask32 = 0xFFFFFFFF
	aLo, aHi := a&mask32, a>>32
	bLo, bHi := b&mask32, b>>32

	t1 := aLo * bLo
	t2 := aHi*bLo + t1>>32
	t3 := aLo*bHi + t2&mask32
	hi = aHi*bHi + t2>>32 + t3>>32
	lo = t3<<32 + t1&mask32
	return hi, lo
}

// Probe looks up hash, returning the stored entry only if the full hash
// matches (guarding against both truncated-index collisions and torn
// concurrent reads).
func (t *Table) Probe(hash uint64) (Entry, bool) {
	idx := t.index(hash)
	e, ok := t.slots[idx].load()
	if !ok || e.Hash != hash {
		return Entry{}, false
	}
	return e, true
}

// Store inserts e, replacing the existing slot occupant per the
// teacher's six-condition rule: always replace an empty slot, a
// moveless entry, a stale-age entry, a shallower-or-equal search, a
// different position entirely, or when upgrading a bound to Exact.
func (t *Table) Store(e Entry) {
	idx := t.index(e.Hash)
	slot := &t.slots[idx]
	existing, ok := slot.load()

	if !ok ||
		existing.Move.IsNull() ||
		existing.Age != uint8(t.age.Load()) ||
		existing.Depth <= e.Depth ||
		existing.Hash != e.Hash ||
		(e.Bound == BoundExact && existing.Bound != BoundExact) {
		e.Age = uint8(t.age.Load())
		slot.store(e)
	}
}

// Prefetch hints the CPU to bring hash's slot into cache ahead of a
// MakeMove the search is about to perform, matching the teacher's
// `prefetch` intrinsic call; Go has no portable prefetch intrinsic, so
// this touches the slot with a plain load, which still warms the cache
// line on every mainstream allocator/GC layout.
func (t *Table) Prefetch(hash uint64) {
	idx := t.index(hash)
	_ = t.slots[idx].hash.Load()
}

// Hashfull samples the first 1000 slots (or fewer, for a tiny table)
// and returns the permille of them occupied, matching the teacher's
// `occupancy` sample and the UCI `info hashfull` field's expected units.
func (t *Table) Hashfull() int {
	n := 1000
	if n > len(t.slots) {
		n = len(t.slots)
	}
	if n == 0 {
		return 0
	}
	used := 0
	for i := 0; i < n; i++ {
		if t.slots[i].hash.Load() != 0 {
			used++
		}
	}
	return used * 1000 / n
}

// AdjustStore rebases a mate score found ply levels deep into the tree
// to be relative to the node the entry is stored at, so a later probe
// from a different ply can re-adjust it correctly (see AdjustProbe).
func AdjustStore(score int, ply int) int16 {
	if score >= MateThreshold {
		score += ply
	} else if score <= -MateThreshold {
		score -= ply
	}
	return int16(score)
}

// AdjustProbe reverses AdjustStore for a score read back at ply levels
// deep in a (possibly different) search line.
func AdjustProbe(score int16, ply int) int {
	s := int(score)
	if s >= MateThreshold {
		return s - ply
	}
	if s <= -MateThreshold {
		return s + ply
	}
	return s
}
