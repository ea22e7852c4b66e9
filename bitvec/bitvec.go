// Package bitvec implements the distributed bitmap from SPEC_FULL.md §4.3: a
// dim0 x dim1 bit matrix, rows partitioned evenly across PEs, each row
// carrying a monotone sequence number bumped every time the row is written
// (grounded on hvr_dist_bitvec.cpp). All cross-PE access goes through a
// transport.BitmapTransport; Bitmap itself holds no remote memory, only the
// local geometry needed to turn a row index into a (pe, word offset) pair.
package bitvec

import (
	"context"
	"errors"
	"fmt"

	"github.com/hoover-rt/hoover/transport"
)

const bitsPerWord = 64

const region = "bitvec"

// ErrSubcopyPoolExhausted is the error a caller reports once a PE already
// holds as many concurrently-live LocalSubcopy rows as its
// HVR_DIST_BITVEC_POOL_SIZE budget allows (see Bitmap.SubcopyCapacity).
// Bitmap.CopyLocally itself does not check that budget or return this error;
// the driver checks it before calling CopyLocally.
var ErrSubcopyPoolExhausted = errors.New("bitvec: subcopy pool exhausted")

// Bitmap is a dim0 x dim1 distributed bit matrix. Row i lives entirely on
// PE i/rowsPerPE; within that PE's shard it occupies dim1Words consecutive
// uint64 words, with a parallel seq-number word per row.
type Bitmap struct {
	t          transport.BitmapTransport
	dim0       int
	dim1       int
	dim1Words  int
	rowsPerPE  int
	subcopyCap int
}

// New builds a Bitmap of dim0 rows by dim1 columns over t. dim0 rows are
// spread as evenly as possible across t.NPEs() PEs. poolSize bytes are
// reserved for this PE's concurrently-live LocalSubcopy rows
// (HVR_DIST_BITVEC_POOL_SIZE); SubcopyCapacity divides that budget by one
// row's word footprint to get how many rows a caller may hold open at once.
func New(t transport.BitmapTransport, dim0, dim1, poolSize int) *Bitmap {
	nPEs := t.NPEs()
	rowsPerPE := (dim0 + nPEs - 1) / nPEs
	if rowsPerPE == 0 {
		rowsPerPE = 1
	}
	dim1Words := (dim1 + bitsPerWord - 1) / bitsPerWord
	rowBytes := dim1Words * 8
	subcopyCap := 1
	if rowBytes > 0 {
		if c := poolSize / rowBytes; c > subcopyCap {
			subcopyCap = c
		}
	}
	return &Bitmap{
		t:          t,
		dim0:       dim0,
		dim1:       dim1,
		dim1Words:  dim1Words,
		rowsPerPE:  rowsPerPE,
		subcopyCap: subcopyCap,
	}
}

// SubcopyCapacity returns how many LocalSubcopy rows a caller may keep
// simultaneously live, derived from the pool-size budget passed to New.
func (b *Bitmap) SubcopyCapacity() int {
	return b.subcopyCap
}

func (b *Bitmap) locate(row int) (pe, rowOffset int) {
	return row / b.rowsPerPE, row % b.rowsPerPE
}

func (b *Bitmap) bitWordOffset(rowOffset, col int) (wordIdx, bitPos int) {
	base := rowOffset * b.dim1Words
	return base + col/bitsPerWord, col % bitsPerWord
}

func (b *Bitmap) seqOffset(rowOffset int) int {
	// Seq numbers live in a separate named region, one word per row, so a
	// row's bit words and its seq word never alias regardless of dim1Words.
	return rowOffset
}

// Set marks column col set in row, then fences and bumps the row's seq
// number — the write only becomes externally observable (per the ordering
// contract in spec.md §5) once the seq increment completes.
func (b *Bitmap) Set(ctx context.Context, row, col int) error {
	if row < 0 || row >= b.dim0 {
		return fmt.Errorf("bitvec: row %d out of range [0,%d)", row, b.dim0)
	}
	if col < 0 || col >= b.dim1 {
		return fmt.Errorf("bitvec: col %d out of range [0,%d)", col, b.dim1)
	}
	pe, rowOffset := b.locate(row)
	wordIdx, bitPos := b.bitWordOffset(rowOffset, col)
	if err := b.t.AtomicOr(ctx, pe, region, wordIdx, uint64(1)<<uint(bitPos)); err != nil {
		return err
	}
	if err := b.t.Fence(ctx); err != nil {
		return err
	}
	return b.t.AtomicInc(ctx, pe, region+".seq", b.seqOffset(rowOffset))
}

// Clear unmarks column col in row, with the same fence-then-increment
// ordering as Set.
func (b *Bitmap) Clear(ctx context.Context, row, col int) error {
	if row < 0 || row >= b.dim0 {
		return fmt.Errorf("bitvec: row %d out of range [0,%d)", row, b.dim0)
	}
	if col < 0 || col >= b.dim1 {
		return fmt.Errorf("bitvec: col %d out of range [0,%d)", col, b.dim1)
	}
	pe, rowOffset := b.locate(row)
	wordIdx, bitPos := b.bitWordOffset(rowOffset, col)
	mask := ^(uint64(1) << uint(bitPos))
	if err := b.t.AtomicAnd(ctx, pe, region, wordIdx, mask); err != nil {
		return err
	}
	if err := b.t.Fence(ctx); err != nil {
		return err
	}
	return b.t.AtomicInc(ctx, pe, region+".seq", b.seqOffset(rowOffset))
}

// GetSeqNo atomically reads row's current sequence number.
func (b *Bitmap) GetSeqNo(ctx context.Context, row int) (uint64, error) {
	pe, rowOffset := b.locate(row)
	return b.t.AtomicFetch(ctx, pe, region+".seq", b.seqOffset(rowOffset))
}

// OwningPE returns the PE that owns row, purely by arithmetic.
func (b *Bitmap) OwningPE(row int) int {
	pe, _ := b.locate(row)
	return pe
}

// LocalSubcopy is a PE-local copy of one bitmap row plus the seq number
// observed when it was copied (hvr_dist_bitvec_local_subcopy_t). Reusing a
// subcopy across iterations via Refresh keeps its backing words every time
// the driver re-copies the same row.
type LocalSubcopy struct {
	row      int
	seqNo    uint64
	words    []uint64
	dim1     int
}

// CopyLocally reads row's current seq number followed by a bulk read of its
// words, per spec.md §4.3: the read is not a consistent snapshot, so callers
// compare SeqNo against their last-seen value and re-fetch if a tighter
// bound is required.
func (b *Bitmap) CopyLocally(ctx context.Context, row int) (*LocalSubcopy, error) {
	out := &LocalSubcopy{dim1: b.dim1}
	if err := b.refresh(ctx, out, row); err != nil {
		return nil, err
	}
	return out, nil
}

// Refresh re-copies row into an existing subcopy, reusing its backing slice
// when the shape matches.
func (b *Bitmap) Refresh(ctx context.Context, row int, out *LocalSubcopy) error {
	return b.refresh(ctx, out, row)
}

func (b *Bitmap) refresh(ctx context.Context, out *LocalSubcopy, row int) error {
	pe, rowOffset := b.locate(row)
	seqNo, err := b.t.AtomicFetch(ctx, pe, region+".seq", b.seqOffset(rowOffset))
	if err != nil {
		return err
	}
	words, err := b.t.GetBulk(ctx, pe, region, rowOffset*b.dim1Words, b.dim1Words)
	if err != nil {
		return err
	}
	out.row = row
	out.seqNo = seqNo
	if len(out.words) == len(words) {
		copy(out.words, words)
	} else {
		out.words = words
	}
	out.dim1 = b.dim1
	return nil
}

// Contains reports whether col is set in this subcopy.
func (c *LocalSubcopy) Contains(col int) bool {
	wordIdx, bitPos := col/bitsPerWord, col%bitsPerWord
	return c.words[wordIdx]&(uint64(1)<<uint(bitPos)) != 0
}

// SeqNo returns the sequence number observed at copy time.
func (c *LocalSubcopy) SeqNo() uint64 { return c.seqNo }

// Row returns which bitmap row this subcopy was last filled from.
func (c *LocalSubcopy) Row() int { return c.row }

// CloneFrom deep-copies src's contents into c, reusing c's backing slice
// when its capacity suffices (hvr_dist_bitvec_local_subcopy_copy). The
// driver does not call it: it keeps one subcopy per partition across
// iterations and refreshes that one in place with Refresh.
func (c *LocalSubcopy) CloneFrom(src *LocalSubcopy) {
	if cap(c.words) < len(src.words) {
		c.words = make([]uint64, len(src.words))
	} else {
		c.words = c.words[:len(src.words)]
	}
	copy(c.words, src.words)
	c.row = src.row
	c.seqNo = src.seqNo
	c.dim1 = src.dim1
}

// Release drops the subcopy's backing words (hvr_dist_bitvec_local_subcopy_destroy).
// The subcopy is not usable again until the next CopyLocally/Refresh.
func (c *LocalSubcopy) Release() {
	c.words = nil
}
