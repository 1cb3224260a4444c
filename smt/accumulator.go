package smt

import (
	"fmt"
	"math/bits"

	"github.com/yihuang/libra/core/types"
)

// AccumulatorConsistencyProof shows that a Merkle accumulator's root at
// newNumLeaves is derived from the accumulator a client already trusts
// at oldNumLeaves, by appending exactly (newNumLeaves - oldNumLeaves)
// more leaves. Unlike SparseMerkleProof, the trusted checkpoint here is
// not a single root hash: folding the accumulator's perfect-subtree
// roots ("frontier") into one digest is one-way, so a verifier that
// only retained the old root could never recover the frontier needed to
// extend it. Clients therefore retain the frontier itself, the way a
// real accumulator checkpoint does.
type AccumulatorConsistencyProof struct {
	// subtrees are the roots of the maximal power-of-two-aligned blocks
	// covering the appended leaf range [oldNumLeaves, newNumLeaves),
	// left to right (see intervalBlockHeights). They are not simply the
	// canonical decomposition of the appended leaf count in isolation:
	// their boundaries depend on where the range starts.
	subtrees []types.HashValue
}

// NewAccumulatorConsistencyProof constructs a consistency proof from its
// aligned appended-range block roots, left to right.
func NewAccumulatorConsistencyProof(subtrees []types.HashValue) AccumulatorConsistencyProof {
	return AccumulatorConsistencyProof{subtrees: subtrees}
}

// Subtrees returns the proof's aligned appended-range block roots.
func (p AccumulatorConsistencyProof) Subtrees() []types.HashValue {
	return p.subtrees
}

// Verify checks that merging oldFrontier with p.subtrees, per the
// carry-propagating merge the aligned interval decomposition of
// [oldNumLeaves, newNumLeaves) implies, produces a frontier that bags to
// expectedNewRoot. oldFrontier must already be in canonical form
// (tallest subtree first, one entry per set bit of oldNumLeaves);
// Verify does not reconstruct it from a bare root because that
// reconstruction is not computable (see the type doc comment).
func (p AccumulatorConsistencyProof) Verify(oldFrontier []types.HashValue, oldNumLeaves, newNumLeaves uint64, expectedNewRoot types.HashValue) error {
	if newNumLeaves < oldNumLeaves {
		return fmt.Errorf("%w: newNumLeaves %d is less than oldNumLeaves %d", ErrLengthMismatch, newNumLeaves, oldNumLeaves)
	}

	wantHeights := subtreeHeights(oldNumLeaves)
	if len(oldFrontier) != len(wantHeights) {
		return fmt.Errorf(
			"%w: old frontier has %d entries, oldNumLeaves %d implies %d",
			ErrLengthMismatch, len(oldFrontier), oldNumLeaves, len(wantHeights),
		)
	}

	blockHeights := intervalBlockHeights(oldNumLeaves, newNumLeaves)
	if len(p.subtrees) != len(blockHeights) {
		return fmt.Errorf(
			"%w: proof has %d subtrees, range [%d, %d) implies %d",
			ErrLengthMismatch, len(p.subtrees), oldNumLeaves, newNumLeaves, len(blockHeights),
		)
	}

	newFrontier := mergeFrontiers(wantHeights, oldFrontier, blockHeights, p.subtrees)

	root := bagFrontier(newFrontier)
	if root != expectedNewRoot {
		return fmt.Errorf("%w: reconstructed %s, expected %s", ErrRootMismatch, root.Hex(), expectedNewRoot.Hex())
	}
	return nil
}

// subtreeHeights decomposes numLeaves into the heights of its canonical
// perfect subtrees, tallest first. A perfect subtree of height h covers
// 2^h leaves; numLeaves equals the sum of 2^h over the returned heights,
// which are exactly the set bits of numLeaves.
func subtreeHeights(numLeaves uint64) []int {
	var heights []int
	for h := bits.Len64(numLeaves); h > 0; h-- {
		if numLeaves&(1<<uint(h-1)) != 0 {
			heights = append(heights, h-1)
		}
	}
	return heights
}

// intervalBlockHeights decomposes the half-open leaf range [start, end)
// into the maximal power-of-two-aligned blocks that cover it, left to
// right: at each step the block height is the largest h such that 2^h
// divides the current position (so the block starts on a boundary a
// real accumulator could have frozen) and the block still fits before
// end. This is the position-aware analogue of subtreeHeights: decomposing
// (end-start) in isolation would ignore where the range actually starts
// and produce blocks a real append-only tree could never have frozen at
// that offset.
func intervalBlockHeights(start, end uint64) []int {
	var heights []int
	pos := start
	for pos < end {
		remaining := end - pos
		maxByAlignment := bits.TrailingZeros64(pos) // 64 when pos == 0: unbounded by alignment
		maxByRemaining := bits.Len64(remaining) - 1
		h := maxByAlignment
		if maxByRemaining < h {
			h = maxByRemaining
		}
		heights = append(heights, h)
		pos += 1 << uint(h)
	}
	return heights
}

// frontierEntry pairs a subtree root with the height (leaf-count log2)
// it covers, so merges can detect when two adjacent roots cover equal
// heights and must be combined into one.
type frontierEntry struct {
	height int
	hash   types.HashValue
}

// mergeFrontiers combines an old frontier (paired with oldHeights, its
// canonical subtree heights) with the proof's aligned appended blocks
// (paired with blockHeights) into the canonical frontier for the full
// range. This is the batch form of the standard append-only-accumulator
// insertion rule: push each block, left to right, onto the old peak
// stack, merging the trailing two peaks whenever they share a height
// (a carry, exactly as in binary addition), and repeat until no two
// adjacent peaks remain at the same height.
func mergeFrontiers(oldHeights []int, oldFrontier []types.HashValue, blockHeights []int, appendedSubtrees []types.HashValue) []frontierEntry {
	entries := make([]frontierEntry, 0, len(oldFrontier)+len(appendedSubtrees))
	for i, h := range oldHeights {
		entries = append(entries, frontierEntry{height: h, hash: oldFrontier[i]})
	}
	for i, h := range blockHeights {
		entries = append(entries, frontierEntry{height: h, hash: appendedSubtrees[i]})
	}

	for {
		merged := false
		for i := 0; i+1 < len(entries); i++ {
			if entries[i].height == entries[i+1].height {
				combined := frontierEntry{
					height: entries[i].height + 1,
					hash:   NewAccumulatorInternalNode(entries[i].hash, entries[i+1].hash).Hash(),
				}
				entries = append(entries[:i], entries[i+1:]...)
				entries[i] = combined
				merged = true
				break
			}
		}
		if !merged {
			break
		}
	}
	return entries
}

// bagFrontier folds a canonical frontier (entries sorted by strictly
// decreasing height, e.g. as mergeFrontiers produces) right-to-left into
// a single root hash: the two shortest subtrees combine first, then the
// result combines with the next, and so on up to the tallest.
func bagFrontier(entries []frontierEntry) types.HashValue {
	if len(entries) == 0 {
		return types.PLACEHOLDER
	}
	acc := entries[len(entries)-1].hash
	for i := len(entries) - 2; i >= 0; i-- {
		acc = NewAccumulatorInternalNode(entries[i].hash, acc).Hash()
	}
	return acc
}
