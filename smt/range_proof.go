package smt

import (
	"fmt"

	"github.com/yihuang/libra/core/types"
)

// SparseMerkleRangeProof authenticates a contiguous run of leaves
// against a root, without naming every individual leaf: the caller
// supplies the "left spine" — the chain of digests along the left
// boundary of the range, one per fold step plus the starting digest —
// and the proof supplies the sibling on the right boundary at each of
// those same levels.
type SparseMerkleRangeProof struct {
	rightSiblings []types.HashValue
}

// NewSparseMerkleRangeProof constructs a range proof from its right-
// boundary siblings, ordered bottom (nearest the range) to top (nearest
// the root), mirroring SparseMerkleProof's sibling ordering.
func NewSparseMerkleRangeProof(rightSiblings []types.HashValue) SparseMerkleRangeProof {
	return SparseMerkleRangeProof{rightSiblings: rightSiblings}
}

// RightSiblings returns the proof's right-boundary sibling chain.
func (p SparseMerkleRangeProof) RightSiblings() []types.HashValue {
	return p.rightSiblings
}

// Verify folds leftSpine and the proof's rightSiblings together, level
// by level, and checks the result against expectedRoot. leftSpine must
// have exactly one more entry than rightSiblings: leftSpine[0] is the
// digest at the bottom of the range (the subtree root the leaves in
// range already hash to), and leftSpine[i+1] is what that digest must
// become after folding in rightSiblings[i] — an internal consistency
// check the caller's full spine lets Verify perform for free, beyond
// what a bare root comparison would catch.
func (p SparseMerkleRangeProof) Verify(expectedRoot types.HashValue, leftSpine []types.HashValue) error {
	if len(leftSpine) != len(p.rightSiblings)+1 {
		return fmt.Errorf(
			"%w: left spine has %d entries, right siblings imply %d",
			ErrMalformedRangeProof, len(leftSpine), len(p.rightSiblings)+1,
		)
	}

	current := leftSpine[0]
	for i, sibling := range p.rightSiblings {
		current = NewSparseMerkleInternalNode(current, sibling).Hash()
		if current != leftSpine[i+1] {
			return fmt.Errorf(
				"%w: spine entry %d is %s, folding produced %s",
				ErrMalformedRangeProof, i+1, leftSpine[i+1].Hex(), current.Hex(),
			)
		}
	}

	if current != expectedRoot {
		return fmt.Errorf("%w: reconstructed %s, expected %s", ErrRootMismatch, current.Hex(), expectedRoot.Hex())
	}
	return nil
}
