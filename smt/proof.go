package smt

import (
	"fmt"

	"github.com/yihuang/libra/core/types"
)

// SparseMerkleProof can be used to authenticate an element in a Sparse
// Merkle Tree given a trusted root hash. It is a direct translation of
// the verification algorithm in the Rust source this module was
// distilled from (SparseMerkleProof::verify), restructured into the
// sentinel-error idiom the rest of this codebase uses.
type SparseMerkleProof struct {
	// leaf is the nearest existing leaf along the path, or nil if the
	// target subtree is empty.
	leaf *LeafNode

	// siblings holds sibling digests from the bottom (deepest) level to
	// the top (closest to root). A sibling equal to types.PLACEHOLDER
	// denotes an empty subtree at that level and is legal.
	siblings []types.HashValue
}

// NewSparseMerkleProof constructs a SparseMerkleProof from a leaf (or
// nil, for a proof rooted at an empty subtree) and its sibling chain.
func NewSparseMerkleProof(leaf *LeafNode, siblings []types.HashValue) SparseMerkleProof {
	return SparseMerkleProof{leaf: leaf, siblings: siblings}
}

// Leaf returns the leaf node in this proof, or nil if there is none.
func (p SparseMerkleProof) Leaf() *LeafNode {
	return p.leaf
}

// Siblings returns the list of siblings in this proof, bottom to top.
func (p SparseMerkleProof) Siblings() []types.HashValue {
	return p.siblings
}

// Verify checks whether the proof authenticates the given claim against
// expectedRoot. If elementValue is non-nil, the claim is inclusion:
// "elementKey maps to *elementValue". If elementValue is nil, the claim
// is non-inclusion: "elementKey is unmapped". Verify is pure: it
// mutates no input and no global state, and it either returns nil or a
// specific, wrapped sentinel error — it never logs, retries, or panics
// on adversarial input.
func (p SparseMerkleProof) Verify(expectedRoot, elementKey types.HashValue, elementValue *ValueBlob) error {
	if len(p.siblings) > types.LengthInBits {
		return fmt.Errorf("%w: proof has %d siblings, max is %d", ErrTooManySiblings, len(p.siblings), types.LengthInBits)
	}

	if err := checkLeafClaimConsistency(p.leaf, elementKey, elementValue); err != nil {
		return err
	}
	if err := p.verifyCommonPrefixBound(elementKey); err != nil {
		return err
	}

	current := types.PLACEHOLDER
	if p.leaf != nil {
		current = p.leaf.Hash()
	}

	n := len(p.siblings)
	for level := 0; level < n; level++ {
		// siblings[0] is the deepest (nearest-leaf) sibling and pairs
		// with bit (255); each subsequent sibling moves one bit toward
		// the MSB, regardless of how many siblings the proof carries.
		bit := elementKey.Bit(types.LengthInBits - 1 - level)
		sibling := p.siblings[level]
		if bit {
			current = NewSparseMerkleInternalNode(sibling, current).Hash()
		} else {
			current = NewSparseMerkleInternalNode(current, sibling).Hash()
		}
	}

	if current != expectedRoot {
		return fmt.Errorf("%w: reconstructed %s, expected %s", ErrRootMismatch, current.Hex(), expectedRoot.Hex())
	}
	return nil
}

// checkLeafClaimConsistency implements spec.md §4.4 step 2: branching on
// (claim present/absent, leaf present/absent).
func checkLeafClaimConsistency(leaf *LeafNode, elementKey types.HashValue, elementValue *ValueBlob) error {
	switch {
	case elementValue != nil && leaf != nil:
		// Inclusion claim, leaf present: the proof's leaf must name the
		// queried key and hash to the claimed value.
		if leaf.Key != elementKey {
			return fmt.Errorf("%w: proof names key %s, queried key %s", ErrNonInclusionWhereInclusionExpected, leaf.Key.Hex(), elementKey.Hex())
		}
		got := elementValue.Hash()
		if leaf.ValueHash != got {
			return fmt.Errorf("%w: proof value hash %s, computed %s", ErrValueHashMismatch, leaf.ValueHash.Hex(), got.Hex())
		}
		return nil

	case elementValue != nil && leaf == nil:
		// Inclusion claim, but the proof witnesses an empty subtree.
		return fmt.Errorf("%w: expected inclusion proof, found empty-subtree non-inclusion proof", ErrNonInclusionWhereInclusionExpected)

	case elementValue == nil && leaf != nil:
		// Non-inclusion claim: the named leaf must not be the queried
		// key, and must genuinely occupy the subtree the queried key
		// would have landed in.
		if leaf.Key == elementKey {
			return fmt.Errorf("%w: key %s is named by the proof's leaf", ErrKeyExistsInNonInclusionProof, elementKey.Hex())
		}
		return nil

	default:
		// Non-inclusion claim, empty subtree. No further precondition;
		// the sibling walk below confirms the subtree really is empty.
		return nil
	}
}

// verifyCommonPrefixBound enforces that a non-inclusion proof's witness
// leaf actually diverges from elementKey no earlier than the proof's
// sibling count implies: fewer shared prefix bits than siblings would
// mean the proof's leaf could not really occupy elementKey's subtree.
func (p SparseMerkleProof) verifyCommonPrefixBound(elementKey types.HashValue) error {
	if p.leaf == nil || p.leaf.Key == elementKey {
		return nil
	}
	if p.leaf.Key.CommonPrefixBitsLen(elementKey) < len(p.siblings) {
		return fmt.Errorf(
			"%w: common prefix of queried key and proof leaf is %d bits, proof has %d siblings",
			ErrInvalidNonInclusionProof,
			p.leaf.Key.CommonPrefixBitsLen(elementKey),
			len(p.siblings),
		)
	}
	return nil
}
