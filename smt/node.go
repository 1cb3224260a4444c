// Package smt implements the authenticated state proof core: a Sparse
// Merkle Tree proof verifier and its supporting hashed-leaf/internal
// node abstractions. It performs no I/O, generates no proofs, and
// stores no tree; it only decides whether a claimed (key, value) pair
// is present, or a claimed key absent, against a trusted root hash.
package smt

import (
	"github.com/yihuang/libra/core/types"
	smtcrypto "github.com/yihuang/libra/crypto"
)

// ValueBlob is an opaque byte string carrying an account-state snapshot.
// The verifier never interprets its contents, only its hash.
type ValueBlob []byte

// Hash returns ValueBlobHasher().Update(bytes).Finish(). No length
// prefix is added: two blobs with identical bytes hash identically.
func (v ValueBlob) Hash() types.HashValue {
	return smtcrypto.NewHasher(smtcrypto.RoleValueBlob).Update(v).Finish()
}

// LeafNode is the pair (key, value_hash) hashed under the leaf hasher.
// Fields are not mutated after construction.
type LeafNode struct {
	Key       types.HashValue
	ValueHash types.HashValue
}

// Hash returns LeafHasher().Update(key).Update(value_hash).Finish().
func (n LeafNode) Hash() types.HashValue {
	return smtcrypto.NewHasher(smtcrypto.RoleSparseMerkleLeafNode).
		Update(n.Key.Bytes()).
		Update(n.ValueHash.Bytes()).
		Finish()
}

// Role names the hasher a particular InternalNode instantiation hashes
// under. It is a zero-size phantom type parameter, the Go analogue of
// the generic hasher type parameter original_source's
// MerkleTreeInternalNode<H: CryptoHasher> carries; see SPEC_FULL.md
// module 3.
type Role interface {
	HasherRole() smtcrypto.HasherRole
}

// SparseMerkleInternalRole is the Role for the SMT's own internal nodes.
type SparseMerkleInternalRole struct{}

// HasherRole implements Role.
func (SparseMerkleInternalRole) HasherRole() smtcrypto.HasherRole {
	return smtcrypto.RoleSparseMerkleInternal
}

// AccumulatorInternalRole is the Role for accumulator internal nodes
// (module 6, AccumulatorConsistencyProof).
type AccumulatorInternalRole struct{}

// HasherRole implements Role.
func (AccumulatorInternalRole) HasherRole() smtcrypto.HasherRole {
	return smtcrypto.RoleAccumulatorInternal
}

// InternalNode is the pair (left, right) hashed under the hasher role R
// determines. No placeholder substitution occurs inside the hash: a
// child equal to types.PLACEHOLDER is hashed as the literal 32 zero
// bytes it is.
type InternalNode[R Role] struct {
	Left  types.HashValue
	Right types.HashValue
}

// Hash returns RoleHasher().Update(left).Update(right).Finish().
func (n InternalNode[R]) Hash() types.HashValue {
	var role R
	return smtcrypto.NewHasher(role.HasherRole()).
		Update(n.Left.Bytes()).
		Update(n.Right.Bytes()).
		Finish()
}

// SparseMerkleInternalNode is the SMT's internal-node instantiation
// (spec.md §4.3: "The SMT instantiates Role = SparseMerkleInternal").
type SparseMerkleInternalNode = InternalNode[SparseMerkleInternalRole]

// NewSparseMerkleInternalNode constructs a SparseMerkleInternalNode.
func NewSparseMerkleInternalNode(left, right types.HashValue) SparseMerkleInternalNode {
	return SparseMerkleInternalNode{Left: left, Right: right}
}

// AccumulatorInternalNode is the accumulator's internal-node
// instantiation (module 6).
type AccumulatorInternalNode = InternalNode[AccumulatorInternalRole]

// NewAccumulatorInternalNode constructs an AccumulatorInternalNode.
func NewAccumulatorInternalNode(left, right types.HashValue) AccumulatorInternalNode {
	return AccumulatorInternalNode{Left: left, Right: right}
}
