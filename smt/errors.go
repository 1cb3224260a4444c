package smt

import "errors"

// Verification failure kinds (spec.md §7). Every failure is surfaced to
// the caller, wrapped with fmt.Errorf("%w: ...") to attach diagnostic
// context; nothing is swallowed, retried, or logged inside this
// package.
var (
	// ErrTooManySiblings is returned when a proof carries more than 256
	// siblings.
	ErrTooManySiblings = errors.New("smt: too many siblings")

	// ErrNonInclusionWhereInclusionExpected is returned when the claim is
	// inclusion but the proof's leaf is absent, or present with a
	// different key.
	ErrNonInclusionWhereInclusionExpected = errors.New("smt: non-inclusion proof where inclusion was expected")

	// ErrValueHashMismatch is returned when the claim is inclusion, the
	// leaf key matches, but the claimed value hashes to something other
	// than the proof's recorded value hash.
	ErrValueHashMismatch = errors.New("smt: value hash mismatch")

	// ErrKeyExistsInNonInclusionProof is returned when the claim is
	// non-inclusion but the proof's leaf key equals the queried key.
	ErrKeyExistsInNonInclusionProof = errors.New("smt: key exists in non-inclusion proof")

	// ErrInvalidNonInclusionProof is returned when the claim is
	// non-inclusion and the named leaf does not lie deep enough in the
	// common subtree implied by the sibling count.
	ErrInvalidNonInclusionProof = errors.New("smt: invalid non-inclusion proof")

	// ErrRootMismatch is returned when the reconstructed root differs
	// from the expected root.
	ErrRootMismatch = errors.New("smt: root hash mismatch")

	// ErrMalformedRangeProof is returned when a range proof's caller-
	// supplied spine and right siblings imply inconsistent depths.
	ErrMalformedRangeProof = errors.New("smt: malformed range proof")

	// ErrLengthMismatch is returned when a consistency proof's appended
	// subtree count disagrees with the leaf-count delta it claims to
	// cover.
	ErrLengthMismatch = errors.New("smt: length mismatch")
)
