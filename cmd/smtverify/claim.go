package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/yihuang/libra/core/types"
	"github.com/yihuang/libra/smt"
)

// leafClaim is the wire form of smt.LeafNode.
type leafClaim struct {
	Key       string `json:"key"`
	ValueHash string `json:"value_hash"`
}

// claim is the wire form of a single SparseMerkleProof verification
// request: a root, the key being claimed present or absent, an
// optional value (its absence means the claim is non-inclusion), the
// proof's witness leaf (absent for an empty-subtree witness), and its
// sibling chain.
type claim struct {
	Root     string     `json:"root"`
	Key      string     `json:"key"`
	Value    *string    `json:"value,omitempty"`
	Leaf     *leafClaim `json:"leaf,omitempty"`
	Siblings []string   `json:"siblings"`
}

// decodeClaim reads and parses a JSON-encoded claim from r.
func decodeClaim(r io.Reader) (claim, error) {
	var c claim
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return claim{}, fmt.Errorf("decode claim: %w", err)
	}
	return c, nil
}

func decodeHash(field, s string) (types.HashValue, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return types.HashValue{}, fmt.Errorf("field %s: %w", field, err)
	}
	h, err := types.NewHashValue(b)
	if err != nil {
		return types.HashValue{}, fmt.Errorf("field %s: %w", field, err)
	}
	return h, nil
}

// build converts c into the arguments smt.SparseMerkleProof.Verify needs.
func (c claim) build() (root, key types.HashValue, value *smt.ValueBlob, proof smt.SparseMerkleProof, err error) {
	if root, err = decodeHash("root", c.Root); err != nil {
		return
	}
	if key, err = decodeHash("key", c.Key); err != nil {
		return
	}

	if c.Value != nil {
		raw, decErr := hex.DecodeString(*c.Value)
		if decErr != nil {
			err = fmt.Errorf("field value: %w", decErr)
			return
		}
		v := smt.ValueBlob(raw)
		value = &v
	}

	var leaf *smt.LeafNode
	if c.Leaf != nil {
		var lk, lv types.HashValue
		if lk, err = decodeHash("leaf.key", c.Leaf.Key); err != nil {
			return
		}
		if lv, err = decodeHash("leaf.value_hash", c.Leaf.ValueHash); err != nil {
			return
		}
		leaf = &smt.LeafNode{Key: lk, ValueHash: lv}
	}

	siblings := make([]types.HashValue, len(c.Siblings))
	for i, s := range c.Siblings {
		if siblings[i], err = decodeHash(fmt.Sprintf("siblings[%d]", i), s); err != nil {
			return
		}
	}

	proof = smt.NewSparseMerkleProof(leaf, siblings)
	return root, key, value, proof, nil
}
