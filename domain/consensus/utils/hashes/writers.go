package hashes

import (
	"crypto/sha256"
	"hash"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// HashWriter is used to incrementally hash data without concatenating all of the data to a single buffer
// it exposes an io.Writer api and a Finalize function to get the resulting hash.
// The used hash function is double sha256: Finalize hashes the inner sha256 sum once more.
// This can only be created via one of the purpose specific constructors
type HashWriter struct {
	hash.Hash
}

// NewBlockHashWriter returns a new HashWriter used for block header hashes.
// Header fields are written in their hash serialization, which is separate
// from the disk and wire encodings.
func NewBlockHashWriter() HashWriter {
	return HashWriter{sha256.New()}
}

// NewMerkleBranchHashWriter returns a new HashWriter used for merkle tree inner nodes
func NewMerkleBranchHashWriter() HashWriter {
	return HashWriter{sha256.New()}
}

// InfallibleWrite is just like write but doesn't return anything
func (h HashWriter) InfallibleWrite(p []byte) {
	// This write can never return an error, this is part of the hash.Hash interface contract.
	_, err := h.Write(p)
	if err != nil {
		panic(errors.Wrap(err, "this should never happen. hash.Hash interface promises to not return errors."))
	}
}

// Finalize returns the resulting hash
func (h HashWriter) Finalize() *externalapi.DomainHash {
	sum := externalapi.DomainHash(chainhash.HashH(h.Sum(nil)))
	return &sum
}

// HashPair returns the double sha256 of left ∥ right
func HashPair(left, right *externalapi.DomainHash) *externalapi.DomainHash {
	writer := NewMerkleBranchHashWriter()
	writer.InfallibleWrite(left[:])
	writer.InfallibleWrite(right[:])
	return writer.Finalize()
}

// DoubleHash returns the double sha256 of data
func DoubleHash(data []byte) *externalapi.DomainHash {
	hash := externalapi.DomainHash(chainhash.DoubleHashH(data))
	return &hash
}
