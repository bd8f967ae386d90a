package externalapi

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/pkg/errors"
)

// DomainHashSize of array used to store hashes.
const DomainHashSize = 32

// DomainHash is the domain representation of a 256-bit digest.
// The zero value is the all-zero digest.
type DomainHash [DomainHashSize]byte

// NewDomainHashFromByteSlice creates a DomainHash from the given byte slice
func NewDomainHashFromByteSlice(hashBytes []byte) (*DomainHash, error) {
	if len(hashBytes) != DomainHashSize {
		return nil, errors.Errorf("invalid hash size. Want: %d, got: %d",
			DomainHashSize, len(hashBytes))
	}
	var domainHash DomainHash
	copy(domainHash[:], hashBytes)
	return &domainHash, nil
}

// NewDomainHashFromString parses a hash in display order, which is the
// byte-reversed hex encoding returned by String.
func NewDomainHashFromString(hashString string) (*DomainHash, error) {
	expectedLength := DomainHashSize * 2
	if len(hashString) != expectedLength {
		return nil, errors.Errorf("hash string length is %d, while it should be be %d",
			len(hashString), expectedLength)
	}

	hash, err := chainhash.NewHashFromStr(hashString)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	domainHash := DomainHash(*hash)
	return &domainHash, nil
}

// String returns the hash in display order: the hex encoding of the
// byte-reversed digest.
func (hash DomainHash) String() string {
	return chainhash.Hash(hash).String()
}

// RawHex returns the hex encoding of the digest bytes as stored.
func (hash DomainHash) RawHex() string {
	return hex.EncodeToString(hash[:])
}

// ByteSlice returns a copy of the hash bytes.
func (hash *DomainHash) ByteSlice() []byte {
	clone := *hash
	return clone[:]
}

// IsZero returns whether hash is the all-zero digest.
func (hash *DomainHash) IsZero() bool {
	return *hash == DomainHash{}
}

// Equal returns whether hash equals to other
func (hash *DomainHash) Equal(other *DomainHash) bool {
	if hash == nil || other == nil {
		return hash == other
	}

	return *hash == *other
}

// CloneHashes returns a clone of the given hashes slice.
// Note: since DomainHash is a read-only type, the clone is shallow
func CloneHashes(hashes []*DomainHash) []*DomainHash {
	clone := make([]*DomainHash, len(hashes))
	copy(clone, hashes)
	return clone
}

// HashesEqual returns whether the given hash slices are equal.
func HashesEqual(a, b []*DomainHash) bool {
	if len(a) != len(b) {
		return false
	}

	for i, hash := range a {
		if !hash.Equal(b[i]) {
			return false
		}
	}
	return true
}
