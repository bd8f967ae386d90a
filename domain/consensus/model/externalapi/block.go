package externalapi

// Transaction is the view of a transaction needed by the block integrity
// code: its digest and its declared fee.
type Transaction interface {
	Hash() *DomainHash
	Fee() int64
}

// DomainBlock represents a block
type DomainBlock struct {
	Header       *DomainBlockHeader
	Transactions []Transaction
}

// Clone returns a clone of DomainBlock. Transactions are shared since the
// block does not own their contents.
func (block *DomainBlock) Clone() *DomainBlock {
	transactionClone := make([]Transaction, len(block.Transactions))
	copy(transactionClone, block.Transactions)

	return &DomainBlock{
		Header:       block.Header.Clone(),
		Transactions: transactionClone,
	}
}

// DomainBlockHeader represents the header part of a block
type DomainBlockHeader struct {
	Version        int32
	PrevBlockHash  DomainHash
	MerkleRootHash DomainHash
	Timestamp      uint32
	Nonce          uint32
	Height         uint32
	Fuel           int32
	FuelRate       int32
}

// SetHeight sets the header's height. The height is part of the hashed
// fields, so it must be set before the header hash is taken.
func (header *DomainBlockHeader) SetHeight(height uint32) {
	header.Height = height
}

// Clone returns a clone of DomainBlockHeader
func (header *DomainBlockHeader) Clone() *DomainBlockHeader {
	clone := *header
	return &clone
}

// If this doesn't compile, it means the type definition has been changed, so it's
// an indication to update Equal and Clone accordingly.
var _ = &DomainBlockHeader{0, DomainHash{}, DomainHash{}, 0, 0, 0, 0, 0}

// Equal returns whether header equals to other
func (header *DomainBlockHeader) Equal(other *DomainBlockHeader) bool {
	if header == nil || other == nil {
		return header == other
	}

	if header.Version != other.Version {
		return false
	}

	if !header.PrevBlockHash.Equal(&other.PrevBlockHash) {
		return false
	}

	if !header.MerkleRootHash.Equal(&other.MerkleRootHash) {
		return false
	}

	if header.Timestamp != other.Timestamp {
		return false
	}

	if header.Nonce != other.Nonce {
		return false
	}

	if header.Height != other.Height {
		return false
	}

	if header.Fuel != other.Fuel {
		return false
	}

	if header.FuelRate != other.FuelRate {
		return false
	}

	return true
}
