package merkle

import (
	"sync"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/ruleerrors"
	"github.com/pkg/errors"
)

// BlockTree caches the merkle tree of a block. The tree is built on first
// use and kept until Reset is called; it is not rebuilt when the block's
// transactions change, so whoever mutates them must call Reset.
//
// BlockTree is safe for concurrent use.
type BlockTree struct {
	mutex sync.Mutex
	block *externalapi.DomainBlock
	tree  []*externalapi.DomainHash
}

// NewBlockTree returns a BlockTree for block with an empty cache.
func NewBlockTree(block *externalapi.DomainBlock) *BlockTree {
	return &BlockTree{block: block}
}

// Block returns the block the tree is built over.
func (bt *BlockTree) Block() *externalapi.DomainBlock {
	return bt.block
}

// buildIfEmpty must be called with bt.mutex held.
func (bt *BlockTree) buildIfEmpty() {
	if len(bt.tree) == 0 {
		_, bt.tree = BuildMerkleTree(bt.block.Transactions)
	}
}

// Root returns the merkle root of the block's transactions.
func (bt *BlockTree) Root() *externalapi.DomainHash {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.buildIfEmpty()
	return Root(bt.tree)
}

// Tree returns a copy of the flattened tree.
func (bt *BlockTree) Tree() []*externalapi.DomainHash {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.buildIfEmpty()
	return externalapi.CloneHashes(bt.tree)
}

// IsBuilt returns whether the tree is currently cached.
func (bt *BlockTree) IsBuilt() bool {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	return len(bt.tree) != 0
}

// Reset discards the cached tree.
func (bt *BlockTree) Reset() {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.tree = nil
}

// MerkleBranch returns the merkle branch of the transaction at leafIndex.
func (bt *BlockTree) MerkleBranch(leafIndex int) ([]*externalapi.DomainHash, error) {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.buildIfEmpty()
	return MerkleBranch(bt.tree, len(bt.block.Transactions), leafIndex)
}

// TransactionIndex returns the position of txHash among the block's
// transactions.
func (bt *BlockTree) TransactionIndex(txHash *externalapi.DomainHash) (int, bool) {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.buildIfEmpty()
	return LeafIndex(bt.tree, len(bt.block.Transactions), txHash)
}

// TransactionBranch locates txHash in the block and returns its index and merkle branch.
func (bt *BlockTree) TransactionBranch(txHash *externalapi.DomainHash) (int, []*externalapi.DomainHash, error) {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.buildIfEmpty()
	transactionCount := len(bt.block.Transactions)
	index, found := LeafIndex(bt.tree, transactionCount, txHash)
	if !found {
		return 0, nil, errors.Wrapf(ruleerrors.ErrTransactionNotInBlock, "transaction %s", txHash)
	}
	branch, err := MerkleBranch(bt.tree, transactionCount, index)
	if err != nil {
		return 0, nil, err
	}
	return index, branch, nil
}

// HasMutation reports whether the block's transaction list duplicates a
// subtree. See the package level HasMutation.
func (bt *BlockTree) HasMutation() bool {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.buildIfEmpty()
	return HasMutation(bt.tree, len(bt.block.Transactions))
}

// ValidateMerkleRoot returns ruleerrors.ErrBadMerkleRoot when the root of
// the block's transactions differs from the one committed to in its header,
// or when the transaction list duplicates a subtree.
func (bt *BlockTree) ValidateMerkleRoot() error {
	bt.mutex.Lock()
	defer bt.mutex.Unlock()

	bt.buildIfEmpty()
	calculatedRoot := Root(bt.tree)
	expectedRoot := &bt.block.Header.MerkleRootHash
	if !calculatedRoot.Equal(expectedRoot) {
		return errors.Wrapf(ruleerrors.ErrBadMerkleRoot, "block merkle root is invalid - block "+
			"header indicates %s, but calculated value is %s", expectedRoot, calculatedRoot)
	}
	if HasMutation(bt.tree, len(bt.block.Transactions)) {
		return errors.Wrapf(ruleerrors.ErrBadMerkleRoot, "block merkle root %s is built over "+
			"duplicated transactions", calculatedRoot)
	}
	return nil
}
