package merkle

import (
	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/ruleerrors"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/hashes"
	"github.com/pkg/errors"
)

// nextLevelSize returns the number of nodes in the level built over a level
// of the given size. An odd last node is paired with itself.
func nextLevelSize(size int) int {
	return (size + 1) / 2
}

// TreeSize returns the number of nodes in the flattened tree built over
// leafCount leaves.
func TreeSize(leafCount int) int {
	if leafCount <= 0 {
		return 0
	}
	total := 0
	for size := leafCount; size > 1; size = nextLevelSize(size) {
		total += size
	}
	return total + 1
}

// BuildMerkleTree builds the merkle tree over the hashes of the given
// transactions and returns its root along with the flattened tree: the
// leaves first, followed by each level up to and including the root.
//
// When a level has an odd number of nodes, the last node is hashed with
// itself. This makes a transaction list with a duplicated trailing subtree
// collide with the list without it; see HasMutation.
func BuildMerkleTree(transactions []externalapi.Transaction) (*externalapi.DomainHash, []*externalapi.DomainHash) {
	leaves := make([]*externalapi.DomainHash, len(transactions))
	for i, tx := range transactions {
		leaves[i] = tx.Hash()
	}
	tree := BuildMerkleTreeFromHashes(leaves)
	return Root(tree), tree
}

// BuildMerkleTreeFromHashes builds the flattened merkle tree over the given
// leaf hashes.
func BuildMerkleTreeFromHashes(leaves []*externalapi.DomainHash) []*externalapi.DomainHash {
	tree := make([]*externalapi.DomainHash, 0, TreeSize(len(leaves)))
	tree = append(tree, leaves...)

	levelOffset := 0
	for size := len(leaves); size > 1; size = nextLevelSize(size) {
		for i := 0; i < size; i += 2 {
			right := i + 1
			if right > size-1 {
				right = size - 1
			}
			tree = append(tree, hashes.HashPair(tree[levelOffset+i], tree[levelOffset+right]))
		}
		levelOffset += size
	}
	return tree
}

// Root returns the root of a flattened tree, or the zero hash for an empty tree.
func Root(tree []*externalapi.DomainHash) *externalapi.DomainHash {
	if len(tree) == 0 {
		return &externalapi.DomainHash{}
	}
	return tree[len(tree)-1]
}

// CalculateMerkleRoot returns the merkle root of the given transactions
func CalculateMerkleRoot(transactions []externalapi.Transaction) *externalapi.DomainHash {
	root, _ := BuildMerkleTree(transactions)
	return root
}

// MerkleBranch returns the sibling hashes needed to recompute the root of
// tree from the leaf at leafIndex, ordered from the leaf level upwards. The
// root itself is not included.
func MerkleBranch(tree []*externalapi.DomainHash, transactionCount int, leafIndex int) ([]*externalapi.DomainHash, error) {
	if leafIndex < 0 || leafIndex >= transactionCount {
		return nil, errors.Wrapf(ruleerrors.ErrLeafIndexOutOfRange,
			"leaf index %d is out of range for %d transactions", leafIndex, transactionCount)
	}
	if len(tree) != TreeSize(transactionCount) {
		return nil, errors.Wrapf(ruleerrors.ErrMalformedMerkleTree,
			"tree has %d nodes, while a tree over %d transactions should have %d",
			len(tree), transactionCount, TreeSize(transactionCount))
	}

	var branch []*externalapi.DomainHash
	levelOffset := 0
	for size := transactionCount; size > 1; size = nextLevelSize(size) {
		sibling := leafIndex ^ 1
		if sibling > size-1 {
			sibling = size - 1
		}
		branch = append(branch, tree[levelOffset+sibling])
		leafIndex >>= 1
		levelOffset += size
	}
	return branch, nil
}

// CheckMerkleBranch folds the branch over leafHash and returns the resulting
// root. The caller accepts the proof by comparing it with the known root.
// A negative leafIndex means the leaf was not found and yields the zero hash.
func CheckMerkleBranch(leafHash *externalapi.DomainHash, branch []*externalapi.DomainHash,
	leafIndex int) *externalapi.DomainHash {

	if leafIndex < 0 {
		return &externalapi.DomainHash{}
	}

	hash := leafHash
	for _, sibling := range branch {
		if leafIndex&1 == 1 {
			hash = hashes.HashPair(sibling, hash)
		} else {
			hash = hashes.HashPair(hash, sibling)
		}
		leafIndex >>= 1
	}
	return hash
}

// VerifyMerkleBranch returns an error when the branch over leafHash does not
// fold into expectedRoot.
func VerifyMerkleBranch(leafHash *externalapi.DomainHash, branch []*externalapi.DomainHash,
	leafIndex int, expectedRoot *externalapi.DomainHash) error {

	calculatedRoot := CheckMerkleBranch(leafHash, branch, leafIndex)
	if !calculatedRoot.Equal(expectedRoot) {
		return ruleerrors.NewErrBadMerkleProof(calculatedRoot, expectedRoot)
	}
	return nil
}

// LeafIndex returns the position of txHash among the leaves of tree.
func LeafIndex(tree []*externalapi.DomainHash, transactionCount int, txHash *externalapi.DomainHash) (int, bool) {
	if transactionCount > len(tree) {
		transactionCount = len(tree)
	}
	for i, leaf := range tree[:transactionCount] {
		if leaf.Equal(txHash) {
			return i, true
		}
	}
	return 0, false
}

// TreeIndex returns the position of hash anywhere in the flattened tree,
// internal nodes included.
func TreeIndex(tree []*externalapi.DomainHash, hash *externalapi.DomainHash) (int, bool) {
	for i, node := range tree {
		if node.Equal(hash) {
			return i, true
		}
	}
	return 0, false
}

// HasMutation returns whether any level of tree hashes two identical
// adjacent nodes together. Such a transaction list has the same root as a
// shorter list, so a block built from it must be rejected even though its
// merkle root checks out.
func HasMutation(tree []*externalapi.DomainHash, transactionCount int) bool {
	if len(tree) != TreeSize(transactionCount) {
		return false
	}

	levelOffset := 0
	for size := transactionCount; size > 1; size = nextLevelSize(size) {
		for i := 0; i+1 < size; i += 2 {
			if tree[levelOffset+i].Equal(tree[levelOffset+i+1]) {
				return true
			}
		}
		levelOffset += size
	}
	return false
}
