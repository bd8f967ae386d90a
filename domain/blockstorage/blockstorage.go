package blockstorage

import (
	"path/filepath"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/blockfees"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/consensushashing"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/merkle"
	"github.com/AntiLogi/WaykiChain/infrastructure/db/blockfiles"
	"github.com/AntiLogi/WaykiChain/infrastructure/db/blockindex"
	"github.com/AntiLogi/WaykiChain/infrastructure/logger"
	"github.com/pkg/errors"
)

const indexDirectoryName = "index"

// IndexPath returns the path of the block index under dataDir.
func IndexPath(dataDir string) string {
	return filepath.Join(dataDir, indexDirectoryName)
}

var (
	// ErrBlockNotFound is returned when a block is not in the index.
	ErrBlockNotFound = errors.New("block not found")

	// ErrNoUndoData is returned when a block was stored without undo data.
	ErrNoUndoData = errors.New("block has no undo data")
)

// Config holds what BlockStorage needs to lay out its files.
type Config struct {
	DataDir        string
	Magic          [4]byte
	MaxSegmentSize uint32
}

// BlockStorage stores serialized blocks and their undo data in segment
// files and indexes them by block hash.
type BlockStorage struct {
	magic      [4]byte
	store      *blockfiles.Store
	index      *blockindex.Index
	blockFiles *blockfiles.SegmentWriter
	undoFiles  *blockfiles.SegmentWriter
}

// New opens the block storage under cfg.DataDir.
func New(cfg *Config) (*BlockStorage, error) {
	store := blockfiles.New(cfg.DataDir)
	blockFiles, err := blockfiles.NewSegmentWriter(store, blockfiles.BlockKind, cfg.Magic, cfg.MaxSegmentSize)
	if err != nil {
		return nil, err
	}
	undoFiles, err := blockfiles.NewSegmentWriter(store, blockfiles.UndoKind, cfg.Magic, cfg.MaxSegmentSize)
	if err != nil {
		return nil, err
	}
	index, err := blockindex.Open(IndexPath(cfg.DataDir))
	if err != nil {
		return nil, err
	}

	log.Infof("Block storage opened at %s, next block record at %s",
		cfg.DataDir, blockFiles.Position())
	return &BlockStorage{
		magic:      cfg.Magic,
		store:      store,
		index:      index,
		blockFiles: blockFiles,
		undoFiles:  undoFiles,
	}, nil
}

// Close closes the block index. Segment handles are never held open.
func (bs *BlockStorage) Close() error {
	return bs.index.Close()
}

// StoreBlock appends blockBytes, and undoBytes when not empty, to the
// segment files and indexes them under the hash of header, which it
// returns.
func (bs *BlockStorage) StoreBlock(header *externalapi.DomainBlockHeader,
	blockBytes []byte, undoBytes []byte) (*externalapi.DomainHash, error) {

	dataPosition, err := bs.blockFiles.Append(blockBytes)
	if err != nil {
		return nil, err
	}
	undoPosition := externalapi.NullDiskPosition()
	if len(undoBytes) > 0 {
		undoPosition, err = bs.undoFiles.Append(undoBytes)
		if err != nil {
			return nil, err
		}
	}

	blockHash, err := bs.index.Put(&blockindex.Entry{
		Header:       header.Clone(),
		DataPosition: dataPosition,
		UndoPosition: undoPosition,
	})
	if err != nil {
		return nil, err
	}
	log.Debugf("Stored block %s at height %d: data at %s, undo at %s",
		blockHash, header.Height, dataPosition, undoPosition)
	return blockHash, nil
}

// StoreBlockTree validates the merkle root of the block held by tree
// against its header, then stores it like StoreBlock.
func (bs *BlockStorage) StoreBlockTree(tree *merkle.BlockTree,
	blockBytes []byte, undoBytes []byte) (*externalapi.DomainHash, error) {

	err := tree.ValidateMerkleRoot()
	if err != nil {
		return nil, err
	}
	return bs.StoreBlock(tree.Block().Header, blockBytes, undoBytes)
}

func (bs *BlockStorage) entry(blockHash *externalapi.DomainHash) (*blockindex.Entry, error) {
	entry, found, err := bs.index.Get(blockHash)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.Wrapf(ErrBlockNotFound, "block %s", blockHash)
	}
	return entry, nil
}

// HasBlock returns whether the given block is stored.
func (bs *BlockStorage) HasBlock(blockHash *externalapi.DomainHash) (bool, error) {
	return bs.index.Has(blockHash)
}

// FetchHeader returns the header of the given block.
func (bs *BlockStorage) FetchHeader(blockHash *externalapi.DomainHash) (*externalapi.DomainBlockHeader, error) {
	entry, err := bs.entry(blockHash)
	if err != nil {
		return nil, err
	}
	return entry.Header, nil
}

// FetchBlock returns the serialized block of the given hash.
func (bs *BlockStorage) FetchBlock(blockHash *externalapi.DomainHash) ([]byte, error) {
	entry, err := bs.entry(blockHash)
	if err != nil {
		return nil, err
	}
	return blockfiles.ReadRecord(bs.store, blockfiles.BlockKind, bs.magic, entry.DataPosition)
}

// FetchUndo returns the undo data of the given block.
func (bs *BlockStorage) FetchUndo(blockHash *externalapi.DomainHash) ([]byte, error) {
	entry, err := bs.entry(blockHash)
	if err != nil {
		return nil, err
	}
	if entry.UndoPosition.IsNull() {
		return nil, errors.Wrapf(ErrNoUndoData, "block %s", blockHash)
	}
	return blockfiles.ReadRecord(bs.store, blockfiles.UndoKind, bs.magic, entry.UndoPosition)
}

// PrintBlock logs a one line summary of the block held by tree.
func PrintBlock(tree *merkle.BlockTree) {
	block := tree.Block()
	header := block.Header
	log.Infof("CBlock(hash=%s, ver=%d, hashPrevBlock=%s, merkleRootHash=%s, nTime=%d, nNonce=%d, "+
		"vtx=%d, nFuel=%d, nFuelRate=%d)",
		consensushashing.HeaderHash(header), header.Version, &header.PrevBlockHash, &header.MerkleRootHash,
		header.Timestamp, header.Nonce, len(block.Transactions), header.Fuel, header.FuelRate)
	if log.Level() <= logger.LevelDebug {
		log.Debugf("Block %s: merkle root of transactions %s, fees %d, mutated %t",
			consensushashing.HeaderHash(header), tree.Root(), blockfees.BlockFees(block), tree.HasMutation())
	}
}
