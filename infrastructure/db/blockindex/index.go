package blockindex

import (
	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/consensushashing"
	"github.com/AntiLogi/WaykiChain/infrastructure/db/database/ldb"
	"github.com/pkg/errors"
)

var blockEntryPrefix = []byte("b")

func blockEntryKey(blockHash *externalapi.DomainHash) []byte {
	key := make([]byte, 0, len(blockEntryPrefix)+externalapi.DomainHashSize)
	key = append(key, blockEntryPrefix...)
	return append(key, blockHash.ByteSlice()...)
}

// Index maps block hashes to the disk positions of their data.
type Index struct {
	db *ldb.LevelDB
}

// Open opens the block index stored at path, creating it if needed.
func Open(path string) (*Index, error) {
	db, err := ldb.NewLevelDB(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open the block index at %s", path)
	}
	log.Debugf("Opened block index at %s", path)
	return &Index{db: db}, nil
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// Put stores entry under the hash of its header and returns that hash.
func (idx *Index) Put(entry *Entry) (*externalapi.DomainHash, error) {
	serializedEntry, err := serializeEntry(entry)
	if err != nil {
		return nil, err
	}
	blockHash := consensushashing.HeaderHash(entry.Header)
	err = idx.db.Put(blockEntryKey(blockHash), serializedEntry)
	if err != nil {
		return nil, err
	}
	log.Tracef("Indexed block %s: data at %s, undo at %s", blockHash, entry.DataPosition, entry.UndoPosition)
	return blockHash, nil
}

// Get returns the entry of the given block. found is false when the block
// is not indexed.
func (idx *Index) Get(blockHash *externalapi.DomainHash) (entry *Entry, found bool, err error) {
	serializedEntry, err := idx.db.Get(blockEntryKey(blockHash))
	if err != nil {
		return nil, false, err
	}
	if serializedEntry == nil {
		return nil, false, nil
	}
	entry, err = deserializeEntry(serializedEntry)
	if err != nil {
		return nil, false, errors.Wrapf(err, "block %s", blockHash)
	}
	return entry, true, nil
}

// Has returns whether the given block is indexed.
func (idx *Index) Has(blockHash *externalapi.DomainHash) (bool, error) {
	return idx.db.Has(blockEntryKey(blockHash))
}

// Delete removes the entry of the given block.
func (idx *Index) Delete(blockHash *externalapi.DomainHash) error {
	return idx.db.Delete(blockEntryKey(blockHash))
}

// ForEach calls f with every indexed block in hash byte order.
func (idx *Index) ForEach(f func(blockHash *externalapi.DomainHash, entry *Entry) error) error {
	return idx.db.ForEach(blockEntryPrefix, func(key []byte, value []byte) error {
		blockHash, err := externalapi.NewDomainHashFromByteSlice(key[len(blockEntryPrefix):])
		if err != nil {
			return errors.Wrapf(ErrMalformedEntry, "key %x: %s", key, err)
		}
		entry, err := deserializeEntry(value)
		if err != nil {
			return errors.Wrapf(err, "block %s", blockHash)
		}
		return f(blockHash, entry)
	})
}
