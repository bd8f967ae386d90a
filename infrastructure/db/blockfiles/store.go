package blockfiles

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// Kind selects which family of segment files a position refers to.
type Kind string

// Segment file kinds.
const (
	// BlockKind segments hold serialized blocks.
	BlockKind Kind = "blk"

	// UndoKind segments hold the undo data of blocks.
	UndoKind Kind = "rev"
)

const blocksDirectoryName = "blocks"

var (
	// ErrCreateDirectory is returned when the blocks directory cannot be created.
	ErrCreateDirectory = errors.New("unable to create blocks directory")

	// ErrOpenFailed is returned when an existing segment cannot be opened, or
	// when a missing segment is opened read-only.
	ErrOpenFailed = errors.New("unable to open segment file")

	// ErrCreateFailed is returned when a missing segment cannot be created.
	ErrCreateFailed = errors.New("unable to create segment file")

	// ErrSeekFailed is returned when the handle cannot be moved to the
	// position's offset.
	ErrSeekFailed = errors.New("unable to seek segment file")
)

// Store resolves disk positions into open segment file handles under
// <dataDir>/blocks.
type Store struct {
	dataDir string
}

// New returns a Store rooted at dataDir.
func New(dataDir string) *Store {
	return &Store{dataDir: dataDir}
}

// SegmentPath returns the path of the segment file of the given kind and index.
func (s *Store) SegmentPath(kind Kind, segmentIndex uint32) string {
	fileName := fmt.Sprintf("%s%05d.dat", kind, segmentIndex)
	return filepath.Join(s.dataDir, blocksDirectoryName, fileName)
}

// Open returns a handle to the segment file referenced by position, placed
// at the position's offset. A null position yields a nil handle and a nil
// error without touching the filesystem.
//
// The file is opened for reading and writing. When it does not exist it is
// created, unless readOnly is set, in which case Open fails with
// ErrOpenFailed and nothing is created. The caller owns the returned handle.
func (s *Store) Open(position externalapi.DiskPosition, kind Kind, readOnly bool) (*os.File, error) {
	if position.IsNull() {
		return nil, nil
	}

	path := s.SegmentPath(kind, position.SegmentIndex)
	err := os.MkdirAll(filepath.Dir(path), 0700)
	if err != nil {
		log.Infof("Unable to create directory for %s: %s", path, err)
		return nil, errors.Wrapf(ErrCreateDirectory, "%s: %s", filepath.Dir(path), err)
	}

	file, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		if !os.IsNotExist(err) || readOnly {
			log.Infof("Unable to open file %s", path)
			return nil, errors.Wrapf(ErrOpenFailed, "%s: %s", path, err)
		}
		file, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
		if err != nil {
			log.Infof("Unable to open file %s", path)
			return nil, errors.Wrapf(ErrCreateFailed, "%s: %s", path, err)
		}
	}

	if position.Offset != 0 {
		_, err := file.Seek(int64(position.Offset), io.SeekStart)
		if err != nil {
			log.Infof("Unable to seek to position %d of %s", position.Offset, path)
			_ = file.Close()
			return nil, errors.Wrapf(ErrSeekFailed, "%s at offset %d: %s", path, position.Offset, err)
		}
	}
	return file, nil
}

// OpenBlockFile opens the block segment referenced by position.
func (s *Store) OpenBlockFile(position externalapi.DiskPosition, readOnly bool) (*os.File, error) {
	return s.Open(position, BlockKind, readOnly)
}

// OpenUndoFile opens the undo segment referenced by position.
func (s *Store) OpenUndoFile(position externalapi.DiskPosition, readOnly bool) (*os.File, error) {
	return s.Open(position, UndoKind, readOnly)
}

// WithFile opens the segment referenced by position, passes the handle to f
// and closes it once f returns. f is not called for a null position.
func (s *Store) WithFile(position externalapi.DiskPosition, kind Kind, readOnly bool,
	f func(file *os.File) error) error {

	file, err := s.Open(position, kind, readOnly)
	if err != nil {
		return err
	}
	if file == nil {
		return nil
	}
	defer file.Close()

	return f(file)
}
