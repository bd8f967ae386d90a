package blockindex

import (
	"bytes"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/serialization"
	"github.com/pkg/errors"
)

// Entry locates the stored data of one block.
type Entry struct {
	Header       *externalapi.DomainBlockHeader
	DataPosition externalapi.DiskPosition
	UndoPosition externalapi.DiskPosition
}

// serializedEntrySize is the size of a serialized Entry: the header
// followed by the data and undo positions.
const serializedEntrySize = serialization.HeaderSize + 2*serialization.DiskPositionSize

// ErrMalformedEntry is returned when a stored entry cannot be parsed.
var ErrMalformedEntry = errors.New("malformed block index entry")

func serializeEntry(entry *Entry) ([]byte, error) {
	buf := bytes.NewBuffer(make([]byte, 0, serializedEntrySize))
	err := serialization.WriteHeader(buf, entry.Header)
	if err != nil {
		return nil, err
	}
	err = serialization.WriteElements(buf, entry.DataPosition, entry.UndoPosition)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deserializeEntry(serializedEntry []byte) (*Entry, error) {
	if len(serializedEntry) != serializedEntrySize {
		return nil, errors.Wrapf(ErrMalformedEntry, "entry is %d bytes, while it should be %d",
			len(serializedEntry), serializedEntrySize)
	}

	reader := bytes.NewReader(serializedEntry)
	header, err := serialization.ReadHeader(reader)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedEntry, "header: %s", err)
	}
	entry := &Entry{Header: header}
	err = serialization.ReadElements(reader, &entry.DataPosition, &entry.UndoPosition)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedEntry, "positions: %s", err)
	}
	return entry, nil
}
