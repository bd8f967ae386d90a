package blockfiles

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"sync"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/infrastructure/logger"
	"github.com/pkg/errors"
)

const (
	magicLength      = 4
	dataLengthLength = 4

	// RecordHeaderSize is the size of the frame preceding every record:
	// the network magic followed by the data length.
	RecordHeaderSize = magicLength + dataLengthLength

	// DefaultMaxSegmentSize is the size at which a segment is closed and
	// appends move on to the next one.
	//
	// NOTE: Offsets are uint32, so this value must be less than 2^32.
	DefaultMaxSegmentSize uint32 = 128 * 1024 * 1024 // 128 MiB
)

var byteOrder = binary.LittleEndian

var (
	// ErrBadMagic is returned when a record's frame does not start with the
	// expected network magic.
	ErrBadMagic = errors.New("record magic mismatch")

	// ErrShortRecord is returned when a record is truncated, or when a
	// position cannot be preceded by a record frame.
	ErrShortRecord = errors.New("short record")

	// ErrRecordTooLarge is returned when a record cannot be addressed by
	// uint32 offsets.
	ErrRecordTooLarge = errors.New("record too large")
)

// SegmentWriter appends framed records to the segment files of one kind,
// starting a new segment whenever the current one would grow past its
// maximum size.
//
// Format: <magic><data length><data>
type SegmentWriter struct {
	store          *Store
	kind           Kind
	magic          [4]byte
	maxSegmentSize uint32

	mutex          sync.Mutex
	currentSegment uint32
	currentOffset  uint32
}

// NewSegmentWriter returns a SegmentWriter whose cursor is placed at the end
// of the latest existing segment of the given kind.
func NewSegmentWriter(store *Store, kind Kind, magic [4]byte, maxSegmentSize uint32) (*SegmentWriter, error) {
	if maxSegmentSize <= RecordHeaderSize {
		return nil, errors.Errorf("max segment size %d must be larger than the record header size %d",
			maxSegmentSize, RecordHeaderSize)
	}
	segment, offset, err := findCurrentLocation(store, kind)
	if err != nil {
		return nil, err
	}
	return &SegmentWriter{
		store:          store,
		kind:           kind,
		magic:          magic,
		maxSegmentSize: maxSegmentSize,
		currentSegment: segment,
		currentOffset:  offset,
	}, nil
}

// writeRecord writes record at the handle's position and syncs it to disk.
// It's defined as a variable for the sake of testing.
var writeRecord = func(file *os.File, record []byte) error {
	_, err := file.Write(record)
	if err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(file.Sync())
}

// findCurrentLocation scans the segments of the given kind for the end of
// the most recent one.
func findCurrentLocation(store *Store, kind Kind) (segment uint32, offset uint32, err error) {
	onEnd := logger.LogAndMeasureExecutionTime(log, "findCurrentLocation")
	defer onEnd()

	currentSegment := uint32(0)
	currentLength := uint32(0)
	for {
		stat, err := os.Stat(store.SegmentPath(kind, currentSegment))
		if err != nil {
			if !os.IsNotExist(err) {
				return 0, 0, errors.WithStack(err)
			}
			if currentSegment > 0 {
				segment = currentSegment - 1
			}
			offset = currentLength
			break
		}
		currentLength = uint32(stat.Size())
		currentSegment++
	}

	log.Tracef("Scan for '%s' segments found latest segment #%d with length %d",
		kind, segment, offset)
	return segment, offset, nil
}

// Position returns the position the next record frame will be written at.
func (w *SegmentWriter) Position() externalapi.DiskPosition {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	return externalapi.DiskPosition{SegmentIndex: w.currentSegment, Offset: w.currentOffset}
}

// Append writes data as a single framed record and returns the position of
// the data itself, just past the frame header.
func (w *SegmentWriter) Append(data []byte) (externalapi.DiskPosition, error) {
	if uint64(len(data))+RecordHeaderSize > math.MaxUint32 {
		return externalapi.DiskPosition{}, errors.Wrapf(ErrRecordTooLarge, "%d bytes", len(data))
	}
	recordSize := uint32(len(data)) + RecordHeaderSize

	w.mutex.Lock()
	defer w.mutex.Unlock()

	// Start a new segment when the record would push the current one past
	// its maximum size. A record larger than the maximum still gets a
	// segment of its own.
	if w.currentOffset > 0 && uint64(w.currentOffset)+uint64(recordSize) > uint64(w.maxSegmentSize) {
		if w.currentSegment == math.MaxUint32-1 {
			return externalapi.DiskPosition{}, errors.Errorf("'%s' segments exhausted", w.kind)
		}
		w.currentSegment++
		w.currentOffset = 0
		log.Debugf("Starting '%s' segment #%d", w.kind, w.currentSegment)
	}
	if uint64(w.currentOffset)+uint64(recordSize) > math.MaxUint32 {
		return externalapi.DiskPosition{}, errors.Wrapf(ErrRecordTooLarge,
			"%d bytes at offset %d", len(data), w.currentOffset)
	}

	record := make([]byte, recordSize)
	copy(record[:magicLength], w.magic[:])
	byteOrder.PutUint32(record[magicLength:RecordHeaderSize], uint32(len(data)))
	copy(record[RecordHeaderSize:], data)

	framePosition := externalapi.DiskPosition{SegmentIndex: w.currentSegment, Offset: w.currentOffset}
	err := w.store.WithFile(framePosition, w.kind, false, func(file *os.File) error {
		err := writeRecord(file, record)
		if err == nil {
			return nil
		}
		// Drop whatever part of the record made it to disk so that a
		// restart resumes exactly at the cursor.
		truncateErr := file.Truncate(int64(framePosition.Offset))
		if truncateErr != nil {
			log.Errorf("Failed to roll back '%s' segment #%d to offset %d: %s",
				w.kind, framePosition.SegmentIndex, framePosition.Offset, truncateErr)
		}
		return errors.Wrapf(err, "failed to write record to '%s' segment #%d at offset %d",
			w.kind, framePosition.SegmentIndex, framePosition.Offset)
	})
	if err != nil {
		return externalapi.DiskPosition{}, err
	}

	w.currentOffset += recordSize
	return externalapi.DiskPosition{
		SegmentIndex: framePosition.SegmentIndex,
		Offset:       framePosition.Offset + RecordHeaderSize,
	}, nil
}

// ReadRecord reads the record whose data starts at position, as returned by
// SegmentWriter.Append, checking its frame against magic.
func ReadRecord(store *Store, kind Kind, magic [4]byte, position externalapi.DiskPosition) ([]byte, error) {
	if position.IsNull() {
		return nil, errors.Errorf("cannot read a record at the null position")
	}
	if position.Offset < RecordHeaderSize {
		return nil, errors.Wrapf(ErrShortRecord, "no room for a record frame before %s", position)
	}

	framePosition := externalapi.DiskPosition{
		SegmentIndex: position.SegmentIndex,
		Offset:       position.Offset - RecordHeaderSize,
	}
	var data []byte
	err := store.WithFile(framePosition, kind, true, func(file *os.File) error {
		header := make([]byte, RecordHeaderSize)
		_, err := io.ReadFull(file, header)
		if err != nil {
			return shortRecordError(err, position)
		}
		if [4]byte{header[0], header[1], header[2], header[3]} != magic {
			return errors.Wrapf(ErrBadMagic, "got %x, want %x at %s", header[:magicLength], magic, position)
		}

		// The length comes from the file, so it is checked against the file
		// size before anything is allocated for it.
		dataLength := byteOrder.Uint32(header[magicLength:])
		stat, err := file.Stat()
		if err != nil {
			return errors.Wrapf(err, "failed to stat segment of record at %s", position)
		}
		if int64(position.Offset)+int64(dataLength) > stat.Size() {
			return errors.Wrapf(ErrShortRecord, "record at %s claims %d bytes, segment holds %d",
				position, dataLength, stat.Size())
		}

		data = make([]byte, dataLength)
		_, err = io.ReadFull(file, data)
		if err != nil {
			return shortRecordError(err, position)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

func shortRecordError(err error, position externalapi.DiskPosition) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.Wrapf(ErrShortRecord, "at %s", position)
	}
	return errors.Wrapf(err, "failed to read record at %s", position)
}
