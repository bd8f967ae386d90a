package serialization

import (
	"encoding/binary"
	"io"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// errNoEncodingForType signifies that there's no encoding for the given type.
var errNoEncodingForType = errors.New("there's no encoding for this type")

var errMalformed = errors.New("errMalformed")

// byteOrder is the byte order used for every fixed width integer.
var byteOrder = binary.LittleEndian

// WriteElement writes the little endian representation of element to w.
func WriteElement(w io.Writer, element interface{}) error {
	var buf [8]byte
	switch e := element.(type) {
	case int32:
		byteOrder.PutUint32(buf[:4], uint32(e))
		return write(w, buf[:4])

	case uint32:
		byteOrder.PutUint32(buf[:4], e)
		return write(w, buf[:4])

	case int64:
		byteOrder.PutUint64(buf[:], uint64(e))
		return write(w, buf[:])

	case uint64:
		byteOrder.PutUint64(buf[:], e)
		return write(w, buf[:])

	case uint8:
		buf[0] = e
		return write(w, buf[:1])

	case externalapi.DomainHash:
		return write(w, e[:])

	case *externalapi.DomainHash:
		return write(w, e[:])

	case externalapi.DiskPosition:
		byteOrder.PutUint32(buf[:4], e.SegmentIndex)
		byteOrder.PutUint32(buf[4:], e.Offset)
		return write(w, buf[:])
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to write type %T", element)
}

// WriteElements writes multiple items to w. It is equivalent to multiple
// calls to WriteElement.
func WriteElements(w io.Writer, elements ...interface{}) error {
	for _, element := range elements {
		err := WriteElement(w, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// ReadElement reads the next sequence of bytes from r using little endian
// depending on the concrete type of element pointed to.
func ReadElement(r io.Reader, element interface{}) error {
	var buf [8]byte
	switch e := element.(type) {
	case *int32:
		if err := read(r, buf[:4]); err != nil {
			return err
		}
		*e = int32(byteOrder.Uint32(buf[:4]))
		return nil

	case *uint32:
		if err := read(r, buf[:4]); err != nil {
			return err
		}
		*e = byteOrder.Uint32(buf[:4])
		return nil

	case *int64:
		if err := read(r, buf[:]); err != nil {
			return err
		}
		*e = int64(byteOrder.Uint64(buf[:]))
		return nil

	case *uint64:
		if err := read(r, buf[:]); err != nil {
			return err
		}
		*e = byteOrder.Uint64(buf[:])
		return nil

	case *uint8:
		if err := read(r, buf[:1]); err != nil {
			return err
		}
		*e = buf[0]
		return nil

	case *externalapi.DomainHash:
		return read(r, e[:])

	case *externalapi.DiskPosition:
		if err := read(r, buf[:]); err != nil {
			return err
		}
		e.SegmentIndex = byteOrder.Uint32(buf[:4])
		e.Offset = byteOrder.Uint32(buf[4:])
		return nil
	}

	return errors.Wrapf(errNoEncodingForType, "couldn't find a way to read type %T", element)
}

// ReadElements reads multiple items from r. It is equivalent to multiple
// calls to ReadElement.
func ReadElements(r io.Reader, elements ...interface{}) error {
	for _, element := range elements {
		err := ReadElement(r, element)
		if err != nil {
			return err
		}
	}
	return nil
}

// IsMalformedError returns whether the error indicates a malformed data source
func IsMalformedError(err error) bool {
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) || errors.Is(err, errMalformed)
}

func write(w io.Writer, p []byte) error {
	_, err := w.Write(p)
	return errors.WithStack(err)
}

func read(r io.Reader, p []byte) error {
	_, err := io.ReadFull(r, p)
	return errors.WithStack(err)
}
