package serialization

import (
	"bytes"
	"io"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/pkg/errors"
)

// HeaderSize is the number of bytes a serialized header takes:
// version, timestamp, nonce, height, fuel and fuel rate at 4 bytes each,
// plus the previous block hash and the merkle root.
const HeaderSize = 6*4 + 2*externalapi.DomainHashSize

// DiskPositionSize is the number of bytes a serialized DiskPosition takes.
const DiskPositionSize = 8

// WriteHeader writes the header fields to w in their canonical order.
func WriteHeader(w io.Writer, header *externalapi.DomainBlockHeader) error {
	return WriteElements(w, header.Version, header.PrevBlockHash, header.MerkleRootHash,
		header.Timestamp, header.Nonce, header.Height, header.Fuel, header.FuelRate)
}

// ReadHeader reads a header written by WriteHeader from r.
func ReadHeader(r io.Reader) (*externalapi.DomainBlockHeader, error) {
	header := &externalapi.DomainBlockHeader{}
	err := ReadElements(r, &header.Version, &header.PrevBlockHash, &header.MerkleRootHash,
		&header.Timestamp, &header.Nonce, &header.Height, &header.Fuel, &header.FuelRate)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// SerializeHeader returns the canonical bytes of header.
func SerializeHeader(header *externalapi.DomainBlockHeader) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	err := WriteHeader(buf, header)
	if err != nil {
		// bytes.Buffer only fails when out of memory, which panics on its own.
		panic(errors.Wrap(err, "this should never happen. bytes.Buffer writes do not fail"))
	}
	return buf.Bytes()
}

// DeserializeHeader parses bytes produced by SerializeHeader.
func DeserializeHeader(serializedHeader []byte) (*externalapi.DomainBlockHeader, error) {
	if len(serializedHeader) != HeaderSize {
		return nil, errors.Wrapf(errMalformed, "serialized header is %d bytes, while it should be %d",
			len(serializedHeader), HeaderSize)
	}
	return ReadHeader(bytes.NewReader(serializedHeader))
}
