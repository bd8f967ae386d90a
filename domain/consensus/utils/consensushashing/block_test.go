package consensushashing

import (
	"testing"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/hashes"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/serialization"
)

func testHeader() *externalapi.DomainBlockHeader {
	return &externalapi.DomainBlockHeader{
		Version:        1,
		PrevBlockHash:  externalapi.DomainHash{0x01, 0x02},
		MerkleRootHash: externalapi.DomainHash{0x03, 0x04},
		Timestamp:      1546300800,
		Nonce:          42,
		Height:         100,
		Fuel:           10,
		FuelRate:       1,
	}
}

func TestHeaderHashIsDoubleHashOfSerialization(t *testing.T) {
	header := testHeader()
	expected := hashes.DoubleHash(serialization.SerializeHeader(header))
	if got := HeaderHash(header); !got.Equal(expected) {
		t.Fatalf("TestHeaderHashIsDoubleHashOfSerialization: Want: %s, got: %s", expected, got)
	}
}

func TestHeaderHashDeterministic(t *testing.T) {
	first := HeaderHash(testHeader())
	for i := 0; i < 10; i++ {
		if got := HeaderHash(testHeader()); !got.Equal(first) {
			t.Fatalf("TestHeaderHashDeterministic: call %d returned %s, first call returned %s", i, got, first)
		}
	}

	block := &externalapi.DomainBlock{Header: testHeader()}
	if got := BlockHash(block); !got.Equal(first) {
		t.Fatalf("TestHeaderHashDeterministic: BlockHash %s differs from HeaderHash %s", got, first)
	}
}

func TestHeaderHashCoversEveryField(t *testing.T) {
	base := HeaderHash(testHeader())

	tests := []struct {
		name   string
		mutate func(header *externalapi.DomainBlockHeader)
	}{
		{"version", func(header *externalapi.DomainBlockHeader) { header.Version++ }},
		{"prevBlockHash", func(header *externalapi.DomainBlockHeader) { header.PrevBlockHash[31] ^= 1 }},
		{"merkleRootHash", func(header *externalapi.DomainBlockHeader) { header.MerkleRootHash[0] ^= 1 }},
		{"timestamp", func(header *externalapi.DomainBlockHeader) { header.Timestamp++ }},
		{"nonce", func(header *externalapi.DomainBlockHeader) { header.Nonce++ }},
		{"height", func(header *externalapi.DomainBlockHeader) { header.SetHeight(header.Height + 1) }},
		{"fuel", func(header *externalapi.DomainBlockHeader) { header.Fuel-- }},
		{"fuelRate", func(header *externalapi.DomainBlockHeader) { header.FuelRate++ }},
	}

	for _, test := range tests {
		header := testHeader()
		test.mutate(header)
		if HeaderHash(header).Equal(base) {
			t.Errorf("TestHeaderHashCoversEveryField: changing %s did not change the hash", test.name)
		}
	}
}
