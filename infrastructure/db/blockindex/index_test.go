package blockindex

import (
	"testing"

	"github.com/AntiLogi/WaykiChain/domain/consensus/model/externalapi"
	"github.com/AntiLogi/WaykiChain/domain/consensus/utils/consensushashing"
	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
)

func openIndexForTest(t *testing.T, testName string) *Index {
	idx, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("%s: Open unexpectedly failed: %s", testName, err)
	}
	t.Cleanup(func() {
		_ = idx.Close()
	})
	return idx
}

func testEntry(nonce uint32) *Entry {
	return &Entry{
		Header: &externalapi.DomainBlockHeader{
			Version:        1,
			PrevBlockHash:  externalapi.DomainHash{0x01},
			MerkleRootHash: externalapi.DomainHash{0x02},
			Timestamp:      1500000000,
			Nonce:          nonce,
			Height:         10,
			Fuel:           20,
			FuelRate:       100,
		},
		DataPosition: externalapi.DiskPosition{SegmentIndex: 1, Offset: 8},
		UndoPosition: externalapi.NullDiskPosition(),
	}
}

func TestIndexRoundTrip(t *testing.T) {
	idx := openIndexForTest(t, "TestIndexRoundTrip")
	entry := testEntry(7)

	blockHash, err := idx.Put(entry)
	if err != nil {
		t.Fatalf("TestIndexRoundTrip: Put: %s", err)
	}
	if !blockHash.Equal(consensushashing.HeaderHash(entry.Header)) {
		t.Fatalf("TestIndexRoundTrip: Put returned %s, which is not the header hash", blockHash)
	}

	got, found, err := idx.Get(blockHash)
	if err != nil || !found {
		t.Fatalf("TestIndexRoundTrip: Get returned (found: %t, err: %v)", found, err)
	}
	if !got.Header.Equal(entry.Header) || got.DataPosition != entry.DataPosition ||
		!got.UndoPosition.IsNull() {
		t.Fatalf("TestIndexRoundTrip: entry mismatch. Want: %s, got: %s",
			spew.Sdump(entry), spew.Sdump(got))
	}

	exists, err := idx.Has(blockHash)
	if err != nil || !exists {
		t.Fatalf("TestIndexRoundTrip: Has returned (%t, %v)", exists, err)
	}
}

func TestIndexMissing(t *testing.T) {
	idx := openIndexForTest(t, "TestIndexMissing")

	entry, found, err := idx.Get(&externalapi.DomainHash{0xaa})
	if err != nil || found || entry != nil {
		t.Fatalf("TestIndexMissing: expected nothing, got (%v, %t, %v)", entry, found, err)
	}

	blockHash, err := idx.Put(testEntry(1))
	if err != nil {
		t.Fatalf("TestIndexMissing: Put: %s", err)
	}
	if err := idx.Delete(blockHash); err != nil {
		t.Fatalf("TestIndexMissing: Delete: %s", err)
	}
	exists, err := idx.Has(blockHash)
	if err != nil || exists {
		t.Fatalf("TestIndexMissing: Has after Delete returned (%t, %v)", exists, err)
	}
}

func TestIndexForEach(t *testing.T) {
	idx := openIndexForTest(t, "TestIndexForEach")

	expected := make(map[externalapi.DomainHash]uint32)
	for nonce := uint32(0); nonce < 5; nonce++ {
		blockHash, err := idx.Put(testEntry(nonce))
		if err != nil {
			t.Fatalf("TestIndexForEach: Put: %s", err)
		}
		expected[*blockHash] = nonce
	}

	seen := 0
	err := idx.ForEach(func(blockHash *externalapi.DomainHash, entry *Entry) error {
		nonce, ok := expected[*blockHash]
		if !ok || entry.Header.Nonce != nonce {
			t.Errorf("TestIndexForEach: unexpected entry %s for %s", spew.Sdump(entry), blockHash)
		}
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("TestIndexForEach: ForEach: %s", err)
	}
	if seen != len(expected) {
		t.Fatalf("TestIndexForEach: saw %d entries, want %d", seen, len(expected))
	}
}

func TestDeserializeEntryBadLength(t *testing.T) {
	serializedEntry, err := serializeEntry(testEntry(3))
	if err != nil {
		t.Fatalf("TestDeserializeEntryBadLength: serializeEntry: %s", err)
	}
	if len(serializedEntry) != serializedEntrySize {
		t.Fatalf("TestDeserializeEntryBadLength: serialized entry is %d bytes, want %d",
			len(serializedEntry), serializedEntrySize)
	}

	_, err = deserializeEntry(serializedEntry[:len(serializedEntry)-1])
	if !errors.Is(err, ErrMalformedEntry) {
		t.Fatalf("TestDeserializeEntryBadLength: expected ErrMalformedEntry, got %v", err)
	}
}
