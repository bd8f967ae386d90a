package externalapi

import (
	"reflect"
	"testing"
)

func TestDomainBlockHeader_Equal(t *testing.T) {
	type headerToCompare struct {
		header         *DomainBlockHeader
		expectedResult bool
	}
	baseHeader := &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 4, 5, 6, 7, 8}
	tests := []struct {
		baseHeader         *DomainBlockHeader
		headersToCompareTo []headerToCompare
	}{
		{
			baseHeader: nil,
			headersToCompareTo: []headerToCompare{
				{header: nil, expectedResult: true},
				{header: baseHeader, expectedResult: false},
			},
		},
		{
			baseHeader: baseHeader,
			headersToCompareTo: []headerToCompare{
				{header: nil, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 4, 5, 6, 7, 8}, expectedResult: true},
				{header: &DomainBlockHeader{100, DomainHash{2}, DomainHash{3}, 4, 5, 6, 7, 8}, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{100}, DomainHash{3}, 4, 5, 6, 7, 8}, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{2}, DomainHash{100}, 4, 5, 6, 7, 8}, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 100, 5, 6, 7, 8}, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 4, 100, 6, 7, 8}, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 4, 5, 100, 7, 8}, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 4, 5, 6, 100, 8}, expectedResult: false},
				{header: &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 4, 5, 6, 7, 100}, expectedResult: false},
			},
		},
	}

	for i, test := range tests {
		for j, subTest := range test.headersToCompareTo {
			result := test.baseHeader.Equal(subTest.header)
			if result != subTest.expectedResult {
				t.Fatalf("Test #%d:%d: Expected %t but got %t", i, j, subTest.expectedResult, result)
			}
		}
	}
}

func TestDomainBlockHeader_Clone(t *testing.T) {
	header := &DomainBlockHeader{1, DomainHash{2}, DomainHash{3}, 4, 5, 6, 7, 8}
	clone := header.Clone()
	if !reflect.DeepEqual(header, clone) {
		t.Fatalf("TestDomainBlockHeader_Clone: clone differs from original")
	}

	clone.SetHeight(9)
	if header.Height != 6 {
		t.Fatalf("TestDomainBlockHeader_Clone: mutating the clone changed the original height to %d",
			header.Height)
	}
	if clone.Height != 9 {
		t.Fatalf("TestDomainBlockHeader_Clone: SetHeight did not set the height, got %d", clone.Height)
	}
}

func TestDomainHashString(t *testing.T) {
	hash := DomainHash{0x01}
	str := hash.String()
	expected := "0000000000000000000000000000000000000000000000000000000000000001"
	if str != expected {
		t.Fatalf("TestDomainHashString: unexpected display string. Want: %s, got: %s", expected, str)
	}

	parsed, err := NewDomainHashFromString(str)
	if err != nil {
		t.Fatalf("TestDomainHashString: NewDomainHashFromString: %s", err)
	}
	if !parsed.Equal(&hash) {
		t.Fatalf("TestDomainHashString: parsed hash %s differs from %s", parsed, hash)
	}

	_, err = NewDomainHashFromString("00")
	if err == nil {
		t.Fatalf("TestDomainHashString: expected an error for a short hash string")
	}
}

func TestDiskPositionNull(t *testing.T) {
	if !NullDiskPosition().IsNull() {
		t.Fatalf("TestDiskPositionNull: NullDiskPosition is not null")
	}
	if (DiskPosition{}).IsNull() {
		t.Fatalf("TestDiskPositionNull: the zero position must address segment 0")
	}
}
