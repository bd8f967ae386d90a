package externalapi

import (
	"fmt"
	"math"
)

// DiskPosition addresses a byte offset inside one numbered segment file.
type DiskPosition struct {
	SegmentIndex uint32
	Offset       uint32
}

// nullSegmentIndex marks a position that refers to no file at all.
const nullSegmentIndex = math.MaxUint32

// NullDiskPosition returns the position that refers to no file.
func NullDiskPosition() DiskPosition {
	return DiskPosition{SegmentIndex: nullSegmentIndex}
}

// IsNull returns whether position refers to no file.
func (position DiskPosition) IsNull() bool {
	return position.SegmentIndex == nullSegmentIndex
}

func (position DiskPosition) String() string {
	if position.IsNull() {
		return "DiskPosition(null)"
	}
	return fmt.Sprintf("DiskPosition(segment=%d, offset=%d)", position.SegmentIndex, position.Offset)
}
