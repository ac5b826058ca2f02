package domain

import "github.com/glamly/BSP-SchedulingService/pkg/types"

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Intervals that merely touch at an endpoint
// do not overlap: a booking ending at 10:00 leaves 10:00 free.
func Overlaps(aStart, aEnd, bStart, bEnd types.TimeString) bool {
	return aStart.IsBefore(bEnd) && bStart.IsBefore(aEnd)
}
