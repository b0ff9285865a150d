// Package interval implements hour-granularity interval arithmetic for
// room bookings. An interval [start, end) is half-open: a booking ending
// at hour 12 does not conflict with one starting at hour 12.
package interval

// MinHour and MaxHour bound the bookable hours of a day.
const (
	MinHour = 0
	MaxHour = 24
)

// Overlaps reports whether the half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. This is the single overlap predicate for the
// whole service; conflict checks and availability queries must not
// reimplement it.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// ValidHour reports whether h is a valid hour boundary.
func ValidHour(h int) bool {
	return h >= MinHour && h <= MaxHour
}

// ValidRange reports whether [start, end) is a non-empty interval inside
// the bookable day.
func ValidRange(start, end int) bool {
	return ValidHour(start) && ValidHour(end) && start < end
}
