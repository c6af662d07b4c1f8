// Package schedule computes the fixed daily slot grid and the free slots
// left after subtracting booked ones. It has no dependencies on storage.
package schedule

import "time"

const (
	// slotLayout renders labels like "09:00AM".
	slotLayout = "03:04PM"
	dateLayout = "2006-01-02"

	gridStartHour = 9
	gridEndHour   = 17 // end-exclusive: last slot starts at 16:00
)

// Grid returns the fixed ordered slot labels for any calendar date:
// 09:00AM through 04:00PM, hourly.
func Grid() []string {
	day := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	slots := make([]string, 0, gridEndHour-gridStartHour)
	for h := gridStartHour; h < gridEndHour; h++ {
		slots = append(slots, day.Add(time.Duration(h)*time.Hour).Format(slotLayout))
	}
	return slots
}

// Available subtracts booked labels from the grid, preserving grid order.
// Labels outside the grid are ignored.
func Available(booked []string) []string {
	taken := make(map[string]struct{}, len(booked))
	for _, b := range booked {
		taken[b] = struct{}{}
	}

	free := make([]string, 0, gridEndHour-gridStartHour)
	for _, slot := range Grid() {
		if _, ok := taken[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free
}

// ValidLabel reports whether s is one of the grid labels.
func ValidLabel(s string) bool {
	for _, slot := range Grid() {
		if s == slot {
			return true
		}
	}
	return false
}

// ValidDate reports whether s is a YYYY-MM-DD calendar date.
func ValidDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
