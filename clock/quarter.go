package clock

import (
	"fmt"
	"time"
)

// SlotsPerDay is the number of 15-minute buckets covering a full day.
const SlotsPerDay = 96

const slotMinutes = 15

const labelLayout = "15:04"

// Slot is one of the 96 quarter-hour time-of-day positions, 0 = 00:00, 95 = 23:45.
type Slot int

// SlotOf returns the slot containing t, flooring the minutes to the lower quarter-hour.
// The zero time maps to slot 0.
func SlotOf(t time.Time) Slot {
	if t.IsZero() {
		return 0
	}
	return Slot(t.Hour()*4 + t.Minute()/slotMinutes)
}

// Apply returns ref with its time of day replaced by the slot's hour and minute.
// Seconds and nanoseconds are zeroed; the calendar date and location of ref are kept.
// A zero ref defaults to the current time. Out-of-range slots are clamped.
func Apply(s Slot, ref time.Time) time.Time {
	if ref.IsZero() {
		ref = time.Now()
	}
	s = s.clamp()
	return time.Date(ref.Year(), ref.Month(), ref.Day(), s.Hour(), s.Minute(), 0, 0, ref.Location())
}

// Align snaps t onto the grid, the same as re-selecting its displayed slot.
func Align(t time.Time) time.Time {
	return Apply(SlotOf(t), t)
}

// Aligned reports whether t already sits on a quarter-hour boundary with no seconds.
func Aligned(t time.Time) bool {
	return t.Minute()%slotMinutes == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// Slots enumerates the whole selectable domain in order.
func Slots() []Slot {
	slots := make([]Slot, SlotsPerDay)
	for i := range slots {
		slots[i] = Slot(i)
	}
	return slots
}

// ParseLabel converts an "HH:MM" label back into its slot. The hour may drop its
// leading zero; the minutes must be two digits on a quarter-hour and nothing may follow.
func ParseLabel(label string) (Slot, error) {
	t, err := time.Parse(labelLayout, label)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM): %w", label, err)
	}
	if t.Minute()%slotMinutes != 0 {
		return 0, fmt.Errorf("invalid time %q: minutes must be 00, 15, 30 or 45", label)
	}
	return SlotOf(t), nil
}

func (s Slot) Hour() int   { return int(s.clamp()) / 4 }
func (s Slot) Minute() int { return int(s.clamp()) % 4 * slotMinutes }

// Valid reports whether s is within [0, SlotsPerDay).
func (s Slot) Valid() bool {
	return s >= 0 && s < SlotsPerDay
}

// Label renders the slot as "HH:MM".
func (s Slot) Label() string {
	return fmt.Sprintf("%02d:%02d", s.Hour(), s.Minute())
}

func (s Slot) String() string {
	return s.Label()
}

func (s Slot) clamp() Slot {
	if s < 0 {
		return 0
	}
	if s >= SlotsPerDay {
		return SlotsPerDay - 1
	}
	return s
}
