package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Business hours: 07:00-18:00 Monday through Friday, in 30-minute slots.
const (
	OpenHour    = 7
	CloseHour   = 18
	SlotMinutes = 30

	MaxAlternativeSlots = 5
	MaxSlotProbes       = 200
)

var (
	ErrInvalidDate = errors.New("invalid date format")
	ErrInvalidTime = errors.New("invalid time format")
)

func ParseDate(dateStr string, loc *time.Location) (time.Time, error) {
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}

func ParseDateTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	if _, err := time.Parse("15:04", timeStr); err != nil {
		return time.Time{}, ErrInvalidTime
	}
	if _, err := ParseDate(dateStr, loc); err != nil {
		return time.Time{}, err
	}

	parsed, err := time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}

	return parsed, nil
}

func DateLabel(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Month(), t.Day(), t.Year())
}

func TimeLabel(t time.Time) string {
	return t.Format("3:04 PM")
}

func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Normalize rolls a candidate timestamp forward onto the next slot that falls
// inside business hours on a business day. A timestamp at or after the closing
// hour moves to the next day at opening; one before opening clamps to opening
// the same day; Saturdays and Sundays advance to Monday at opening. Timestamps
// already inside business hours on a weekday pass through unchanged.
func Normalize(t time.Time) time.Time {
	if h := t.Hour(); h >= CloseHour {
		t = time.Date(t.Year(), t.Month(), t.Day()+1, OpenHour, 0, 0, 0, t.Location())
	} else if h < OpenHour {
		t = time.Date(t.Year(), t.Month(), t.Day(), OpenHour, 0, 0, 0, t.Location())
	}

	switch t.Weekday() {
	case time.Saturday:
		t = time.Date(t.Year(), t.Month(), t.Day()+2, OpenHour, 0, 0, 0, t.Location())
	case time.Sunday:
		t = time.Date(t.Year(), t.Month(), t.Day()+1, OpenHour, 0, 0, 0, t.Location())
	}

	return t
}

// SlotCheck reports whether the slot at t is already taken. It is the only
// store capability the slot search depends on.
type SlotCheck func(ctx context.Context, t time.Time) (bool, error)

// FindOpenSlots walks forward from the requested timestamp in 30-minute steps,
// normalizing each probe onto business hours, and collects open slots. The
// walk stops after maxSlots are found or maxProbes iterations, whichever comes
// first, so a degenerate store never traps the loop. A failed check skips that
// probe rather than aborting the search; a partial or empty result is
// preferred over no answer at all.
func FindOpenSlots(ctx context.Context, from time.Time, maxSlots, maxProbes int, taken SlotCheck) []time.Time {
	slots := make([]time.Time, 0, maxSlots)
	probe := from
	for i := 0; i < maxProbes && len(slots) < maxSlots; i++ {
		probe = Normalize(probe.Add(SlotMinutes * time.Minute))
		occupied, err := taken(ctx, probe)
		if err != nil {
			continue
		}
		if !occupied {
			slots = append(slots, probe)
		}
	}
	return slots
}

// DaySlots lists every bookable clock time for the given date, or an empty
// slice on weekends.
func DaySlots(dateStr string, loc *time.Location) ([]string, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return nil, err
	}
	if IsWeekend(date) {
		return []string{}, nil
	}

	slots := make([]string, 0, (CloseHour-OpenHour)*60/SlotMinutes)
	cursor := time.Date(date.Year(), date.Month(), date.Day(), OpenHour, 0, 0, 0, loc)
	for cursor.Hour() < CloseHour {
		slots = append(slots, cursor.Format("15:04"))
		cursor = cursor.Add(SlotMinutes * time.Minute)
	}
	return slots, nil
}

func FilterReserved(slots []string, reserved map[string]bool) []string {
	filtered := make([]string, 0, len(slots))
	for _, s := range slots {
		if !reserved[s] {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

func IsDatePast(dateStr string, loc *time.Location, now time.Time) (bool, error) {
	date, err := ParseDate(dateStr, loc)
	if err != nil {
		return false, err
	}
	startToday := time.Date(now.In(loc).Year(), now.In(loc).Month(), now.In(loc).Day(), 0, 0, 0, 0, loc)
	return date.Before(startToday), nil
}

func IsSlotPast(dateStr, timeStr string, loc *time.Location, now time.Time) (bool, error) {
	slot, err := ParseDateTime(dateStr, timeStr, loc)
	if err != nil {
		return false, err
	}
	return !slot.After(now.In(loc)), nil
}

func FilterPastSlots(dateStr string, slots []string, loc *time.Location, now time.Time) ([]string, error) {
	filtered := make([]string, 0, len(slots))
	for _, s := range slots {
		past, err := IsSlotPast(dateStr, s, loc, now)
		if err != nil {
			return nil, err
		}
		if !past {
			filtered = append(filtered, s)
		}
	}
	return filtered, nil
}
