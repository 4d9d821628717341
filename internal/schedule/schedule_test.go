package schedule

import (
	"context"
	"errors"
	"testing"
	"time"
)

func mustLoadLoc(t *testing.T) *time.Location {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func at(t *testing.T, loc *time.Location, day, clock string) time.Time {
	ts, err := ParseDateTime(day, clock, loc)
	if err != nil {
		t.Fatalf("parse %s %s: %v", day, clock, err)
	}
	return ts
}

func TestNormalizeInsideHoursUnchanged(t *testing.T) {
	loc := mustLoadLoc(t)
	// Wednesday mid-morning.
	in := at(t, loc, "2026-03-04", "09:30")
	if got := Normalize(in); !got.Equal(in) {
		t.Fatalf("expected %v unchanged, got %v", in, got)
	}
}

func TestNormalizeAtOpeningUnchanged(t *testing.T) {
	loc := mustLoadLoc(t)
	in := at(t, loc, "2026-03-04", "07:00")
	if got := Normalize(in); !got.Equal(in) {
		t.Fatalf("expected %v unchanged, got %v", in, got)
	}
}

func TestNormalizeAtClosingRollsToNextMorning(t *testing.T) {
	loc := mustLoadLoc(t)
	in := at(t, loc, "2026-03-04", "18:00")
	want := at(t, loc, "2026-03-05", "07:00")
	if got := Normalize(in); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeEveningDropsMinutes(t *testing.T) {
	loc := mustLoadLoc(t)
	in := at(t, loc, "2026-03-04", "18:15")
	want := at(t, loc, "2026-03-05", "07:00")
	if got := Normalize(in); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeBeforeOpeningClampsSameDay(t *testing.T) {
	loc := mustLoadLoc(t)
	in := at(t, loc, "2026-03-04", "05:45")
	want := at(t, loc, "2026-03-04", "07:00")
	if got := Normalize(in); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestNormalizeWeekendSkipsToMonday(t *testing.T) {
	loc := mustLoadLoc(t)
	monday := at(t, loc, "2026-03-09", "07:00")

	saturday := at(t, loc, "2026-03-07", "09:30")
	if got := Normalize(saturday); !got.Equal(monday) {
		t.Fatalf("saturday: expected %v, got %v", monday, got)
	}

	sunday := at(t, loc, "2026-03-08", "11:00")
	if got := Normalize(sunday); !got.Equal(monday) {
		t.Fatalf("sunday: expected %v, got %v", monday, got)
	}
}

func TestNormalizeFridayEveningSkipsToMonday(t *testing.T) {
	loc := mustLoadLoc(t)
	in := at(t, loc, "2026-03-06", "18:00")
	want := at(t, loc, "2026-03-09", "07:00")
	if got := Normalize(in); !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func takenSet(times ...time.Time) SlotCheck {
	return func(ctx context.Context, t time.Time) (bool, error) {
		for _, taken := range times {
			if t.Equal(taken) {
				return true, nil
			}
		}
		return false, nil
	}
}

func TestFindOpenSlotsFirstAlternativeIsNextHalfHour(t *testing.T) {
	loc := mustLoadLoc(t)
	requested := at(t, loc, "2026-03-02", "09:00")

	slots := FindOpenSlots(context.Background(), requested, MaxAlternativeSlots, MaxSlotProbes, takenSet(requested))
	if len(slots) != 5 {
		t.Fatalf("expected 5 slots, got %d", len(slots))
	}
	if want := at(t, loc, "2026-03-02", "09:30"); !slots[0].Equal(want) {
		t.Fatalf("expected first slot %v, got %v", want, slots[0])
	}
	for i, slot := range slots {
		if !slot.After(requested) {
			t.Fatalf("slot %d (%v) not after requested time", i, slot)
		}
		if i > 0 && !slot.After(slots[i-1]) {
			t.Fatalf("slots not strictly increasing at %d: %v", i, slots)
		}
		if slot.Hour() < OpenHour || slot.Hour() >= CloseHour || IsWeekend(slot) {
			t.Fatalf("slot %v outside business hours", slot)
		}
	}
}

func TestFindOpenSlotsSkipsConflicts(t *testing.T) {
	loc := mustLoadLoc(t)
	requested := at(t, loc, "2026-03-02", "09:00")
	booked := at(t, loc, "2026-03-02", "09:30")

	slots := FindOpenSlots(context.Background(), requested, 2, MaxSlotProbes, takenSet(requested, booked))
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if want := at(t, loc, "2026-03-02", "10:00"); !slots[0].Equal(want) {
		t.Fatalf("expected first slot %v, got %v", want, slots[0])
	}
}

func TestFindOpenSlotsIsDeterministic(t *testing.T) {
	loc := mustLoadLoc(t)
	requested := at(t, loc, "2026-03-02", "16:30")
	check := takenSet(at(t, loc, "2026-03-02", "17:00"))

	first := FindOpenSlots(context.Background(), requested, MaxAlternativeSlots, MaxSlotProbes, check)
	second := FindOpenSlots(context.Background(), requested, MaxAlternativeSlots, MaxSlotProbes, check)
	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Fatalf("slot %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestFindOpenSlotsRollsPastWeekend(t *testing.T) {
	loc := mustLoadLoc(t)
	// Friday's last slot: the first probe lands at closing and must resurface
	// Monday at opening.
	requested := at(t, loc, "2026-03-06", "17:30")

	slots := FindOpenSlots(context.Background(), requested, 2, MaxSlotProbes, takenSet())
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if want := at(t, loc, "2026-03-09", "07:00"); !slots[0].Equal(want) {
		t.Fatalf("expected first slot %v, got %v", want, slots[0])
	}
	if want := at(t, loc, "2026-03-09", "07:30"); !slots[1].Equal(want) {
		t.Fatalf("expected second slot %v, got %v", want, slots[1])
	}
}

func TestFindOpenSlotsStopsAtProbeBudget(t *testing.T) {
	loc := mustLoadLoc(t)
	requested := at(t, loc, "2026-03-02", "09:00")

	calls := 0
	everythingTaken := func(ctx context.Context, ts time.Time) (bool, error) {
		calls++
		return true, nil
	}

	slots := FindOpenSlots(context.Background(), requested, MaxAlternativeSlots, MaxSlotProbes, everythingTaken)
	if len(slots) != 0 {
		t.Fatalf("expected no slots, got %d", len(slots))
	}
	if calls != MaxSlotProbes {
		t.Fatalf("expected %d probes, got %d", MaxSlotProbes, calls)
	}
}

func TestFindOpenSlotsSkipsFailedProbes(t *testing.T) {
	loc := mustLoadLoc(t)
	requested := at(t, loc, "2026-03-02", "09:00")

	calls := 0
	flaky := func(ctx context.Context, ts time.Time) (bool, error) {
		calls++
		if calls == 1 {
			return false, errors.New("store unreachable")
		}
		return false, nil
	}

	slots := FindOpenSlots(context.Background(), requested, 3, MaxSlotProbes, flaky)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	// First probe (09:30) failed and was skipped, not retried.
	if want := at(t, loc, "2026-03-02", "10:00"); !slots[0].Equal(want) {
		t.Fatalf("expected first slot %v, got %v", want, slots[0])
	}
}

func TestDaySlotsWeekday(t *testing.T) {
	loc := mustLoadLoc(t)
	slots, err := DaySlots("2026-03-04", loc)
	if err != nil {
		t.Fatalf("DaySlots error: %v", err)
	}
	if len(slots) != 22 {
		t.Fatalf("expected 22 slots, got %d", len(slots))
	}
	if slots[0] != "07:00" || slots[len(slots)-1] != "17:30" {
		t.Fatalf("unexpected boundary slots: %v", slots)
	}
}

func TestDaySlotsWeekendEmpty(t *testing.T) {
	loc := mustLoadLoc(t)
	for _, day := range []string{"2026-03-07", "2026-03-08"} {
		slots, err := DaySlots(day, loc)
		if err != nil {
			t.Fatalf("DaySlots error: %v", err)
		}
		if len(slots) != 0 {
			t.Fatalf("expected 0 slots for %s, got %d", day, len(slots))
		}
	}
}

func TestParseDateTimeInvalid(t *testing.T) {
	loc := mustLoadLoc(t)
	if _, err := ParseDateTime("2026-03-04", "25:00", loc); err != ErrInvalidTime {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
	if _, err := ParseDateTime("03/04/2026", "09:00", loc); err != ErrInvalidDate {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestIsDatePast(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, loc)

	past, err := IsDatePast("2026-03-03", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if !past {
		t.Fatalf("expected date to be past")
	}

	past, err = IsDatePast("2026-03-04", loc, now)
	if err != nil {
		t.Fatalf("IsDatePast error: %v", err)
	}
	if past {
		t.Fatalf("expected date to be not past")
	}
}

func TestIsSlotPast(t *testing.T) {
	loc := mustLoadLoc(t)
	now := time.Date(2026, 3, 4, 10, 0, 0, 0, loc)

	past, err := IsSlotPast("2026-03-04", "09:00", loc, now)
	if err != nil {
		t.Fatalf("IsSlotPast error: %v", err)
	}
	if !past {
		t.Fatalf("expected slot to be past")
	}

	past, err = IsSlotPast("2026-03-04", "10:30", loc, now)
	if err != nil {
		t.Fatalf("IsSlotPast error: %v", err)
	}
	if past {
		t.Fatalf("expected slot to be future")
	}
}

func TestFilterReserved(t *testing.T) {
	slots := []string{"07:00", "07:30", "08:00"}
	reserved := map[string]bool{"07:30": true}
	filtered := FilterReserved(slots, reserved)
	if len(filtered) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(filtered))
	}
	if filtered[1] != "08:00" {
		t.Fatalf("unexpected slots: %v", filtered)
	}
}

func TestSlotLabels(t *testing.T) {
	loc := mustLoadLoc(t)
	morning := at(t, loc, "2099-01-05", "09:00")
	if got := DateLabel(morning); got != "1/5/2099" {
		t.Fatalf("unexpected date label: %s", got)
	}
	if got := TimeLabel(morning); got != "9:00 AM" {
		t.Fatalf("unexpected time label: %s", got)
	}
	afternoon := at(t, loc, "2099-01-05", "14:30")
	if got := TimeLabel(afternoon); got != "2:30 PM" {
		t.Fatalf("unexpected time label: %s", got)
	}
}
