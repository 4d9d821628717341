package handlers

import (
	"context"
	"log/slog"
	"time"

	"roofingcity-backend/internal/models"
	"roofingcity-backend/internal/schedule"

	"go.mongodb.org/mongo-driver/bson"
)

// SlotOption is one bookable alternative offered back to the client. Datetime
// round-trips through confirmTimeSlot; the date and time labels are for
// display only.
type SlotOption struct {
	Datetime string `json:"datetime"`
	Date     string `json:"date"`
	Time     string `json:"time"`
}

// slotTaken reports whether an active appointment already occupies the exact
// timestamp. Conflicts are an equality match on scheduledAt; appointments have
// no duration.
func (s *Server) slotTaken(ctx context.Context, t time.Time) (bool, error) {
	count, err := s.Cols.Appointments.CountDocuments(ctx, bson.M{
		"scheduledAt": t,
		"status":      bson.M{"$in": models.ActiveStatuses},
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// alternativeSlots runs the slot search forward from the requested time.
// Individual probe failures are logged and skipped so that a flaky store
// still yields whatever alternatives it can; an empty result means the
// client should fall back to calling the office.
func (s *Server) alternativeSlots(ctx context.Context, log *slog.Logger, from time.Time) []SlotOption {
	check := func(ctx context.Context, t time.Time) (bool, error) {
		taken, err := s.slotTaken(ctx, t)
		if err != nil {
			log.Warn("availability probe failed",
				slog.Time("slot", t),
				slog.String("error", err.Error()),
			)
			return false, err
		}
		return taken, nil
	}

	found := schedule.FindOpenSlots(ctx, from, schedule.MaxAlternativeSlots, schedule.MaxSlotProbes, check)

	slots := make([]SlotOption, 0, len(found))
	for _, t := range found {
		slots = append(slots, SlotOption{
			Datetime: t.Format(time.RFC3339),
			Date:     schedule.DateLabel(t),
			Time:     schedule.TimeLabel(t),
		})
	}
	return slots
}

// reservedTimes collects the clock times of active appointments on the given
// date, for the day-availability listing.
func (s *Server) reservedTimes(ctx context.Context, dateStr string) (map[string]bool, error) {
	dayStart, err := schedule.ParseDate(dateStr, s.Cfg.Timezone)
	if err != nil {
		return nil, err
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	cursor, err := s.Cols.Appointments.Find(ctx, bson.M{
		"scheduledAt": bson.M{"$gte": dayStart, "$lt": dayEnd},
		"status":      bson.M{"$in": models.ActiveStatuses},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reserved := make(map[string]bool)
	for cursor.Next(ctx) {
		var appt models.Appointment
		if err := cursor.Decode(&appt); err != nil {
			continue
		}
		reserved[appt.ScheduledAt.In(s.Cfg.Timezone).Format("15:04")] = true
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return reserved, nil
}

func (s *Server) computeAvailableSlots(ctx context.Context, dateStr string, now time.Time) ([]string, error) {
	slots, err := schedule.DaySlots(dateStr, s.Cfg.Timezone)
	if err != nil {
		return nil, err
	}

	reserved, err := s.reservedTimes(ctx, dateStr)
	if err != nil {
		return nil, err
	}
	slots = schedule.FilterReserved(slots, reserved)

	if dateIsToday(dateStr, s.Cfg.Timezone) {
		slots, err = schedule.FilterPastSlots(dateStr, slots, s.Cfg.Timezone, now)
		if err != nil {
			return nil, err
		}
	}

	return slots, nil
}
