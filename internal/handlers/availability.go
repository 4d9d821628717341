package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"roofingcity-backend/internal/schedule"
	"roofingcity-backend/internal/transport"
)

type availabilityQuery struct {
	Date string `validate:"required,date"`
}

// GetAvailability lists the open slots of a single day for the booking form's
// slot picker. Responses are cached per date and invalidated whenever a
// booking or status change touches that date.
func (s *Server) GetAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	q := availabilityQuery{Date: r.URL.Query().Get("date")}
	if err := s.Val.Struct(q); err != nil {
		log.Warn("availability: invalid query")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "invalid query", details)
		return
	}

	cacheKey := "availability:" + q.Date
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(r.Context(), cacheKey); err == nil && ok {
			log.Info("availability: cache hit", slog.String("date", q.Date))
			writeCachedJSON(w, http.StatusOK, cached)
			return
		}
	}

	past, err := schedule.IsDatePast(q.Date, s.Cfg.Timezone, time.Now())
	if err != nil {
		log.Warn("availability: invalid date", slog.String("date", q.Date))
		transport.WriteError(w, http.StatusBadRequest, "invalid date", nil)
		return
	}
	if past {
		log.Warn("availability: date in the past", slog.String("date", q.Date))
		transport.WriteError(w, http.StatusBadRequest, "date in the past", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	slots, err := s.computeAvailableSlots(ctx, q.Date, time.Now())
	if err != nil {
		log.Error("availability: compute error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "availability error", nil)
		return
	}

	response := map[string]interface{}{
		"date":     q.Date,
		"timezone": s.Cfg.Timezone.String(),
		"slots":    slots,
	}

	if payload, err := encodeJSON(response); err == nil && s.Cache != nil {
		_ = s.Cache.Set(r.Context(), cacheKey, payload, time.Duration(s.Cfg.CacheTTLSeconds)*time.Second)
	}

	log.Info("availability: ok", slog.String("date", q.Date), slog.Int("slots", len(slots)))
	transport.WriteJSON(w, http.StatusOK, response)
}

// GetNextAvailability answers with the first open slot from now, using the
// same forward search the booking conflict path uses.
func (s *Server) GetNextAvailability(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	now := time.Now().In(s.Cfg.Timezone)
	check := func(ctx context.Context, t time.Time) (bool, error) {
		taken, err := s.slotTaken(ctx, t)
		if err != nil {
			log.Warn("availability next: probe failed", slog.Time("slot", t), slog.String("error", err.Error()))
		}
		return taken, err
	}
	slots := schedule.FindOpenSlots(ctx, now, 1, schedule.MaxSlotProbes, check)
	if len(slots) == 0 {
		log.Warn("availability next: none found")
		transport.WriteError(w, http.StatusNotFound, "no availability found", nil)
		return
	}

	next := slots[0]
	log.Info("availability next: ok", slog.Time("slot", next))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"datetime": next.Format(time.RFC3339),
		"date":     schedule.DateLabel(next),
		"time":     schedule.TimeLabel(next),
		"timezone": s.Cfg.Timezone.String(),
	})
}

func dateIsToday(dateStr string, loc *time.Location) bool {
	date, err := schedule.ParseDate(dateStr, loc)
	if err != nil {
		return false
	}
	now := time.Now().In(loc)
	return date.Year() == now.Year() && date.YearDay() == now.YearDay()
}
