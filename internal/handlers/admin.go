package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"roofingcity-backend/internal/httpx"
	"roofingcity-backend/internal/models"
	"roofingcity-backend/internal/schedule"
	"roofingcity-backend/internal/transport"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
}

// AdminListAppointments returns appointments sorted by scheduled time,
// optionally filtered to a single day via ?date=YYYY-MM-DD.
func (s *Server) AdminListAppointments(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 50, 200)
	if err != nil {
		log.Warn("admin appointments: bad pagination", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	filter := bson.M{}
	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		day, err := schedule.ParseDate(date, s.Cfg.Timezone)
		if err != nil {
			log.Warn("admin appointments: invalid date", slog.String("date", date))
			transport.WriteError(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD", nil)
			return
		}
		filter["scheduledAt"] = bson.M{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		}
	}
	if status := strings.TrimSpace(r.URL.Query().Get("status")); status != "" {
		filter["status"] = status
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "scheduledAt", Value: 1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.Cols.Appointments.Find(ctx, filter, opts)
	if err != nil {
		log.Error("admin appointments: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	appointments := []models.Appointment{}
	if err := cursor.All(ctx, &appointments); err != nil {
		log.Error("admin appointments: decode error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"appointments": appointments,
		"limit":        limit,
		"offset":       offset,
	})
}

// AdminUpdateAppointmentStatus moves an appointment through its lifecycle.
// Cancelling frees the slot, so the day's availability cache is dropped.
func (s *Server) AdminUpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")

	var req UpdateAppointmentStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("admin appointment status: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}
	if err := s.Val.Struct(req); err != nil {
		log.Warn("admin appointment status: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":    req.Status,
		"updatedAt": time.Now().UTC(),
	}}
	var updated models.Appointment
	err := s.Cols.Appointments.FindOneAndUpdate(ctx, bson.M{"_id": id}, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn("admin appointment status: not found", slog.String("id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("admin appointment status: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	day := updated.ScheduledAt.In(s.Cfg.Timezone).Format("2006-01-02")
	if err := s.Cache.Delete(ctx, "availability:"+day); err != nil {
		log.Warn("admin appointment status: cache invalidation failed", slog.String("error", err.Error()))
	}

	log.Info("admin appointment status: updated",
		slog.String("id", id), slog.String("status", req.Status))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"appointment": updated})
}

func (s *Server) AdminListContacts(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	limit, offset, err := httpx.ParseLimitOffset(r.URL.Query(), 50, 200)
	if err != nil {
		log.Warn("admin contacts: bad pagination", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)
	cursor, err := s.Cols.ContactMessages.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("admin contacts: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	contacts := []models.ContactMessage{}
	if err := cursor.All(ctx, &contacts); err != nil {
		log.Error("admin contacts: decode error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"contacts": contacts,
		"limit":    limit,
		"offset":   offset,
	})
}
