package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"roofingcity-backend/internal/models"
	"roofingcity-backend/internal/schedule"
	"roofingcity-backend/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type ScheduleAppointmentRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,phone"`
	Service         string `json:"service"`
	Message         string `json:"message"`
	PreferredDate   string `json:"preferredDate" validate:"required,date"`
	PreferredTime   string `json:"preferredTime" validate:"required,clock"`
	ConfirmTimeSlot string `json:"confirmTimeSlot" validate:"omitempty,rfc3339"`
}

type ScheduleSuccessResponse struct {
	Success     bool               `json:"success"`
	Appointment models.Appointment `json:"appointment"`
	Message     string             `json:"message"`
}

type SlotTakenResponse struct {
	Success        bool         `json:"success"`
	TimeSlotTaken  bool         `json:"timeSlotTaken"`
	AvailableSlots []SlotOption `json:"availableSlots"`
	Message        string       `json:"message"`
}

const (
	missingFieldsMessage = "Missing required fields: name, email, phone, preferredDate, and preferredTime are required"
	pastDateMessage      = "Cannot schedule appointments in the past"
	slotTakenMessage     = "Your preferred time is not available. Please select from the available times below:"
	scheduledMessage     = "Appointment scheduled successfully! We'll contact you within 24 hours to confirm the details."
)

// ScheduleAppointment is the booking entry point: it validates the request,
// conflict-checks the requested slot, and either inserts the appointment or
// answers with alternative open slots. A request carrying confirmTimeSlot is
// an explicit confirmation of a previously offered alternative and goes
// straight to insert; the unique index on active scheduledAt is the backstop
// that turns any lost race into a slot-taken answer instead of a double
// booking.
func (s *Server) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req ScheduleAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("appointments schedule: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Phone = strings.TrimSpace(req.Phone)
	req.Service = strings.TrimSpace(req.Service)
	req.Message = strings.TrimSpace(req.Message)

	if err := s.Val.Struct(req); err != nil {
		log.Warn("appointments schedule: validation error")
		errs := s.Val.ValidationErrors(err)
		message := "validation error"
		for _, fieldErr := range errs {
			if fieldErr.Tag() == "required" {
				message = missingFieldsMessage
				break
			}
		}
		transport.WriteError(w, http.StatusBadRequest, message, validationDetails(errs))
		return
	}

	requested, err := schedule.ParseDateTime(req.PreferredDate, req.PreferredTime, s.Cfg.Timezone)
	if err != nil {
		log.Warn("appointments schedule: invalid datetime",
			slog.String("date", req.PreferredDate),
			slog.String("time", req.PreferredTime),
		)
		transport.WriteError(w, http.StatusBadRequest, "invalid preferred date or time", nil)
		return
	}

	now := time.Now().In(s.Cfg.Timezone)
	if !requested.After(now) {
		log.Warn("appointments schedule: date in the past", slog.Time("requested", requested))
		transport.WriteError(w, http.StatusBadRequest, pastDateMessage, nil)
		return
	}

	// A confirmed alternative replaces the originally requested slot and
	// skips the conflict pre-check: the client obtained it from a prior
	// slot-taken answer.
	scheduledAt := requested
	confirmed := false
	if req.ConfirmTimeSlot != "" {
		parsed, err := time.Parse(time.RFC3339, req.ConfirmTimeSlot)
		if err != nil {
			log.Warn("appointments schedule: invalid confirm slot", slog.String("confirm", req.ConfirmTimeSlot))
			transport.WriteError(w, http.StatusBadRequest, "invalid confirmTimeSlot", nil)
			return
		}
		scheduledAt = parsed.In(s.Cfg.Timezone)
		confirmed = true
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if !confirmed {
		taken, err := s.slotTaken(ctx, scheduledAt)
		if err != nil {
			log.Error("appointments schedule: conflict check failed", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "Database error while checking availability", nil)
			return
		}
		if taken {
			s.respondSlotTaken(ctx, w, log, scheduledAt)
			return
		}
	}

	appointment := models.Appointment{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Service:     req.Service,
		Message:     req.Message,
		ScheduledAt: scheduledAt,
		Status:      models.AppointmentStatusScheduled,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if appointment.Service == "" {
		appointment.Service = models.DefaultService
	}

	if _, err := s.Cols.Appointments.InsertOne(ctx, appointment); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// Lost the race (or confirmed a slot someone else grabbed);
			// resolved the same way as a plain conflict.
			log.Warn("appointments schedule: slot taken on insert", slog.Time("slot", scheduledAt))
			s.respondSlotTaken(ctx, w, log, scheduledAt)
			return
		}
		log.Error("appointments schedule: insert failed", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError,
			"Failed to schedule appointment. Please call us at "+s.Cfg.BusinessPhone+".", nil)
		return
	}

	if s.Cache != nil {
		dateKey := scheduledAt.In(s.Cfg.Timezone).Format("2006-01-02")
		_ = s.Cache.DeletePrefix(r.Context(), "availability:"+dateKey)
	}

	if s.Mailer != nil {
		go s.sendAppointmentConfirmationEmail(log, appointment)
	}

	message := scheduledMessage
	if confirmed {
		message = "Appointment confirmed for " + schedule.DateLabel(scheduledAt) + " at " +
			schedule.TimeLabel(scheduledAt) + ". We'll contact you within 24 hours to confirm the details."
	}

	log.Info("appointments schedule: booked",
		slog.String("appointment_id", appointment.ID),
		slog.String("service", appointment.Service),
		slog.Time("scheduled_at", appointment.ScheduledAt),
		slog.Bool("confirmed_alternative", confirmed),
	)
	transport.WriteJSON(w, http.StatusOK, ScheduleSuccessResponse{
		Success:     true,
		Appointment: appointment,
		Message:     message,
	})
}

func (s *Server) respondSlotTaken(ctx context.Context, w http.ResponseWriter, log *slog.Logger, requested time.Time) {
	slots := s.alternativeSlots(ctx, log, requested)
	log.Info("appointments schedule: slot taken",
		slog.Time("requested", requested),
		slog.Int("alternatives", len(slots)),
	)
	transport.WriteJSON(w, http.StatusConflict, SlotTakenResponse{
		Success:        false,
		TimeSlotTaken:  true,
		AvailableSlots: slots,
		Message:        slotTakenMessage,
	})
}

func (s *Server) sendAppointmentConfirmationEmail(log *slog.Logger, appointment models.Appointment) {
	ctx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()

	messageID, err := s.Mailer.SendAppointmentConfirmation(ctx, appointment, s.Cfg.BusinessName, s.Cfg.BusinessPhone)
	if err != nil {
		log.Warn("appointments email: send failed",
			slog.String("appointment_id", appointment.ID),
			slog.String("email", appointment.Email),
			slog.String("error", err.Error()),
		)
		return
	}

	log.Info("appointments email: sent",
		slog.String("appointment_id", appointment.ID),
		slog.String("email", appointment.Email),
		slog.String("message_id", messageID),
	)
}

func (s *Server) GetAppointment(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	id := chi.URLParam(r, "id")
	if id == "" {
		log.Warn("appointments get: missing id")
		transport.WriteError(w, http.StatusBadRequest, "missing id", nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	var appointment models.Appointment
	if err := s.Cols.Appointments.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment); err != nil {
		if err == mongo.ErrNoDocuments {
			log.Warn("appointments get: not found", slog.String("appointment_id", id))
			transport.WriteError(w, http.StatusNotFound, "appointment not found", nil)
			return
		}
		log.Error("appointments get: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("appointments get: ok", slog.String("appointment_id", id))
	transport.WriteJSON(w, http.StatusOK, appointment)
}
