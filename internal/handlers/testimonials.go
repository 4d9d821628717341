package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"roofingcity-backend/internal/models"
	"roofingcity-backend/internal/transport"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TestimonialRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Location string `json:"location" validate:"omitempty,max=120"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Message  string `json:"message" validate:"required,max=2000"`
	Service  string `json:"service" validate:"omitempty,max=120"`
}

func (s *Server) GetTestimonials(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(200)
	cursor, err := s.Cols.Testimonials.Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("testimonials list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}
	defer cursor.Close(ctx)

	var items []map[string]interface{}
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			log.Error("testimonials list: decode error", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusInternalServerError, "decode error", nil)
			return
		}
		items = append(items, normalizeID(doc))
	}
	if err := cursor.Err(); err != nil {
		log.Error("testimonials list: cursor error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "cursor error", nil)
		return
	}

	log.Info("testimonials list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{"testimonials": items})
}

func (s *Server) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)
	var req TestimonialRequest
	if err := decodeJSON(r, &req); err != nil {
		log.Warn("testimonials create: invalid json")
		transport.WriteError(w, http.StatusBadRequest, "invalid json", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Location = strings.TrimSpace(req.Location)
	req.Message = strings.TrimSpace(req.Message)
	req.Service = strings.TrimSpace(req.Service)
	if err := s.Val.Struct(req); err != nil {
		log.Warn("testimonials create: validation error")
		details := validationDetails(s.Val.ValidationErrors(err))
		transport.WriteError(w, http.StatusBadRequest, "validation error", details)
		return
	}

	testimonial := models.Testimonial{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Location:  req.Location,
		Rating:    req.Rating,
		Message:   req.Message,
		Service:   req.Service,
		CreatedAt: time.Now().In(s.Cfg.Timezone),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if _, err := s.Cols.Testimonials.InsertOne(ctx, testimonial); err != nil {
		log.Error("testimonials create: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "database error", nil)
		return
	}

	log.Info("testimonials create: ok", slog.String("testimonial_id", testimonial.ID))
	transport.WriteJSON(w, http.StatusCreated, testimonial)
}
