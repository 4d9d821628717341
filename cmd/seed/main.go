package main

import (
	"context"
	"log"
	"os"
	"time"

	"roofingcity-backend/internal/auth"
	"roofingcity-backend/internal/config"
	"roofingcity-backend/internal/db"
	"roofingcity-backend/internal/models"
	"roofingcity-backend/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type seedService struct {
	Name        string
	Description string
	Features    []string
	Price       string
}

type seedTestimonial struct {
	Name     string
	Location string
	Rating   int
	Message  string
	Service  string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal(err)
	}
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		log.Fatal(err)
	}

	services := []seedService{
		{
			Name:        "Roof Replacement",
			Description: "Complete roof replacement using premium materials with manufacturer warranties up to 30 years.",
			Features:    []string{"Premium shingles", "Structural assessment", "Permit handling", "Cleanup included"},
			Price:       "Starting at $8,000",
		},
		{
			Name:        "Roof Repair",
			Description: "Expert repairs for leaks, damaged shingles, flashing issues, and storm damage restoration.",
			Features:    []string{"Leak detection", "Shingle replacement", "Flashing repair", "Same-day service"},
			Price:       "Starting at $300",
		},
		{
			Name:        "Emergency Services",
			Description: "24/7 emergency response for urgent roofing issues including tarping and temporary fixes.",
			Features:    []string{"24/7 availability", "Emergency tarping", "Storm response", "Insurance claims"},
			Price:       "Call for quote",
		},
		{
			Name:        "Gutter Services",
			Description: "Complete gutter installation, repair, and maintenance to protect your foundation.",
			Features:    []string{"Seamless gutters", "Downspout installation", "Gutter guards", "Maintenance plans"},
			Price:       "Starting at $1,200",
		},
		{
			Name:        "Roof Inspection",
			Description: "Comprehensive roof inspections with detailed reports for maintenance or claims.",
			Features:    []string{"Drone inspection", "Detailed report", "Photo documentation", "Maintenance plan"},
			Price:       "Starting at $150",
		},
		{
			Name:        "Storm Damage",
			Description: "Specialized storm damage assessment and restoration with insurance claim assistance.",
			Features:    []string{"Insurance coordination", "Emergency repairs", "Complete restoration", "Wind/hail damage"},
			Price:       "Insurance covered",
		},
	}

	for _, svc := range services {
		slug := utils.Slugify(svc.Name)
		filter := bson.M{"slug": slug}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":       uuid.NewString(),
				"name":      svc.Name,
				"slug":      slug,
				"createdAt": time.Now().In(cfg.Timezone),
			},
			"$set": bson.M{
				"description": svc.Description,
				"features":    svc.Features,
				"price":       svc.Price,
			},
		}

		if _, err := cols.Services.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for %s: %v", svc.Name, err)
		}
	}

	testimonials := []seedTestimonial{
		{
			Name:     "Sarah Johnson",
			Location: "Downtown District",
			Rating:   5,
			Message:  "Roofing City did an outstanding job replacing our roof. Their team was professional, efficient, and cleaned up perfectly. The project was completed on time and within budget. Highly recommend them for any roofing needs!",
			Service:  "Roof Replacement",
		},
		{
			Name:     "Mike Chen",
			Location: "Westside",
			Rating:   5,
			Message:  "After storm damage, they responded quickly and handled everything with our insurance company. The repair work was flawless and they even helped us upgrade our gutters. Excellent customer service throughout the process.",
			Service:  "Storm Damage Repair",
		},
		{
			Name:     "Emily Rodriguez",
			Location: "Suburbs",
			Rating:   5,
			Message:  "We had a leak that other companies couldn't find. Roofing City's inspection was thorough and they fixed the problem permanently. Their warranty gave us peace of mind. Will definitely use them again.",
			Service:  "Roof Repair",
		},
		{
			Name:     "David Thompson",
			Location: "Industrial Area",
			Rating:   5,
			Message:  "Outstanding work on our commercial building. They worked around our business hours and completed the project with minimal disruption. Professional team with excellent attention to detail.",
			Service:  "Commercial Roofing",
		},
		{
			Name:     "Lisa Park",
			Location: "East Side",
			Rating:   5,
			Message:  "From the initial estimate to project completion, everything was handled professionally. The crew was courteous, the work was top-notch, and they cleaned up better than I expected. Highly satisfied!",
			Service:  "Roof Replacement",
		},
		{
			Name:     "Robert Williams",
			Location: "Historic District",
			Rating:   5,
			Message:  "They helped us restore the original character of our historic home's roof while upgrading it with modern materials. The craftsmanship was exceptional and they respected the home's heritage.",
			Service:  "Historic Restoration",
		},
	}

	for _, review := range testimonials {
		filter := bson.M{"name": review.Name, "service": review.Service}
		update := bson.M{
			"$setOnInsert": bson.M{
				"_id":       uuid.NewString(),
				"name":      review.Name,
				"location":  review.Location,
				"rating":    review.Rating,
				"message":   review.Message,
				"service":   review.Service,
				"createdAt": time.Now().In(cfg.Timezone),
			},
		}

		if _, err := cols.Testimonials.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			log.Fatalf("seed error for testimonial %s: %v", review.Name, err)
		}
	}

	username := envOrDefault("ADMIN_USER", "admin")
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		log.Printf("seed admin: ADMIN_PASSWORD missing, skipping %s", username)
	} else if err := seedAdminUser(ctx, cols, username, os.Getenv("ADMIN_EMAIL"), password, cfg.Timezone); err != nil {
		log.Fatalf("seed admin error for %s: %v", username, err)
	}

	log.Println("seed completed")
}

func seedAdminUser(ctx context.Context, cols *db.Collections, username, email, password string, loc *time.Location) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	now := time.Now().In(loc)
	filter := bson.M{"username": username}
	set := bson.M{
		"passwordHash": hash,
		"role":         models.UserRoleAdmin,
		"updatedAt":    now,
	}
	if email != "" {
		set["email"] = email
	}
	update := bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       uuid.NewString(),
			"username":  username,
			"createdAt": now,
		},
	}
	_, err = cols.Users.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
