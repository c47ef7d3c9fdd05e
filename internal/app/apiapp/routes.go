package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/boliek/contentsafety/internal/config"
	catalogsvc "github.com/boliek/contentsafety/internal/services/catalog"
	intakesvc "github.com/boliek/contentsafety/internal/services/intake"
	reviewsvc "github.com/boliek/contentsafety/internal/services/review"
	"github.com/boliek/contentsafety/internal/transport/http/handlers"
)

type Dependencies struct {
	IntakeService  *intakesvc.Service
	ReviewService  *reviewsvc.Service
	CatalogService *catalogsvc.Service
	Logger         *zap.Logger
	Config         config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	complaintHandler := handlers.NewComplaintHandler(deps.IntakeService)
	reviewHandler := handlers.NewReviewHandler(deps.ReviewService, deps.Logger)
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogService)
	adminHandler := handlers.NewAdminHandler(deps.CatalogService)

	r.Get("/healthz", healthHandler.Get)

	r.Post("/complaints", complaintHandler.File)
	r.Get("/complaints", catalogHandler.Complaints)
	r.Get("/complaints/dashboard", catalogHandler.Dashboard)

	r.Route("/reviews", func(r chi.Router) {
		r.Get("/next", reviewHandler.Next)
		r.Post("/resolve", reviewHandler.Resolve)
	})

	r.Get("/pinners", catalogHandler.Pinners)
	r.Get("/reviewers", catalogHandler.Reviewers)
	r.Route("/content", func(r chi.Router) {
		r.Get("/", catalogHandler.Content)
		r.Get("/{id}", catalogHandler.ContentByID)
		r.Get("/{id}/complaints", catalogHandler.ComplaintsByContent)
	})

	r.Post("/admin/content/reset", adminHandler.ResetContent)
}
