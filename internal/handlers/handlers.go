package handlers

import (
	"net/http"

	"DocPortal/internal/config"
	"DocPortal/internal/middleware"
	"DocPortal/internal/service"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler wires the middleware chain and the API surface.
func NewHandler(
	containerService *service.ContainerService,
	requirementService *service.RequirementService,
	fileService *service.FileService,
	logger *zap.SugaredLogger,
	cfg *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(cfg.AuthSecret))

	// Handlers
	containerHandler := NewContainerHandler(containerService, logger)
	requirementHandler := NewRequirementHandler(requirementService, fileService, logger)
	fileHandler := NewFileHandler(fileService, logger, cfg)

	// Container routes
	r.Get("/api/containers", containerHandler.List)
	r.Post("/api/containers", containerHandler.Create)
	r.Get("/api/containers/{parentID}/subcontainers", containerHandler.Subcontainers)
	r.Delete("/api/containers/{id}", containerHandler.Delete)
	r.Post("/api/containers/{id}/authorize", containerHandler.Authorize)
	r.Delete("/api/containers/{id}/authorize", containerHandler.Deauthorize)

	// Requirement routes
	r.Get("/api/requirements", requirementHandler.List)
	r.Get("/api/requirements/status", requirementHandler.Status)
	r.Post("/api/requirements", requirementHandler.Replace)
	r.Delete("/api/requirements/{id}", requirementHandler.Delete)
	r.Delete("/api/requirements/container/{name}", requirementHandler.DeleteByContainer)

	// Submission routes
	r.Post("/api/files/upload", fileHandler.Upload)
	r.Get("/api/files", fileHandler.List)
	r.Put("/api/files/{id}", fileHandler.SetStatus)
	r.Delete("/api/files/{id}", fileHandler.Delete)
	r.Get("/api/files/{id}/download", fileHandler.Download)

	// Uploaded artifacts are served statically when the disk store is active.
	if cfg.MinioEndpoint == "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.Get("/uploads/*", fs.ServeHTTP)
	}

	return &Handler{Router: r}
}
