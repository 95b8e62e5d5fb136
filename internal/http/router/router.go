package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tecnimaq/maintenance-api/internal/auth"
	"github.com/tecnimaq/maintenance-api/internal/config"
	"github.com/tecnimaq/maintenance-api/internal/database"
	"github.com/tecnimaq/maintenance-api/internal/http/handler"
	"github.com/tecnimaq/maintenance-api/internal/http/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Router struct {
	cfg                   *config.Config
	logger                *zap.Logger
	db                    *gorm.DB
	authMiddleware        *auth.Middleware
	rateLimiter           *middleware.RateLimiter
	authHandler           *handler.AuthHandler
	categoryHandler       *handler.CategoryHandler
	machineryTypeHandler  *handler.MachineryTypeHandler
	procedureHandler      *handler.ProcedureHandler
	companyHandler        *handler.CompanyHandler
	representativeHandler *handler.RepresentativeHandler
	employeeHandler       *handler.EmployeeHandler
	requestHandler        *handler.RequestHandler
	requestItemHandler    *handler.RequestItemHandler
	assignmentHandler     *handler.AssignmentHandler
	reportHandler         *handler.ReportHandler
	dashboardHandler      *handler.DashboardHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	categoryHandler *handler.CategoryHandler,
	machineryTypeHandler *handler.MachineryTypeHandler,
	procedureHandler *handler.ProcedureHandler,
	companyHandler *handler.CompanyHandler,
	representativeHandler *handler.RepresentativeHandler,
	employeeHandler *handler.EmployeeHandler,
	requestHandler *handler.RequestHandler,
	requestItemHandler *handler.RequestItemHandler,
	assignmentHandler *handler.AssignmentHandler,
	reportHandler *handler.ReportHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:                   cfg,
		logger:                logger,
		db:                    db,
		authMiddleware:        authMiddleware,
		rateLimiter:           rateLimiter,
		authHandler:           authHandler,
		categoryHandler:       categoryHandler,
		machineryTypeHandler:  machineryTypeHandler,
		procedureHandler:      procedureHandler,
		companyHandler:        companyHandler,
		representativeHandler: representativeHandler,
		employeeHandler:       employeeHandler,
		requestHandler:        requestHandler,
		requestItemHandler:    requestItemHandler,
		assignmentHandler:     assignmentHandler,
		reportHandler:         reportHandler,
		dashboardHandler:      dashboardHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"service": "database",
				"error":   err.Error(),
			})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes (no auth required)
		r.Post("/register", rt.authHandler.Register)
		r.Post("/login", rt.authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			r.Post("/logout", rt.authHandler.Logout)
			r.Get("/me", rt.authHandler.Me)

			r.Route("/empresas", func(r chi.Router) {
				r.Get("/", rt.companyHandler.List)
				r.Post("/", rt.companyHandler.Create)
				r.Get("/{id}", rt.companyHandler.Get)
				r.Put("/{id}", rt.companyHandler.Update)
				r.Delete("/{id}", rt.companyHandler.Delete)
			})

			r.Route("/representantes", func(r chi.Router) {
				r.Get("/", rt.representativeHandler.List)
				r.Post("/", rt.representativeHandler.Create)
				r.Get("/{id}", rt.representativeHandler.Get)
				r.Put("/{id}", rt.representativeHandler.Update)
				r.Delete("/{id}", rt.representativeHandler.Delete)
			})

			r.Route("/categorias", func(r chi.Router) {
				r.Get("/", rt.categoryHandler.List)
				r.Post("/", rt.categoryHandler.Create)
				r.Get("/{id}", rt.categoryHandler.Get)
				r.Put("/{id}", rt.categoryHandler.Update)
				r.Delete("/{id}", rt.categoryHandler.Delete)
			})

			r.Route("/tipos-maquinaria", func(r chi.Router) {
				r.Get("/", rt.machineryTypeHandler.List)
				r.Post("/", rt.machineryTypeHandler.Create)
				r.Get("/{id}", rt.machineryTypeHandler.Get)
				r.Put("/{id}", rt.machineryTypeHandler.Update)
				r.Delete("/{id}", rt.machineryTypeHandler.Delete)
			})

			r.Route("/mantenimientos", func(r chi.Router) {
				r.Get("/", rt.procedureHandler.List)
				r.Post("/", rt.procedureHandler.Create)
				r.Get("/{id}", rt.procedureHandler.Get)
				r.Put("/{id}", rt.procedureHandler.Update)
				r.Delete("/{id}", rt.procedureHandler.Delete)
			})

			r.Route("/solicitudes", func(r chi.Router) {
				r.Get("/", rt.requestHandler.List)
				r.Post("/", rt.requestHandler.Create)
				r.Get("/{id}", rt.requestHandler.Get)
				r.Put("/{id}", rt.requestHandler.Update)
				r.Delete("/{id}", rt.requestHandler.Delete)
			})

			r.Route("/detalle-solicitudes", func(r chi.Router) {
				r.Get("/", rt.requestItemHandler.List)
				r.Post("/", rt.requestItemHandler.Create)
				r.Get("/{id}", rt.requestItemHandler.Get)
				r.Put("/{id}", rt.requestItemHandler.Update)
				r.Delete("/{id}", rt.requestItemHandler.Delete)
				r.Get("/{id}/foto", rt.requestItemHandler.DownloadPhoto)
			})

			r.Route("/empleados", func(r chi.Router) {
				r.Get("/", rt.employeeHandler.List)
				r.Post("/", rt.employeeHandler.Create)
				r.Get("/{id}", rt.employeeHandler.Get)
				r.Put("/{id}", rt.employeeHandler.Update)
				r.Delete("/{id}", rt.employeeHandler.Delete)
			})

			r.Route("/solicitudes-empleados", func(r chi.Router) {
				r.Get("/", rt.assignmentHandler.List)
				r.Post("/", rt.assignmentHandler.Create)
				r.Get("/{id}", rt.assignmentHandler.Get)
				r.Put("/{id}", rt.assignmentHandler.Update)
				r.Delete("/{id}", rt.assignmentHandler.Delete)
			})

			r.Route("/consultas", func(r chi.Router) {
				r.Get("/empleados-por-apellido", rt.reportHandler.EmployeesByLastName)
				r.Get("/mantenimientos-costosos", rt.reportHandler.ExpensiveHeavyProcedures)
				r.Get("/empresa-con-mas-solicitudes", rt.reportHandler.CompanyWithMostRequests)
				r.Get("/cantidad-maquinas-argos", rt.reportHandler.ArgosMachineQuantity)
				r.Get("/solicitudes-empleado-asignado", rt.reportHandler.RequestsOfAssignedEmployee)
				r.Get("/representantes-sin-solicitudes", rt.reportHandler.RepresentativesOfIdleCompanies)
				r.Get("/detalles-solicitudes", rt.reportHandler.RequestItemsFlat)
				r.Post("/solicitud-por-codigo", rt.reportHandler.RequestByCode)
				r.Get("/detalles-retroexcavadora", rt.reportHandler.BackhoeItemCount)
				r.Get("/solicitudes-octubre-2023", rt.reportHandler.RequestsOfOctober2023)
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/totales", rt.dashboardHandler.Totals)
				r.Get("/solicitudes-por-estado", rt.dashboardHandler.RequestsByStatus)
				r.Get("/top-empresas", rt.dashboardHandler.TopCompanies)
			})
		})
	})

	return r
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  http.StatusNotFound,
		"message": "Endpoint no encontrado",
	})
}
