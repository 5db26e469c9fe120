package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/adrianhartanto/timebill/internal/auth"
	"github.com/adrianhartanto/timebill/internal/client"
	"github.com/adrianhartanto/timebill/internal/engagement"
	"github.com/adrianhartanto/timebill/internal/invoice"
	"github.com/adrianhartanto/timebill/internal/timelog"
	"github.com/adrianhartanto/timebill/internal/transport/middleware"
	"github.com/adrianhartanto/timebill/internal/transport/swagger"
)

// RegisterAllRoutes mounts the full API surface. Everything except auth,
// health and the API docs sits behind the bearer token middleware.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	allowedOrigins string,
	authHandler *auth.Handler,
	clientHandler *client.Handler,
	engagementHandler *engagement.Handler,
	timeLogHandler *timelog.Handler,
	invoiceHandler *invoice.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	router.Use(middleware.Recovery(logger))

	// OpenAPI document and Swagger UI live outside the API prefix.
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
		})

		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", authHandler.GetCurrentUser)

			pr.Route("/clients", func(cr chi.Router) {
				cr.Post("/", clientHandler.CreateClient)
				cr.Get("/", clientHandler.ListClients)
				cr.Get("/{id}", clientHandler.GetClient)
				cr.Put("/{id}", clientHandler.UpdateClient)
				cr.Delete("/{id}", clientHandler.DeleteClient)
			})

			pr.Route("/engagements", func(er chi.Router) {
				er.Post("/", engagementHandler.CreateEngagement)
				er.Get("/", engagementHandler.ListEngagements)
				er.Get("/{id}", engagementHandler.GetEngagement)
				er.Put("/{id}", engagementHandler.UpdateEngagement)
				er.Delete("/{id}", engagementHandler.DeleteEngagement)
			})

			pr.Route("/time-logs", func(tr chi.Router) {
				tr.Post("/", timeLogHandler.CreateTimeLog)
				tr.Get("/", timeLogHandler.ListTimeLogs)
				tr.Get("/{id}", timeLogHandler.GetTimeLog)
				tr.Put("/{id}", timeLogHandler.UpdateTimeLog)
				tr.Delete("/{id}", timeLogHandler.DeleteTimeLog)
			})

			pr.Route("/invoices", func(ir chi.Router) {
				ir.Post("/", invoiceHandler.CreateInvoice)
				ir.Get("/", invoiceHandler.ListInvoices)
				ir.Get("/{id}", invoiceHandler.GetInvoice)
				ir.Patch("/{id}/status", invoiceHandler.UpdateStatus)
			})
		})
	})
}
