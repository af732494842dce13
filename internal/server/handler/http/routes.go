package http

import (
	"net/http"

	"github.com/atinyakov/SteamGuardKeeper/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter constructs the HTTP handler serving the command surface.
//
// Routes:
//
//	GET    /api/time            → CurrentTime
//	POST   /api/code            → GenerateCode
//	GET    /api/secrets         → Secrets
//	POST   /api/secrets         → AddSecret
//	DELETE /api/secrets/{index} → DeleteSecret
//	GET    /api/codes           → Codes
//
// Middleware chain (applied in order):
//  1. Recoverer                           — turns handler panics into 500
//  2. AllowContentType("application/json") — rejects non-JSON bodies
//  3. WithRequestLogging(logger)         — request id and access log
func NewRouter(commands *CommandHandler, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		r.Get("/time", commands.CurrentTime)
		r.Post("/code", commands.GenerateCode)
		r.Get("/codes", commands.Codes)

		r.Route("/secrets", func(r chi.Router) {
			r.Get("/", commands.Secrets)
			r.Post("/", commands.AddSecret)
			r.Delete("/{index}", commands.DeleteSecret)
		})
	})

	return r
}
