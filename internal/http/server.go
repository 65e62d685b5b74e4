package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"spendly/internal/log"
	"spendly/internal/services"
)

// Server wires the HTTP transport around the service layer.
type Server struct {
	httpServer *http.Server
}

// Deps collects everything the handlers need.
type Deps struct {
	Auth         Authenticator
	Transactions *services.TransactionService
	Budgets      *services.BudgetService
	Investments  *services.InvestmentService
	Documents    *services.DocumentService
}

func NewServer(addr string, deps Deps) *Server {
	r := chi.NewRouter()
	r.Use(log.RequestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(requireAuth(deps.Auth))

		api.Route("/transactions", func(r chi.Router) {
			h := &transactionHandler{svc: deps.Transactions}
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Get("/category/{category}", h.listByCategory)
			r.Get("/type/{type}", h.listByType)
			r.Get("/{id}", h.get)
			r.Put("/{id}", h.update)
			r.Delete("/{id}", h.delete)
		})

		api.Route("/budgets", func(r chi.Router) {
			h := &budgetHandler{svc: deps.Budgets}
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Get("/{id}", h.get)
			r.Put("/{id}", h.update)
			r.Put("/{id}/recompute", h.recompute)
			r.Delete("/{id}", h.delete)
		})

		api.Route("/investments", func(r chi.Router) {
			h := &investmentHandler{svc: deps.Investments}
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Get("/{id}", h.get)
			r.Delete("/{id}", h.delete)
		})

		api.Route("/documents", func(r chi.Router) {
			h := &documentHandler{svc: deps.Documents}
			r.Post("/", h.create)
			r.Get("/", h.list)
			r.Get("/{id}", h.get)
			r.Delete("/{id}", h.delete)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	slog.Info("HTTP server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
