package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"flipper/internal/domain"
	"flipper/pkg/errcodes"
	"flipper/pkg/httpx/reply"
	"flipper/pkg/logx"
	"flipper/pkg/middlewarex"
)

type RouterOptions struct {
	CORSAllowedOrigins  []string
	SensitiveDataMasker logx.SensitiveDataMaskerInterface
	LogFieldMaxLen      int
}

// NewRouter builds the HTTP handler with the middleware chain.
func NewRouter(s Server, opts RouterOptions) http.Handler {
	if opts.SensitiveDataMasker == nil {
		opts.SensitiveDataMasker = logx.NewSensitiveDataMasker()
	}

	r := chi.NewRouter()

	r.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.CORS(opts.CORSAllowedOrigins),
		middlewarex.RequestLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
		middlewarex.ResponseLogging(opts.SensitiveDataMasker, opts.LogFieldMaxLen),
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		reply.Error(r.Context(), w, domain.NewError(errcodes.NotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		reply.Error(r.Context(), w, domain.NewError(errcodes.MethodNotAllowed, "method not allowed"))
	})

	s.RegisterRoutes(r)

	return r
}

func (s Server) RegisterRoutes(r chi.Router) {
	r.Post("/scan", handler(s.postScan))
	r.Get("/status", handler(s.getStatus))
	r.Post("/config", handler(s.postConfig))
	r.Get("/listings", handler(s.getListings))
	r.Post("/relist", handler(s.postRelist))
	r.Get("/transactions", handler(s.getTransactions))

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", handler(s.getInventory))
		r.Post("/{id}/sold", handler(s.postInventorySold))
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
