package middlewarex

import (
	"net/http"

	"github.com/go-chi/cors"
)

const corsMaxAge = 300

func CORS(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", headerNameTraceID},
		ExposedHeaders: []string{headerNameTraceID},
		MaxAge:         corsMaxAge,
	})
}
