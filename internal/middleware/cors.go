package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS returns permissive cross-origin middleware. The avatar editor runs as
// a browser SPA on a separate origin, so all origins are accepted and the
// Authorization header is allowed through for bearer tokens.
func CORS() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	})
}
