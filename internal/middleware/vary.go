package middleware

import "net/http"

// Vary marks responses as varying on the Accept header, since content
// negotiation selects between JSON and CBOR. Origin is handled by the CORS
// middleware and is not repeated here.
func Vary() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("Vary", "Accept")
			next.ServeHTTP(w, r)
		})
	}
}
