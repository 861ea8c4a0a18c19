package httpx

import (
	"encoding/json"
	"net/http"
)

// WriteJSON sends v with the given status and no-store headers. The status
// line is already written when encoding fails, so the error is only useful
// for logging.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	h := w.Header()
	h.Set("Content-Type", "application/json")
	noStore(h)
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// NoStore forbids caching of every response from next. GraphQL responses
// carry session tokens.
func NoStore() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			noStore(w.Header())
			next.ServeHTTP(w, r)
		})
	}
}

func noStore(h http.Header) {
	h.Set("Cache-Control", "no-store")
	h.Set("Pragma", "no-cache")
}
