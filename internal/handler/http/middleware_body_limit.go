package http

import (
	"net/http"

	"github.com/MKhiriev/budget-keeper/internal/validators"
)

// maxRequestBodySize caps every request body. Documents are the largest
// payload the API accepts.
const maxRequestBodySize = validators.MaxDocumentSize

// withBodyLimit stops reads past maxRequestBodySize with [http.MaxBytesError].
func withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
		}
		next.ServeHTTP(w, r)
	})
}
