// Package httpx holds the JSON plumbing shared by the HTTP services.
package httpx

import (
	"encoding/json"
	"fmt"
	"net/http"

	log "github.com/furzing/techarabihackathon/chassis/logging"
)

// ErrorBody is the error envelope: {"detail": "..."}.
type ErrorBody struct {
	Detail string `json:"detail"`
}

// RespondJSON writes payload as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithFields(log.Fields{
			"event": "response_encode_failed",
		}).Error(err)
	}
}

// RespondError writes an error envelope with the given status.
func RespondError(w http.ResponseWriter, status int, format string, args ...interface{}) {
	RespondJSON(w, status, ErrorBody{Detail: fmt.Sprintf(format, args...)})
}

// DecodeJSON reads a size-limited JSON request body into dst.
func DecodeJSON(r *http.Request, dst interface{}, maxBytes int64) error {
	body := http.MaxBytesReader(nil, r.Body, maxBytes)
	defer body.Close()
	return json.NewDecoder(body).Decode(dst)
}

// CORS applies the permissive cross-origin policy used by the web frontend.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
