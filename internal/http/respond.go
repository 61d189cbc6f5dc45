package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"pharmakpi/internal/log"
	"pharmakpi/internal/report"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// respondError maps builder and validation errors onto the wire: bad
// parameters give 400, unknown products 404, everything else 500.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		writeError(w, http.StatusBadRequest, ve.Message())
	case errors.Is(err, report.ErrProductNotFound):
		writeError(w, http.StatusNotFound, "Product not found")
	default:
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Handler error",
			log.FieldError, err,
			log.FieldPath, r.URL.Path)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// requireGet guards read-only endpoints.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return false
	}
	return true
}
