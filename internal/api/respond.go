package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	errs "fleetreserve/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, err error) {
	he := errs.FromError(err)
	if he.Code >= http.StatusInternalServerError {
		log.Printf("internal error: %v", err)
	}
	writeJSON(w, he.Code, map[string]string{"error": he.Message})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

func pathID(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)[name])
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s", errs.ErrValidation, name)
	}
	return id, nil
}

// parseTimestamp parses an ISO-8601 timestamp with zone, e.g.
// 2025-06-01T09:00:00Z.
func parseTimestamp(field, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s, use RFC 3339 format", errs.ErrValidation, field)
	}
	return t, nil
}

// parseDateParam parses a YYYY-MM-DD query parameter to midnight UTC.
func parseDateParam(field, value string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid %s format, use YYYY-MM-DD", errs.ErrValidation, field)
	}
	return t, nil
}
