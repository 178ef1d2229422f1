package ward

import (
	"encoding/json"
	"net/http"
)

// respond encodes the business handler's return value. A nil result is
// 204 No Content; a StatusCoder overrides the default status.
func respond(w http.ResponseWriter, v any, defaultStatus int) {
	if v == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	status := defaultStatus
	if sc, ok := v.(StatusCoder); ok {
		status = sc.StatusCode()
	}
	respondJSON(w, status, v)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,errchkjson,gosec // best-effort after WriteHeader
	json.NewEncoder(w).Encode(v)
}
