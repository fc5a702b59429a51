package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erazemk/foodcourt/internal/model"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonReply writes the {success, message} envelope.
func jsonReply(w http.ResponseWriter, status int, success bool, message string) {
	jsonResponse(w, status, model.Reply{Success: success, Message: message})
}

// jsonError writes a failed envelope.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonReply(w, status, false, message)
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
