package common

import (
	"encoding/json"
	"net/http"
)

type MessageResponse struct {
	Message string `json:"message"`
}

// RespondWithError writes a JSON {message} body. Server-side failures
// are sanitized to a generic message so internals never leak.
func RespondWithError(w http.ResponseWriter, code int, message string) {
	if code >= http.StatusInternalServerError {
		message = ErrInternalServer.Error()
	}
	RespondWithJSON(w, code, MessageResponse{Message: message})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "internal server error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
