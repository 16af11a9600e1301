package httpapi

import (
	"encoding/json"
	"net/http"

	"faculty-reporting-backend-go/internal/services"
)

type ErrorResponse struct {
	Msg string `json:"msg"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Msg: message})
}

// WriteServiceError maps the error taxonomy to its status; anything
// outside it is a store failure and surfaces as a 500 with the
// underlying message passed through.
func WriteServiceError(w http.ResponseWriter, err error) {
	if serr, ok := err.(services.ServiceError); ok {
		WriteError(w, serr.Status, serr.Message)
		return
	}
	WriteError(w, http.StatusInternalServerError, err.Error())
}
