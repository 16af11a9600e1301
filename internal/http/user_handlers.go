package httpapi

import (
	"net/http"

	"faculty-reporting-backend-go/internal/services"
)

func (s *Server) ListRecipients(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	rows, err := services.FetchRecipients(s.DB, identity)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}
