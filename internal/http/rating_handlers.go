package httpapi

import (
	"encoding/json"
	"net/http"

	"faculty-reporting-backend-go/internal/services"
)

func (s *Server) ListRatees(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	rows, err := services.FetchRatees(s.DB, identity)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) SubmitRating(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	var in services.RatingInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.SubmitRating(s.DB, identity, in)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg": "Rating submitted successfully",
		"id":  id,
	})
}

func (s *Server) ViewRatings(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	predicate, args := services.RatingViewPredicate(identity, 1)
	rows, err := s.queryRows(`
SELECT r.*,
       u1.username AS rater_name,
       u1.role AS rater_account_role,
       u2.username AS ratee_name,
       u2.role AS ratee_role,
       u3.username AS recipient_name,
       u3.role AS recipient_role
FROM ratings r
LEFT JOIN users u1 ON r.rater_id = u1.id
LEFT JOIN users u2 ON r.ratee_id = u2.id
LEFT JOIN users u3 ON r.recipient_id = u3.id
WHERE 1=1
`+predicate+`
ORDER BY r.created_at DESC`, args...)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) ReceivedRatings(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	rows, err := s.queryRows(`
SELECT r.*,
       u1.username AS rater_name,
       u1.role AS rater_account_role,
       u2.username AS ratee_name,
       u2.role AS ratee_role
FROM ratings r
LEFT JOIN users u1 ON r.rater_id = u1.id
LEFT JOIN users u2 ON r.ratee_id = u2.id
WHERE r.recipient_id = $1
ORDER BY r.created_at DESC
`, identity.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}
