package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

type FeedbackRequest struct {
	ReportID int64  `json:"report_id"`
	Content  string `json:"content"`
}

type FeedbackDTO struct {
	ID        int64     `json:"id" db:"id"`
	ReportID  int64     `json:"report_id" db:"report_id"`
	SenderID  *int64    `json:"sender_id" db:"sender_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (s *Server) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	var req FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if req.ReportID == 0 || req.Content == "" {
		WriteError(w, http.StatusBadRequest, "Report ID and content are required")
		return
	}
	row := FeedbackDTO{}
	err := s.DB.Get(&row, `
INSERT INTO feedback (report_id, sender_id, content)
VALUES ($1, $2, $3)
RETURNING id, report_id, sender_id, content, created_at
`, req.ReportID, identity.ID, req.Content)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg":      "Feedback submitted successfully",
		"feedback": row,
	})
}

func (s *Server) FeedbackForReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := strconv.ParseInt(chi.URLParam(r, "reportId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid report id")
		return
	}
	rows, err := s.queryRows(`
SELECT f.*, u.username AS sender_name, u.role AS sender_role
FROM feedback f
LEFT JOIN users u ON f.sender_id = u.id
WHERE f.report_id = $1
ORDER BY f.created_at DESC
`, reportID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}
