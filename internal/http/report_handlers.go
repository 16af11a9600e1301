package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"faculty-reporting-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) SubmitReport(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	body := map[string]interface{}{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.SubmitReport(s.DB, identity, body)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	reportType := services.ReportTypeLecture
	if identity.Role == services.RoleStudent {
		reportType = services.ReportTypeStudentActivity
	}
	s.Monitor.Broadcast(services.ReportEvent{
		Kind:       "report_submitted",
		ReportID:   id,
		ReportType: reportType,
		SenderRole: string(identity.Role),
		Stream:     string(identity.Stream),
		At:         time.Now().UTC(),
	})
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg": "Report submitted successfully",
		"id":  id,
	})
}

func (s *Server) ViewReports(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	predicate, predicateArgs, err := services.ViewPredicate(identity, 3)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	query := `
SELECT r.*,
       u1.username AS lecturer_display_name,
       u2.username AS sender_name,
       f.content AS feedback,
       u3.username AS feedback_sender_name
FROM reports r
LEFT JOIN users u1 ON r.lecturer_id = u1.id
LEFT JOIN users u2 ON r.sender_id = u2.id
LEFT JOIN feedback f ON r.id = f.report_id
LEFT JOIN users u3 ON f.sender_id = u3.id
WHERE (r.recipient_id = $1 OR r.sender_id = $2)
` + predicate + `
ORDER BY r.created_at DESC`
	args := append([]interface{}{identity.ID, identity.ID}, predicateArgs...)
	rows, err := s.queryRows(query, args...)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

// SearchReports intersects the substring match with the involvement
// check only; the role predicate table does not apply here.
func (s *Server) SearchReports(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	q := r.URL.Query().Get("q")
	pattern := "%" + q + "%"
	rows, err := s.queryRows(`
SELECT r.*, u.username AS sender_name
FROM reports r
LEFT JOIN users u ON r.sender_id = u.id
WHERE (r.content LIKE $1 OR r.topic_taught LIKE $2 OR r.course_name LIKE $3)
  AND (r.recipient_id = $4 OR r.sender_id = $5)
`, pattern, pattern, pattern, identity.ID, identity.ID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) DownloadReport(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	reportID, err := strconv.ParseInt(chi.URLParam(r, "reportId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid report id")
		return
	}
	rows, err := s.queryRows(`
SELECT * FROM reports WHERE id = $1 AND (recipient_id = $2 OR sender_id = $3)
`, reportID, identity.ID, identity.ID)
	if err != nil || len(rows) == 0 {
		WriteError(w, http.StatusNotFound, "Report not found")
		return
	}
	blob, err := services.BuildWorkbook("Report", rows)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=report_%d.xlsx", reportID))
	w.Header().Set("Content-Type", xlsxContentType)
	_, _ = w.Write(blob)
}

// MonitorReports lists everything a given user is involved in, for the
// oversight dashboards.
func (s *Server) MonitorReports(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid user id")
		return
	}
	rows, err := s.queryRows(`
SELECT r.*,
       u1.username AS lecturer_display_name,
       u2.username AS sender_name
FROM reports r
LEFT JOIN users u1 ON r.lecturer_id = u1.id
LEFT JOIN users u2 ON r.sender_id = u2.id
WHERE r.recipient_id = $1 OR r.sender_id = $2
ORDER BY r.created_at DESC
`, userID, userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) ExportReports(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	predicate, predicateArgs, err := services.ExportPredicate(identity, 3)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	query := `
SELECT r.*, u.username AS sender_name
FROM reports r
LEFT JOIN users u ON r.sender_id = u.id
WHERE (r.recipient_id = $1 OR r.sender_id = $2)
` + predicate
	args := append([]interface{}{identity.ID, identity.ID}, predicateArgs...)
	rows, err := s.queryRows(query, args...)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	blob, err := services.BuildWorkbook("Reports", rows)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=reports_export.xlsx")
	w.Header().Set("Content-Type", xlsxContentType)
	_, _ = w.Write(blob)
}

type ReviewRequest struct {
	ReviewerID *int64 `json:"reviewer_id"`
}

func (s *Server) ReviewReport(w http.ResponseWriter, r *http.Request) {
	identity := CurrentIdentity(r)
	reportID, err := strconv.ParseInt(chi.URLParam(r, "reportId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid report id")
		return
	}
	var req ReviewRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	reviewerID := identity.ID
	if req.ReviewerID != nil {
		reviewerID = *req.ReviewerID
	}
	if err := services.ReviewReport(s.DB, reportID, reviewerID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"msg": "Report reviewed successfully"})
}

// queryRows runs a dynamic-column query and returns JSON-friendly maps;
// the spreadsheet export and the listing endpoints both consume them.
func (s *Server) queryRows(query string, args ...interface{}) ([]map[string]interface{}, error) {
	result, err := s.DB.Queryx(query, args...)
	if err != nil {
		return nil, err
	}
	defer result.Close()
	rows := []map[string]interface{}{}
	for result.Next() {
		row := map[string]interface{}{}
		if err := result.MapScan(row); err != nil {
			return nil, err
		}
		for key, value := range row {
			if raw, ok := value.([]byte); ok {
				row[key] = string(raw)
			}
		}
		rows = append(rows, row)
	}
	return rows, result.Err()
}
