package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"faculty-reporting-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
)

func (s *Server) AddCourse(w http.ResponseWriter, r *http.Request) {
	var in services.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddCourse(s.DB, in)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg": "Course added successfully",
		"id":  id,
	})
}

func (s *Server) ViewCourses(w http.ResponseWriter, r *http.Request) {
	rows, err := s.queryRows(`
SELECT id, name, code, stream, pl_id
FROM courses
ORDER BY stream, name
`)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	var in services.CourseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.UpdateCourse(s.DB, courseID, in); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"msg": "Course updated successfully"})
}

func (s *Server) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid course id")
		return
	}
	if err := services.DeleteCourse(s.DB, courseID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"msg": "Course deleted successfully"})
}

func (s *Server) ListLecturers(w http.ResponseWriter, r *http.Request) {
	rows, err := services.FetchLecturers(s.DB)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) AddClass(w http.ResponseWriter, r *http.Request) {
	var in services.ClassInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	id, err := services.AddClass(s.DB, in)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"msg": "Class assigned successfully",
		"id":  id,
	})
}

func (s *Server) ViewClasses(w http.ResponseWriter, r *http.Request) {
	rows, err := s.queryRows(`
SELECT cl.*,
       c.name AS course_name, c.code AS course_code, c.stream AS course_stream,
       u.username AS lecturer_name, u.email AS lecturer_email
FROM classes cl
LEFT JOIN courses c ON cl.course_id = c.id
LEFT JOIN users u ON cl.lecturer_id = u.id
ORDER BY cl.scheduled_time
`)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, rows)
}

func (s *Server) UpdateClass(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.ParseInt(chi.URLParam(r, "classId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid class id")
		return
	}
	var in services.ClassInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid payload")
		return
	}
	if err := services.UpdateClass(s.DB, classID, in); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"msg": "Class updated successfully"})
}

func (s *Server) DeleteClass(w http.ResponseWriter, r *http.Request) {
	classID, err := strconv.ParseInt(chi.URLParam(r, "classId"), 10, 64)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid class id")
		return
	}
	if err := services.DeleteClass(s.DB, classID); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"msg": "Class deleted successfully"})
}
