package services

// Course and class mutations are restricted to PRL and PL through the
// HTTP layer (see RequireCatalogManager); these functions assume the
// gate already passed and enforce the data-level rules.

type CourseInput struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Stream string `json:"stream"`
}

func AddCourse(store Store, in CourseInput) (int64, error) {
	if in.Name == "" || in.Code == "" || in.Stream == "" {
		return 0, ErrBadRequest("Course name, code, and stream are required")
	}
	var exists bool
	if err := store.Get(&exists, `SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`, in.Code); err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrBadRequest("Course code already exists")
	}
	var id int64
	err := store.Get(&id, `INSERT INTO courses (name, code, stream) VALUES ($1, $2, $3) RETURNING id`,
		in.Name, in.Code, in.Stream)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func UpdateCourse(store Store, courseID int64, in CourseInput) error {
	result, err := store.Exec(`UPDATE courses SET name = $1, code = $2, stream = $3 WHERE id = $4`,
		in.Name, in.Code, in.Stream, courseID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound("Course not found")
	}
	return nil
}

// DeleteCourse refuses while any class still references the course.
// The guard is an application-level existence check, not a database
// constraint, matching the rest of the referential handling here.
func DeleteCourse(store Store, courseID int64) error {
	var hasClasses bool
	if err := store.Get(&hasClasses, `SELECT EXISTS(SELECT 1 FROM classes WHERE course_id = $1)`, courseID); err != nil {
		return err
	}
	if hasClasses {
		return ErrConflict("Cannot delete course - it has assigned classes. Remove classes first.")
	}
	result, err := store.Exec(`DELETE FROM courses WHERE id = $1`, courseID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound("Course not found")
	}
	return nil
}

type ClassInput struct {
	Name          string `json:"name"`
	CourseID      int64  `json:"course_id"`
	Venue         string `json:"venue"`
	ScheduledTime string `json:"scheduled_time"`
	LecturerID    int64  `json:"lecturer_id"`
	TotalStudents int    `json:"total_students"`
}

func AddClass(store Store, in ClassInput) (int64, error) {
	if in.Name == "" || in.CourseID == 0 || in.Venue == "" || in.ScheduledTime == "" || in.LecturerID == 0 || in.TotalStudents == 0 {
		return 0, ErrBadRequest("All fields are required")
	}
	var id int64
	err := store.Get(&id, `
INSERT INTO classes (name, course_id, venue, scheduled_time, lecturer_id, total_students)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`, in.Name, in.CourseID, in.Venue, in.ScheduledTime, in.LecturerID, in.TotalStudents)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func UpdateClass(store Store, classID int64, in ClassInput) error {
	result, err := store.Exec(`
UPDATE classes SET name = $1, venue = $2, scheduled_time = $3, lecturer_id = $4, total_students = $5
WHERE id = $6
`, in.Name, in.Venue, in.ScheduledTime, in.LecturerID, in.TotalStudents, classID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound("Class not found")
	}
	return nil
}

func DeleteClass(store Store, classID int64) error {
	result, err := store.Exec(`DELETE FROM classes WHERE id = $1`, classID)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return ErrNotFound("Class not found")
	}
	return nil
}
