package models

import "time"

type User struct {
	ID        int64     `db:"id"`
	Username  string    `db:"username"`
	Password  string    `db:"password"`
	Role      string    `db:"role"`
	Stream    *string   `db:"stream"`
	Email     *string   `db:"email"`
	CreatedAt time.Time `db:"created_at"`
}

type Report struct {
	ID          int64      `db:"id"`
	Type        string     `db:"type"`
	SenderID    *int64     `db:"sender_id"`
	RecipientID *int64     `db:"recipient_id"`
	LecturerID  *int64     `db:"lecturer_id"`
	Stream      *string    `db:"stream"`
	Status      string     `db:"status"`
	ReviewedBy  *int64     `db:"reviewed_by"`
	ReviewedAt  *time.Time `db:"reviewed_at"`
	CreatedAt   time.Time  `db:"created_at"`

	FacultyName             *string `db:"faculty_name"`
	ClassName               *string `db:"class_name"`
	WeekOfReporting         *string `db:"week_of_reporting"`
	DateOfLecture           *string `db:"date_of_lecture"`
	CourseName              *string `db:"course_name"`
	CourseCode              *string `db:"course_code"`
	LecturerName            *string `db:"lecturer_name"`
	ActualStudentsPresent   *int    `db:"actual_students_present"`
	TotalRegisteredStudents *int    `db:"total_registered_students"`
	Venue                   *string `db:"venue"`
	ScheduledTime           *string `db:"scheduled_time"`
	TopicTaught             *string `db:"topic_taught"`
	LearningOutcomes        *string `db:"learning_outcomes"`
	LecturerRecommendations *string `db:"lecturer_recommendations"`
	Content                 *string `db:"content"`
	Priority                *string `db:"priority"`
	TeachingMethod          *string `db:"teaching_method"`
	MaterialsUsed           *string `db:"materials_used"`
	Challenges              *string `db:"challenges"`
}

type Feedback struct {
	ID        int64     `db:"id"`
	ReportID  int64     `db:"report_id"`
	SenderID  *int64    `db:"sender_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
}

type Rating struct {
	ID          int64     `db:"id"`
	RaterID     int64     `db:"rater_id"`
	RateeID     int64     `db:"ratee_id"`
	RecipientID *int64    `db:"recipient_id"`
	Score       int       `db:"score"`
	Comment     string    `db:"comment"`
	Category    string    `db:"category"`
	RaterRole   string    `db:"rater_role"`
	CreatedAt   time.Time `db:"created_at"`
}

type Course struct {
	ID     int64  `db:"id"`
	Name   string `db:"name"`
	Code   string `db:"code"`
	Stream string `db:"stream"`
	PLID   *int64 `db:"pl_id"`
}

type Class struct {
	ID            int64  `db:"id"`
	Name          string `db:"name"`
	CourseID      int64  `db:"course_id"`
	Venue         string `db:"venue"`
	ScheduledTime string `db:"scheduled_time"`
	LecturerID    int64  `db:"lecturer_id"`
	TotalStudents int    `db:"total_students"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	HeapUsedBytes     int64     `db:"heap_used_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
