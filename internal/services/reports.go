package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	ReportTypeLecture         = "lecture"
	ReportTypeStudentActivity = "student_activity"

	ReportStatusSubmitted = "submitted"
	ReportStatusReviewed  = "reviewed"
)

// Legacy report types. The submit path never writes these, but the read
// filters still reference them so result sets stay identical for
// clients of the previous system.
const (
	legacyTypeStudentComplaint  = "student_complaint"
	legacyTypeStudentSuggestion = "student_suggestion"
	legacyTypePRLToPL           = "prl_to_pl"
	legacyTypePLToFMG           = "pl_to_fmg"
	legacyTypePRLToFMG          = "prl_to_fmg"
	legacyTypeFMGReport         = "fmg_report"
)

var persistedReportTypes = map[string]bool{
	ReportTypeLecture:         true,
	ReportTypeStudentActivity: true,
}

// reportFieldMapping whitelists external payload keys and names the
// column each one lands in. Keys outside the map are dropped.
var reportFieldMapping = map[string]string{
	"faculty_name":  "faculty_name",
	"class_name":    "class_name",
	"week":          "week_of_reporting",
	"date":          "date_of_lecture",
	"course_name":   "course_name",
	"code":          "course_code",
	"lecturer_name": "lecturer_name",

	"present_students": "actual_students_present",
	"total_students":   "total_registered_students",
	"venue":            "venue",
	"time":             "scheduled_time",

	"topic":           "topic_taught",
	"outcomes":        "learning_outcomes",
	"recommendations": "lecturer_recommendations",

	"content":         "content",
	"priority":        "priority",
	"teaching_method": "teaching_method",
	"materials_used":  "materials_used",
	"challenges":      "challenges",

	"type":         "type",
	"recipient_id": "recipient_id",
	"sender_id":    "sender_id",
	"stream":       "stream",
}

var reportIntColumns = map[string]bool{
	"actual_students_present":   true,
	"total_registered_students": true,
	"recipient_id":              true,
	"sender_id":                 true,
}

// BuildReportRow applies the submit routing policy to a raw payload and
// returns the column/value pairs ready to insert, columns sorted for a
// stable statement. The sender's role decides type, recipient and
// stream; the field whitelist and numeric coercions clean the rest.
func BuildReportRow(sender Identity, body map[string]interface{}) ([]string, []interface{}, error) {
	data := map[string]interface{}{}
	for key, value := range body {
		data[key] = value
	}
	delete(data, "recipient_role")

	recipient := data["recipient_id"]
	data["sender_id"] = sender.ID

	switch sender.Role {
	case RoleStudent:
		data["recipient_id"] = recipient
		data["type"] = ReportTypeStudentActivity
		data["stream"] = string(sender.Stream)
	case RoleLecturer:
		data["recipient_id"] = orSelf(recipient, sender.ID)
		data["type"] = ReportTypeLecture
		data["stream"] = string(sender.Stream)
	case RolePRL, RolePL:
		data["recipient_id"] = recipient
		data["type"] = ReportTypeLecture
		data["stream"] = string(sender.Stream)
	default:
		data["recipient_id"] = orSelf(recipient, sender.ID)
		data["type"] = ReportTypeLecture
	}

	row := map[string]interface{}{}
	for key, value := range data {
		column, ok := reportFieldMapping[key]
		if !ok || value == nil {
			continue
		}
		if reportIntColumns[column] {
			parsed, ok := coerceInt(value)
			if !ok {
				continue
			}
			value = parsed
		}
		if text, ok := value.(string); ok && text == "" {
			continue
		}
		row[column] = value
	}

	// The persistence layer enforces a closed type set; anything else
	// is normalized to lecture rather than rejected.
	if current, _ := row["type"].(string); !persistedReportTypes[current] {
		row["type"] = ReportTypeLecture
	}

	if len(row) == 0 {
		return nil, nil, ErrBadRequest("No valid data to insert")
	}

	columns := make([]string, 0, len(row))
	for column := range row {
		columns = append(columns, column)
	}
	sort.Strings(columns)
	values := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		values = append(values, row[column])
	}
	return columns, values, nil
}

// SubmitReport persists a routed report and returns the new id. Store
// failures surface verbatim to the caller.
func SubmitReport(store Store, sender Identity, body map[string]interface{}) (int64, error) {
	columns, values, err := BuildReportRow(sender, body)
	if err != nil {
		return 0, err
	}
	placeholders := make([]string, len(values))
	for i := range values {
		placeholders[i] = "$" + strconv.Itoa(i+1)
	}
	query := fmt.Sprintf(
		`INSERT INTO reports (%s) VALUES (%s) RETURNING id`,
		strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	)
	var id int64
	if err := store.Get(&id, query, values...); err != nil {
		return 0, err
	}
	return id, nil
}

// ViewPredicate returns the role-specific visibility clause appended to
// the involvement check, with placeholders numbered from start.
func ViewPredicate(viewer Identity, start int) (string, []interface{}, error) {
	n := func(offset int) string { return "$" + strconv.Itoa(start+offset) }
	switch viewer.Role {
	case RoleStudent:
		return "AND r.sender_id = " + n(0), []interface{}{viewer.ID}, nil
	case RoleLecturer:
		return "AND r.type = " + n(0) + " AND r.sender_id = " + n(1) + " AND r.stream = " + n(2),
			[]interface{}{ReportTypeLecture, viewer.ID, string(viewer.Stream)}, nil
	case RolePRL:
		return "AND (r.type IN (" + n(0) + ", " + n(1) + ", " + n(2) + ", " + n(3) + ") OR r.type = " + n(4) + ")",
			[]interface{}{ReportTypeLecture, ReportTypeStudentActivity, legacyTypeStudentComplaint, legacyTypeStudentSuggestion, legacyTypePRLToPL}, nil
	case RolePL:
		return "AND r.type IN (" + n(0) + ", " + n(1) + ") AND r.stream = " + n(2),
			[]interface{}{legacyTypePRLToPL, legacyTypePLToFMG, string(viewer.Stream)}, nil
	case RoleFMG:
		return "AND r.type IN (" + n(0) + ", " + n(1) + ", " + n(2) + ")",
			[]interface{}{legacyTypePRLToFMG, legacyTypePLToFMG, legacyTypeFMGReport}, nil
	default:
		return "", nil, ErrForbidden("Unauthorized")
	}
}

// ExportPredicate is the export variant of ViewPredicate. The only
// difference is the PRL branch, which drops the prl_to_pl arm.
func ExportPredicate(viewer Identity, start int) (string, []interface{}, error) {
	if viewer.Role != RolePRL {
		return ViewPredicate(viewer, start)
	}
	n := func(offset int) string { return "$" + strconv.Itoa(start+offset) }
	return "AND r.type IN (" + n(0) + ", " + n(1) + ", " + n(2) + ", " + n(3) + ")",
		[]interface{}{ReportTypeLecture, ReportTypeStudentActivity, legacyTypeStudentComplaint, legacyTypeStudentSuggestion}, nil
}

// ReviewReport stamps a report reviewed. Deliberately idempotent: a
// second review rewrites the same terminal state and still succeeds.
func ReviewReport(store Store, reportID, reviewerID int64) error {
	_, err := store.Exec(
		`UPDATE reports SET status = $1, reviewed_by = $2, reviewed_at = now() WHERE id = $3`,
		ReportStatusReviewed, reviewerID, reportID,
	)
	return err
}

func orSelf(recipient interface{}, selfID int64) interface{} {
	id, ok := coerceInt(recipient)
	if !ok || id == 0 {
		return selfID
	}
	return id
}

func coerceInt(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), true
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}
