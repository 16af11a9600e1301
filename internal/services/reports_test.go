package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRow(t *testing.T, sender Identity, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	columns, values, err := BuildReportRow(sender, body)
	require.NoError(t, err)
	require.Len(t, values, len(columns))
	row := map[string]interface{}{}
	for i, column := range columns {
		row[column] = values[i]
	}
	return row
}

func TestBuildReportRowStudent(t *testing.T) {
	student := Identity{ID: 42, Role: RoleStudent, Stream: "IT"}
	row := buildRow(t, student, map[string]interface{}{
		"recipient_id": float64(7),
		"topic":        "Recursion",
	})
	assert.Equal(t, int64(42), row["sender_id"])
	assert.Equal(t, int64(7), row["recipient_id"])
	assert.Equal(t, ReportTypeStudentActivity, row["type"])
	assert.Equal(t, "IT", row["stream"])
	assert.Equal(t, "Recursion", row["topic_taught"])
}

func TestBuildReportRowLecturerDefaultsRecipientToSelf(t *testing.T) {
	lecturer := Identity{ID: 5, Role: RoleLecturer, Stream: "CS"}

	row := buildRow(t, lecturer, map[string]interface{}{"topic": "Graphs"})
	assert.Equal(t, int64(5), row["recipient_id"])
	assert.Equal(t, ReportTypeLecture, row["type"])
	assert.Equal(t, "CS", row["stream"])

	row = buildRow(t, lecturer, map[string]interface{}{"recipient_id": "", "topic": "Graphs"})
	assert.Equal(t, int64(5), row["recipient_id"])

	row = buildRow(t, lecturer, map[string]interface{}{"recipient_id": "9", "topic": "Graphs"})
	assert.Equal(t, int64(9), row["recipient_id"])
}

func TestBuildReportRowTypeAlwaysPersisted(t *testing.T) {
	submitted := []interface{}{"prl_to_pl", "fmg_report", "nonsense", "", nil}
	senders := []Identity{
		{ID: 1, Role: RoleStudent, Stream: "IT"},
		{ID: 2, Role: RoleLecturer, Stream: "IS"},
		{ID: 3, Role: RolePRL, Stream: "CS"},
		{ID: 4, Role: RolePL, Stream: "SE"},
		{ID: 5, Role: RoleFMG},
	}
	for _, sender := range senders {
		for _, raw := range submitted {
			row := buildRow(t, sender, map[string]interface{}{
				"type":         raw,
				"recipient_id": float64(7),
				"content":      "x",
			})
			persisted := row["type"].(string)
			assert.Contains(t, []string{ReportTypeLecture, ReportTypeStudentActivity}, persisted,
				"role %s submitted %v", sender.Role, raw)
		}
	}
}

func TestBuildReportRowFMGLeavesStreamUnset(t *testing.T) {
	fmg := Identity{ID: 9, Role: RoleFMG}
	row := buildRow(t, fmg, map[string]interface{}{"content": "notice"})
	_, ok := row["stream"]
	assert.False(t, ok)
	assert.Equal(t, int64(9), row["recipient_id"])
	assert.Equal(t, ReportTypeLecture, row["type"])
}

func TestBuildReportRowFieldCleaning(t *testing.T) {
	lecturer := Identity{ID: 5, Role: RoleLecturer, Stream: "CS"}
	row := buildRow(t, lecturer, map[string]interface{}{
		"week":             "Week 6",
		"present_students": "31",
		"total_students":   "",
		"challenges":       "",
		"not_a_field":      "dropped",
		"priority":         "high",
	})
	assert.Equal(t, "Week 6", row["week_of_reporting"])
	assert.Equal(t, int64(31), row["actual_students_present"])
	assert.NotContains(t, row, "total_registered_students")
	assert.NotContains(t, row, "challenges")
	assert.NotContains(t, row, "not_a_field")
	assert.Equal(t, "high", row["priority"])
}

func TestBuildReportRowNonNumericCountDropped(t *testing.T) {
	lecturer := Identity{ID: 5, Role: RoleLecturer, Stream: "CS"}
	row := buildRow(t, lecturer, map[string]interface{}{"present_students": "thirty"})
	assert.NotContains(t, row, "actual_students_present")
}

func TestViewPredicatePerRole(t *testing.T) {
	cases := []struct {
		name   string
		viewer Identity
		clause string
		args   []interface{}
	}{
		{
			name:   "student",
			viewer: Identity{ID: 1, Role: RoleStudent, Stream: "IT"},
			clause: "AND r.sender_id = $3",
			args:   []interface{}{int64(1)},
		},
		{
			name:   "lecturer",
			viewer: Identity{ID: 2, Role: RoleLecturer, Stream: "CS"},
			clause: "AND r.type = $3 AND r.sender_id = $4 AND r.stream = $5",
			args:   []interface{}{"lecture", int64(2), "CS"},
		},
		{
			name:   "prl",
			viewer: Identity{ID: 3, Role: RolePRL, Stream: "IS"},
			clause: "AND (r.type IN ($3, $4, $5, $6) OR r.type = $7)",
			args:   []interface{}{"lecture", "student_activity", "student_complaint", "student_suggestion", "prl_to_pl"},
		},
		{
			name:   "pl",
			viewer: Identity{ID: 4, Role: RolePL, Stream: "SE"},
			clause: "AND r.type IN ($3, $4) AND r.stream = $5",
			args:   []interface{}{"prl_to_pl", "pl_to_fmg", "SE"},
		},
		{
			name:   "fmg",
			viewer: Identity{ID: 5, Role: RoleFMG},
			clause: "AND r.type IN ($3, $4, $5)",
			args:   []interface{}{"prl_to_fmg", "pl_to_fmg", "fmg_report"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clause, args, err := ViewPredicate(tc.viewer, 3)
			require.NoError(t, err)
			assert.Equal(t, tc.clause, clause)
			assert.Equal(t, tc.args, args)
		})
	}
}

func TestViewPredicateUnknownRoleForbidden(t *testing.T) {
	_, _, err := ViewPredicate(Identity{ID: 1, Role: "ghost"}, 3)
	require.Error(t, err)
	serr, ok := err.(ServiceError)
	require.True(t, ok)
	assert.Equal(t, 403, serr.Status)
}

func TestExportPredicateDropsPRLToPLArm(t *testing.T) {
	prl := Identity{ID: 3, Role: RolePRL, Stream: "IS"}
	clause, args, err := ExportPredicate(prl, 3)
	require.NoError(t, err)
	assert.Equal(t, "AND r.type IN ($3, $4, $5, $6)", clause)
	assert.Equal(t, []interface{}{"lecture", "student_activity", "student_complaint", "student_suggestion"}, args)

	// every other role matches the view predicate
	pl := Identity{ID: 4, Role: RolePL, Stream: "SE"}
	exportClause, exportArgs, err := ExportPredicate(pl, 3)
	require.NoError(t, err)
	viewClause, viewArgs, err2 := ViewPredicate(pl, 3)
	require.NoError(t, err2)
	assert.Equal(t, viewClause, exportClause)
	assert.Equal(t, viewArgs, exportArgs)
}

func TestSubmitReportInsertsSortedColumns(t *testing.T) {
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			*(dest.(*int64)) = 11
			return nil
		},
	}
	student := Identity{ID: 42, Role: RoleStudent, Stream: "IT"}
	id, err := SubmitReport(store, student, map[string]interface{}{
		"recipient_id": float64(7),
		"topic":        "Recursion",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	require.Len(t, store.getCalls, 1)
	query := store.getCalls[0].query
	assert.True(t, strings.HasPrefix(query, "INSERT INTO reports ("))
	assert.Contains(t, query, "RETURNING id")
	// columns arrive sorted, so the statement is stable across runs
	assert.Contains(t, query, "recipient_id, sender_id, stream, topic_taught, type")
	assert.Len(t, store.getCalls[0].args, 5)
}

func TestReviewReportIdempotent(t *testing.T) {
	store := &fakeStore{}
	require.NoError(t, ReviewReport(store, 7, 3))
	require.NoError(t, ReviewReport(store, 7, 3))
	require.Len(t, store.execCalls, 2)
	for _, call := range store.execCalls {
		assert.Contains(t, call.query, "SET status = $1")
		assert.Equal(t, []interface{}{ReportStatusReviewed, int64(3), int64(7)}, call.args)
	}
}
