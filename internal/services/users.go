package services

import (
	"strconv"
	"strings"
)

// UserSummary is the directory row handed to clients picking a
// recipient or a ratee.
type UserSummary struct {
	ID     int64   `db:"id" json:"id"`
	Name   string  `db:"name" json:"name"`
	Email  *string `db:"email" json:"email"`
	Role   string  `db:"role" json:"role"`
	Stream *string `db:"stream" json:"stream"`
}

func usersByRoles(store Store, roles []Role) ([]UserSummary, error) {
	placeholders := make([]string, len(roles))
	args := make([]interface{}, len(roles))
	for i, role := range roles {
		placeholders[i] = "$" + strconv.Itoa(i+1)
		args[i] = string(role)
	}
	rows := []UserSummary{}
	err := store.Select(&rows, `
SELECT id, username AS name, email, role, stream
FROM users
WHERE role IN (`+strings.Join(placeholders, ", ")+`)
ORDER BY role, stream, username
`, args...)
	return rows, err
}

// FetchRecipients lists who the viewer may address a report to.
// An empty result is a 404 with role-specific guidance, so clients can
// tell a misconfigured deployment from an empty form.
func FetchRecipients(store Store, viewer Identity) ([]UserSummary, error) {
	rows, err := usersByRoles(store, RecipientRoles(viewer.Role))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		switch viewer.Role {
		case RolePRL:
			return nil, ErrNotFound("No Program Leaders (PLs) available. Please contact administrator to create PL accounts.")
		case RolePL:
			return nil, ErrNotFound("No Faculty Management (FMG) available. Please contact administrator.")
		default:
			return nil, ErrNotFound("No recipients available. Please contact administrator.")
		}
	}
	return rows, nil
}

// FetchRatees lists the upward chain the viewer may rate. FMG gets an
// empty list, not an error.
func FetchRatees(store Store, viewer Identity) ([]UserSummary, error) {
	roles := RateeRoles(viewer.Role)
	if len(roles) == 0 {
		return []UserSummary{}, nil
	}
	return usersByRoles(store, roles)
}

func FetchLecturers(store Store) ([]UserSummary, error) {
	rows := []UserSummary{}
	err := store.Select(&rows, `
SELECT id, username AS name, email, role, stream
FROM users
WHERE role = $1
ORDER BY stream, username
`, string(RoleLecturer))
	return rows, err
}
