package services

import (
	"database/sql"
	"errors"
	"strconv"
)

// RatingInput is a rating submission after JSON decoding. RecipientID
// is optional; the escalator resolves it when the chain demands one.
type RatingInput struct {
	RateeID     int64  `json:"ratee_id"`
	RecipientID *int64 `json:"recipient_id"`
	Score       int    `json:"score"`
	Comment     string `json:"comment"`
	Category    string `json:"category"`
}

// ResolveRatingRecipient picks who is entitled to see the rating — the
// next link of the escalation chain. Students and lecturers must name
// their PRL themselves; PRL and PL escalate to any PL / FMG found in
// the store; FMG has no further target and may leave it empty.
//
// The lookup and the later insert are two round-trips with no
// transaction around them. A candidate deleted in between surfaces as
// a store error from the insert; given the administrative traffic this
// best-effort semantics is acceptable.
func ResolveRatingRecipient(store Store, rater Identity, supplied *int64) (*int64, error) {
	if rater.Role == RoleStudent || rater.Role == RoleLecturer {
		if supplied == nil {
			return nil, ErrBadRequest("PRL recipient is required for students and lecturers")
		}
		return supplied, nil
	}
	if supplied != nil {
		return supplied, nil
	}
	switch rater.Role {
	case RolePRL:
		return lookupEscalationTarget(store, RolePL, "No Program Leader available to receive rating")
	case RolePL:
		return lookupEscalationTarget(store, RoleFMG, "No Faculty Management available to receive rating")
	default:
		return nil, nil
	}
}

func lookupEscalationTarget(store Store, target Role, missingMsg string) (*int64, error) {
	var id int64
	err := store.Get(&id, `SELECT id FROM users WHERE role = $1 LIMIT 1`, string(target))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound(missingMsg)
	}
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// SubmitRating validates, resolves the recipient and inserts the row,
// returning the new id. No partial state: either the row lands or the
// caller gets the error.
func SubmitRating(store Store, rater Identity, in RatingInput) (int64, error) {
	if in.RateeID == 0 || in.Score == 0 || in.Comment == "" {
		return 0, ErrBadRequest("Ratee ID, score, and comment are required")
	}
	recipient, err := ResolveRatingRecipient(store, rater, in.RecipientID)
	if err != nil {
		return 0, err
	}
	category := in.Category
	if category == "" {
		category = "teaching"
	}
	var id int64
	err = store.Get(&id, `
INSERT INTO ratings (rater_id, ratee_id, recipient_id, score, comment, category, rater_role, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now())
RETURNING id
`, rater.ID, in.RateeID, recipient, in.Score, in.Comment, category, string(rater.Role))
	if err != nil {
		return 0, err
	}
	return id, nil
}

// RatingViewPredicate scopes the ratings listing per role: students and
// lecturers see what they authored; the leadership tier sees ratings
// routed to them or about them.
func RatingViewPredicate(viewer Identity, start int) (string, []interface{}) {
	n := func(offset int) string { return "$" + strconv.Itoa(start+offset) }
	switch viewer.Role {
	case RoleStudent, RoleLecturer:
		return "AND r.rater_id = " + n(0), []interface{}{viewer.ID}
	default:
		return "AND (r.recipient_id = " + n(0) + " OR r.ratee_id = " + n(1) + ")",
			[]interface{}{viewer.ID, viewer.ID}
	}
}
