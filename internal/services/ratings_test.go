package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveRecipientRequiredForStudentAndLecturer(t *testing.T) {
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			t.Fatal("store must not be touched before validation")
			return nil
		},
	}
	for _, role := range []Role{RoleStudent, RoleLecturer} {
		_, err := ResolveRatingRecipient(store, Identity{ID: 1, Role: role}, nil)
		require.Error(t, err)
		serr, ok := err.(ServiceError)
		require.True(t, ok)
		assert.Equal(t, 400, serr.Status)
	}

	supplied := int64(12)
	recipient, err := ResolveRatingRecipient(store, Identity{ID: 1, Role: RoleStudent}, &supplied)
	require.NoError(t, err)
	require.NotNil(t, recipient)
	assert.Equal(t, int64(12), *recipient)
}

func TestResolveRecipientPRLEscalatesToAnyPL(t *testing.T) {
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			assert.Equal(t, []interface{}{"pl"}, args)
			*(dest.(*int64)) = 77
			return nil
		},
	}
	recipient, err := ResolveRatingRecipient(store, Identity{ID: 3, Role: RolePRL}, nil)
	require.NoError(t, err)
	require.NotNil(t, recipient)
	assert.Equal(t, int64(77), *recipient)
}

func TestResolveRecipientPRLNoPLAvailable(t *testing.T) {
	store := &fakeStore{} // default Get returns sql.ErrNoRows
	_, err := ResolveRatingRecipient(store, Identity{ID: 3, Role: RolePRL}, nil)
	require.Error(t, err)
	serr, ok := err.(ServiceError)
	require.True(t, ok)
	assert.Equal(t, 404, serr.Status)
	assert.Equal(t, "No Program Leader available to receive rating", serr.Message)
}

func TestResolveRecipientPLEscalatesToFMG(t *testing.T) {
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			assert.Equal(t, []interface{}{"fmg"}, args)
			*(dest.(*int64)) = 99
			return nil
		},
	}
	recipient, err := ResolveRatingRecipient(store, Identity{ID: 4, Role: RolePL}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(99), *recipient)

	_, err = ResolveRatingRecipient(&fakeStore{}, Identity{ID: 4, Role: RolePL}, nil)
	require.Error(t, err)
	assert.Equal(t, "No Faculty Management available to receive rating", err.Error())
}

func TestResolveRecipientFMGHasNoTarget(t *testing.T) {
	recipient, err := ResolveRatingRecipient(&fakeStore{}, Identity{ID: 5, Role: RoleFMG}, nil)
	require.NoError(t, err)
	assert.Nil(t, recipient)
}

func TestResolveRecipientSuppliedWins(t *testing.T) {
	supplied := int64(31)
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			t.Fatal("no lookup when recipient is supplied")
			return nil
		},
	}
	recipient, err := ResolveRatingRecipient(store, Identity{ID: 3, Role: RolePRL}, &supplied)
	require.NoError(t, err)
	assert.Equal(t, int64(31), *recipient)
}

func TestSubmitRatingValidatesBeforeStore(t *testing.T) {
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			t.Fatal("store must not be touched")
			return nil
		},
	}
	_, err := SubmitRating(store, Identity{ID: 1, Role: RoleStudent}, RatingInput{Score: 4})
	require.Error(t, err)
	assert.Equal(t, "Ratee ID, score, and comment are required", err.Error())
}

func TestSubmitRatingNoRowOnFailedEscalation(t *testing.T) {
	store := &fakeStore{} // lookup finds nobody
	_, err := SubmitRating(store, Identity{ID: 3, Role: RolePRL}, RatingInput{
		RateeID: 8, Score: 5, Comment: "solid",
	})
	require.Error(t, err)
	serr, ok := err.(ServiceError)
	require.True(t, ok)
	assert.Equal(t, 404, serr.Status)
	// only the lookup ran; nothing was inserted
	require.Len(t, store.getCalls, 1)
	assert.Contains(t, store.getCalls[0].query, "FROM users")
}

func TestSubmitRatingInsertsResolvedRecipient(t *testing.T) {
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			if len(args) == 1 { // escalation lookup
				*(dest.(*int64)) = 77
				return nil
			}
			*(dest.(*int64)) = 501
			return nil
		},
	}
	id, err := SubmitRating(store, Identity{ID: 3, Role: RolePRL}, RatingInput{
		RateeID: 8, Score: 5, Comment: "solid",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(501), id)
	require.Len(t, store.getCalls, 2)
	insert := store.getCalls[1]
	assert.Contains(t, insert.query, "INSERT INTO ratings")
	require.Len(t, insert.args, 7)
	assert.Equal(t, int64(3), insert.args[0])
	assert.Equal(t, int64(8), insert.args[1])
	assert.Equal(t, int64(77), *(insert.args[2].(*int64)))
	assert.Equal(t, 5, insert.args[3])
	assert.Equal(t, "solid", insert.args[4])
	assert.Equal(t, "teaching", insert.args[5], "category defaults")
	assert.Equal(t, "prl", insert.args[6])
}

func TestSubmitRatingSurfacesStoreError(t *testing.T) {
	boom := errors.New("duplicate key value violates unique constraint")
	store := &fakeStore{
		getFn: func(dest interface{}, query string, args ...interface{}) error {
			if len(args) == 1 {
				*(dest.(*int64)) = 77
				return nil
			}
			return boom
		},
	}
	_, err := SubmitRating(store, Identity{ID: 3, Role: RolePRL}, RatingInput{
		RateeID: 8, Score: 5, Comment: "solid",
	})
	require.ErrorIs(t, err, boom)
	var serr ServiceError
	assert.False(t, errors.As(err, &serr), "store errors stay out of the taxonomy")
}

func TestRatingViewPredicate(t *testing.T) {
	clause, args := RatingViewPredicate(Identity{ID: 1, Role: RoleStudent}, 1)
	assert.Equal(t, "AND r.rater_id = $1", clause)
	assert.Equal(t, []interface{}{int64(1)}, args)

	clause, args = RatingViewPredicate(Identity{ID: 2, Role: RoleLecturer}, 1)
	assert.Equal(t, "AND r.rater_id = $1", clause)
	assert.Equal(t, []interface{}{int64(2)}, args)

	for _, role := range []Role{RolePRL, RolePL, RoleFMG} {
		clause, args = RatingViewPredicate(Identity{ID: 9, Role: role}, 1)
		assert.Equal(t, "AND (r.recipient_id = $1 OR r.ratee_id = $2)", clause)
		assert.Equal(t, []interface{}{int64(9), int64(9)}, args)
	}
}
