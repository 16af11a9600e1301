package services

import "database/sql"

// fakeStore satisfies Store with pluggable behavior per test.
type fakeStore struct {
	getFn    func(dest interface{}, query string, args ...interface{}) error
	selectFn func(dest interface{}, query string, args ...interface{}) error
	execFn   func(query string, args ...interface{}) (sql.Result, error)

	getCalls  []storeCall
	execCalls []storeCall
}

type storeCall struct {
	query string
	args  []interface{}
}

func (f *fakeStore) Get(dest interface{}, query string, args ...interface{}) error {
	f.getCalls = append(f.getCalls, storeCall{query: query, args: args})
	if f.getFn == nil {
		return sql.ErrNoRows
	}
	return f.getFn(dest, query, args...)
}

func (f *fakeStore) Select(dest interface{}, query string, args ...interface{}) error {
	if f.selectFn == nil {
		return nil
	}
	return f.selectFn(dest, query, args...)
}

func (f *fakeStore) Exec(query string, args ...interface{}) (sql.Result, error) {
	f.execCalls = append(f.execCalls, storeCall{query: query, args: args})
	if f.execFn == nil {
		return execResult{rows: 1}, nil
	}
	return f.execFn(query, args...)
}

type execResult struct {
	rows int64
}

func (r execResult) LastInsertId() (int64, error) { return 0, nil }
func (r execResult) RowsAffected() (int64, error) { return r.rows, nil }
