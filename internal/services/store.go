package services

import "database/sql"

// Store is the slice of sqlx.DB the services consume. Keeping it narrow
// lets tests swap in a fake without a database.
type Store interface {
	Get(dest interface{}, query string, args ...interface{}) error
	Select(dest interface{}, query string, args ...interface{}) error
	Exec(query string, args ...interface{}) (sql.Result, error)
}
