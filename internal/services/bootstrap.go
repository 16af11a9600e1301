package services

// EnsureFacultyManagement seeds an FMG account when none exists, so the
// escalation chain always has a terminal recipient. A blank username
// skips the seed entirely.
func EnsureFacultyManagement(store Store, tokens TokenService, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	var exists bool
	if err := store.Get(&exists, `SELECT EXISTS(SELECT 1 FROM users WHERE role = $1)`, string(RoleFMG)); err != nil {
		return err
	}
	if exists {
		return nil
	}
	hashed, err := tokens.HashPassword(password)
	if err != nil {
		return err
	}
	var mail interface{}
	if email != "" {
		mail = email
	}
	_, err = store.Exec(`
INSERT INTO users (username, password, role, stream, email)
VALUES ($1, $2, $3, NULL, $4)
`, username, hashed, string(RoleFMG), mail)
	return err
}
