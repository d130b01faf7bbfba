package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
)

type User struct {
	ID   string `db:"id"`
	User string `db:"username"`
	Hash string `db:"password_hash"`
	Role string `db:"role"`
}

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByUsername(username string) (*User, error) {
	var u User
	err := r.DB.Get(&u, `
	  SELECT id, username, password_hash, role FROM users WHERE username = ?
	`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`
	  INSERT INTO sessions(id, user_id, last_seen) VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET user_id = excluded.user_id, last_seen = CURRENT_TIMESTAMP
	`, sid, userID)
	return err
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id = NULL WHERE id = ?`, sid)
	return err
}

// SessionUser returns the user bound to a session, or nil when the session
// is anonymous.
func (r *UserRepo) SessionUser(sid string) (*User, error) {
	var u User
	err := r.DB.Get(&u, `
	  SELECT u.id, u.username, u.password_hash, u.role
	  FROM sessions s JOIN users u ON u.id = s.user_id
	  WHERE s.id = ?
	`, sid)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
