package repos

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/TheRipper284/mh/internal/domain"
)

type SessionRepo struct{ db *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{db: db} }

func (r *SessionRepo) Ensure(sid string) error {
	_, err := r.db.Exec(`
	  INSERT INTO sessions(id, last_seen) VALUES(?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET last_seen = CURRENT_TIMESTAMP
	`, sid)
	return err
}

// BindTable attaches a table number to the session after a QR scan.
func (r *SessionRepo) BindTable(sid string, table int) error {
	_, err := r.db.Exec(`
	  INSERT INTO sessions(id, table_number, last_seen) VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(id) DO UPDATE SET table_number = excluded.table_number, last_seen = CURRENT_TIMESTAMP
	`, sid, table)
	return err
}

// Table returns the table bound to the session, or ErrNoTable.
func (r *SessionRepo) Table(sid string) (int, error) {
	var t sql.NullInt64
	err := r.db.Get(&t, `SELECT table_number FROM sessions WHERE id = ?`, sid)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !t.Valid) {
		return 0, domain.ErrNoTable
	}
	if err != nil {
		return 0, err
	}
	return int(t.Int64), nil
}
