package job

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDirectory reads jobs from the shared jobs table. The core never
// writes this table.
type PostgresDirectory struct {
	db *pgxpool.Pool
}

// NewPostgresDirectory builds a read-only job directory backed by PostgreSQL.
func NewPostgresDirectory(db *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{db: db}
}

// Lookup fetches a job projection by identifier. A malformed identifier is a
// not-found, not a query error.
func (d *PostgresDirectory) Lookup(ctx context.Context, jobID string) (Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return Job{}, ErrNotFound
	}
	row := d.db.QueryRow(ctx, `SELECT id, homeowner_id, title, status, contact_name, contact_phone, contact_email
        FROM jobs WHERE id = $1`, id)
	var j Job
	if err := row.Scan(&j.ID, &j.HomeownerID, &j.Title, &j.Status,
		&j.Contact.Name, &j.Contact.Phone, &j.Contact.Email); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, ErrNotFound
		}
		return Job{}, err
	}
	return j, nil
}
