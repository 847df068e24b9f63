package accessfee

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository stores per-job fee overrides in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Get fetches the fee override for a job, reporting whether one exists. A
// malformed job identifier simply has no override.
func (r *PostgresRepository) Get(ctx context.Context, jobID string) (int64, bool, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return 0, false, nil
	}
	var coins int64
	err = r.db.QueryRow(ctx, `SELECT fee_coins FROM job_access_fees WHERE job_id = $1`, id).Scan(&coins)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return coins, true, nil
}

// Set stores or replaces the fee override for a job.
func (r *PostgresRepository) Set(ctx context.Context, jobID string, feeCoins int64) error {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return fmt.Errorf("invalid job id %q", jobID)
	}
	_, err = r.db.Exec(ctx, `INSERT INTO job_access_fees (job_id, fee_coins, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (job_id) DO UPDATE SET fee_coins = EXCLUDED.fee_coins, updated_at = now()`,
		id, feeCoins)
	return err
}
