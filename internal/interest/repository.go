package interest

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists interests. Status transitions are conditional updates:
// the precondition check and the write are one statement, so concurrent
// callers cannot both observe the pre-transition status and both proceed.
type Repository interface {
	Create(ctx context.Context, in Interest) error
	Get(ctx context.Context, id string) (Interest, error)
	FindByJobAndTradesperson(ctx context.Context, jobID, tradespersonID string) (Interest, error)
	MarkContactShared(ctx context.Context, id string, at time.Time) (Interest, error)
	MarkPaid(ctx context.Context, id string, at time.Time) (Interest, error)
	ExpireForJob(ctx context.Context, jobID string, at time.Time) (int64, error)
	ListForJob(ctx context.Context, jobID string) ([]Interest, error)
	ListForTradesperson(ctx context.Context, tradespersonID string) ([]Interest, error)
}

const uniqueViolation = "23505"

// PostgresRepository stores interests in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const interestColumns = `id, job_id, tradesperson_id, homeowner_id, status,
    access_fee_coins, access_fee_currency, created_at, contact_shared_at, payment_made_at, expired_at`

// Create inserts a new interest; the unique (job_id, tradesperson_id) index
// enforces one interest per pair.
func (r *PostgresRepository) Create(ctx context.Context, in Interest) error {
	id, err := uuid.Parse(in.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO interests
        (id, job_id, tradesperson_id, homeowner_id, status, access_fee_coins, access_fee_currency, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, in.JobID, in.TradespersonID, in.HomeownerID, in.Status,
		in.AccessFeeCoins, in.AccessFeeCurrency, in.CreatedAt.UTC())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateInterest
		}
		return err
	}
	return nil
}

// Get fetches an interest by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Interest, error) {
	interestID, err := uuid.Parse(id)
	if err != nil {
		return Interest{}, ErrInterestNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+interestColumns+` FROM interests WHERE id = $1`, interestID)
	return scanInterest(row)
}

// FindByJobAndTradesperson fetches the unique interest for a pair.
func (r *PostgresRepository) FindByJobAndTradesperson(ctx context.Context, jobID, tradespersonID string) (Interest, error) {
	jID, err := uuid.Parse(jobID)
	if err != nil {
		return Interest{}, ErrInterestNotFound
	}
	tID, err := uuid.Parse(tradespersonID)
	if err != nil {
		return Interest{}, ErrInterestNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT `+interestColumns+` FROM interests
        WHERE job_id = $1 AND tradesperson_id = $2`, jID, tID)
	return scanInterest(row)
}

// MarkContactShared transitions pending -> contact_shared.
func (r *PostgresRepository) MarkContactShared(ctx context.Context, id string, at time.Time) (Interest, error) {
	return r.transition(ctx, id, StatusPending, StatusContactShared, "contact_shared_at", at)
}

// MarkPaid transitions contact_shared -> paid_access.
func (r *PostgresRepository) MarkPaid(ctx context.Context, id string, at time.Time) (Interest, error) {
	return r.transition(ctx, id, StatusContactShared, StatusPaidAccess, "payment_made_at", at)
}

func (r *PostgresRepository) transition(ctx context.Context, id, from, to, stampColumn string, at time.Time) (Interest, error) {
	interestID, err := uuid.Parse(id)
	if err != nil {
		return Interest{}, ErrInterestNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE interests SET status = $2, `+stampColumn+` = $3
        WHERE id = $1 AND status = $4
        RETURNING `+interestColumns, interestID, to, at.UTC(), from)
	in, err := scanInterest(row)
	if err == nil {
		return in, nil
	}
	if !errors.Is(err, ErrInterestNotFound) {
		return Interest{}, err
	}
	// Nothing updated: distinguish unknown id from a failed precondition.
	existing, getErr := r.Get(ctx, id)
	if getErr != nil {
		return Interest{}, getErr
	}
	return existing, ErrInvalidTransition
}

// ExpireForJob expires every pending or contact_shared interest for the job.
// Paid interests keep their access.
func (r *PostgresRepository) ExpireForJob(ctx context.Context, jobID string, at time.Time) (int64, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return 0, nil
	}
	cmd, err := r.db.Exec(ctx, `UPDATE interests SET status = $2, expired_at = $3
        WHERE job_id = $1 AND status IN ($4, $5)`,
		id, StatusExpired, at.UTC(), StatusPending, StatusContactShared)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

// ListForJob lists interests on a job, newest first.
func (r *PostgresRepository) ListForJob(ctx context.Context, jobID string) ([]Interest, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+interestColumns+` FROM interests
        WHERE job_id = $1 ORDER BY created_at DESC`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInterests(rows)
}

// ListForTradesperson lists a tradesperson's interests, newest first.
func (r *PostgresRepository) ListForTradesperson(ctx context.Context, tradespersonID string) ([]Interest, error) {
	rows, err := r.db.Query(ctx, `SELECT `+interestColumns+` FROM interests
        WHERE tradesperson_id = $1 ORDER BY created_at DESC`, tradespersonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInterests(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInterest(row rowScanner) (Interest, error) {
	var (
		in Interest
		id uuid.UUID
	)
	err := row.Scan(&id, &in.JobID, &in.TradespersonID, &in.HomeownerID, &in.Status,
		&in.AccessFeeCoins, &in.AccessFeeCurrency, &in.CreatedAt,
		&in.ContactSharedAt, &in.PaymentMadeAt, &in.ExpiredAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Interest{}, ErrInterestNotFound
		}
		return Interest{}, err
	}
	in.ID = id.String()
	in.CreatedAt = in.CreatedAt.UTC()
	return in, nil
}

func scanInterests(rows pgx.Rows) ([]Interest, error) {
	var out []Interest
	for rows.Next() {
		in, err := scanInterest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	return out, rows.Err()
}
