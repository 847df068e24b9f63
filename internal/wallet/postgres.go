package wallet

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists wallets and their transaction log in PostgreSQL.
// Balance mutations rely on conditional single-statement updates so that the
// affordability check and the decrement are one indivisible step.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore constructs a Postgres-backed wallet store.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

const uniqueViolation = "23505"

func (s *PostgresStore) Ensure(ctx context.Context, ownerID string) (Wallet, error) {
	if _, err := s.db.Exec(ctx, `INSERT INTO wallets (owner_id, balance_coins, created_at, updated_at)
        VALUES ($1, 0, now(), now()) ON CONFLICT (owner_id) DO NOTHING`, ownerID); err != nil {
		return Wallet{}, err
	}
	return s.get(ctx, s.db, ownerID)
}

type queryer interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func (s *PostgresStore) get(ctx context.Context, q queryer, ownerID string) (Wallet, error) {
	row := q.QueryRow(ctx, `SELECT owner_id, balance_coins, created_at, updated_at
        FROM wallets WHERE owner_id = $1`, ownerID)
	var w Wallet
	if err := row.Scan(&w.OwnerID, &w.BalanceCoins, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Wallet{}, ErrWalletNotFound
		}
		return Wallet{}, err
	}
	return w, nil
}

func (s *PostgresStore) Credit(ctx context.Context, ownerID string, amountCoins int64, reasonTxnID string) (Wallet, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Wallet{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO wallets (owner_id, balance_coins, created_at, updated_at)
        VALUES ($1, 0, now(), now()) ON CONFLICT (owner_id) DO NOTHING`, ownerID); err != nil {
		return Wallet{}, err
	}

	if _, err := creditInTx(ctx, tx, ownerID, amountCoins, reasonTxnID); err != nil {
		return Wallet{}, err
	}

	w, err := s.get(ctx, tx, ownerID)
	if err != nil {
		return Wallet{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

// creditInTx applies an idempotent credit inside an open transaction. Returns
// false when the reason reference was already consumed.
func creditInTx(ctx context.Context, tx pgx.Tx, ownerID string, amountCoins int64, reasonTxnID string) (bool, error) {
	cmd, err := tx.Exec(ctx, `INSERT INTO wallet_transactions
        (id, wallet_owner_id, kind, status, amount_coins, amount_currency, reason_ref, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, now())
        ON CONFLICT (kind, reason_ref) WHERE reason_ref <> '' DO NOTHING`,
		uuid.New(), ownerID, KindCredit, StatusCompleted, amountCoins, amountCoins*CoinRate, reasonTxnID)
	if err != nil {
		return false, err
	}
	if cmd.RowsAffected() == 0 {
		return false, nil
	}
	if _, err := tx.Exec(ctx, `UPDATE wallets SET balance_coins = balance_coins + $1, updated_at = now()
        WHERE owner_id = $2`, amountCoins, ownerID); err != nil {
		return false, err
	}
	return true, nil
}

func (s *PostgresStore) Debit(ctx context.Context, ownerID string, amountCoins int64, reasonRef string) (Wallet, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Wallet{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	if _, err := tx.Exec(ctx, `INSERT INTO wallets (owner_id, balance_coins, created_at, updated_at)
        VALUES ($1, 0, now(), now()) ON CONFLICT (owner_id) DO NOTHING`, ownerID); err != nil {
		return Wallet{}, err
	}

	var existing uuid.UUID
	err = tx.QueryRow(ctx, `SELECT id FROM wallet_transactions WHERE kind = $1 AND reason_ref = $2`,
		KindDebit, reasonRef).Scan(&existing)
	if err == nil {
		// Reason already consumed: idempotent no-op.
		w, getErr := s.get(ctx, tx, ownerID)
		if getErr != nil {
			return Wallet{}, getErr
		}
		return w, tx.Commit(ctx)
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return Wallet{}, err
	}

	cmd, err := tx.Exec(ctx, `UPDATE wallets SET balance_coins = balance_coins - $1, updated_at = now()
        WHERE owner_id = $2 AND balance_coins >= $1`, amountCoins, ownerID)
	if err != nil {
		return Wallet{}, err
	}
	if cmd.RowsAffected() == 0 {
		return Wallet{}, ErrInsufficientBalance
	}

	if _, err := tx.Exec(ctx, `INSERT INTO wallet_transactions
        (id, wallet_owner_id, kind, status, amount_coins, amount_currency, reason_ref, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, now())`,
		uuid.New(), ownerID, KindDebit, StatusCompleted, amountCoins, amountCoins*CoinRate, reasonRef); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			// Lost a race against a concurrent debit with the same reason; the
			// other caller's decrement stands and ours rolls back.
			w, getErr := s.get(ctx, s.db, ownerID)
			if getErr != nil {
				return Wallet{}, getErr
			}
			return w, nil
		}
		return Wallet{}, err
	}

	w, err := s.get(ctx, tx, ownerID)
	if err != nil {
		return Wallet{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Wallet{}, err
	}
	return w, nil
}

func (s *PostgresStore) History(ctx context.Context, ownerID string) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `SELECT id, wallet_owner_id, kind, status, amount_coins, amount_currency,
        COALESCE(proof_image_ref, ''), COALESCE(reason_ref, ''), COALESCE(admin_id, ''), COALESCE(admin_notes, ''),
        created_at, resolved_at
        FROM wallet_transactions WHERE wallet_owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *PostgresStore) CreateFunding(ctx context.Context, txn Transaction) error {
	if _, err := s.db.Exec(ctx, `INSERT INTO wallets (owner_id, balance_coins, created_at, updated_at)
        VALUES ($1, 0, now(), now()) ON CONFLICT (owner_id) DO NOTHING`, txn.WalletOwnerID); err != nil {
		return err
	}
	txnID, err := uuid.Parse(txn.ID)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, `INSERT INTO wallet_transactions
        (id, wallet_owner_id, kind, status, amount_coins, amount_currency, proof_image_ref, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		txnID, txn.WalletOwnerID, KindFund, StatusPending, txn.AmountCoins, txn.AmountCurrency,
		txn.ProofImageRef, txn.CreatedAt.UTC())
	return err
}

func (s *PostgresStore) Funding(ctx context.Context, txnID string) (Transaction, error) {
	id, err := uuid.Parse(txnID)
	if err != nil {
		return Transaction{}, ErrTransactionNotFound
	}
	row := s.db.QueryRow(ctx, `SELECT id, wallet_owner_id, kind, status, amount_coins, amount_currency,
        COALESCE(proof_image_ref, ''), COALESCE(reason_ref, ''), COALESCE(admin_id, ''), COALESCE(admin_notes, ''),
        created_at, resolved_at
        FROM wallet_transactions WHERE id = $1 AND kind = $2`, id, KindFund)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, ErrTransactionNotFound
		}
		return Transaction{}, err
	}
	return txn, nil
}

func (s *PostgresStore) PendingFunding(ctx context.Context) ([]Transaction, error) {
	rows, err := s.db.Query(ctx, `SELECT id, wallet_owner_id, kind, status, amount_coins, amount_currency,
        COALESCE(proof_image_ref, ''), COALESCE(reason_ref, ''), COALESCE(admin_id, ''), COALESCE(admin_notes, ''),
        created_at, resolved_at
        FROM wallet_transactions WHERE kind = $1 AND status = $2 ORDER BY created_at ASC`,
		KindFund, StatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTransactions(rows)
}

func (s *PostgresStore) ResolveFunding(ctx context.Context, txnID string, confirm bool, adminID, notes string) (Transaction, error) {
	id, err := uuid.Parse(txnID)
	if err != nil {
		return Transaction{}, ErrTransactionNotFound
	}

	status := StatusRejected
	if confirm {
		status = StatusConfirmed
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Transaction{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	// The pending-only guard is part of the update itself, not a prior read.
	row := tx.QueryRow(ctx, `UPDATE wallet_transactions
        SET status = $2, admin_id = $3, admin_notes = $4, resolved_at = now()
        WHERE id = $1 AND kind = $5 AND status = $6
        RETURNING id, wallet_owner_id, kind, status, amount_coins, amount_currency,
            COALESCE(proof_image_ref, ''), COALESCE(reason_ref, ''), COALESCE(admin_id, ''), COALESCE(admin_notes, ''),
            created_at, resolved_at`,
		id, status, adminID, notes, KindFund, StatusPending)
	txn, err := scanTransaction(row)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return Transaction{}, err
		}
		// Nothing flipped: either unknown or already resolved.
		existing, getErr := s.Funding(ctx, txnID)
		if getErr != nil {
			return Transaction{}, getErr
		}
		return existing, ErrAlreadyResolved
	}

	if confirm {
		if _, err := tx.Exec(ctx, `INSERT INTO wallets (owner_id, balance_coins, created_at, updated_at)
            VALUES ($1, 0, now(), now()) ON CONFLICT (owner_id) DO NOTHING`, txn.WalletOwnerID); err != nil {
			return Transaction{}, err
		}
		if _, err := creditInTx(ctx, tx, txn.WalletOwnerID, CoinsForCurrency(txn.AmountCurrency), txn.ID); err != nil {
			return Transaction{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Transaction{}, err
	}
	return txn, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (Transaction, error) {
	var (
		txn        Transaction
		id         uuid.UUID
		resolvedAt *time.Time
	)
	if err := row.Scan(&id, &txn.WalletOwnerID, &txn.Kind, &txn.Status, &txn.AmountCoins, &txn.AmountCurrency,
		&txn.ProofImageRef, &txn.ReasonRef, &txn.AdminID, &txn.AdminNotes, &txn.CreatedAt, &resolvedAt); err != nil {
		return Transaction{}, err
	}
	txn.ID = id.String()
	txn.CreatedAt = txn.CreatedAt.UTC()
	if resolvedAt != nil {
		t := resolvedAt.UTC()
		txn.ResolvedAt = &t
	}
	return txn, nil
}

func scanTransactions(rows pgx.Rows) ([]Transaction, error) {
	var txns []Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}
