package repository

import (
	"database/sql"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"payment-gateway/internal/domain"
	"payment-gateway/internal/errors"
)

// PostgresTransactionStore persists transactions in postgres. Save upserts
// by id so the PENDING record and its terminal update collapse into one row
// (last-write-wins, matching the store contract).
type PostgresTransactionStore struct {
	db     SQLExecutor
	logger *slog.Logger
}

func NewPostgresTransactionStore(db SQLExecutor, logger *slog.Logger) *PostgresTransactionStore {
	return &PostgresTransactionStore{
		db:     db,
		logger: logger,
	}
}

func (s *PostgresTransactionStore) Save(t *domain.Transaction) error {
	query := `
		INSERT INTO transactions
		(id, method, payer_id, payer_name, amount, currency, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE
		SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.Exec(
		query,
		t.ID,
		t.Method,
		t.Payer.ID,
		t.Payer.Name,
		t.Amount.Amount,
		t.Amount.Currency,
		string(t.Status),
		t.CreatedAt,
		t.UpdatedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			s.logger.Error("postgres save failed", "transaction_id", t.ID, "pq_code", pqErr.Code, "error", err)
		} else {
			s.logger.Error("failed to save transaction", "transaction_id", t.ID, "error", err)
		}
		return errors.NewAppError(errors.InternalError, "failed to save transaction").WithDetails(err.Error())
	}
	return nil
}

func (s *PostgresTransactionStore) Find(txID string) (*domain.Transaction, error) {
	query := `
		SELECT id, method, payer_id, payer_name, amount, currency, status, created_at, updated_at
		FROM transactions WHERE id = $1
	`

	row := s.db.QueryRow(query, txID)
	t, err := scanTransaction(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		s.logger.Error("failed to get transaction", "transaction_id", txID, "error", err)
		return nil, errors.NewAppError(errors.InternalError, "failed to get transaction").WithDetails(err.Error())
	}
	return t, nil
}

func (s *PostgresTransactionStore) ListAll() ([]*domain.Transaction, error) {
	query := `
		SELECT id, method, payer_id, payer_name, amount, currency, status, created_at, updated_at
		FROM transactions ORDER BY created_at
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to list transactions").WithDetails(err.Error())
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, errors.NewAppError(errors.InternalError, "failed to scan transaction").WithDetails(err.Error())
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.NewAppError(errors.InternalError, "failed to list transactions").WithDetails(err.Error())
	}
	return out, nil
}

func scanTransaction(scan func(dest ...interface{}) error) (*domain.Transaction, error) {
	var (
		t         domain.Transaction
		statusStr string
		createdAt time.Time
		updatedAt time.Time
	)
	err := scan(
		&t.ID,
		&t.Method,
		&t.Payer.ID,
		&t.Payer.Name,
		&t.Amount.Amount,
		&t.Amount.Currency,
		&statusStr,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	status, err := domain.ParseStatus(statusStr)
	if err != nil {
		return nil, err
	}
	t.Status = status
	t.CreatedAt = createdAt
	t.UpdatedAt = updatedAt
	return &t, nil
}
