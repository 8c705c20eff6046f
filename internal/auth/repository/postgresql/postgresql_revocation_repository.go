// Package postgresql persists revoked session tokens in PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"
	"time"

	authDomain "github.com/Felobateer/ECommerce-API/internal/auth/domain"
	"github.com/Felobateer/ECommerce-API/internal/database"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

// PostgreSQLRevocationRepository stores one row per revoked token in revoked_tokens,
// keyed by the token fingerprint. Expiry columns are TIMESTAMPTZ.
type PostgreSQLRevocationRepository struct {
	db *sql.DB
}

// Record inserts the revocation. Recording the same fingerprint again is a no-op.
func (p *PostgreSQLRevocationRepository) Record(ctx context.Context, record *authDomain.RevocationRecord) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO revoked_tokens (token_hash, expires_at, revoked_at)
			  VALUES ($1, $2, $3)
			  ON CONFLICT (token_hash) DO NOTHING`

	_, err := querier.ExecContext(
		ctx,
		query,
		record.TokenHash,
		record.ExpiresAt.UTC(),
		record.RevokedAt.UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to record revoked token")
	}
	return nil
}

// IsRevoked reports whether a revocation for tokenHash is still active at now.
func (p *PostgreSQLRevocationRepository) IsRevoked(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT EXISTS(
				SELECT 1 FROM revoked_tokens WHERE token_hash = $1 AND expires_at > $2
			  )`

	var revoked bool
	if err := querier.QueryRowContext(ctx, query, tokenHash, now.UTC()).Scan(&revoked); err != nil {
		return false, apperrors.Wrap(err, "failed to check revoked token")
	}
	return revoked, nil
}

// PurgeExpired deletes revocations whose token has expired by now.
func (p *PostgreSQLRevocationRepository) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM revoked_tokens WHERE expires_at <= $1`, now.UTC())
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to purge revoked tokens")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

// CountExpired counts the revocations PurgeExpired would delete at now.
func (p *PostgreSQLRevocationRepository) CountExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	var count int64
	err := querier.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM revoked_tokens WHERE expires_at <= $1`,
		now.UTC(),
	).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count revoked tokens")
	}
	return count, nil
}

// NewPostgreSQLRevocationRepository creates a new PostgreSQL revocation repository.
func NewPostgreSQLRevocationRepository(db *sql.DB) *PostgreSQLRevocationRepository {
	return &PostgreSQLRevocationRepository{db: db}
}
