// Package mysql persists user accounts in MySQL.
package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/database"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
	"github.com/Felobateer/ECommerce-API/internal/user/domain"
)

const selectUserColumns = `SELECT id, first_name, last_name, email, password_hash, phone_number,
			  secondary_email, mailing_address, secondary_address, is_active, role,
			  created_at, updated_at
			  FROM users`

// MySQLUserRepository handles user persistence for MySQL. IDs are stored as BINARY(16).
type MySQLUserRepository struct {
	db *sql.DB
}

// NewMySQLUserRepository creates a new MySQL user repository.
func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db: db}
}

// Create inserts a new user. A duplicate email returns domain.ErrUserAlreadyExists.
func (r *MySQLUserRepository) Create(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO users (id, first_name, last_name, email, password_hash, phone_number,
			  secondary_email, mailing_address, secondary_address, is_active, role, created_at, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		user.ID[:],
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.PhoneNumber,
		user.SecondaryEmail,
		user.MailingAddress,
		user.SecondaryAddress,
		user.IsActive,
		string(user.Role),
		user.CreatedAt.UTC(),
		user.UpdatedAt.UTC(),
	)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return domain.ErrUserAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create user")
	}
	return nil
}

// Get retrieves a user by ID.
func (r *MySQLUserRepository) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)
	return scanUser(querier.QueryRowContext(ctx, selectUserColumns+` WHERE id = ?`, id[:]))
}

// GetByEmail retrieves a user by normalized email.
func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	querier := database.GetTx(ctx, r.db)
	return scanUser(querier.QueryRowContext(ctx, selectUserColumns+` WHERE email = ?`, email))
}

// Update writes every mutable column of user.
func (r *MySQLUserRepository) Update(ctx context.Context, user *domain.User) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE users SET first_name = ?, last_name = ?, phone_number = ?,
			  secondary_email = ?, mailing_address = ?, secondary_address = ?,
			  is_active = ?, updated_at = ?
			  WHERE id = ?`

	result, err := querier.ExecContext(
		ctx,
		query,
		user.FirstName,
		user.LastName,
		user.PhoneNumber,
		user.SecondaryEmail,
		user.MailingAddress,
		user.SecondaryAddress,
		user.IsActive,
		user.UpdatedAt.UTC(),
		user.ID[:],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update user")
	}
	return checkResult(result)
}

// UpdatePasswordHash replaces the stored hash after a rehash on login.
func (r *MySQLUserRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	querier := database.GetTx(ctx, r.db)

	result, err := querier.ExecContext(
		ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash,
		time.Now().UTC(),
		id[:],
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to update password hash")
	}
	return checkResult(result)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.PhoneNumber,
		&user.SecondaryEmail,
		&user.MailingAddress,
		&user.SecondaryAddress,
		&user.IsActive,
		&role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get user")
	}
	user.Role = domain.Role(role)
	return &user, nil
}

// checkResult only surfaces driver errors. MySQL reports changed rows rather
// than matched rows, so zero affected rows does not mean the user is missing.
func checkResult(result sql.Result) error {
	if _, err := result.RowsAffected(); err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	return nil
}
