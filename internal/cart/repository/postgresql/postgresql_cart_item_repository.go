// Package postgresql persists cart items in PostgreSQL.
package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
	"github.com/Felobateer/ECommerce-API/internal/database"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

// PostgreSQLCartItemRepository handles cart item persistence for PostgreSQL.
type PostgreSQLCartItemRepository struct {
	db *sql.DB
}

// NewPostgreSQLCartItemRepository creates a new PostgreSQL cart item repository.
func NewPostgreSQLCartItemRepository(db *sql.DB) *PostgreSQLCartItemRepository {
	return &PostgreSQLCartItemRepository{db: db}
}

// Create inserts a new cart item.
func (p *PostgreSQLCartItemRepository) Create(ctx context.Context, item *domain.CartItem) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO cart_items (id, user_id, product_id, quantity, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID,
		item.UserID,
		item.ProductID,
		item.Quantity,
		item.CreatedAt.UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create cart item")
	}
	return nil
}

// ListByUser returns the user's items ordered by creation time.
func (p *PostgreSQLCartItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, user_id, product_id, quantity, created_at
			  FROM cart_items WHERE user_id = $1 ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cart items")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ProductID, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan cart item")
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cart items")
	}
	return items, nil
}

// Delete removes one item owned by userID.
func (p *PostgreSQLCartItemRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cart_items WHERE id = $1 AND user_id = $2`, itemID, userID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete cart item")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if rows == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

// DeleteByUser empties the user's cart.
func (p *PostgreSQLCartItemRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to clear cart")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}
