// Package mysql persists cart items in MySQL.
package mysql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/Felobateer/ECommerce-API/internal/cart/domain"
	"github.com/Felobateer/ECommerce-API/internal/database"
	apperrors "github.com/Felobateer/ECommerce-API/internal/errors"
)

// MySQLCartItemRepository handles cart item persistence for MySQL.
// UUID columns are BINARY(16).
type MySQLCartItemRepository struct {
	db *sql.DB
}

// NewMySQLCartItemRepository creates a new MySQL cart item repository.
func NewMySQLCartItemRepository(db *sql.DB) *MySQLCartItemRepository {
	return &MySQLCartItemRepository{db: db}
}

// Create inserts a new cart item.
func (m *MySQLCartItemRepository) Create(ctx context.Context, item *domain.CartItem) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO cart_items (id, user_id, product_id, quantity, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		item.ID[:],
		item.UserID[:],
		item.ProductID[:],
		item.Quantity,
		item.CreatedAt.UTC(),
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create cart item")
	}
	return nil
}

// ListByUser returns the user's items ordered by creation time.
func (m *MySQLCartItemRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.CartItem, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, user_id, product_id, quantity, created_at
			  FROM cart_items WHERE user_id = ? ORDER BY created_at, id`

	rows, err := querier.QueryContext(ctx, query, userID[:])
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list cart items")
	}
	defer func() {
		_ = rows.Close()
	}()

	items := make([]*domain.CartItem, 0)
	for rows.Next() {
		var item domain.CartItem
		var id, owner, product []byte
		if err := rows.Scan(&id, &owner, &product, &item.Quantity, &item.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan cart item")
		}
		if err := unmarshalIDs(id, owner, product, &item); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate cart items")
	}
	return items, nil
}

// Delete removes one item owned by userID.
func (m *MySQLCartItemRepository) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cart_items WHERE id = ? AND user_id = ?`, itemID[:], userID[:])
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
func (m *MySQLCartItemRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = ?`, userID[:])
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to clear cart")
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to get affected rows")
	}
	return count, nil
}

func unmarshalIDs(id, owner, product []byte, item *domain.CartItem) error {
	if err := item.ID.UnmarshalBinary(id); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal cart item id")
	}
	if err := item.UserID.UnmarshalBinary(owner); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal cart item user id")
	}
	if err := item.ProductID.UnmarshalBinary(product); err != nil {
		return apperrors.Wrap(err, "failed to unmarshal cart item product id")
	}
	return nil
}
