package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgForeignKeyViolation = "23503"

// Store persists carts and their items. Every item operation is scoped to a
// cart id so users cannot touch each other's lines.
type Store interface {
	// GetOrCreateCart returns the user's cart with its items, creating an empty one if needed.
	GetOrCreateCart(ctx context.Context, userID int64) (*Cart, error)
	// AddItem adds quantity of a product, accumulating onto an existing line.
	AddItem(ctx context.Context, cartID, productID int64, quantity int) (*Item, error)
	SetQuantity(ctx context.Context, cartID, itemID int64, quantity int) (*Item, error)
	RemoveItem(ctx context.Context, cartID, itemID int64) error
}

type PgStore struct {
	db *pgxpool.Pool
}

func NewPgStore(db *pgxpool.Pool) *PgStore {
	return &PgStore{db: db}
}

func (s *PgStore) GetOrCreateCart(ctx context.Context, userID int64) (*Cart, error) {
	const op = "cart.PgStore.GetOrCreateCart"

	c := &Cart{UserID: userID}
	err := s.db.QueryRow(ctx, `
		INSERT INTO carts (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id`, userID).Scan(&c.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, cart_id, product_id, quantity
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY id`, c.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	c.Items, err = pgx.CollectRows(rows, pgx.RowToStructByNameLax[Item])
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *PgStore) AddItem(ctx context.Context, cartID, productID int64, quantity int) (*Item, error) {
	const op = "cart.PgStore.AddItem"

	it := &Item{CartID: cartID, ProductID: productID}
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrProductNotFound
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO cart_items (cart_id, product_id, quantity)
			VALUES ($1, $2, $3)
			ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
			WHERE cart_items.quantity + EXCLUDED.quantity <= $4
			RETURNING id, quantity`,
			cartID, productID, quantity, MaxQuantity,
		).Scan(&it.ID, &it.Quantity)
		// The conflict update was skipped by its WHERE clause.
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrQuantityLimit
		}
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			err = ErrProductNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return it, nil
}

func (s *PgStore) SetQuantity(ctx context.Context, cartID, itemID int64, quantity int) (*Item, error) {
	const op = "cart.PgStore.SetQuantity"

	it := &Item{ID: itemID, CartID: cartID}
	err := s.db.QueryRow(ctx, `
		UPDATE cart_items SET quantity = $1
		WHERE id = $2 AND cart_id = $3
		RETURNING product_id, quantity`,
		quantity, itemID, cartID,
	).Scan(&it.ProductID, &it.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrItemNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return it, nil
}

func (s *PgStore) RemoveItem(ctx context.Context, cartID, itemID int64) error {
	const op = "cart.PgStore.RemoveItem"

	tag, err := s.db.Exec(ctx, `DELETE FROM cart_items WHERE id = $1 AND cart_id = $2`, itemID, cartID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrItemNotFound)
	}
	return nil
}
