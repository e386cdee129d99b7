package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key violations.
const pgForeignKeyViolation = "23503"

// Store is the catalog persistence boundary.
type Store interface {
	ListCategories(ctx context.Context) ([]Category, error)
	// ListProducts returns the matching products with photos and ratings loaded.
	ListProducts(ctx context.Context, f ProductFilter) ([]Product, error)
	// GetProduct returns one product with photos, ratings and reviews loaded.
	GetProduct(ctx context.Context, id int64) (*Product, error)
	// ProductsByIDs returns the requested products, with photos and ratings, keyed by id.
	// Missing ids are absent from the map.
	ProductsByIDs(ctx context.Context, ids []int64) (map[int64]Product, error)

	UpsertRating(ctx context.Context, userID, productID int64, stars int) (*Rating, error)
	CreateReview(ctx context.Context, r *Review) error
}

// SQLStore reads through sqlx and writes through the pgx pool. Both share the
// same connections.
type SQLStore struct {
	db   *sqlx.DB
	pool *pgxpool.Pool
}

// NewSQLStore creates a SQLStore.
func NewSQLStore(db *sqlx.DB, pool *pgxpool.Pool) *SQLStore {
	return &SQLStore{db: db, pool: pool}
}

const productSelect = `
	SELECT p.id, p.product_name, p.category_id, c.category_name, p.price,
	       p.description, p.active, p.product_video, p.date
	FROM products p
	JOIN categories c ON c.id = p.category_id`

func (s *SQLStore) ListCategories(ctx context.Context) ([]Category, error) {
	const op = "catalog.SQLStore.ListCategories"

	var cats []Category
	if err := s.db.SelectContext(ctx, &cats, `SELECT id, category_name FROM categories ORDER BY id`); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return cats, nil
}

func (s *SQLStore) ListProducts(ctx context.Context, f ProductFilter) ([]Product, error) {
	const op = "catalog.SQLStore.ListProducts"

	query := productSelect
	where, args := f.Where()
	if where != "" {
		query += " WHERE " + where
	}
	query += " ORDER BY p.id"

	var products []Product
	if err := s.db.SelectContext(ctx, &products, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.loadChildren(ctx, products, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *SQLStore) GetProduct(ctx context.Context, id int64) (*Product, error) {
	const op = "catalog.SQLStore.GetProduct"

	var p Product
	err := s.db.GetContext(ctx, &p, s.db.Rebind(productSelect+" WHERE p.id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrProductNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := []Product{p}
	if err := s.loadChildren(ctx, products, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &products[0], nil
}

func (s *SQLStore) ProductsByIDs(ctx context.Context, ids []int64) (map[int64]Product, error) {
	const op = "catalog.SQLStore.ProductsByIDs"

	out := make(map[int64]Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(productSelect+" WHERE p.id IN (?)", ids)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var products []Product
	if err := s.db.SelectContext(ctx, &products, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.loadChildren(ctx, products, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

// loadChildren fills photos and ratings, and reviews when withReviews is set,
// with one query per child table.
func (s *SQLStore) loadChildren(ctx context.Context, products []Product, withReviews bool) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids[i] = p.ID
		index[p.ID] = i
	}

	var photos []ProductPhoto
	if err := s.selectIn(ctx, &photos,
		`SELECT id, product_id, image FROM product_photos WHERE product_id IN (?) ORDER BY id`, ids); err != nil {
		return fmt.Errorf("load photos: %w", err)
	}
	for _, ph := range photos {
		p := &products[index[ph.ProductID]]
		p.Photos = append(p.Photos, ph)
	}

	var ratings []Rating
	if err := s.selectIn(ctx, &ratings, `
		SELECT r.id, r.user_id, r.product_id, r.stars, u.first_name, u.last_name
		FROM ratings r
		JOIN users u ON u.id = r.user_id
		WHERE r.product_id IN (?)
		ORDER BY r.id`, ids); err != nil {
		return fmt.Errorf("load ratings: %w", err)
	}
	for _, r := range ratings {
		p := &products[index[r.ProductID]]
		p.Ratings = append(p.Ratings, r)
	}

	if !withReviews {
		return nil
	}

	var reviews []Review
	if err := s.selectIn(ctx, &reviews, `
		SELECT rv.id, rv.author_id, rv.product_id, rv.text, rv.created_date, rv.parent_review,
		       u.first_name, u.last_name
		FROM reviews rv
		JOIN users u ON u.id = rv.author_id
		WHERE rv.product_id IN (?)
		ORDER BY rv.created_date, rv.id`, ids); err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}
	for _, r := range reviews {
		p := &products[index[r.ProductID]]
		p.Reviews = append(p.Reviews, r)
	}
	return nil
}

func (s *SQLStore) selectIn(ctx context.Context, dest any, query string, ids []int64) error {
	q, args, err := sqlx.In(query, ids)
	if err != nil {
		return err
	}
	return s.db.SelectContext(ctx, dest, s.db.Rebind(q), args...)
}

// UpsertRating records the user's stars for a product, replacing an earlier rating.
func (s *SQLStore) UpsertRating(ctx context.Context, userID, productID int64, stars int) (*Rating, error) {
	const op = "catalog.SQLStore.UpsertRating"

	r := &Rating{UserID: userID, ProductID: productID, Stars: stars}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := productExists(ctx, tx, productID); err != nil {
			return err
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO ratings (user_id, product_id, stars)
			VALUES ($1, $2, $3)
			ON CONFLICT (user_id, product_id) DO UPDATE SET stars = EXCLUDED.stars
			RETURNING id`,
			userID, productID, stars,
		).Scan(&r.ID)
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `SELECT first_name, last_name FROM users WHERE id = $1`, userID).
			Scan(&r.FirstName, &r.LastName)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapWriteError(err))
	}
	return r, nil
}

// CreateReview inserts r. A parent review must belong to the same product.
func (s *SQLStore) CreateReview(ctx context.Context, r *Review) error {
	const op = "catalog.SQLStore.CreateReview"

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if err := productExists(ctx, tx, r.ProductID); err != nil {
			return err
		}

		if r.ParentReview != nil {
			var parentProduct int64
			err := tx.QueryRow(ctx, `SELECT product_id FROM reviews WHERE id = $1`, *r.ParentReview).
				Scan(&parentProduct)
			if errors.Is(err, pgx.ErrNoRows) || (err == nil && parentProduct != r.ProductID) {
				return ErrParentNotFound
			}
			if err != nil {
				return err
			}
		}

		err := tx.QueryRow(ctx, `
			INSERT INTO reviews (author_id, product_id, text, parent_review)
			VALUES ($1, $2, $3, $4)
			RETURNING id, created_date`,
			r.AuthorID, r.ProductID, r.Text, r.ParentReview,
		).Scan(&r.ID, &r.CreatedDate)
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `SELECT first_name, last_name FROM users WHERE id = $1`, r.AuthorID).
			Scan(&r.FirstName, &r.LastName)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, mapWriteError(err))
	}
	return nil
}

func productExists(ctx context.Context, tx pgx.Tx, id int64) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrProductNotFound
	}
	return nil
}

// mapWriteError turns a product foreign key violation, which can happen when a
// product is deleted concurrently, into ErrProductNotFound.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName != "" {
		if pgErr.ConstraintName == "ratings_product_id_fkey" || pgErr.ConstraintName == "reviews_product_id_fkey" {
			return ErrProductNotFound
		}
	}
	return err
}
