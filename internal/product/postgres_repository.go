package product

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

// Create inserts a new product record owned by a user.
func (r *PostgresRepository) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (user_id, nama_product, value_product)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query, p.UserID, p.Name, p.Value).
		Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}

	return nil
}

// ListByUser retrieves all products owned by a user, newest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Product, error) {
	query := `
		SELECT id, user_id, nama_product, value_product, created_at
		FROM products
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return r.list(ctx, query, userID)
}

// ListToday retrieves products the user recorded today (store-local time),
// newest first.
func (r *PostgresRepository) ListToday(ctx context.Context, userID string) ([]Product, error) {
	query := `
		SELECT id, user_id, nama_product, value_product, created_at
		FROM products
		WHERE user_id = $1 AND created_at::date = CURRENT_DATE
		ORDER BY created_at DESC`

	return r.list(ctx, query, userID)
}

// GetByID retrieves a single product by id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*Product, error) {
	query := `
		SELECT id, user_id, nama_product, value_product, created_at
		FROM products
		WHERE id = $1`

	var p Product
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.UserID, &p.Name, &p.Value, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("querying product: %w", err)
	}

	return &p, nil
}

// Delete removes a product by id. Returns ErrProductNotFound if no row matched.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.pool.Exec(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *PostgresRepository) list(ctx context.Context, query string, userID string) ([]Product, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		err := rows.Scan(&p.ID, &p.UserID, &p.Name, &p.Value, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	if products == nil {
		products = []Product{}
	}

	return products, nil
}
