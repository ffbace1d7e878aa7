package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockroom/api/internal/models"
)

var ErrProductNotFound = errors.New("product not found")

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

const productColumns = `
	id, user_id, name, sku, category, quantity, price, description,
	image_file_name, image_file_path, image_file_type, image_size_bytes,
	created_at, updated_at
`

func (r *ProductRepository) Create(ctx context.Context, product models.Product) error {
	const query = `
		INSERT INTO products (
			id, user_id, name, sku, category, quantity, price, description,
			image_file_name, image_file_path, image_file_type, image_size_bytes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW()
		)
	`

	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.UserID,
		product.Name,
		product.SKU,
		product.Category,
		product.Quantity,
		product.Price,
		product.Description,
		product.Image.FileName,
		product.Image.FilePath,
		product.Image.FileType,
		product.Image.SizeBytes,
	)
	return err
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	row := r.pool.QueryRow(ctx, query, id)
	return scanProduct(row)
}

func (r *ProductRepository) ListByUser(ctx context.Context, userID string) ([]models.Product, error) {
	const query = `SELECT ` + productColumns + ` FROM products WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]models.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Update(ctx context.Context, product models.Product) error {
	const query = `
		UPDATE products SET
			name = $2, sku = $3, category = $4, quantity = $5, price = $6, description = $7,
			image_file_name = $8, image_file_path = $9, image_file_type = $10, image_size_bytes = $11,
			updated_at = NOW()
		WHERE id = $1
	`

	cmd, err := r.pool.Exec(ctx, query,
		product.ID,
		product.Name,
		product.SKU,
		product.Category,
		product.Quantity,
		product.Price,
		product.Description,
		product.Image.FileName,
		product.Image.FilePath,
		product.Image.FileType,
		product.Image.SizeBytes,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM products WHERE id = $1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var product models.Product
	if err := row.Scan(
		&product.ID,
		&product.UserID,
		&product.Name,
		&product.SKU,
		&product.Category,
		&product.Quantity,
		&product.Price,
		&product.Description,
		&product.Image.FileName,
		&product.Image.FilePath,
		&product.Image.FileType,
		&product.Image.SizeBytes,
		&product.CreatedAt,
		&product.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		return models.Product{}, err
	}
	return product, nil
}
