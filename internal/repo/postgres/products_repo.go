package postgres

import (
	"context"
	"errors"

	"github.com/freshbite/shop/internal/domain/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ProductsRepo struct {
	pool *pgxpool.Pool
}

func NewProductsRepo(pool *pgxpool.Pool) *ProductsRepo {
	return &ProductsRepo{pool: pool}
}

const productColumns = `id, name, image, price, description, category, stock, rating,
	reviews, nutritional_info, ingredients, preparation_time, shelf_life,
	storage_instructions, created_at, updated_at`

// reviews and nutritional_info live in JSONB columns; pgx marshals the Go
// values through encoding/json on both directions.
func (r *ProductsRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)`,
		p.ID, p.Name, p.Image, p.Price, p.Description, p.Category, p.Stock, p.Rating,
		p.Reviews, p.NutritionalInfo, p.Ingredients, p.PreparationTime, p.ShelfLife,
		p.StorageInstructions, p.CreatedAt, p.UpdatedAt,
	)

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}

func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+productColumns+` FROM products ORDER BY created_at DESC, id`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]product.Product, 0)

	for rows.Next() {
		p, err := scanProduct(rows)

		if err != nil {
			return nil, err
		}

		output = append(output, p)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id)

	p, err := scanProduct(row)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return product.Product{}, product.ErrNotFound
		}

		return product.Product{}, err
	}

	return p, nil
}

func scanProduct(row pgx.Row) (product.Product, error) {
	var p product.Product

	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Image,
		&p.Price,
		&p.Description,
		&p.Category,
		&p.Stock,
		&p.Rating,
		&p.Reviews,
		&p.NutritionalInfo,
		&p.Ingredients,
		&p.PreparationTime,
		&p.ShelfLife,
		&p.StorageInstructions,
		&p.CreatedAt,
		&p.UpdatedAt,
	)

	if err != nil {
		return product.Product{}, err
	}

	return p, nil
}
