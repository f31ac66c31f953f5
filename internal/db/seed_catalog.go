package db

import (
	"context"

	"github.com/freshbite/shop/internal/domain/product"
	"github.com/freshbite/shop/internal/repo/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedCatalog inserts a small demo catalog so a fresh dev environment has
// something to browse. It is a no-op once the table holds any product.
func SeedCatalog(ctx context.Context, pool *pgxpool.Pool) error {
	var count int

	err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&count)

	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	repo := postgres.NewProductsRepo(pool)

	demo := []product.CreateProductRequest{
		{
			Name:        "Sourdough Loaf",
			Image:       []string{"https://cdn.freshbite.dev/img/sourdough.jpg"},
			Price:       6.5,
			Description: "Slow-fermented sourdough with a thick crust.",
			Category:    "bakery",
			Stock:       24,
			NutritionalInfo: &product.NutritionalInfo{
				Calories: 260, Protein: 9, Carbs: 51, Fat: 1.5,
			},
			Ingredients:         []string{"flour", "water", "salt", "starter"},
			PreparationTime:     20,
			ShelfLife:           "4 days",
			StorageInstructions: "Keep in a paper bag at room temperature.",
		},
		{
			Name:        "Cold Brew Coffee",
			Image:       []string{"https://cdn.freshbite.dev/img/coldbrew.jpg"},
			Price:       4.0,
			Description: "Single-origin cold brew, steeped for 18 hours.",
			Category:    "beverages",
			Stock:       60,
			NutritionalInfo: &product.NutritionalInfo{
				Calories: 5, Protein: 0.3, Carbs: 0, Fat: 0,
			},
			Ingredients:         []string{"coffee", "water"},
			PreparationTime:     2,
			ShelfLife:           "14 days",
			StorageInstructions: "Refrigerate after opening.",
		},
		{
			Name:        "Vegan Pad Thai Kit",
			Image:       []string{"https://cdn.freshbite.dev/img/padthai.jpg"},
			Price:       11.9,
			Description: "Ready-to-cook pad thai with tamarind sauce and tofu.",
			Category:    "meal-kits",
			Stock:       15,
			NutritionalInfo: &product.NutritionalInfo{
				Calories: 540, Protein: 21, Carbs: 78, Fat: 16,
			},
			Ingredients:         []string{"rice noodles", "tofu", "tamarind", "peanuts", "bean sprouts"},
			PreparationTime:     15,
			ShelfLife:           "5 days",
			StorageInstructions: "Keep refrigerated below 5°C.",
		},
	}

	for _, req := range demo {
		_, err := repo.Create(ctx, product.NewFromCreateRequest(req))

		if err != nil {
			return err
		}
	}

	return nil
}
