package product

import (
	"time"

	"github.com/google/uuid"
)

func NewFromCreateRequest(req CreateProductRequest) Product {
	now := time.Now().UTC()

	reviews := req.Reviews
	if reviews == nil {
		reviews = []Review{}
	}

	ingredients := req.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}

	return Product{
		ID:                  uuid.NewString(),
		Name:                req.Name,
		Image:               req.Image,
		Price:               req.Price,
		Description:         req.Description,
		Category:            req.Category,
		Stock:               req.Stock,
		Rating:              req.Rating,
		Reviews:             reviews,
		NutritionalInfo:     req.NutritionalInfo,
		Ingredients:         ingredients,
		PreparationTime:     req.PreparationTime,
		ShelfLife:           req.ShelfLife,
		StorageInstructions: req.StorageInstructions,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
}
