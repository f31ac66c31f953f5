package product

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("product not found")

type Review struct {
	UserID   string    `json:"userId"`
	UserName string    `json:"userName"`
	Rating   int       `json:"rating"`
	Comment  string    `json:"comment"`
	Date     time.Time `json:"date"`
	Verified bool      `json:"verified"`
	Likes    int       `json:"likes"`
}

type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type Product struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	Image               []string         `json:"image"`
	Price               float64          `json:"price"`
	Description         string           `json:"description"`
	Category            string           `json:"category"`
	Stock               int              `json:"stock"`
	Rating              float64          `json:"rating"`
	Reviews             []Review         `json:"reviews"`
	NutritionalInfo     *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	Ingredients         []string         `json:"ingredients"`
	PreparationTime     int              `json:"preparationTime"`
	ShelfLife           string           `json:"shelfLife"`
	StorageInstructions string           `json:"storageInstructions"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// CreateProductRequest carries everything the storefront supplies at listing
// time. Rating, reviews, nutrition and ingredients are optional extras; the
// rest is required descriptive data.
type CreateProductRequest struct {
	Name                string           `json:"name" binding:"required"`
	Image               []string         `json:"image" binding:"required,min=1,dive,required"`
	Price               float64          `json:"price" binding:"required,gte=0"`
	Description         string           `json:"description" binding:"required"`
	Category            string           `json:"category" binding:"required"`
	Stock               int              `json:"stock" binding:"required,gte=0"`
	Rating              float64          `json:"rating" binding:"omitempty,gte=0,lte=5"`
	Reviews             []Review         `json:"reviews" binding:"omitempty,dive"`
	NutritionalInfo     *NutritionalInfo `json:"nutritionalInfo"`
	Ingredients         []string         `json:"ingredients"`
	PreparationTime     int              `json:"preparationTime" binding:"required,gt=0"`
	ShelfLife           string           `json:"shelfLife" binding:"required"`
	StorageInstructions string           `json:"storageInstructions" binding:"required"`
}
