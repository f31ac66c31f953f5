package memory

import (
	"context"
	"sync"

	"github.com/freshbite/shop/internal/domain/product"
)

type ProductsRepo struct {
	mu    sync.RWMutex
	items map[string]product.Product
	order []string
}

func NewProductsRepo() *ProductsRepo {
	return &ProductsRepo{
		items: make(map[string]product.Product),
	}
}

func (r *ProductsRepo) Create(ctx context.Context, p product.Product) (product.Product, error) {
	r.mu.Lock()
	r.items[p.ID] = p
	r.order = append(r.order, p.ID)
	r.mu.Unlock()

	return p, nil
}

func (r *ProductsRepo) List(ctx context.Context) ([]product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	output := make([]product.Product, 0, len(r.order))

	for _, id := range r.order {
		output = append(output, r.items[id])
	}

	return output, nil
}

func (r *ProductsRepo) GetByID(ctx context.Context, id string) (product.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]

	if !ok {
		return product.Product{}, product.ErrNotFound
	}

	return p, nil
}
