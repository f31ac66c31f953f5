package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/freshbite/shop/internal/apperrors"
	"github.com/freshbite/shop/internal/cache"
	"github.com/freshbite/shop/internal/config"
	"github.com/freshbite/shop/internal/domain/product"
	"github.com/freshbite/shop/internal/observability"
	"github.com/gin-gonic/gin"
)

type ProductStore interface {
	Create(ctx context.Context, p product.Product) (product.Product, error)
	List(ctx context.Context) ([]product.Product, error)
	GetByID(ctx context.Context, id string) (product.Product, error)
}

const (
	cacheKeyAllProducts = "products:all"
	cacheKeyOneProduct  = "products:one:"
)

type productListResponse struct {
	Items []product.Product `json:"items"`
	Count int               `json:"count"`
}

type ProductsHandler struct {
	store   ProductStore
	cache   cache.Store
	metrics *observability.Prom
}

// NewProductsHandler wires the catalog endpoints. cache and metrics may be
// nil; reads then always go to the store.
func NewProductsHandler(store ProductStore, c cache.Store, metrics *observability.Prom) *ProductsHandler {
	return &ProductsHandler{
		store:   store,
		cache:   c,
		metrics: metrics,
	}
}

func (h *ProductsHandler) observe(op string, fn func() error) error {
	if h.metrics == nil {
		return fn()
	}
	return h.metrics.ObserveDB(op, fn)
}

func (h *ProductsHandler) cacheGet(ctx context.Context, key, kind string, out interface{}) bool {
	if h.cache == nil {
		return false
	}

	b, ok := h.cache.Get(ctx, key)

	if !ok {
		if h.metrics != nil {
			h.metrics.CacheMisses.WithLabelValues(kind).Inc()
		}
		return false
	}

	if err := json.Unmarshal(b, out); err != nil {
		return false
	}

	if h.metrics != nil {
		h.metrics.CacheHits.WithLabelValues(kind).Inc()
	}

	return true
}

func (h *ProductsHandler) cacheSet(ctx context.Context, key string, val interface{}) {
	if h.cache == nil {
		return
	}

	b, err := json.Marshal(val)

	if err != nil {
		return
	}

	h.cache.Set(ctx, key, b)
}

func (h *ProductsHandler) CreateProduct(ctx *gin.Context) {
	var req product.CreateProductRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	p := product.NewFromCreateRequest(req)

	err := h.observe("products.create", func() error {
		var storeErr error
		p, storeErr = h.store.Create(cctx, p)
		return storeErr
	})

	if err != nil {
		RespondAppError(ctx, apperrors.Store(err))
		return
	}

	// the listing is stale now
	if h.cache != nil {
		h.cache.Delete(cctx, cacheKeyAllProducts)
	}

	ctx.JSON(http.StatusCreated, gin.H{"product": p})
}

func (h *ProductsHandler) ListProducts(ctx *gin.Context) {
	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	var resp productListResponse

	if h.cacheGet(cctx, cacheKeyAllProducts, "list", &resp) {
		RespondJSONWithETag(ctx, http.StatusOK, resp)
		return
	}

	var products []product.Product

	err := h.observe("products.list", func() error {
		var storeErr error
		products, storeErr = h.store.List(cctx)
		return storeErr
	})

	if err != nil {
		RespondAppError(ctx, apperrors.Store(err))
		return
	}

	resp = productListResponse{
		Items: products,
		Count: len(products),
	}

	h.cacheSet(cctx, cacheKeyAllProducts, resp)

	RespondJSONWithETag(ctx, http.StatusOK, resp)
}

func (h *ProductsHandler) GetProductByID(ctx *gin.Context) {
	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	var p product.Product

	if h.cacheGet(cctx, cacheKeyOneProduct+id, "one", &p) {
		RespondJSONWithETag(ctx, http.StatusOK, gin.H{"product": p})
		return
	}

	err := h.observe("products.get_by_id", func() error {
		var storeErr error
		p, storeErr = h.store.GetByID(cctx, id)
		return storeErr
	})

	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			RespondAppError(ctx, apperrors.NotFound("Product not found"))
			return
		}

		RespondAppError(ctx, apperrors.Store(err))
		return
	}

	h.cacheSet(cctx, cacheKeyOneProduct+id, p)

	RespondJSONWithETag(ctx, http.StatusOK, gin.H{"product": p})
}
