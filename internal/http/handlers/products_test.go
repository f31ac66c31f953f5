package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/freshbite/shop/internal/cache"
	"github.com/freshbite/shop/internal/domain/product"
	"github.com/freshbite/shop/internal/http/handlers"
	"github.com/freshbite/shop/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

const validProductBody = `{
	"name": "Sourdough Loaf",
	"image": ["https://cdn.example.com/sourdough.jpg"],
	"price": 6.5,
	"description": "Naturally leavened, 24h fermentation",
	"category": "bakery",
	"stock": 12,
	"preparationTime": 30,
	"shelfLife": "3 days",
	"storageInstructions": "Keep in a paper bag at room temperature"
}`

type failingProductStore struct{}

func (failingProductStore) Create(ctx context.Context, p product.Product) (product.Product, error) {
	return product.Product{}, errors.New("db down")
}

func (failingProductStore) List(ctx context.Context) ([]product.Product, error) {
	return nil, errors.New("db down")
}

func (failingProductStore) GetByID(ctx context.Context, id string) (product.Product, error) {
	return product.Product{}, errors.New("db down")
}

func seedProduct(t *testing.T, repo *memory.ProductsRepo, name string) product.Product {
	t.Helper()

	p := product.NewFromCreateRequest(product.CreateProductRequest{
		Name:                name,
		Image:               []string{"https://cdn.example.com/" + name + ".jpg"},
		Price:               4.25,
		Description:         "test item",
		Category:            "pantry",
		Stock:               5,
		PreparationTime:     10,
		ShelfLife:           "1 week",
		StorageInstructions: "Cool and dry",
	})

	created, err := repo.Create(context.Background(), p)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	return created
}

func TestCreateProduct(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		store          handlers.ProductStore
		wantStatusCode int
	}{
		{
			name:           "success",
			body:           validProductBody,
			store:          memory.NewProductsRepo(),
			wantStatusCode: http.StatusCreated,
		},
		{
			name:           "missing_category",
			body:           `{"name":"Sourdough Loaf","image":["x.jpg"],"price":6.5,"description":"d","stock":12,"preparationTime":30,"shelfLife":"3 days","storageInstructions":"s"}`,
			store:          memory.NewProductsRepo(),
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "store_error",
			body:           validProductBody,
			store:          failingProductStore{},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			h := handlers.NewProductsHandler(tt.store, nil, nil)
			r := setupRouter(http.MethodPost, "/product/createproduct", h.CreateProduct)

			w := doJSON(r, http.MethodPost, "/product/createproduct", tt.body, nil)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}

func TestCreateProduct_MissingFieldNamesTheField(t *testing.T) {
	h := handlers.NewProductsHandler(memory.NewProductsRepo(), nil, nil)
	r := setupRouter(http.MethodPost, "/product/createproduct", h.CreateProduct)

	body := `{"name":"Sourdough Loaf","image":["x.jpg"],"price":6.5,"description":"d","stock":12,"preparationTime":30,"shelfLife":"3 days","storageInstructions":"s"}`
	w := doJSON(r, http.MethodPost, "/product/createproduct", body, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var e struct {
		Error struct {
			Details struct {
				Fields []struct {
					Field string `json:"field"`
					Rule  string `json:"rule"`
				} `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	found := false
	for _, f := range e.Error.Details.Fields {
		if f.Field == "category" && f.Rule == "required" {
			found = true
		}
	}

	if !found {
		t.Fatalf("expected the category field to be named, body=%s", w.Body.String())
	}
}

func TestListProducts(t *testing.T) {
	repo := memory.NewProductsRepo()
	seedProduct(t, repo, "Sourdough Loaf")
	seedProduct(t, repo, "Cold Brew Coffee")

	h := handlers.NewProductsHandler(repo, nil, nil)
	r := setupRouter(http.MethodGet, "/product/getallproducts", h.ListProducts)

	w := doJSON(r, http.MethodGet, "/product/getallproducts", "", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Items []product.Product `json:"items"`
		Count int               `json:"count"`
	}

	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Count != 2 || len(resp.Items) != 2 {
		t.Fatalf("expected 2 products, got count=%d len=%d", resp.Count, len(resp.Items))
	}

	names := map[string]bool{}
	for _, p := range resp.Items {
		names[p.Name] = true
	}

	if !names["Sourdough Loaf"] || !names["Cold Brew Coffee"] {
		t.Fatalf("unexpected catalog contents: %v", names)
	}
}

func TestListProducts_ETagRevalidation(t *testing.T) {
	repo := memory.NewProductsRepo()
	seedProduct(t, repo, "Sourdough Loaf")

	h := handlers.NewProductsHandler(repo, nil, nil)
	r := setupRouter(http.MethodGet, "/product/getallproducts", h.ListProducts)

	first := doJSON(r, http.MethodGet, "/product/getallproducts", "", nil)

	if first.Code != http.StatusOK {
		t.Fatalf("got status %d", first.Code)
	}

	etag := first.Header().Get("ETag")

	if etag == "" {
		t.Fatalf("expected an ETag on the listing")
	}

	second := doJSON(r, http.MethodGet, "/product/getallproducts", "", map[string]string{
		"If-None-Match": etag,
	})

	if second.Code != http.StatusNotModified {
		t.Fatalf("got status %d, want 304", second.Code)
	}

	if second.Body.Len() != 0 {
		t.Fatalf("304 must carry no body, got %q", second.Body.String())
	}
}

func TestGetProductByID(t *testing.T) {
	repo := memory.NewProductsRepo()
	seeded := seedProduct(t, repo, "Sourdough Loaf")

	h := handlers.NewProductsHandler(repo, nil, nil)
	r := setupRouter(http.MethodGet, "/product/getone/:id", h.GetProductByID)

	t.Run("found", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/product/getone/"+seeded.ID, "", nil)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		var resp struct {
			Product product.Product `json:"product"`
		}

		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if resp.Product.ID != seeded.ID {
			t.Fatalf("got id %q, want %q", resp.Product.ID, seeded.ID)
		}
	})

	t.Run("unknown_id", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/product/getone/nope", "", nil)

		if w.Code != http.StatusNotFound {
			t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
		}

		var e apiErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &e); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}

		if e.Error.Message != "Product not found" {
			t.Fatalf("got message %q", e.Error.Message)
		}
	})
}

// A create must drop the cached listing so the next read sees the new item.
func TestListProducts_CacheInvalidatedByCreate(t *testing.T) {
	repo := memory.NewProductsRepo()
	seedProduct(t, repo, "Sourdough Loaf")

	c := cache.NewMemory(time.Minute)
	h := handlers.NewProductsHandler(repo, c, nil)

	r := gin.New()
	r.GET("/product/getallproducts", h.ListProducts)
	r.POST("/product/createproduct", h.CreateProduct)

	// warm the cache
	warm := doJSON(r, http.MethodGet, "/product/getallproducts", "", nil)
	if warm.Code != http.StatusOK {
		t.Fatalf("warm read failed: %d", warm.Code)
	}

	created := doJSON(r, http.MethodPost, "/product/createproduct", validProductBody, nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("create failed: %d body=%s", created.Code, created.Body.String())
	}

	after := doJSON(r, http.MethodGet, "/product/getallproducts", "", nil)
	if after.Code != http.StatusOK {
		t.Fatalf("read after create failed: %d", after.Code)
	}

	var resp struct {
		Count int `json:"count"`
	}

	if err := json.Unmarshal(after.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if resp.Count != 2 {
		t.Fatalf("stale listing after create: count=%d", resp.Count)
	}
}

func TestGetProductByID_ServedFromCacheAfterFirstRead(t *testing.T) {
	repo := memory.NewProductsRepo()
	seeded := seedProduct(t, repo, "Sourdough Loaf")

	c := cache.NewMemory(time.Minute)
	h := handlers.NewProductsHandler(repo, c, nil)

	r := setupRouter(http.MethodGet, "/product/getone/:id", h.GetProductByID)

	first := doJSON(r, http.MethodGet, "/product/getone/"+seeded.ID, "", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("first read failed: %d", first.Code)
	}

	if _, ok := c.Get(context.Background(), "products:one:"+seeded.ID); !ok {
		t.Fatalf("expected the product to be cached after the first read")
	}

	second := doJSON(r, http.MethodGet, "/product/getone/"+seeded.ID, "", nil)
	if second.Code != http.StatusOK {
		t.Fatalf("cached read failed: %d body=%s", second.Code, second.Body.String())
	}
}
