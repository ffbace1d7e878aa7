package service_test

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/api/internal/models"
	"stockroom/api/internal/repository"
	"stockroom/api/internal/service"
)

type fakeProductStore struct {
	mu       sync.Mutex
	products map[string]models.Product
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: make(map[string]models.Product)}
}

func (s *fakeProductStore) Create(_ context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[product.ID] = product
	return nil
}

func (s *fakeProductStore) GetByID(_ context.Context, id string) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	product, ok := s.products[id]
	if !ok {
		return models.Product{}, repository.ErrProductNotFound
	}
	return product, nil
}

func (s *fakeProductStore) ListByUser(_ context.Context, userID string) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, product := range s.products {
		if product.UserID == userID {
			out = append(out, product)
		}
	}
	return out, nil
}

func (s *fakeProductStore) Update(_ context.Context, product models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	s.products[product.ID] = product
	return nil
}

func (s *fakeProductStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(s.products, id)
	return nil
}

type fakeUploader struct {
	keys []string
}

func (u *fakeUploader) Put(_ context.Context, objectKey string, _ io.Reader, _ int64, _ string) (string, error) {
	u.keys = append(u.keys, objectKey)
	return "https://objects.example/" + objectKey, nil
}

func quantity(n int64) *int64 { return &n }

func TestProductService(t *testing.T) {
	ctx := context.Background()

	newService := func() (*service.ProductService, *fakeProductStore, *fakeUploader) {
		store := newFakeProductStore()
		uploader := &fakeUploader{}
		svc := service.NewProductService(store, uploader, nil, zerolog.Nop())
		return svc, store, uploader
	}

	validInput := func() service.ProductInput {
		return service.ProductInput{
			Name:        "Widget",
			Category:    "Hardware",
			Quantity:    quantity(4),
			Price:       "19.99",
			Description: "A widget",
		}
	}

	t.Run("create requires all fields", func(t *testing.T) {
		svc, store, _ := newService()

		input := validInput()
		input.Description = ""
		_, err := svc.Create(ctx, "user-1", input)
		var validation service.ValidationError
		assert.ErrorAs(t, err, &validation)
		assert.Empty(t, store.products)
	})

	t.Run("create defaults the sku and uploads the image", func(t *testing.T) {
		svc, _, uploader := newService()

		input := validInput()
		input.Image = &service.ImageUpload{
			FileName:    "widget.png",
			ContentType: "image/png",
			Data:        []byte{0x89, 0x50, 0x4e, 0x47},
		}

		product, err := svc.Create(ctx, "user-1", input)
		require.NoError(t, err)
		assert.Equal(t, "SKU", product.SKU)
		assert.Equal(t, "widget.png", product.Image.FileName)
		assert.Contains(t, product.Image.FilePath, "https://objects.example/")
		require.Len(t, uploader.keys, 1)
	})

	t.Run("unsupported image type rejected", func(t *testing.T) {
		svc, _, _ := newService()

		input := validInput()
		input.Image = &service.ImageUpload{FileName: "x.gif", ContentType: "image/gif", Data: []byte{1}}

		_, err := svc.Create(ctx, "user-1", input)
		var validation service.ValidationError
		assert.ErrorAs(t, err, &validation)
	})

	t.Run("owner check guards reads and writes", func(t *testing.T) {
		svc, _, _ := newService()

		product, err := svc.Create(ctx, "user-1", validInput())
		require.NoError(t, err)

		_, err = svc.Get(ctx, "user-2", product.ID)
		assert.ErrorIs(t, err, service.ErrNotOwner)

		err = svc.Delete(ctx, "user-2", product.ID)
		assert.ErrorIs(t, err, service.ErrNotOwner)

		_, err = svc.Get(ctx, "user-1", "missing-id")
		assert.ErrorIs(t, err, repository.ErrProductNotFound)
	})

	t.Run("update keeps the image when none is sent", func(t *testing.T) {
		svc, _, _ := newService()

		input := validInput()
		input.Image = &service.ImageUpload{FileName: "widget.png", ContentType: "image/png", Data: []byte{1, 2, 3}}
		product, err := svc.Create(ctx, "user-1", input)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, "user-1", product.ID, service.ProductInput{Name: "Widget v2"})
		require.NoError(t, err)
		assert.Equal(t, "Widget v2", updated.Name)
		assert.Equal(t, product.Image, updated.Image)
		assert.Equal(t, product.Quantity, updated.Quantity)
	})

	t.Run("delete removes the record", func(t *testing.T) {
		svc, store, _ := newService()

		product, err := svc.Create(ctx, "user-1", validInput())
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "user-1", product.ID))
		assert.Empty(t, store.products)
	})
}
