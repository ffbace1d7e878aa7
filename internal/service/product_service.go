package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"stockroom/api/internal/ids"
	"stockroom/api/internal/models"
)

const productCacheTTL = 5 * time.Minute

var imageExtensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// ProductStore is the persistence contract for inventory records.
// Implemented by repository.ProductRepository.
type ProductStore interface {
	Create(ctx context.Context, product models.Product) error
	GetByID(ctx context.Context, id string) (models.Product, error)
	ListByUser(ctx context.Context, userID string) ([]models.Product, error)
	Update(ctx context.Context, product models.Product) error
	Delete(ctx context.Context, id string) error
}

// Uploader stores an image payload and returns its public URL.
// Implemented by storage.ObjectStore.
type Uploader interface {
	Put(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
}

type ProductService struct {
	products ProductStore
	store    Uploader
	cache    *redis.Client
	log      zerolog.Logger
}

func NewProductService(products ProductStore, store Uploader, cache *redis.Client, log zerolog.Logger) *ProductService {
	return &ProductService{
		products: products,
		store:    store,
		cache:    cache,
		log:      log,
	}
}

// ImageUpload is an in-memory image payload from a multipart form.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ProductInput struct {
	Name        string
	SKU         string
	Category    string
	Quantity    *int64
	Price       string
	Description string
	Image       *ImageUpload
}

func (s *ProductService) Create(ctx context.Context, userID string, input ProductInput) (models.Product, error) {
	if input.Name == "" || input.Category == "" || input.Quantity == nil || input.Price == "" || input.Description == "" {
		return models.Product{}, ValidationError("please fill all fields")
	}
	if *input.Quantity < 0 {
		return models.Product{}, ValidationError("quantity cannot be negative")
	}

	product := models.Product{
		ID:          ids.New(),
		UserID:      userID,
		Name:        input.Name,
		SKU:         input.SKU,
		Category:    input.Category,
		Quantity:    *input.Quantity,
		Price:       input.Price,
		Description: input.Description,
	}
	if product.SKU == "" {
		product.SKU = "SKU"
	}

	if input.Image != nil {
		image, err := s.uploadImage(ctx, *input.Image)
		if err != nil {
			return models.Product{}, err
		}
		product.Image = image
	}

	if err := s.products.Create(ctx, product); err != nil {
		return models.Product{}, err
	}

	s.invalidateList(ctx, userID)
	return product, nil
}

func (s *ProductService) List(ctx context.Context, userID string) ([]models.Product, error) {
	if cached, ok := s.cachedList(ctx, userID); ok {
		return cached, nil
	}

	products, err := s.products.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.cacheList(ctx, userID, products)
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, userID, productID string) (models.Product, error) {
	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return models.Product{}, err
	}
	if product.UserID != userID {
		return models.Product{}, ErrNotOwner
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, userID, productID string, input ProductInput) (models.Product, error) {
	product, err := s.Get(ctx, userID, productID)
	if err != nil {
		return models.Product{}, err
	}

	if input.Name != "" {
		product.Name = input.Name
	}
	if input.SKU != "" {
		product.SKU = input.SKU
	}
	if input.Category != "" {
		product.Category = input.Category
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return models.Product{}, ValidationError("quantity cannot be negative")
		}
		product.Quantity = *input.Quantity
	}
	if input.Price != "" {
		product.Price = input.Price
	}
	if input.Description != "" {
		product.Description = input.Description
	}

	// The stored image survives unless a replacement file was sent.
	if input.Image != nil {
		image, err := s.uploadImage(ctx, *input.Image)
		if err != nil {
			return models.Product{}, err
		}
		product.Image = image
	}

	if err := s.products.Update(ctx, product); err != nil {
		return models.Product{}, err
	}

	s.invalidateList(ctx, userID)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, userID, productID string) error {
	if _, err := s.Get(ctx, userID, productID); err != nil {
		return err
	}
	if err := s.products.Delete(ctx, productID); err != nil {
		return err
	}

	s.invalidateList(ctx, userID)
	return nil
}

func (s *ProductService) uploadImage(ctx context.Context, upload ImageUpload) (models.ProductImage, error) {
	ext, ok := imageExtensions[upload.ContentType]
	if !ok {
		return models.ProductImage{}, ValidationError("image must be png, jpeg or webp")
	}
	if len(upload.Data) == 0 {
		return models.ProductImage{}, ValidationError("empty image file")
	}

	datePrefix := time.Now().UTC().Format("2006/01/02")
	objectKey := path.Join(datePrefix, fmt.Sprintf("%s.%s", ids.New(), ext))

	url, err := s.store.Put(ctx, objectKey, bytes.NewReader(upload.Data), int64(len(upload.Data)), upload.ContentType)
	if err != nil {
		s.log.Error().Err(err).Str("object_key", objectKey).Msg("image upload failed")
		return models.ProductImage{}, errors.New("image could not be uploaded")
	}

	return models.ProductImage{
		FileName:  upload.FileName,
		FilePath:  url,
		FileType:  upload.ContentType,
		SizeBytes: int64(len(upload.Data)),
	}, nil
}

func productCacheKey(userID string) string {
	return "products:" + userID
}

func (s *ProductService) cachedList(ctx context.Context, userID string) ([]models.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	payload, err := s.cache.Get(ctx, productCacheKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn().Err(err).Msg("product cache read failed")
		}
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal(payload, &products); err != nil {
		return nil, false
	}
	return products, true
}

func (s *ProductService) cacheList(ctx context.Context, userID string, products []models.Product) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(products)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, productCacheKey(userID), payload, productCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("product cache write failed")
	}
}

func (s *ProductService) invalidateList(ctx context.Context, userID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, productCacheKey(userID)).Err(); err != nil {
		s.log.Warn().Err(err).Msg("product cache invalidation failed")
	}
}
