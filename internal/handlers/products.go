package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stockroom/api/internal/middleware"
	"stockroom/api/internal/models"
	"stockroom/api/internal/service"
)

const maxImageBytes = 10 << 20 // 10 MiB

type productResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	SKU         string              `json:"sku"`
	Category    string              `json:"category"`
	Quantity    int64               `json:"quantity"`
	Price       string              `json:"price"`
	Description string              `json:"description"`
	Image       models.ProductImage `json:"image"`
	CreatedAt   time.Time           `json:"createdAt"`
	UpdatedAt   time.Time           `json:"updatedAt"`
}

func toProductResponse(p models.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		SKU:         p.SKU,
		Category:    p.Category,
		Quantity:    p.Quantity,
		Price:       p.Price,
		Description: p.Description,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (h HandlerSet) CreateProduct(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	input, err := bindProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productService.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toProductResponse(product))
}

func (h HandlerSet) ListProducts(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	products, err := h.productService.List(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	resp := make([]productResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, toProductResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetProduct(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	product, err := h.productService.Get(c.Request.Context(), user.ID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h HandlerSet) UpdateProduct(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	input, err := bindProductForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, err := h.productService.Update(c.Request.Context(), user.ID, c.Param("id"), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductResponse(product))
}

func (h HandlerSet) DeleteProduct(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized, please login"})
		return
	}

	if err := h.productService.Delete(c.Request.Context(), user.ID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// bindProductForm reads the multipart product form. The image part is
// optional; quantity is only treated as provided when the field is present,
// so partial updates leave it alone.
func bindProductForm(c *gin.Context) (service.ProductInput, error) {
	input := service.ProductInput{
		Name:        c.PostForm("name"),
		SKU:         c.PostForm("sku"),
		Category:    c.PostForm("category"),
		Price:       c.PostForm("price"),
		Description: c.PostForm("description"),
	}

	if raw, exists := c.GetPostForm("quantity"); exists {
		quantity, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return service.ProductInput{}, service.ValidationError("quantity must be a whole number")
		}
		input.Quantity = &quantity
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// image part is optional
		return input, nil
	}

	if fileHeader.Size > maxImageBytes {
		return service.ProductInput{}, service.ValidationError("image exceeds the 10MB limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return service.ProductInput{}, service.ValidationError("image could not be read")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		return service.ProductInput{}, service.ValidationError("image could not be read")
	}
	if int64(len(data)) > maxImageBytes {
		return service.ProductInput{}, service.ValidationError("image exceeds the 10MB limit")
	}

	input.Image = &service.ImageUpload{
		FileName:    fileHeader.Filename,
		ContentType: http.DetectContentType(data),
		Data:        data,
	}
	return input, nil
}
