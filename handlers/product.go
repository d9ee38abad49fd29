package handlers

import (
	"errors"
	"net/http"
	"time"

	"boutiqueapi/models"
	"boutiqueapi/store"

	"github.com/gin-gonic/gin"
)

// CreateProduct adds a new product (admin only)
func (a *App) CreateProduct(c *gin.Context) {
	var input models.ProductInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock_quantity must be >= 0"})
		return
	}
	for size, n := range input.SizeStock {
		if n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size_stock must be >= 0 for size " + size})
			return
		}
	}

	now := time.Now().UTC()
	product := models.Product{
		ID:            a.Store.NewID(),
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		ImageURL:      input.ImageURL,
		StockQuantity: input.StockQuantity,
		SizeStock:     input.SizeStock,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Persist product (direct write path)
	if err := a.Store.PutProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "product created successfully",
		"product_id": product.ID,
	})
}

// GetAllProducts retrieves all products, optionally filtered by category
func (a *App) GetAllProducts(c *gin.Context) {
	category := c.Query("category")

	products, err := a.Store.ListProducts(c.Request.Context(), category)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProduct retrieves a specific product by ID
func (a *App) GetProduct(c *gin.Context) {
	productID := c.Param("id")

	product, err := a.Store.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"product": product})
}

// UpdateProduct updates a specific product (admin only). This is the
// unconstrained admin write path: last write wins, including stock fields.
func (a *App) UpdateProduct(c *gin.Context) {
	productID := c.Param("id")

	var input models.ProductInput

	// Parse request body
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.StockQuantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "stock_quantity must be >= 0"})
		return
	}
	for size, n := range input.SizeStock {
		if n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size_stock must be >= 0 for size " + size})
			return
		}
	}

	// Check if product exists
	existing, err := a.Store.GetProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
		return
	}

	product := models.Product{
		ID:            productID,
		Name:          input.Name,
		Description:   input.Description,
		Price:         input.Price,
		Category:      input.Category,
		ImageURL:      input.ImageURL,
		StockQuantity: input.StockQuantity,
		SizeStock:     input.SizeStock,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now().UTC(),
	}

	if err := a.Store.PutProduct(c.Request.Context(), &product); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product updated successfully"})
}

// DeleteProduct removes a specific product (admin only)
func (a *App) DeleteProduct(c *gin.Context) {
	productID := c.Param("id")

	err := a.Store.DeleteProduct(c.Request.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product deleted successfully"})
}
