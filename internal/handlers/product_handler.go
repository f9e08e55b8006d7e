package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/repository"
)

type ProductHandler struct {
	products repository.ProductRepository
	users    repository.UserRepository
}

func NewProductHandler(products repository.ProductRepository, users repository.UserRepository) *ProductHandler {
	return &ProductHandler{products: products, users: users}
}

type CreateProductRequest struct {
	ProducerID    uint    `json:"producerId" binding:"required"`
	Quantity      *uint   `json:"quantity" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	Type          string  `json:"type" binding:"required"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	Description   string  `json:"description"`
	Src           string  `json:"src"`
}

// GET /api/product
func (h *ProductHandler) GetAllProducts(c *gin.Context) {
	products, err := h.products.FindAll()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// POST /api/product
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	producer, err := h.users.FindByID(req.ProducerID)
	if err != nil || producer.Role != models.RoleFarmer {
		errorMessage := fmt.Sprintf("Producer not found with ID: %d", req.ProducerID)
		c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
		return
	}

	product := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Type:          req.Type,
		Src:           req.Src,
		UnitOfMeasure: req.UnitOfMeasure,
		Quantity:      *req.Quantity,
		Price:         req.Price,
		ProducerID:    req.ProducerID,
	}

	if err := h.products.Create(&product); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, product)
}
