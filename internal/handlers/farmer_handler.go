package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/repository"
	"github.com/polito-se2-21-r03/spg/internal/service"
)

type FarmerHandler struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   *service.OrderService
	catalog  *service.ProductService
}

func NewFarmerHandler(
	users repository.UserRepository,
	products repository.ProductRepository,
	orders *service.OrderService,
	catalog *service.ProductService,
) *FarmerHandler {
	return &FarmerHandler{users: users, products: products, orders: orders, catalog: catalog}
}

type ConfirmProductItem struct {
	ProductID uint  `json:"productId" binding:"required"`
	Confirmed *bool `json:"confirmed" binding:"required"`
}

type ConfirmProductsRequest struct {
	Products []ConfirmProductItem `json:"products" binding:"dive"`
}

type StatusProductItem struct {
	ProductID uint   `json:"productId" binding:"required"`
	Status    string `json:"status" binding:"required"`
}

type StatusProductsRequest struct {
	Products []StatusProductItem `json:"products" binding:"dive"`
}

type UpdateProductRequest struct {
	Quantity      *uint    `json:"quantity"`
	Name          *string  `json:"name"`
	Price         *float64 `json:"price"`
	Type          *string  `json:"type"`
	Src           *string  `json:"src"`
	UnitOfMeasure *string  `json:"unitOfMeasure"`
	Description   *string  `json:"description"`
}

// GET /api/farmer
func (h *FarmerHandler) GetAllFarmers(c *gin.Context) {
	farmers, err := h.users.FindByRole(models.RoleFarmer)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, farmers)
}

// GET /api/farmer/:farmerId/product
func (h *FarmerHandler) GetFarmerProducts(c *gin.Context) {
	farmerID, ok := paramUint(c, "farmerId")
	if !ok {
		return
	}

	products, err := h.products.FindByProducer(farmerID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GET /api/farmer/:farmerId/order
func (h *FarmerHandler) GetFarmerOrders(c *gin.Context) {
	farmerID, ok := paramUint(c, "farmerId")
	if !ok {
		return
	}

	summaries, err := h.orders.OrdersByFarmer(farmerID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// GET /api/farmer/:farmerId/order/:orderId
func (h *FarmerHandler) GetFarmerOrder(c *gin.Context) {
	farmerID, ok := paramUint(c, "farmerId")
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "orderId")
	if !ok {
		return
	}

	view, err := h.orders.OrderByFarmer(farmerID, orderID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": view})
}

// POST /api/farmer/:farmerId/order/:orderId/confirm
func (h *FarmerHandler) ConfirmOrderProducts(c *gin.Context) {
	farmerID, ok := paramUint(c, "farmerId")
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "orderId")
	if !ok {
		return
	}

	var req ConfirmProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	items := make([]service.LineConfirmation, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, service.LineConfirmation{ProductID: p.ProductID, Confirmed: *p.Confirmed})
	}

	results, err := h.orders.ConfirmLineItems(farmerID, orderID, items)
	if err != nil {
		respondBatchError(c, err, results)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order products successfully reported", "results": results})
}

// POST /api/farmer/:farmerId/order/:orderId/status
func (h *FarmerHandler) UpdateOrderProductStatus(c *gin.Context) {
	farmerID, ok := paramUint(c, "farmerId")
	if !ok {
		return
	}
	orderID, ok := paramUint(c, "orderId")
	if !ok {
		return
	}

	var req StatusProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	items := make([]service.LineStatusUpdate, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, service.LineStatusUpdate{ProductID: p.ProductID, Status: p.Status})
	}

	results, err := h.orders.UpdateLineStatuses(farmerID, orderID, items)
	if err != nil {
		respondBatchError(c, err, results)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order products status successfully reported", "results": results})
}

// PUT /api/farmer/:farmerId/product/:productId
func (h *FarmerHandler) UpdateProduct(c *gin.Context) {
	farmerID, ok := paramUint(c, "farmerId")
	if !ok {
		return
	}
	productID, ok := paramUint(c, "productId")
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	patch := service.ProductPatch{
		Quantity:      req.Quantity,
		Name:          req.Name,
		Price:         req.Price,
		Type:          req.Type,
		Src:           req.Src,
		UnitOfMeasure: req.UnitOfMeasure,
		Description:   req.Description,
	}

	updated, err := h.catalog.UpdateOwned(productID, farmerID, patch)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated", "updated": updated})
}

func respondBatchError(c *gin.Context, err error, results []service.LineItemResult) {
	switch {
	case errors.Is(err, service.ErrNoLineItems):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		body := gin.H{"error": err.Error()}
		if results != nil {
			body["results"] = results
		}
		c.JSON(http.StatusServiceUnavailable, body)
	}
}

func paramUint(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(value), true
}
