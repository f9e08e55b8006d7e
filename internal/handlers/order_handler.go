package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/polito-se2-21-r03/spg/internal/models"
	"github.com/polito-se2-21-r03/spg/internal/repository"
	"github.com/polito-se2-21-r03/spg/internal/service"
)

// ReminderSender notifies a client that an order is still awaiting
// confirmation.
type ReminderSender interface {
	SendOrderReminder(email, name string, orderID uint) error
}

type OrderHandler struct {
	orders   repository.OrderRepository
	users    repository.UserRepository
	svc      *service.OrderService
	reminder ReminderSender
}

func NewOrderHandler(
	orders repository.OrderRepository,
	users repository.UserRepository,
	svc *service.OrderService,
	reminder ReminderSender,
) *OrderHandler {
	return &OrderHandler{orders: orders, users: users, svc: svc, reminder: reminder}
}

type OrderItemRequest struct {
	ProductID uint    `json:"productId" binding:"required"`
	Amount    uint    `json:"amount" binding:"required,min=1"`
	Price     float64 `json:"price" binding:"required"`
}

type CreateOrderRequest struct {
	ClientID     uint               `json:"clientId" binding:"required"`
	EmployeeID   *uint              `json:"employeeId"`
	Products     []OrderItemRequest `json:"products" binding:"required,dive"`
	Address      string             `json:"address"`
	DeliveryType string             `json:"type"`
	PickupTime   *time.Time         `json:"datetime"`
}

type UpdateOrderRequest struct {
	ClientID *uint   `json:"clientId"`
	Status   *string `json:"status"`
}

// GET /api/order
func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orders.FindAll()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GET /api/order/:orderId
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, ok := paramUint(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, order)
}

// GET /api/order/client/:clientId
func (h *OrderHandler) GetOrdersByClient(c *gin.Context) {
	clientID, ok := paramUint(c, "clientId")
	if !ok {
		return
	}

	orders, err := h.orders.FindByClient(clientID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// POST /api/order
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	if _, err := h.users.FindByID(req.ClientID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
		return
	}

	order := models.Order{
		ClientID:     req.ClientID,
		EmployeeID:   req.EmployeeID,
		Status:       models.OrderStatusCreated,
		Address:      req.Address,
		DeliveryType: req.DeliveryType,
		PickupTime:   req.PickupTime,
	}

	items := make([]models.OrderProduct, 0, len(req.Products))
	for _, p := range req.Products {
		items = append(items, models.OrderProduct{
			ProductID: p.ProductID,
			Amount:    p.Amount,
			Price:     p.Price,
		})
	}

	if err := h.orders.CreateWithItems(&order, items); err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrInsufficientStock):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "order created successfully", "orderId": order.ID})
}

// PUT /api/order/:orderId
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	orderID, ok := paramUint(c, "orderId")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": err.Error()})
		return
	}

	fields := map[string]interface{}{}
	if req.ClientID != nil {
		fields["client_id"] = *req.ClientID
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if len(fields) == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": "nothing to update"})
		return
	}

	updated, err := h.orders.Update(orderID, fields)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if updated == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

// DELETE /api/order/:orderId
func (h *OrderHandler) DestroyOrder(c *gin.Context) {
	orderID, ok := paramUint(c, "orderId")
	if !ok {
		return
	}

	err := h.svc.CancelableDestroy(orderID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted"})
	case errors.Is(err, service.ErrOrderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrOrderNotCancelable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	}
}

// POST /api/order/:orderId/reminder
func (h *OrderHandler) SendOrderReminder(c *gin.Context) {
	orderID, ok := paramUint(c, "orderId")
	if !ok {
		return
	}

	order, err := h.orders.FindByID(orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	client, err := h.users.FindByID(order.ClientID)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	if err := h.reminder.SendOrderReminder(client.Email, client.Name, order.ID); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reminder sent"})
}
