package models

import "time"

type OrderStatus string

const (
	OrderStatusCreated            OrderStatus = "CREATED"
	OrderStatusPendingCancelation OrderStatus = "PENDING CANCELATION"
	OrderStatusDelivered          OrderStatus = "DELIVERED"
	OrderStatusCanceled           OrderStatus = "CANCELED"
)

type Order struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	ClientID     uint           `gorm:"index;not null" json:"clientId"`
	EmployeeID   *uint          `gorm:"index" json:"employeeId"`
	Status       OrderStatus    `gorm:"not null" json:"status"`
	Address      string         `json:"address"`
	DeliveryType string         `json:"type"`
	PickupTime   *time.Time     `json:"datetime"`
	CreatedAt    time.Time      `json:"createdAt"`
	Products     []OrderProduct `gorm:"foreignKey:OrderID" json:"products,omitempty"`
}

// OrderProduct is one product quantity within one order. UserID is the
// owning producer of the referenced product, denormalized so farmer-scoped
// mutations can filter on it directly.
type OrderProduct struct {
	OrderID   uint    `gorm:"primaryKey;autoIncrement:false" json:"orderId"`
	ProductID uint    `gorm:"primaryKey;autoIncrement:false" json:"productId"`
	UserID    uint    `gorm:"index;not null" json:"userId"`
	Amount    uint    `gorm:"not null" json:"amount"`
	Price     float64 `gorm:"not null" json:"price"` // snapshotted at order time
	Confirmed bool    `gorm:"not null;default:false" json:"confirmed"`
	Status    string  `json:"status"`
	Product   Product `json:"-"`
	Order     Order   `json:"-"`
}
