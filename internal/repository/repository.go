// Package repository wraps all database access behind per-entity
// interfaces so handlers and services never touch a shared model
// namespace directly and tests can swap in an sqlite-backed set.
package repository

import (
	"errors"

	"github.com/polito-se2-21-r03/spg/internal/models"
)

var (
	ErrInsufficientStock = errors.New("insufficient product quantity")
	ErrProductNotFound   = errors.New("product not found")
)

type UserRepository interface {
	FindByID(id uint) (*models.User, error)
	FindByRole(role models.Role) ([]models.User, error)
	FindByOIDCID(oidcID string) (*models.User, error)
	Create(user *models.User) error
}

type WalletRepository interface {
	FindByUserID(userID uint) (*models.Wallet, error)
}

type ProductRepository interface {
	FindAll() ([]models.Product, error)
	FindByID(id uint) (*models.Product, error)
	FindByProducer(producerID uint) ([]models.Product, error)
	Create(product *models.Product) error
	// UpdateOwned writes fields to the product only when it belongs to the
	// given producer. Returns the number of rows matched (zero when the
	// product does not exist or is owned by someone else).
	UpdateOwned(productID, producerID uint, fields map[string]interface{}) (int64, error)
}

type OrderRepository interface {
	FindAll() ([]models.Order, error)
	FindByID(id uint) (*models.Order, error)
	FindByClient(clientID uint) ([]models.Order, error)
	Exists(id uint) (bool, error)
	CreateWithItems(order *models.Order, items []models.OrderProduct) error
	Update(id uint, fields map[string]interface{}) (int64, error)
	Destroy(id uint) error

	LineItemsByFarmer(farmerID uint) ([]models.OrderProduct, error)
	LineItemsByFarmerAndOrder(farmerID, orderID uint) ([]models.OrderProduct, error)
	SetLineConfirmed(farmerID, orderID, productID uint, confirmed bool) (int64, error)
	SetLineStatus(farmerID, orderID, productID uint, status string) (int64, error)
}
