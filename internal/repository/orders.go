package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/polito-se2-21-r03/spg/internal/models"
)

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

func (r *GormOrderRepository) FindAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Products").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Products").First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderRepository) FindByClient(clientID uint) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Products").
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Order{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateWithItems inserts the order and its line items in one transaction,
// decrementing each product's stock. Every line item is stamped with the
// product's producer id, so the farmer-scoped mutations can rely on
// user_id == producer_id.
func (r *GormOrderRepository) CreateWithItems(order *models.Order, items []models.OrderProduct) error {
	return r.db.Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(order).Error; err != nil {
			return err
		}

		for i := range items {
			var product models.Product
			if err := tx.First(&product, items[i].ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return err
			}

			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", product.ID, items[i].Amount).
				Update("quantity", gorm.Expr("quantity - ?", items[i].Amount))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrInsufficientStock
			}

			items[i].OrderID = order.ID
			items[i].UserID = product.ProducerID
		}

		return tx.Create(&items).Error
	})
}

func (r *GormOrderRepository) Update(id uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

// Destroy removes the order together with its line items; line-item
// deletion is scoped to the order id.
func (r *GormOrderRepository) Destroy(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, id).Error
	})
}

func (r *GormOrderRepository) LineItemsByFarmer(farmerID uint) ([]models.OrderProduct, error) {
	var items []models.OrderProduct
	if err := r.db.Preload("Order").
		Where("user_id = ?", farmerID).
		Order("order_id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormOrderRepository) LineItemsByFarmerAndOrder(farmerID, orderID uint) ([]models.OrderProduct, error) {
	var items []models.OrderProduct
	if err := r.db.Preload("Order").Preload("Product").
		Where("user_id = ? AND order_id = ?", farmerID, orderID).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormOrderRepository) SetLineConfirmed(farmerID, orderID, productID uint, confirmed bool) (int64, error) {
	res := r.db.Model(&models.OrderProduct{}).
		Where("user_id = ? AND order_id = ? AND product_id = ?", farmerID, orderID, productID).
		Update("confirmed", confirmed)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}

func (r *GormOrderRepository) SetLineStatus(farmerID, orderID, productID uint, status string) (int64, error) {
	res := r.db.Model(&models.OrderProduct{}).
		Where("user_id = ? AND order_id = ? AND product_id = ?", farmerID, orderID, productID).
		Update("status", status)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
