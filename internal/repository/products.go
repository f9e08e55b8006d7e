package repository

import (
	"gorm.io/gorm"

	"github.com/polito-se2-21-r03/spg/internal/models"
)

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) FindAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) FindByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormProductRepository) FindByProducer(producerID uint) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("producer_id = ?", producerID).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

func (r *GormProductRepository) UpdateOwned(productID, producerID uint, fields map[string]interface{}) (int64, error) {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND producer_id = ?", productID, producerID).
		Updates(fields)
	if res.Error != nil {
		return 0, res.Error
	}
	return res.RowsAffected, nil
}
