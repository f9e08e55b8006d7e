package models

type Product struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Name          string  `gorm:"not null" json:"name"`
	Description   string  `json:"description"`
	Type          string  `gorm:"index" json:"type"`
	Src           string  `json:"src"`
	UnitOfMeasure string  `json:"unitOfMeasure"`
	Quantity      uint    `gorm:"not null;default:0" json:"quantity"` // stock, never negative
	Price         float64 `gorm:"not null" json:"price"`
	ProducerID    uint    `gorm:"index;not null" json:"producerId"`
	Producer      User    `gorm:"foreignKey:ProducerID" json:"-"`
}
