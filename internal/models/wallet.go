package models

type Wallet struct {
	ID     uint    `gorm:"primaryKey" json:"id"`
	UserID uint    `gorm:"uniqueIndex;not null" json:"userId"`
	Credit float64 `gorm:"not null;default:0" json:"credit"`
	User   User    `json:"-"`
}
