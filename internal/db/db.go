package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/polito-se2-21-r03/spg/configs"
	"github.com/polito-se2-21-r03/spg/internal/models"
)

func Connect(cfg config.DBConfig) (*gorm.DB, error) {

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Europe/Rome",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	return gdb, nil
}

func Migrate(gdb *gorm.DB) error {

	return gdb.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Product{},
		&models.Order{},
		&models.OrderProduct{},
	)
}
