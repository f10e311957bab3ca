package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name       string          `gorm:"not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Stock      int             `gorm:"not null" json:"stock"` // never negative; checkout decrements conditionally
	CategoryID uint            `gorm:"not null;index" json:"category_id"`
	Category   *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
