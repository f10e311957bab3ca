package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCanceled  OrderStatus = "Canceled"
)

// Order is immutable once created; item prices are frozen at checkout time.
type Order struct {
	ID         uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Reference  string          `gorm:"uniqueIndex;not null" json:"reference"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status     OrderStatus     `gorm:"type:varchar(20);default:'Pending'" json:"status"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt  time.Time       `json:"created_at"`
}

type OrderItem struct {
	ID        uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint            `gorm:"not null;index" json:"order_id"`
	ProductID uint            `gorm:"not null" json:"product_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"` // snapshot of Product.Price at purchase
}
