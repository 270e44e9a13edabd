package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。カート明細のスナップショットで、注文後は変わらない。
type OrderItem struct {
	ID              string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID         string          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID       string          `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductOptionID *string         `gorm:"type:uuid" json:"product_option_id"`
	Title           string          `gorm:"type:varchar(255);not null" json:"title"`
	BasePrice       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`
	ExtraPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"extra_price"`
	Quantity        int64           `gorm:"not null" json:"quantity"`
	CreatedAt       time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}
