package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品の公開状態
type ProductStatus string

const (
	//購入可能
	ProductStatusAvailable ProductStatus = "available"

	//在庫切れ（カタログには出る）
	ProductStatusOutOfStock ProductStatus = "out_of_stock"

	//廃番。カートに追加できない
	ProductStatusDiscontinued ProductStatus = "discontinued"
)

// ステータスのラベルとして正しいか
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusOutOfStock, ProductStatusDiscontinued:
		return true
	}
	return false
}

// カタログの商品。カート／チェックアウト側からは読み取り専用。
type Product struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string          `gorm:"type:varchar(255);not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Images      []string        `gorm:"serializer:json" json:"images"`
	BasePrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`
	Status      ProductStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
