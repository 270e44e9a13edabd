package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。
// 追加時点のタイトル・価格を必ずスナップショットで保存。
// マージの同一判定キーは (product_id, product_option_id)。
type CartItem struct {
	ID              string  `gorm:"type:uuid;primaryKey" json:"id"`
	CartID          string  `gorm:"type:uuid;not null;index" json:"cart_id"`
	ProductID       string  `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductOptionID *string `gorm:"type:uuid;index" json:"product_option_id"`

	//追加時点の商品タイトル
	Title string `gorm:"type:varchar(255);not null" json:"title"`

	//追加時点の基本価格
	BasePrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"base_price"`

	//オプションの追加価格（オプション無しなら0）
	ExtraPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"extra_price"`

	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 同じ (商品, オプション) の明細かどうか
func (i CartItem) SameLine(productID string, optionID *string) bool {
	if i.ProductID != productID {
		return false
	}
	if i.ProductOptionID == nil || optionID == nil {
		return i.ProductOptionID == nil && optionID == nil
	}
	return *i.ProductOptionID == *optionID
}

// 明細1行の小計 = 数量 ×（基本価格＋追加価格）
func (i CartItem) Subtotal() decimal.Decimal {
	unit := i.BasePrice.Add(i.ExtraPrice)
	return unit.Mul(decimal.NewFromInt(i.Quantity))
}
