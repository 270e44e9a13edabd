package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 商品オプション（SIZEなどの購入バリエーション）。
// 在庫はオプション単位で持つ。素の商品ではなくここを基準に在庫チェックする。
type ProductOption struct {
	ID        string `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID string `gorm:"type:uuid;not null;index" json:"product_id"`
	SKU       string `gorm:"type:varchar(100);not null" json:"sku"`

	//属性名（"SIZE" など）
	Attribute string `gorm:"type:varchar(100);not null" json:"attribute"`

	//属性の値（"XL" など）
	Value string `gorm:"type:varchar(100);not null" json:"value"`

	//在庫数（0以上）
	Stock int64 `gorm:"not null" json:"stock"`

	//追加価格。マイナスもあり得る
	Extra decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"extra"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
