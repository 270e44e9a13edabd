package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 標準税率10%
var DefaultTaxRate = decimal.NewFromFloat(0.10)

// 請求書。注文確定時に発行される。
type Invoice struct {
	ID       string          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID  string          `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	IssuedAt time.Time       `gorm:"not null" json:"-"`
	TaxRate  decimal.Decimal `gorm:"type:numeric(5,4);not null" json:"tax_rate"`

	//税込み合計 = 注文合計 ×（1＋税率）
	TotalWithTax decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_with_tax"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

// 注文合計から税込み合計を出す
func TotalWithTax(total decimal.Decimal, taxRate decimal.Decimal) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(1).Add(taxRate))
}
