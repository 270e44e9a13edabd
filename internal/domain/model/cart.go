package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusActive     CartStatus = "ACTIVE"
	CartStatusCheckedOut CartStatus = "CHECKED_OUT"
	CartStatusAbandoned  CartStatus = "ABANDONED"
)

// IDの無い商品／オプションをカートに入れようとした
var ErrInvalidItem = errors.New("invalid item")

// 1ユーザーにつきACTIVEは1つ。
// Itemsはカラムではなく、cart_itemsをrepositoryで読み込んで詰める。
type Cart struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string     `gorm:"type:uuid;not null;index" json:"user_id"`
	Status    CartStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Items     []CartItem `gorm:"-" json:"items"`
	CreatedAt time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// カートに追加する。在庫は見ない（チェックアウトで再検証する）。
// 同じ (商品, オプション) の明細があれば数量を加算し、無ければ
// タイトル・価格をスナップショットした新しい明細を作る。
// 返り値は対象の明細と、既存明細へのマージだったかどうか。
func (c *Cart) AddItem(p Product, opt *ProductOption, quantity int64) (CartItem, bool, error) {
	if p.ID == "" {
		return CartItem{}, false, ErrInvalidItem
	}
	if opt != nil && opt.ID == "" {
		return CartItem{}, false, ErrInvalidItem
	}
	if quantity < 1 {
		return CartItem{}, false, ErrInvalidItem
	}

	var optionID *string
	extra := decimal.Zero
	if opt != nil {
		id := opt.ID
		optionID = &id
		extra = opt.Extra
	}

	//既存明細があれば加算
	for idx := range c.Items {
		if c.Items[idx].SameLine(p.ID, optionID) {
			c.Items[idx].Quantity += quantity
			return c.Items[idx], true, nil
		}
	}

	//無ければ新規明細
	item := CartItem{
		ID:              uuid.NewString(),
		CartID:          c.ID,
		ProductID:       p.ID,
		ProductOptionID: optionID,
		Title:           p.Title,
		BasePrice:       p.BasePrice,
		ExtraPrice:      extra,
		Quantity:        quantity,
	}
	c.Items = append(c.Items, item)
	return item, false, nil
}

// 明細を削除する。quantity<=0なら数量に関係なく行ごと削除。
// quantity>0なら数量を減らし、0以下になったら行ごと削除（マイナスにはしない）。
// 返り値は削除・更新後の明細（行ごと消えたらremoved=true）。
func (c *Cart) RemoveItem(itemID string, quantity int64) (item CartItem, removed bool, found bool) {
	for idx := range c.Items {
		if c.Items[idx].ID != itemID {
			continue
		}

		if quantity > 0 && c.Items[idx].Quantity > quantity {
			c.Items[idx].Quantity -= quantity
			return c.Items[idx], false, true
		}

		//行ごと削除
		item = c.Items[idx]
		c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
		return item, true, true
	}
	return CartItem{}, false, false
}

// 合計 = Σ 数量 ×（基本価格＋追加価格）。
// 金額はdecimalで計算する（floatの誤差を持ち込まない）。
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// 明細のディープコピーを返す。
// 注文へ凍結するためのもので、以後カートを触ってもコピーは変わらない。
func (c *Cart) Snapshot() []CartItem {
	snap := make([]CartItem, len(c.Items))
	for idx, it := range c.Items {
		copied := it
		if it.ProductOptionID != nil {
			id := *it.ProductOptionID
			copied.ProductOptionID = &id
		}
		snap[idx] = copied
	}
	return snap
}
