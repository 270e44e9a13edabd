package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// 注文ステータス。ラベルはワイヤ契約なので大文字小文字ごと変えないこと。
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusPaid      OrderStatus = "Paid"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusRefunded  OrderStatus = "Refunded"
)

// 許可されていない状態遷移
var ErrInvalidTransition = errors.New("invalid transition")

// ステータスのラベルとして正しいか
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusRefunded:
		return true
	}
	return false
}

// 終端状態か。終端からはどこへも遷移できない。
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusRefunded
}

// Pending → Paid → Shipped → Delivered。
// Refundedは終端以外のどこからでも入れる。
// 飛ばし遷移（Pending→Shippedなど）は許可しない。
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s.Terminal() {
		return false
	}
	switch next {
	case OrderStatusPaid:
		return s == OrderStatusPending
	case OrderStatusShipped:
		return s == OrderStatusPaid
	case OrderStatusDelivered:
		return s == OrderStatusShipped
	case OrderStatusRefunded:
		return true
	}
	return false
}

// 注文。チェックアウト時に作られ、以後はステータスだけが変わる。
// 明細と住所は作成時点のスナップショットで凍結される。
// Versionは同時遷移を直列化するための楽観ロック用カウンタ。
type Order struct {
	ID     string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string      `gorm:"type:uuid;not null;index;uniqueIndex:idx_orders_user_idem" json:"user_id"`
	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Total decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total"`

	BillingAddressID  string `gorm:"type:uuid;not null" json:"billing_address_id"`
	DeliveryAddressID string `gorm:"type:uuid;not null" json:"delivery_address_id"`

	//同じユーザーの同じチェックアウト送信は同じ注文を返す。
	//キーの一意性は (user_id, idempotency_key) の複合。別ユーザーが同じキーを
	//使っても衝突しない。
	IdempotencyKey string `gorm:"type:varchar(255);not null;uniqueIndex:idx_orders_user_idem" json:"-"`

	Version int64 `gorm:"not null;default:0" json:"-"`

	//作成時刻は不変
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
