package model

import (
	"errors"
	"time"
)

// 配送ステータス。正確なラベル（小文字・スネーク）がワイヤ契約。
type ShipmentStatus string

const (
	ShipmentStatusPreparing ShipmentStatus = "preparing"
	ShipmentStatusInTransit ShipmentStatus = "in_transit"
	ShipmentStatusDelivered ShipmentStatus = "delivered"
)

var (
	//追跡番号は10文字以上
	ErrTrackingNumberTooShort = errors.New("tracking number must be at least 10 characters")

	//配送業者名は5文字以上
	ErrCarrierTooShort = errors.New("carrier must be at least 5 characters")
)

func (s ShipmentStatus) Valid() bool {
	switch s {
	case ShipmentStatusPreparing, ShipmentStatusInTransit, ShipmentStatusDelivered:
		return true
	}
	return false
}

// preparing → in_transit → delivered の一方向のみ。
func (s ShipmentStatus) CanTransitionTo(next ShipmentStatus) bool {
	switch s {
	case ShipmentStatusPreparing:
		return next == ShipmentStatusInTransit
	case ShipmentStatusInTransit:
		return next == ShipmentStatusDelivered
	}
	return false
}

// 配送。注文と1:1で、注文の配送先住所に紐づく。
// ShippedAtは preparing→in_transit の遷移時に1回だけ設定され、以後不変。
type Shipment struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	//注文1件につき配送1件（遅延作成の冪等性はこのunique制約で守る）
	OrderID string `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`

	//配送先住所
	AddressID string `gorm:"type:uuid;not null" json:"address_id"`

	Status ShipmentStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	Carrier        *string    `gorm:"type:varchar(100)" json:"carrier"`
	TrackingNumber *string    `gorm:"type:varchar(100)" json:"tracking_number"`
	ETA            *time.Time `json:"-"`
	ShippedAt      *time.Time `json:"-"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// 追跡番号の形式チェック（設定するときだけ呼ぶ）
func ValidateTrackingNumber(tn string) error {
	if len(tn) < 10 {
		return ErrTrackingNumberTooShort
	}
	return nil
}

// 配送業者名の形式チェック（設定するときだけ呼ぶ）
func ValidateCarrier(carrier string) error {
	if len(carrier) < 5 {
		return ErrCarrierTooShort
	}
	return nil
}
