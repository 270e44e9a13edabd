package model

import "time"

// 住所の世代。CurrentAddressは (user, type) につき最大1件。
type AddressStatus string

const (
	AddressStatusCurrent  AddressStatus = "CurrentAddress"
	AddressStatusPrevious AddressStatus = "PreviousAddress"
)

// 請求先か配送先か
type AddressType string

const (
	AddressTypeBilling  AddressType = "BillingAddress"
	AddressTypeDelivery AddressType = "DeliveryAddress"
)

// 請求先・配送先住所。
// 新しいCurrentAddressを作ると、同じ (user, type) の旧住所はPreviousAddressに降格する。
type Address struct {
	ID     string        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Status AddressStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Type   AddressType   `gorm:"type:varchar(20);not null;index" json:"type"`

	//宛名
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`

	AddressLine1 string `gorm:"type:varchar(255);not null" json:"address_line1"`

	//建物名など（任意）
	AddressLine2 *string `gorm:"type:varchar(255)" json:"address_line2"`

	City     string `gorm:"type:varchar(255);not null" json:"city"`
	State    string `gorm:"type:varchar(100);not null" json:"state"`
	Postcode string `gorm:"type:varchar(20);not null" json:"postcode"`
	Country  string `gorm:"type:varchar(100);not null" json:"country"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
