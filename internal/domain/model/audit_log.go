package model

import "time"

// 注文・配送の状態変更の操作種別。
// ルール遷移と管理者オーバーライドは別のイベント種別として残す。
type AuditAction string

const (
	//状態機械のルールに従った注文遷移
	AuditActionOrderTransition AuditAction = "ORDER_TRANSITION"

	//管理者が遷移グラフを無視してステータスを直接セットした操作
	AuditActionOrderStatusOverride AuditAction = "ORDER_STATUS_OVERRIDE"

	//配送の遷移
	AuditActionShipmentTransition AuditAction = "SHIPMENT_TRANSITION"
)

// 何に対する操作か
type AuditResourceType string

const (
	AuditResourceOrder    AuditResourceType = "order"
	AuditResourceShipment AuditResourceType = "shipment"
)

// 監査ログ。「誰が」「何を」「どの対象に」「どう変えたか」を残す。
type AuditLog struct {
	ID int64 `gorm:"primaryKey;autoIncrement" json:"id"`

	//操作したユーザーのID
	ActorUserID string `gorm:"type:uuid;not null;index" json:"actor_user_id"`

	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   string            `gorm:"type:uuid;not null;index" json:"resource_id"`

	//変更前後のJSON文字列
	BeforeJSON string `gorm:"type:text" json:"before_json"`
	AfterJSON  string `gorm:"type:text" json:"after_json"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
}
