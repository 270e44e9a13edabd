package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
)

// 期待した (status, version) の注文がもう存在しない。
// 同時遷移に負けた側がこれを受け取り、最新状態を読み直して判断する。
var ErrStaleOrder = errors.New("stale order")

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	UserID *string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (model.Order, error)
	ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) error

	//現在の (status, version) が一致するときだけステータスを更新しversionを+1する。
	//一致しなければErrStaleOrder（後勝ちは許さない）。
	TransitionStatus(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus, version int64) error

	//管理者オーバーライド用。遷移グラフを見ずに直接セットする（versionは進める）。
	ForceStatus(ctx context.Context, orderID string, to model.OrderStatus) error

	//同じキーなら同じ注文を返す
	FindByIdempotencyKey(ctx context.Context, userID string, key string) (model.Order, bool, error)

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error)
}
