package repository

import (
	"context"
	"time"

	"storefront/internal/domain/model"
)

type ShipmentRepository interface {
	//注文の配送レコードを取得し、無ければpreparingで作る。
	//order_idのunique制約があるので同時に呼ばれても1件しかできない
	//（作成競合に負けた側は普通の取得として扱う）。
	GetOrCreateByOrder(ctx context.Context, orderID string, addressID string) (model.Shipment, error)

	FindByID(ctx context.Context, shipmentID string) (model.Shipment, error)
	FindByOrderID(ctx context.Context, orderID string) (model.Shipment, error)

	//現在statusがfromのときだけtoへ更新する。
	//shippedAtは preparing→in_transit のときだけ渡し、それ以外はnil（触らない）。
	TransitionStatus(ctx context.Context, shipmentID string, from model.ShipmentStatus, to model.ShipmentStatus, shippedAt *time.Time) error

	//業者・追跡番号・ETAの更新（渡したフィールドだけ）
	UpdateDetails(ctx context.Context, shipmentID string, carrier *string, trackingNumber *string, eta *time.Time) error
}
