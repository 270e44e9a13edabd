package repository

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ShipmentGormRepository struct {
	db *gorm.DB
}

func NewShipmentGormRepository(db *gorm.DB) *ShipmentGormRepository {
	return &ShipmentGormRepository{db: db}
}

// 注文の配送レコードを取得し、無ければpreparingで作る。
// order_idのunique制約があるので、同時に2回呼ばれても1件しかできない。
// 作成に負けた側は既存を拾い直して普通の取得として返す。
func (r *ShipmentGormRepository) GetOrCreateByOrder(ctx context.Context, orderID string, addressID string) (model.Shipment, error) {
	var s model.Shipment

	findErr := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&s).Error

	if findErr == nil {
		return s, nil
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return model.Shipment{}, findErr
	}

	newShipment := model.Shipment{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		AddressID: addressID,
		Status:    model.ShipmentStatusPreparing,
	}

	if err := r.db.WithContext(ctx).Create(&newShipment).Error; err != nil {
		//unique制約に負けた場合は既存を返す
		retryErr := r.db.WithContext(ctx).
			Where("order_id = ?", orderID).
			First(&s).Error
		if retryErr == nil {
			return s, nil
		}
		return model.Shipment{}, err
	}

	return newShipment, nil
}

func (r *ShipmentGormRepository) FindByID(ctx context.Context, shipmentID string) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).Where("id = ?", shipmentID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

func (r *ShipmentGormRepository) FindByOrderID(ctx context.Context, orderID string) (model.Shipment, error) {
	var s model.Shipment
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Shipment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Shipment{}, err
	}
	return s, nil
}

// 現在statusがfromのときだけtoへ更新する条件付きUPDATE。
// shippedAtはpreparing→in_transitの遷移でだけ渡される。
// それ以外の遷移ではnilなのでshipped_atカラムには触らない（一度入れたら不変）。
func (r *ShipmentGormRepository) TransitionStatus(ctx context.Context, shipmentID string, from model.ShipmentStatus, to model.ShipmentStatus, shippedAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     to,
		"updated_at": time.Now(),
	}
	if shippedAt != nil {
		updates["shipped_at"] = *shippedAt
	}

	res := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("id = ? AND status = ?", shipmentID, from).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var s model.Shipment
		err := r.db.WithContext(ctx).Where("id = ?", shipmentID).First(&s).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return repo.ErrNotFound
		}
		if err != nil {
			return err
		}
		//状態が先に進んでいた
		return model.ErrInvalidTransition
	}
	return nil
}

// 業者・追跡番号・ETAのうち渡されたものだけ更新
func (r *ShipmentGormRepository) UpdateDetails(ctx context.Context, shipmentID string, carrier *string, trackingNumber *string, eta *time.Time) error {
	updates := map[string]interface{}{}
	if carrier != nil {
		updates["carrier"] = *carrier
	}
	if trackingNumber != nil {
		updates["tracking_number"] = *trackingNumber
	}
	if eta != nil {
		updates["eta"] = *eta
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	res := r.db.WithContext(ctx).Model(&model.Shipment{}).
		Where("id = ?", shipmentID).
		Updates(updates)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
