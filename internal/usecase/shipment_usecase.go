package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// ShipmentUsecase は配送の閲覧・遷移・詳細更新。
// 配送レコードは注文から遅延作成されるので、取得は常にensure経由で行う。
type ShipmentUsecase struct {
	tx           repo.TransactionManager
	shipmentRepo repo.ShipmentRepository
	orderRepo    repo.OrderRepository
}

func NewShipmentUsecase(
	tx repo.TransactionManager,
	shipmentRepo repo.ShipmentRepository,
	orderRepo repo.OrderRepository,
) *ShipmentUsecase {
	return &ShipmentUsecase{tx: tx, shipmentRepo: shipmentRepo, orderRepo: orderRepo}
}

type ShipmentOutput struct {
	ID             string               `json:"id"`
	OrderID        string               `json:"order_id"`
	AddressID      string               `json:"address_id"`
	Status         model.ShipmentStatus `json:"status"`
	Carrier        *string              `json:"carrier"`
	TrackingNumber *string              `json:"tracking_number"`
	ETA            *int64               `json:"eta"`
	ShippedAt      *int64               `json:"shipped_at"`
	CreatedAt      int64                `json:"created_at"`
	UpdatedAt      int64                `json:"updated_at"`
}

func toShipmentOutput(s model.Shipment) ShipmentOutput {
	return ShipmentOutput{
		ID:             s.ID,
		OrderID:        s.OrderID,
		AddressID:      s.AddressID,
		Status:         s.Status,
		Carrier:        s.Carrier,
		TrackingNumber: s.TrackingNumber,
		ETA:            millisPtr(s.ETA),
		ShippedAt:      millisPtr(s.ShippedAt),
		CreatedAt:      millis(s.CreatedAt),
		UpdatedAt:      millis(s.UpdatedAt),
	}
}

// GetForOrder は注文の配送を返す。無ければ配送先住所でpreparingのレコードを作る。
// 同じ注文に何度呼んでも配送は1件のまま。
func (u *ShipmentUsecase) GetForOrder(ctx context.Context, orderID string) (ShipmentOutput, error) {
	s, err := u.ensureForOrder(ctx, orderID)
	if err != nil {
		return ShipmentOutput{}, err
	}
	return toShipmentOutput(s), nil
}

// GetMyShipment は自分の注文に限って配送を返す
func (u *ShipmentUsecase) GetMyShipment(ctx context.Context, userID string, orderID string) (ShipmentOutput, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return ShipmentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return ShipmentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID {
		return ShipmentOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	s, err := u.shipmentRepo.GetOrCreateByOrder(ctx, orderID, order.DeliveryAddressID)
	if err != nil {
		return ShipmentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toShipmentOutput(s), nil
}

func (u *ShipmentUsecase) ensureForOrder(ctx context.Context, orderID string) (model.Shipment, error) {
	s, err := u.shipmentRepo.FindByOrderID(ctx, orderID)
	if err == nil {
		return s, nil
	}
	if err != repo.ErrNotFound {
		return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Shipment{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	s, err = u.shipmentRepo.GetOrCreateByOrder(ctx, orderID, order.DeliveryAddressID)
	if err != nil {
		return model.Shipment{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return s, nil
}

// Transition は preparing→in_transit→delivered の一方通行で配送を進める。
// shippedAtは preparing→in_transit の瞬間に一度だけ記録し、以降は変更しない。
func (u *ShipmentUsecase) Transition(ctx context.Context, actorUserID string, shipmentID string, to model.ShipmentStatus) (ShipmentOutput, error) {
	if !to.Valid() {
		return ShipmentOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	var out ShipmentOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		s, err := r.Shipments().FindByID(ctx, shipmentID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "shipment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !s.Status.CanTransitionTo(to) {
			return NewHTTPError(http.StatusUnprocessableEntity,
				"cannot transition from "+string(s.Status)+" to "+string(to))
		}

		var shippedAt *time.Time
		if s.Status == model.ShipmentStatusPreparing && to == model.ShipmentStatusInTransit {
			now := time.Now()
			shippedAt = &now
		}

		err = r.Shipments().TransitionStatus(ctx, shipmentID, s.Status, to, shippedAt)
		if err == model.ErrInvalidTransition {
			return NewHTTPError(http.StatusConflict, "shipment was modified, retry")
		}
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "shipment not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.writeAudit(ctx, r, actorUserID, s, to); err != nil {
			return err
		}

		after := s
		after.Status = to
		if shippedAt != nil {
			after.ShippedAt = shippedAt
		}
		after.UpdatedAt = time.Now()
		out = toShipmentOutput(after)
		return nil
	})
	if err != nil {
		return ShipmentOutput{}, err
	}
	return out, nil
}

type ShipmentDetailsInput struct {
	Carrier        *string
	TrackingNumber *string
	//エポックミリ秒
	ETA *int64
}

// UpdateDetails は業者・追跡番号・着予定の部分更新。nilのフィールドは触らない。
func (u *ShipmentUsecase) UpdateDetails(ctx context.Context, shipmentID string, in ShipmentDetailsInput) (ShipmentOutput, error) {
	if in.Carrier != nil {
		if err := model.ValidateCarrier(*in.Carrier); err != nil {
			return ShipmentOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}
	if in.TrackingNumber != nil {
		if err := model.ValidateTrackingNumber(*in.TrackingNumber); err != nil {
			return ShipmentOutput{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	s, err := u.shipmentRepo.FindByID(ctx, shipmentID)
	if err == repo.ErrNotFound {
		return ShipmentOutput{}, NewHTTPError(http.StatusNotFound, "shipment not found")
	}
	if err != nil {
		return ShipmentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	//配達完了後の書き換えは不可
	if s.Status == model.ShipmentStatusDelivered {
		return ShipmentOutput{}, NewHTTPError(http.StatusUnprocessableEntity, "shipment already delivered")
	}

	var eta *time.Time
	if in.ETA != nil {
		t := time.UnixMilli(*in.ETA)
		eta = &t
	}

	if err := u.shipmentRepo.UpdateDetails(ctx, shipmentID, in.Carrier, in.TrackingNumber, eta); err != nil {
		if err == repo.ErrNotFound {
			return ShipmentOutput{}, NewHTTPError(http.StatusNotFound, "shipment not found")
		}
		return ShipmentOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	after := s
	if in.Carrier != nil {
		after.Carrier = in.Carrier
	}
	if in.TrackingNumber != nil {
		after.TrackingNumber = in.TrackingNumber
	}
	if eta != nil {
		after.ETA = eta
	}
	after.UpdatedAt = time.Now()
	return toShipmentOutput(after), nil
}

type shipmentAuditState struct {
	Status model.ShipmentStatus `json:"status"`
}

func (u *ShipmentUsecase) writeAudit(ctx context.Context, r repo.TxRepos, actorUserID string, before model.Shipment, to model.ShipmentStatus) error {
	beforeJSON, _ := json.Marshal(shipmentAuditState{Status: before.Status})
	afterJSON, _ := json.Marshal(shipmentAuditState{Status: to})

	log := model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       model.AuditActionShipmentTransition,
		ResourceType: model.AuditResourceShipment,
		ResourceID:   before.ID,
		BeforeJSON:   string(beforeJSON),
		AfterJSON:    string(afterJSON),
		CreatedAt:    time.Now(),
	}
	if err := r.AuditLogs().Create(ctx, log); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
