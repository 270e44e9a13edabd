package usecase_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type shipmentDeps struct {
	tx        *TxManagerMock
	shipments *ShipmentRepoMock
	orders    *OrderRepoMock
	audit     *AuditRepoMock
	uc        *usecase.ShipmentUsecase
}

func newShipmentDeps() *shipmentDeps {
	d := &shipmentDeps{
		tx:        new(TxManagerMock),
		shipments: new(ShipmentRepoMock),
		orders:    new(OrderRepoMock),
		audit:     new(AuditRepoMock),
	}
	d.tx.Repos = &TxReposMock{
		shipments: d.shipments,
		orders:    d.orders,
		auditLogs: d.audit,
	}
	d.uc = usecase.NewShipmentUsecase(d.tx, d.shipments, d.orders)
	return d
}

func preparingShipment() model.Shipment {
	return model.Shipment{
		ID:        "ship-1",
		OrderID:   "order-1",
		AddressID: "addr-d",
		Status:    model.ShipmentStatusPreparing,
	}
}

func TestGetShipmentForOrder_CreatesLazily(t *testing.T) {
	d := newShipmentDeps()

	d.shipments.On("FindByOrderID", mock.Anything, "order-1").Return(model.Shipment{}, repo.ErrNotFound)
	d.orders.On("FindByID", mock.Anything, "order-1").Return(model.Order{ID: "order-1", DeliveryAddressID: "addr-d"}, nil)
	d.shipments.On("GetOrCreateByOrder", mock.Anything, "order-1", "addr-d").Return(preparingShipment(), nil)

	out, err := d.uc.GetForOrder(context.Background(), "order-1")

	assert.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusPreparing, out.Status)
	assert.Nil(t, out.Carrier)
	assert.Nil(t, out.TrackingNumber)
	assert.Nil(t, out.ShippedAt)
}

func TestGetShipmentForOrder_ReturnsExisting(t *testing.T) {
	d := newShipmentDeps()

	d.shipments.On("FindByOrderID", mock.Anything, "order-1").Return(preparingShipment(), nil)

	out, err := d.uc.GetForOrder(context.Background(), "order-1")

	assert.NoError(t, err)
	assert.Equal(t, "ship-1", out.ID)
	d.shipments.AssertNotCalled(t, "GetOrCreateByOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestShipmentTransition_PreparingToInTransitSetsShippedAt(t *testing.T) {
	d := newShipmentDeps()

	var passedShippedAt *time.Time
	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.shipments.On("FindByID", mock.Anything, "ship-1").Return(preparingShipment(), nil)
	d.shipments.On("TransitionStatus", mock.Anything, "ship-1", model.ShipmentStatusPreparing, model.ShipmentStatusInTransit, mock.Anything).
		Run(func(args mock.Arguments) {
			passedShippedAt, _ = args.Get(4).(*time.Time)
		}).Return(nil)
	d.audit.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).Return(nil)

	out, err := d.uc.Transition(context.Background(), "admin-1", "ship-1", model.ShipmentStatusInTransit)

	assert.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusInTransit, out.Status)
	assert.NotNil(t, passedShippedAt)
	assert.NotNil(t, out.ShippedAt)
}

func TestShipmentTransition_InTransitToDeliveredKeepsShippedAt(t *testing.T) {
	d := newShipmentDeps()

	shippedAt := time.Now().Add(-24 * time.Hour)
	s := preparingShipment()
	s.Status = model.ShipmentStatusInTransit
	s.ShippedAt = &shippedAt

	var passedShippedAt *time.Time
	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.shipments.On("FindByID", mock.Anything, "ship-1").Return(s, nil)
	d.shipments.On("TransitionStatus", mock.Anything, "ship-1", model.ShipmentStatusInTransit, model.ShipmentStatusDelivered, mock.Anything).
		Run(func(args mock.Arguments) {
			passedShippedAt, _ = args.Get(4).(*time.Time)
		}).Return(nil)
	d.audit.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).Return(nil)

	out, err := d.uc.Transition(context.Background(), "admin-1", "ship-1", model.ShipmentStatusDelivered)

	assert.NoError(t, err)
	assert.Equal(t, model.ShipmentStatusDelivered, out.Status)
	//出荷時刻は最初の出荷の瞬間から動かさない
	assert.Nil(t, passedShippedAt)
	if assert.NotNil(t, out.ShippedAt) {
		assert.Equal(t, shippedAt.UnixMilli(), *out.ShippedAt)
	}
}

func TestShipmentTransition_PreparingToDeliveredRejected(t *testing.T) {
	d := newShipmentDeps()

	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.shipments.On("FindByID", mock.Anything, "ship-1").Return(preparingShipment(), nil)

	_, err := d.uc.Transition(context.Background(), "admin-1", "ship-1", model.ShipmentStatusDelivered)

	assertErrContains(t, err, "cannot transition")
	d.shipments.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShipmentTransition_WritesAudit(t *testing.T) {
	d := newShipmentDeps()

	var captured model.AuditLog
	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.shipments.On("FindByID", mock.Anything, "ship-1").Return(preparingShipment(), nil)
	d.shipments.On("TransitionStatus", mock.Anything, "ship-1", model.ShipmentStatusPreparing, model.ShipmentStatusInTransit, mock.Anything).Return(nil)
	d.audit.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).Run(func(args mock.Arguments) {
		captured = args.Get(1).(model.AuditLog)
	}).Return(nil)

	_, err := d.uc.Transition(context.Background(), "admin-1", "ship-1", model.ShipmentStatusInTransit)

	assert.NoError(t, err)
	assert.Equal(t, model.AuditActionShipmentTransition, captured.Action)
	assert.Equal(t, model.AuditResourceShipment, captured.ResourceType)
	assert.Equal(t, "ship-1", captured.ResourceID)
}

func TestShipmentUpdateDetails_ShortTrackingNumberRejected(t *testing.T) {
	d := newShipmentDeps()

	tn := "123456789" // 9桁
	_, err := d.uc.UpdateDetails(context.Background(), "ship-1", usecase.ShipmentDetailsInput{TrackingNumber: &tn})

	assert.Error(t, err)
	d.shipments.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShipmentUpdateDetails_ShortCarrierRejected(t *testing.T) {
	d := newShipmentDeps()

	carrier := "DHL"
	_, err := d.uc.UpdateDetails(context.Background(), "ship-1", usecase.ShipmentDetailsInput{Carrier: &carrier})

	assert.Error(t, err)
	d.shipments.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShipmentUpdateDetails_OK(t *testing.T) {
	d := newShipmentDeps()

	tn := "1234567890"
	carrier := "FedEx"
	etaMillis := time.Now().Add(72 * time.Hour).UnixMilli()

	d.shipments.On("FindByID", mock.Anything, "ship-1").Return(preparingShipment(), nil)
	d.shipments.On("UpdateDetails", mock.Anything, "ship-1", &carrier, &tn, mock.Anything).Return(nil)

	out, err := d.uc.UpdateDetails(context.Background(), "ship-1", usecase.ShipmentDetailsInput{
		Carrier:        &carrier,
		TrackingNumber: &tn,
		ETA:            &etaMillis,
	})

	assert.NoError(t, err)
	if assert.NotNil(t, out.Carrier) {
		assert.Equal(t, "FedEx", *out.Carrier)
	}
	if assert.NotNil(t, out.TrackingNumber) {
		assert.Equal(t, "1234567890", *out.TrackingNumber)
	}
	if assert.NotNil(t, out.ETA) {
		assert.Equal(t, etaMillis, *out.ETA)
	}
}

func TestShipmentUpdateDetails_DeliveredLocked(t *testing.T) {
	d := newShipmentDeps()

	s := preparingShipment()
	s.Status = model.ShipmentStatusDelivered
	d.shipments.On("FindByID", mock.Anything, "ship-1").Return(s, nil)

	tn := "1234567890"
	_, err := d.uc.UpdateDetails(context.Background(), "ship-1", usecase.ShipmentDetailsInput{TrackingNumber: &tn})

	assertErrContains(t, err, "already delivered")
	d.shipments.AssertNotCalled(t, "UpdateDetails", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
