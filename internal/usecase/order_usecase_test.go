package usecase_test

import (
	"context"
	"testing"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderDeps struct {
	tx        *TxManagerMock
	orders    *OrderRepoMock
	items     *OrderItemRepoMock
	inventory *InventoryRepoMock
	audit     *AuditRepoMock
	uc        *usecase.OrderUsecase
}

func newOrderDeps() *orderDeps {
	d := &orderDeps{
		tx:        new(TxManagerMock),
		orders:    new(OrderRepoMock),
		items:     new(OrderItemRepoMock),
		inventory: new(InventoryRepoMock),
		audit:     new(AuditRepoMock),
	}
	d.tx.Repos = &TxReposMock{
		orders:     d.orders,
		orderItems: d.items,
		inventory:  d.inventory,
		auditLogs:  d.audit,
	}
	d.uc = usecase.NewOrderUsecase(d.tx, d.orders, d.items)
	return d
}

func pendingOrder(version int64) model.Order {
	return model.Order{
		ID:      "order-1",
		UserID:  "user-1",
		Status:  model.OrderStatusPending,
		Total:   decimal.RequireFromString("250.00"),
		Version: version,
	}
}

func TestOrderTransition_PendingToPaid(t *testing.T) {
	d := newOrderDeps()

	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.orders.On("FindByID", mock.Anything, "order-1").Return(pendingOrder(3), nil)
	d.orders.On("TransitionStatus", mock.Anything, "order-1", model.OrderStatusPending, model.OrderStatusPaid, int64(3)).Return(nil)
	d.items.On("ListByOrderID", mock.Anything, "order-1").Return([]model.OrderItem{}, nil)
	d.audit.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).Return(nil)

	out, err := d.uc.Transition(context.Background(), "admin-1", "order-1", usecase.OrderTransitionInput{
		To:      model.OrderStatusPaid,
		Version: 3,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, out.Status)
	assert.Equal(t, int64(4), out.Version)
}

func TestOrderTransition_PendingToShippedRejected(t *testing.T) {
	d := newOrderDeps()

	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.orders.On("FindByID", mock.Anything, "order-1").Return(pendingOrder(0), nil)

	_, err := d.uc.Transition(context.Background(), "admin-1", "order-1", usecase.OrderTransitionInput{
		To: model.OrderStatusShipped,
	})

	assertErrContains(t, err, "cannot transition")
	d.orders.AssertNotCalled(t, "TransitionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	d.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderTransition_UnknownStatusRejected(t *testing.T) {
	d := newOrderDeps()

	_, err := d.uc.Transition(context.Background(), "admin-1", "order-1", usecase.OrderTransitionInput{
		To: model.OrderStatus("CANCELED"),
	})

	assertErrContains(t, err, "unknown status")
	d.tx.AssertNotCalled(t, "WithinTx", mock.Anything)
}

func TestOrderTransition_StaleVersionConflicts(t *testing.T) {
	d := newOrderDeps()

	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.orders.On("FindByID", mock.Anything, "order-1").Return(pendingOrder(5), nil)
	d.orders.On("TransitionStatus", mock.Anything, "order-1", model.OrderStatusPending, model.OrderStatusPaid, int64(4)).Return(repo.ErrStaleOrder)

	_, err := d.uc.Transition(context.Background(), "admin-1", "order-1", usecase.OrderTransitionInput{
		To:      model.OrderStatusPaid,
		Version: 4,
	})

	assertErrContains(t, err, "retry with current version")
	d.audit.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderTransition_RefundBeforeShipmentRestocks(t *testing.T) {
	d := newOrderDeps()

	order := pendingOrder(1)
	order.Status = model.OrderStatusPaid

	opt := "opt-1"
	items := []model.OrderItem{{
		ID:              "oi-1",
		OrderID:         "order-1",
		ProductID:       "prod-1",
		ProductOptionID: &opt,
		Quantity:        2,
	}}

	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.orders.On("FindByID", mock.Anything, "order-1").Return(order, nil)
	d.orders.On("TransitionStatus", mock.Anything, "order-1", model.OrderStatusPaid, model.OrderStatusRefunded, int64(1)).Return(nil)
	d.items.On("ListByOrderID", mock.Anything, "order-1").Return(items, nil)
	d.inventory.On("IncreaseStock", mock.Anything, "opt-1", int64(2)).Return(nil)
	d.audit.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).Return(nil)

	out, err := d.uc.Transition(context.Background(), "admin-1", "order-1", usecase.OrderTransitionInput{
		To:      model.OrderStatusRefunded,
		Version: 1,
	})

	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusRefunded, out.Status)
	d.inventory.AssertCalled(t, "IncreaseStock", mock.Anything, "opt-1", int64(2))
}

func TestOrderTransition_RefundAfterShipmentKeepsStock(t *testing.T) {
	d := newOrderDeps()

	order := pendingOrder(2)
	order.Status = model.OrderStatusShipped

	opt := "opt-1"
	items := []model.OrderItem{{ID: "oi-1", OrderID: "order-1", ProductOptionID: &opt, Quantity: 2}}

	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.orders.On("FindByID", mock.Anything, "order-1").Return(order, nil)
	d.orders.On("TransitionStatus", mock.Anything, "order-1", model.OrderStatusShipped, model.OrderStatusRefunded, int64(2)).Return(nil)
	d.items.On("ListByOrderID", mock.Anything, "order-1").Return(items, nil)
	d.audit.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).Return(nil)

	_, err := d.uc.Transition(context.Background(), "admin-1", "order-1", usecase.OrderTransitionInput{
		To:      model.OrderStatusRefunded,
		Version: 2,
	})

	assert.NoError(t, err)
	d.inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderOverride_WritesDistinctAuditAction(t *testing.T) {
	d := newOrderDeps()

	order := pendingOrder(7)
	order.Status = model.OrderStatusDelivered

	var captured model.AuditLog
	d.tx.On("WithinTx", mock.Anything).Return(nil)
	d.orders.On("FindByID", mock.Anything, "order-1").Return(order, nil)
	d.orders.On("ForceStatus", mock.Anything, "order-1", model.OrderStatusPaid).Return(nil)
	d.audit.On("Create", mock.Anything, mock.AnythingOfType("model.AuditLog")).Run(func(args mock.Arguments) {
		captured = args.Get(1).(model.AuditLog)
	}).Return(nil)
	d.items.On("ListByOrderID", mock.Anything, "order-1").Return([]model.OrderItem{}, nil)

	//Deliveredは終端だがoverrideなら戻せる
	out, err := d.uc.OverrideStatus(context.Background(), "admin-1", "order-1", model.OrderStatusPaid)

	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusPaid, out.Status)
	assert.Equal(t, model.AuditActionOrderStatusOverride, captured.Action)
	assert.Equal(t, "admin-1", captured.ActorUserID)
	assert.Equal(t, "order-1", captured.ResourceID)
}

func TestGetMyOrder_ForeignOrderHidden(t *testing.T) {
	d := newOrderDeps()

	order := pendingOrder(0)
	order.UserID = "someone-else"
	d.orders.On("FindByID", mock.Anything, "order-1").Return(order, nil)

	_, err := d.uc.GetMyOrder(context.Background(), "user-1", "order-1")

	assertErrContains(t, err, "order not found")
}
