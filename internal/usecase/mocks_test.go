package usecase_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	carts      repo.CartRepository
	cartItems  repo.CartItemRepository
	options    repo.ProductOptionRepository
	inventory  repo.OptionInventoryRepository
	products   repo.ProductRepository
	shipments  repo.ShipmentRepository
	invoices   repo.InvoiceRepository
	addresses  repo.AddressRepository
	auditLogs  repo.AuditLogRepository
}

func (r *TxReposMock) Orders() repo.OrderRepository              { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository      { return r.orderItems }
func (r *TxReposMock) Carts() repo.CartRepository                { return r.carts }
func (r *TxReposMock) CartItems() repo.CartItemRepository        { return r.cartItems }
func (r *TxReposMock) Options() repo.ProductOptionRepository     { return r.options }
func (r *TxReposMock) Inventory() repo.OptionInventoryRepository { return r.inventory }
func (r *TxReposMock) Products() repo.ProductRepository          { return r.products }
func (r *TxReposMock) Shipments() repo.ShipmentRepository        { return r.shipments }
func (r *TxReposMock) Invoices() repo.InvoiceRepository          { return r.invoices }
func (r *TxReposMock) Addresses() repo.AddressRepository         { return r.addresses }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository        { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID string) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID string, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, userID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) TransitionStatus(ctx context.Context, orderID string, from model.OrderStatus, to model.OrderStatus, version int64) error {
	args := m.Called(ctx, orderID, from, to, version)
	return args.Error(0)
}

func (m *OrderRepoMock) ForceStatus(ctx context.Context, orderID string, to model.OrderStatus) error {
	args := m.Called(ctx, orderID, to)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByIdempotencyKey(ctx context.Context, userID string, key string) (model.Order, bool, error) {
	args := m.Called(ctx, userID, key)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID string, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type CartRepoMock struct{ mock.Mock }

func (m *CartRepoMock) GetOrCreateActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *CartRepoMock) UpdateStatus(ctx context.Context, cartID string, status model.CartStatus) error {
	args := m.Called(ctx, cartID, status)
	return args.Error(0)
}

func (m *CartRepoMock) Clear(ctx context.Context, cartID string) error {
	args := m.Called(ctx, cartID)
	return args.Error(0)
}

type CartItemRepoMock struct{ mock.Mock }

func (m *CartItemRepoMock) ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *CartItemRepoMock) FindByID(ctx context.Context, cartItemID string) (model.CartItem, error) {
	args := m.Called(ctx, cartItemID)
	it, _ := args.Get(0).(model.CartItem)
	return it, args.Error(1)
}

func (m *CartItemRepoMock) Create(ctx context.Context, item model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *CartItemRepoMock) UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error {
	args := m.Called(ctx, cartItemID, qty)
	return args.Error(0)
}

func (m *CartItemRepoMock) DeleteByID(ctx context.Context, cartItemID string) error {
	args := m.Called(ctx, cartItemID)
	return args.Error(0)
}

func (m *CartItemRepoMock) IsOwnedByUser(ctx context.Context, cartItemID string, userID string) (bool, error) {
	args := m.Called(ctx, cartItemID, userID)
	return args.Bool(0), args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListPublic(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id string) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type ProductOptionRepoMock struct{ mock.Mock }

func (m *ProductOptionRepoMock) ListByProductID(ctx context.Context, productID string) ([]model.ProductOption, error) {
	args := m.Called(ctx, productID)
	options, _ := args.Get(0).([]model.ProductOption)
	return options, args.Error(1)
}

func (m *ProductOptionRepoMock) FindByID(ctx context.Context, optionID string) (model.ProductOption, error) {
	args := m.Called(ctx, optionID)
	o, _ := args.Get(0).(model.ProductOption)
	return o, args.Error(1)
}

func (m *ProductOptionRepoMock) Create(ctx context.Context, o model.ProductOption) (model.ProductOption, error) {
	args := m.Called(ctx, o)
	created, _ := args.Get(0).(model.ProductOption)
	return created, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, optionID string, qty int64) (bool, error) {
	args := m.Called(ctx, optionID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, optionID string, qty int64) error {
	args := m.Called(ctx, optionID, qty)
	return args.Error(0)
}

type ShipmentRepoMock struct{ mock.Mock }

func (m *ShipmentRepoMock) GetOrCreateByOrder(ctx context.Context, orderID string, addressID string) (model.Shipment, error) {
	args := m.Called(ctx, orderID, addressID)
	s, _ := args.Get(0).(model.Shipment)
	return s, args.Error(1)
}

func (m *ShipmentRepoMock) FindByID(ctx context.Context, shipmentID string) (model.Shipment, error) {
	args := m.Called(ctx, shipmentID)
	s, _ := args.Get(0).(model.Shipment)
	return s, args.Error(1)
}

func (m *ShipmentRepoMock) FindByOrderID(ctx context.Context, orderID string) (model.Shipment, error) {
	args := m.Called(ctx, orderID)
	s, _ := args.Get(0).(model.Shipment)
	return s, args.Error(1)
}

func (m *ShipmentRepoMock) TransitionStatus(ctx context.Context, shipmentID string, from model.ShipmentStatus, to model.ShipmentStatus, shippedAt *time.Time) error {
	args := m.Called(ctx, shipmentID, from, to, shippedAt)
	return args.Error(0)
}

func (m *ShipmentRepoMock) UpdateDetails(ctx context.Context, shipmentID string, carrier *string, trackingNumber *string, eta *time.Time) error {
	args := m.Called(ctx, shipmentID, carrier, trackingNumber, eta)
	return args.Error(0)
}

type InvoiceRepoMock struct{ mock.Mock }

func (m *InvoiceRepoMock) Create(ctx context.Context, invoice model.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *InvoiceRepoMock) FindByOrderID(ctx context.Context, orderID string) (model.Invoice, error) {
	args := m.Called(ctx, orderID)
	i, _ := args.Get(0).(model.Invoice)
	return i, args.Error(1)
}

type AddressRepoMock struct{ mock.Mock }

func (m *AddressRepoMock) CreateCurrent(ctx context.Context, address model.Address) (model.Address, error) {
	args := m.Called(ctx, address)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) FindByID(ctx context.Context, addressID string) (model.Address, error) {
	args := m.Called(ctx, addressID)
	a, _ := args.Get(0).(model.Address)
	return a, args.Error(1)
}

func (m *AddressRepoMock) ListByUserID(ctx context.Context, userID string) ([]model.Address, error) {
	args := m.Called(ctx, userID)
	addresses, _ := args.Get(0).([]model.Address)
	return addresses, args.Error(1)
}

func (m *AddressRepoMock) IsOwnedByUser(ctx context.Context, addressID string, userID string) (bool, error) {
	args := m.Called(ctx, addressID, userID)
	return args.Bool(0), args.Error(1)
}

type AuditRepoMock struct{ mock.Mock }

func (m *AuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *AuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// =====================
// Helper: error contains（HTTPErrorの実装詳細に依存しない）
// =====================

func assertErrContains(t *testing.T, err error, wantSubstr string) {
	t.Helper()
	if assert.Error(t, err) {
		assert.True(t, strings.Contains(err.Error(), wantSubstr), "err=%q want contains %q", err.Error(), wantSubstr)
	}
}
