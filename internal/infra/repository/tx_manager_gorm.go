package repository

import (
	"context"

	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
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

func (r *txReposGorm) Orders() repo.OrderRepository              { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository      { return r.orderItems }
func (r *txReposGorm) Carts() repo.CartRepository                { return r.carts }
func (r *txReposGorm) CartItems() repo.CartItemRepository        { return r.cartItems }
func (r *txReposGorm) Options() repo.ProductOptionRepository     { return r.options }
func (r *txReposGorm) Inventory() repo.OptionInventoryRepository { return r.inventory }
func (r *txReposGorm) Products() repo.ProductRepository          { return r.products }
func (r *txReposGorm) Shipments() repo.ShipmentRepository        { return r.shipments }
func (r *txReposGorm) Invoices() repo.InvoiceRepository          { return r.invoices }
func (r *txReposGorm) Addresses() repo.AddressRepository         { return r.addresses }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository        { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:     NewOrderGormRepository(tx),
			orderItems: NewOrderItemGormRepository(tx),
			carts:      NewCartGormRepository(tx),
			cartItems:  NewCartItemGormRepository(tx),
			options:    NewProductOptionGormRepository(tx),
			inventory:  NewOptionInventoryGormRepository(tx),
			products:   NewProductGormRepository(tx),
			shipments:  NewShipmentGormRepository(tx),
			invoices:   NewInvoiceGormRepository(tx),
			addresses:  NewAddressGormRepository(tx),
			auditLogs:  NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
