package repository

import "context"

// トランザクション内で使う約束。
// 注文作成は 明細・配送・請求書・在庫・カート を1トランザクションで書く必要がある。
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Carts() CartRepository
	CartItems() CartItemRepository
	Options() ProductOptionRepository
	Inventory() OptionInventoryRepository
	Products() ProductRepository
	Shipments() ShipmentRepository
	Invoices() InvoiceRepository
	Addresses() AddressRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
