package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type InvoiceRepository interface {
	Create(ctx context.Context, invoice model.Invoice) error
	FindByOrderID(ctx context.Context, orderID string) (model.Invoice, error)
}
