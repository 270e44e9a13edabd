package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// InvoiceUsecase は請求書の閲覧。発行はチェックアウト時に済んでいる。
type InvoiceUsecase struct {
	invoiceRepo repo.InvoiceRepository
	orderRepo   repo.OrderRepository
}

func NewInvoiceUsecase(invoiceRepo repo.InvoiceRepository, orderRepo repo.OrderRepository) *InvoiceUsecase {
	return &InvoiceUsecase{invoiceRepo: invoiceRepo, orderRepo: orderRepo}
}

type InvoiceOutput struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	IssuedAt     int64  `json:"issued_at"`
	TaxRate      string `json:"tax_rate"`
	TotalWithTax string `json:"total_with_tax"`
}

func toInvoiceOutput(i model.Invoice) InvoiceOutput {
	return InvoiceOutput{
		ID:           i.ID,
		OrderID:      i.OrderID,
		IssuedAt:     millis(i.IssuedAt),
		TaxRate:      i.TaxRate.String(),
		TotalWithTax: i.TotalWithTax.StringFixed(2),
	}
}

// GetMyInvoice は自分の注文に限って請求書を返す
func (u *InvoiceUsecase) GetMyInvoice(ctx context.Context, userID string, orderID string) (InvoiceOutput, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return InvoiceOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return InvoiceOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if order.UserID != userID {
		return InvoiceOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	return u.findByOrder(ctx, orderID)
}

// GetForOrder は管理者用
func (u *InvoiceUsecase) GetForOrder(ctx context.Context, orderID string) (InvoiceOutput, error) {
	return u.findByOrder(ctx, orderID)
}

func (u *InvoiceUsecase) findByOrder(ctx context.Context, orderID string) (InvoiceOutput, error) {
	invoice, err := u.invoiceRepo.FindByOrderID(ctx, orderID)
	if err == repo.ErrNotFound {
		return InvoiceOutput{}, NewHTTPError(http.StatusNotFound, "invoice not found")
	}
	if err != nil {
		return InvoiceOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toInvoiceOutput(invoice), nil
}
