package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/google/uuid"
)

// 形チェックの約束。実装はinternal/validator。
type CheckoutFieldValidator interface {
	ValidateItems(items []model.CartItem) []validator.Violation
	ValidateAddresses(addresses []model.Address) []validator.Violation
}

// CheckoutUsecase はカート＋住所を検証して注文へ変換する。
// 違反は1件で止めず全部集めて返し、違反が1つでもあれば何も書かない。
type CheckoutUsecase struct {
	tx        repo.TransactionManager
	addresses repo.AddressRepository
	validator CheckoutFieldValidator
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	addresses repo.AddressRepository,
	v CheckoutFieldValidator,
) *CheckoutUsecase {
	return &CheckoutUsecase{tx: tx, addresses: addresses, validator: v}
}

type CheckoutInput struct {
	//請求先1件＋配送先1件のちょうど2件
	AddressIDs     []string
	IdempotencyKey string
}

// チェックアウトの結果。拒否ならViolationsに全違反が入り、Orderはnil。
type CheckoutResult struct {
	Order      *OrderOutput          `json:"order,omitempty"`
	Violations []validator.Violation `json:"violations,omitempty"`
}

func (r CheckoutResult) Rejected() bool {
	return len(r.Violations) > 0
}

// トランザクションを巻き戻すための内部センチネル（減算後に拒否が確定した場合）
var errCheckoutRejected = errors.New("checkout rejected")

func (u *CheckoutUsecase) Checkout(ctx context.Context, userID string, in CheckoutInput) (CheckoutResult, error) {
	if userID == "" {
		return CheckoutResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	key := strings.TrimSpace(in.IdempotencyKey)
	if key == "" || len(key) > 255 {
		return CheckoutResult{}, NewHTTPError(http.StatusBadRequest, "invalid idempotency_key")
	}

	//住所の解決（所有チェック込み）。件数・種別の不備はaddress_count_invalidの違反にする
	billing, delivery, violations, err := u.resolveAddresses(ctx, userID, in.AddressIDs)
	if err != nil {
		return CheckoutResult{}, err
	}
	if len(violations) > 0 {
		return CheckoutResult{Violations: violations}, nil
	}

	var result CheckoutResult

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// 同じキーなら既存の注文をそのまま返す
		existing, found, err := r.Orders().FindByIdempotencyKey(ctx, userID, key)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if found {
			items, err := r.OrderItems().ListByOrderID(ctx, existing.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			out := toOrderOutput(existing, items)
			result.Order = &out
			return nil
		}

		//ACTIVEカートを明細込みで取得
		cart, err := r.Carts().FindActiveByUserID(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		cart.Items = cartItems

		//スナップショットを凍結してから検証する
		snapshot := cart.Snapshot()
		total := cart.Total()

		violations := u.validator.ValidateItems(snapshot)
		violations = append(violations, u.validator.ValidateAddresses([]model.Address{*billing, *delivery})...)

		//在庫の再検証。不足は全部まとめて報告する（部分注文はしない）
		for i, it := range snapshot {
			if it.ProductOptionID == nil {
				continue
			}
			opt, err := r.Options().FindByID(ctx, *it.ProductOptionID)
			if err == repo.ErrNotFound {
				violations = append(violations, validator.Violation{
					Code:    validator.CodeValidation,
					Field:   fmt.Sprintf("items[%d].product_option_id", i),
					Message: fmt.Sprintf("%q: option no longer exists", it.Title),
				})
				continue
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if it.Quantity > opt.Stock {
				violations = append(violations, insufficientStock(i, it.Title, it.Quantity, opt.Stock))
			}
		}

		if len(violations) > 0 {
			//ここまで書き込みは無いので、結果だけ返して終わる
			result.Violations = violations
			return nil
		}

		//確定直前の在庫減算。条件付きUPDATEなので同時チェックアウトと競合しても
		//最後の1個を二重に確保することはない。負けたらトランザクションごと巻き戻す。
		for i, it := range snapshot {
			if it.ProductOptionID == nil {
				continue
			}
			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, *it.ProductOptionID, it.Quantity)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				opt, err := r.Options().FindByID(ctx, *it.ProductOptionID)
				if err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
				result.Violations = append(result.Violations, insufficientStock(i, it.Title, it.Quantity, opt.Stock))
				return errCheckoutRejected
			}
		}

		//注文作成（Pending、version 0）
		now := time.Now()
		order := model.Order{
			ID:                uuid.NewString(),
			UserID:            userID,
			Status:            model.OrderStatusPending,
			Total:             total,
			BillingAddressID:  billing.ID,
			DeliveryAddressID: delivery.ID,
			IdempotencyKey:    key,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		if err := r.Orders().Create(ctx, order); err != nil {
			//同時に同じキーが入った等
			return NewHTTPError(http.StatusConflict, "idempotency conflict")
		}

		//明細スナップショットを注文明細として凍結
		orderItems := make([]model.OrderItem, 0, len(snapshot))
		for _, it := range snapshot {
			orderItems = append(orderItems, model.OrderItem{
				ID:              uuid.NewString(),
				OrderID:         order.ID,
				ProductID:       it.ProductID,
				ProductOptionID: it.ProductOptionID,
				Title:           it.Title,
				BasePrice:       it.BasePrice,
				ExtraPrice:      it.ExtraPrice,
				Quantity:        it.Quantity,
				CreatedAt:       now,
			})
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//配送をpreparingで作成（配送先住所に紐づく）
		if _, err := r.Shipments().GetOrCreateByOrder(ctx, order.ID, delivery.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//請求書発行
		invoice := model.Invoice{
			ID:           uuid.NewString(),
			OrderID:      order.ID,
			IssuedAt:     now,
			TaxRate:      model.DefaultTaxRate,
			TotalWithTax: model.TotalWithTax(total, model.DefaultTaxRate),
		}
		if err := r.Invoices().Create(ctx, invoice); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをCHECKED_OUTにして明細をクリア（再注文防止）
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusCheckedOut); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out := toOrderOutput(order, orderItems)
		result.Order = &out
		return nil
	})

	if errors.Is(err, errCheckoutRejected) {
		//減算のロールバック済み。違反だけ返す
		return CheckoutResult{Violations: result.Violations}, nil
	}
	if err != nil {
		return CheckoutResult{}, err
	}
	return result, nil
}

// ちょうど2件・請求先1件＋配送先1件・両方CurrentAddress・本人のもの、を確認する
func (u *CheckoutUsecase) resolveAddresses(ctx context.Context, userID string, addressIDs []string) (*model.Address, *model.Address, []validator.Violation, error) {
	countInvalid := func(msg string) []validator.Violation {
		return []validator.Violation{{
			Code:    validator.CodeAddressCountInvalid,
			Field:   "addresses",
			Message: msg,
		}}
	}

	if len(addressIDs) != 2 {
		return nil, nil, countInvalid("exactly two addresses are required"), nil
	}

	var billing, delivery *model.Address
	for _, id := range addressIDs {
		a, err := u.addresses.FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return nil, nil, nil, NewHTTPError(http.StatusNotFound, "address not found")
		}
		if err != nil {
			return nil, nil, nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		//他人の住所は403
		if a.UserID != userID {
			return nil, nil, nil, NewHTTPError(http.StatusForbidden, "forbidden")
		}
		if a.Status != model.AddressStatusCurrent {
			return nil, nil, countInvalid("addresses must be current"), nil
		}

		switch a.Type {
		case model.AddressTypeBilling:
			billing = &a
		case model.AddressTypeDelivery:
			delivery = &a
		}
	}

	if billing == nil || delivery == nil {
		return nil, nil, countInvalid("one billing and one delivery address are required"), nil
	}

	return billing, delivery, nil, nil
}

// 不足はどの明細かと、あと何個足りないかを名指しで返す
func insufficientStock(index int, title string, requested int64, stock int64) validator.Violation {
	return validator.Violation{
		Code:    validator.CodeInsufficientStock,
		Field:   fmt.Sprintf("items[%d]", index),
		Message: fmt.Sprintf("%q: requested %d but only %d in stock (short by %d)", title, requested, stock, requested-stock),
	}
}
