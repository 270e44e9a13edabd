package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// OrderUsecase は注文の閲覧と状態遷移。
// 遷移は (status, version) のCASで直列化し、負けた側は409を受け取る。
type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
	itemRepo  repo.OrderItemRepository
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orderRepo repo.OrderRepository,
	itemRepo repo.OrderItemRepository,
) *OrderUsecase {
	return &OrderUsecase{tx: tx, orderRepo: orderRepo, itemRepo: itemRepo}
}

type OrderItemOutput struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"product_id"`
	ProductOptionID *string `json:"product_option_id,omitempty"`
	Title           string  `json:"title"`
	BasePrice       string  `json:"base_price"`
	ExtraPrice      string  `json:"extra_price"`
	Quantity        int64   `json:"quantity"`
}

type OrderOutput struct {
	ID                string            `json:"id"`
	Status            model.OrderStatus `json:"status"`
	Total             string            `json:"total"`
	BillingAddressID  string            `json:"billing_address_id"`
	DeliveryAddressID string            `json:"delivery_address_id"`
	Version           int64             `json:"version"`
	Items             []OrderItemOutput `json:"items"`
	CreatedAt         int64             `json:"created_at"`
	UpdatedAt         int64             `json:"updated_at"`
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductOptionID: it.ProductOptionID,
			Title:           it.Title,
			BasePrice:       it.BasePrice.StringFixed(2),
			ExtraPrice:      it.ExtraPrice.StringFixed(2),
			Quantity:        it.Quantity,
		})
	}
	return OrderOutput{
		ID:                o.ID,
		Status:            o.Status,
		Total:             o.Total.StringFixed(2),
		BillingAddressID:  o.BillingAddressID,
		DeliveryAddressID: o.DeliveryAddressID,
		Version:           o.Version,
		Items:             outItems,
		CreatedAt:         millis(o.CreatedAt),
		UpdatedAt:         millis(o.UpdatedAt),
	}
}

type OrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string, page int, limit int) (OrderListOutput, error) {
	if userID == "" {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	orders, total, err := u.orderRepo.ListByUserID(ctx, userID, page, limit)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := OrderListOutput{Orders: make([]OrderOutput, 0, len(orders)), Total: total, Page: page, Limit: limit}
	for _, o := range orders {
		//一覧は明細を載せない
		out.Orders = append(out.Orders, toOrderOutput(o, nil))
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrder(ctx context.Context, userID string, orderID string) (OrderOutput, error) {
	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	//他人の注文は存在ごと隠す
	if order.UserID != userID {
		return OrderOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
	}

	items, err := u.itemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(order, items), nil
}

type OrderTransitionInput struct {
	To      model.OrderStatus
	Version int64
}

// Transition は遷移グラフに従って注文を次の状態へ進める。
// Versionは読み取り時点の値。別の遷移が先に入っていれば409で返し、呼び出し側が読み直す。
// Refundedへの遷移で商品が未発送（Pending/Paid）なら在庫を戻す。
func (u *OrderUsecase) Transition(ctx context.Context, actorUserID string, orderID string, in OrderTransitionInput) (OrderOutput, error) {
	if !in.To.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if !order.Status.CanTransitionTo(in.To) {
			return NewHTTPError(http.StatusUnprocessableEntity,
				"cannot transition from "+string(order.Status)+" to "+string(in.To))
		}

		err = r.Orders().TransitionStatus(ctx, orderID, order.Status, in.To, in.Version)
		if err == repo.ErrStaleOrder {
			return NewHTTPError(http.StatusConflict, "order was modified, retry with current version")
		}
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//未発送の返金は確保していた在庫を戻す
		if in.To == model.OrderStatusRefunded &&
			(order.Status == model.OrderStatusPending || order.Status == model.OrderStatusPaid) {
			for _, it := range items {
				if it.ProductOptionID == nil {
					continue
				}
				if err := r.Inventory().IncreaseStock(ctx, *it.ProductOptionID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		if err := u.writeAudit(ctx, r, actorUserID, model.AuditActionOrderTransition, order, in.To); err != nil {
			return err
		}

		after := order
		after.Status = in.To
		after.Version = order.Version + 1
		after.UpdatedAt = time.Now()
		out = toOrderOutput(after, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// OverrideStatus は管理者専用の強制セット。遷移グラフを無視する代わりに
// 通常遷移とは別アクションとして監査ログに残す。
func (u *OrderUsecase) OverrideStatus(ctx context.Context, actorUserID string, orderID string, to model.OrderStatus) (OrderOutput, error) {
	if !to.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().ForceStatus(ctx, orderID, to); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.writeAudit(ctx, r, actorUserID, model.AuditActionOrderStatusOverride, order, to); err != nil {
			return err
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		after := order
		after.Status = to
		after.Version = order.Version + 1
		after.UpdatedAt = time.Now()
		out = toOrderOutput(after, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status != "" && !model.OrderStatus(f.Status).Valid() {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	orders, total, err := u.orderRepo.ListAdmin(ctx, f)
	if err != nil {
		return OrderListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := OrderListOutput{Orders: make([]OrderOutput, 0, len(orders)), Total: total, Page: f.Page, Limit: f.Limit}
	for _, o := range orders {
		out.Orders = append(out.Orders, toOrderOutput(o, nil))
	}
	return out, nil
}

func (u *OrderUsecase) GetAdminOrder(ctx context.Context, orderID string) (OrderOutput, error) {
	order, err := u.findOrder(ctx, orderID)
	if err != nil {
		return OrderOutput{}, err
	}
	items, err := u.itemRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOrderOutput(order, items), nil
}

func (u *OrderUsecase) findOrder(ctx context.Context, orderID string) (model.Order, error) {
	order, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return order, nil
}

type orderAuditState struct {
	Status  model.OrderStatus `json:"status"`
	Version int64             `json:"version"`
}

func (u *OrderUsecase) writeAudit(ctx context.Context, r repo.TxRepos, actorUserID string, action model.AuditAction, before model.Order, to model.OrderStatus) error {
	beforeJSON, _ := json.Marshal(orderAuditState{Status: before.Status, Version: before.Version})
	afterJSON, _ := json.Marshal(orderAuditState{Status: to, Version: before.Version + 1})

	log := model.AuditLog{
		ActorUserID:  actorUserID,
		Action:       action,
		ResourceType: model.AuditResourceOrder,
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
