package usecase

import (
	"context"
	"errors"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /cart の業務ロジック。
// マージ・数量計算はmodel.Cartのエンジンで行い、ここでは読み込みと永続化だけする。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
	optionRepo   repo.ProductOptionRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
	optionRepo repo.ProductOptionRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
		optionRepo:   optionRepo,
	}
}

type CartItemResponse struct {
	ID              string  `json:"id"`
	ProductID       string  `json:"product_id"`
	ProductOptionID *string `json:"product_option_id"`
	Title           string  `json:"title"`
	BasePrice       string  `json:"base_price"`
	ExtraPrice      string  `json:"extra_price"`
	Quantity        int64   `json:"quantity"`
}

type CartResponse struct {
	ID    string             `json:"id"`
	Items []CartItemResponse `json:"items"`
	Total string             `json:"total"`
}

type AddCartInput struct {
	ProductID       string
	ProductOptionID *string
	Quantity        int64
}

// カートに入れる数量の省略時は1
const defaultAddQuantity = 1

// カート取得（無ければACTIVEを作って空を返す）
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.loadActiveCart(ctx, userID)
	if err != nil {
		return CartResponse{}, err
	}

	return toCartResponse(cart), nil
}

// カートに追加（同一の商品×オプションは数量加算）。
// 在庫は見ない。在庫の再検証はチェックアウトの仕事。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	qty := in.Quantity
	if qty == 0 {
		qty = defaultAddQuantity
	}
	if qty < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	//商品チェック（廃番は追加不可）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if p.Status == model.ProductStatusDiscontinued {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "product discontinued")
	}

	//オプションチェック（指定があれば）
	var opt *model.ProductOption
	if in.ProductOptionID != nil && *in.ProductOptionID != "" {
		o, err := u.optionRepo.FindByID(ctx, *in.ProductOptionID)
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid option")
		}
		if err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.ProductID != p.ID {
			return CartResponse{}, NewHTTPError(http.StatusBadRequest, "option does not belong to product")
		}
		opt = &o
	}

	cart, err := u.loadActiveCart(ctx, userID)
	if err != nil {
		return CartResponse{}, err
	}

	item, merged, err := cart.AddItem(p, opt, qty)
	if errors.Is(err, model.ErrInvalidItem) {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid item")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//永続化（エンジンが決めた差分だけ書く）
	if merged {
		err = u.cartItemRepo.UpdateQuantity(ctx, item.ID, item.Quantity)
	} else {
		err = u.cartItemRepo.Create(ctx, item)
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCartResponse(cart), nil
}

// 明細削除。quantityがnilなら行ごと削除、指定があれば減算（0以下で行ごと削除）。
func (u *CartUsecase) RemoveItem(ctx context.Context, userID string, cartItemID string, quantity *int64) (CartResponse, error) {
	if userID == "" {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID == "" {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if quantity != nil && *quantity < 1 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	owned, err := u.cartItemRepo.IsOwnedByUser(ctx, cartItemID, userID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !owned {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	cart, err := u.loadActiveCart(ctx, userID)
	if err != nil {
		return CartResponse{}, err
	}

	var qty int64
	if quantity != nil {
		qty = *quantity
	}

	item, removed, found := cart.RemoveItem(cartItemID, qty)
	if !found {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	if removed {
		err = u.cartItemRepo.DeleteByID(ctx, item.ID)
	} else {
		err = u.cartItemRepo.UpdateQuantity(ctx, item.ID, item.Quantity)
	}
	if err != nil {
		if err == repo.ErrNotFound {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toCartResponse(cart), nil
}

// ACTIVEカートを明細込みで読み込む
func (u *CartUsecase) loadActiveCart(ctx context.Context, userID string) (*model.Cart, error) {
	cart, err := u.cartRepo.GetOrCreateActiveByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	items, err := u.cartItemRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	cart.Items = items

	return &cart, nil
}

func toCartResponse(cart *model.Cart) CartResponse {
	items := make([]CartItemResponse, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, CartItemResponse{
			ID:              it.ID,
			ProductID:       it.ProductID,
			ProductOptionID: it.ProductOptionID,
			Title:           it.Title,
			BasePrice:       it.BasePrice.StringFixed(2),
			ExtraPrice:      it.ExtraPrice.StringFixed(2),
			Quantity:        it.Quantity,
		})
	}

	return CartResponse{
		ID:    cart.ID,
		Items: items,
		Total: cart.Total().StringFixed(2),
	}
}
