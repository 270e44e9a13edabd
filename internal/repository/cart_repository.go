package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartRepository interface {
	//ユーザーのACTIVEカートを取得し、無ければ作る
	GetOrCreateActiveByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindActiveByUserID(ctx context.Context, userID string) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID string, status model.CartStatus) error

	//カートの明細を全削除
	Clear(ctx context.Context, cartID string) error
}

type CartItemRepository interface {
	ListByCartID(ctx context.Context, cartID string) ([]model.CartItem, error)
	FindByID(ctx context.Context, cartItemID string) (model.CartItem, error)
	Create(ctx context.Context, item model.CartItem) error
	UpdateQuantity(ctx context.Context, cartItemID string, qty int64) error
	DeleteByID(ctx context.Context, cartItemID string) error

	//明細がそのユーザーのカートに属しているか
	IsOwnedByUser(ctx context.Context, cartItemID string, userID string) (bool, error)
}
