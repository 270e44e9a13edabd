package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 公開カタログの一覧検索
type ProductListQuery struct {
	Page  int
	Limit int
	Q     string
}

// 商品の永続化だけを約束。カタログ側からは読み取りが中心。
type ProductRepository interface {
	ListPublic(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)
	FindByID(ctx context.Context, id string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
}

// 商品オプションの取得。
// 在庫チェックの単位はオプションなので、チェックアウトはここを見る。
type ProductOptionRepository interface {
	ListByProductID(ctx context.Context, productID string) ([]model.ProductOption, error)
	FindByID(ctx context.Context, optionID string) (model.ProductOption, error)

	Create(ctx context.Context, o model.ProductOption) (model.ProductOption, error)
}

// オプション在庫の増減。
type OptionInventoryRepository interface {
	//在庫が足りるときだけ減算（読み取り→減算を1文で行い、競合しても二重確保しない）
	DecreaseStockIfEnough(ctx context.Context, optionID string, qty int64) (bool, error)

	//在庫戻し（返金など）
	IncreaseStock(ctx context.Context, optionID string, qty int64) error
}
