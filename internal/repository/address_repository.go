package repository

import (
	"context"

	"storefront/internal/domain/model"
)

// 住所の保存・取得の窓口
type AddressRepository interface {
	//CurrentAddressとして新規作成する。
	//同じ (user, type) の既存CurrentAddressは同一トランザクション内でPreviousAddressに降格する。
	CreateCurrent(ctx context.Context, address model.Address) (model.Address, error)

	FindByID(ctx context.Context, addressID string) (model.Address, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Address, error)
	IsOwnedByUser(ctx context.Context, addressID string, userID string) (bool, error)
}
