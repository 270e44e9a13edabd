package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AddressGormRepository struct {
	db *gorm.DB
}

func NewAddressGormRepository(db *gorm.DB) *AddressGormRepository {
	return &AddressGormRepository{db: db}
}

// CurrentAddressとして作成。
// 同じ (user, type) の既存CurrentAddressは同一トランザクションで降格するので、
// CurrentAddressは (user, type) につき常に最大1件。
func (r *AddressGormRepository) CreateCurrent(ctx context.Context, address model.Address) (model.Address, error) {
	if address.ID == "" {
		address.ID = uuid.NewString()
	}
	address.Status = model.AddressStatusCurrent

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//旧住所を降格
		if err := tx.Model(&model.Address{}).
			Where("user_id = ? AND type = ? AND status = ?",
				address.UserID, address.Type, model.AddressStatusCurrent).
			Update("status", model.AddressStatusPrevious).Error; err != nil {
			return err
		}

		return tx.Create(&address).Error
	})

	if err != nil {
		return model.Address{}, err
	}
	return address, nil
}

func (r *AddressGormRepository) FindByID(ctx context.Context, addressID string) (model.Address, error) {
	var a model.Address
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Address{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Address{}, err
	}
	return a, nil
}

func (r *AddressGormRepository) ListByUserID(ctx context.Context, userID string) ([]model.Address, error) {
	var list []model.Address

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error; err != nil {
		return []model.Address{}, err
	}

	return list, nil
}

func (r *AddressGormRepository) IsOwnedByUser(ctx context.Context, addressID string, userID string) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.Address{}).
		Where("id = ? AND user_id = ?", addressID, userID).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
