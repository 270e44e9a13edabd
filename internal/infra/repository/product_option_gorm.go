package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductOptionGormRepository struct {
	db *gorm.DB
}

func NewProductOptionGormRepository(db *gorm.DB) *ProductOptionGormRepository {
	return &ProductOptionGormRepository{db: db}
}

func (r *ProductOptionGormRepository) ListByProductID(ctx context.Context, productID string) ([]model.ProductOption, error) {
	var opts []model.ProductOption

	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("attribute asc, value asc").
		Find(&opts).Error; err != nil {
		return []model.ProductOption{}, err
	}

	return opts, nil
}

func (r *ProductOptionGormRepository) FindByID(ctx context.Context, optionID string) (model.ProductOption, error) {
	var o model.ProductOption
	err := r.db.WithContext(ctx).Where("id = ?", optionID).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ProductOption{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ProductOption{}, err
	}
	return o, nil
}

func (r *ProductOptionGormRepository) Create(ctx context.Context, o model.ProductOption) (model.ProductOption, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&o).Error; err != nil {
		return model.ProductOption{}, err
	}
	return o, nil
}

type OptionInventoryGormRepository struct {
	db *gorm.DB
}

func NewOptionInventoryGormRepository(db *gorm.DB) *OptionInventoryGormRepository {
	return &OptionInventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす。
// WHERE stock >= qty の条件付きUPDATEなので、直前の読み取りと減算が1文で済み、
// 同時チェックアウトが最後の1個を両方取ることはない。
func (r *OptionInventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, optionID string, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.ProductOption{}).
		Where("id = ? AND stock >= ?", optionID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（返金）
func (r *OptionInventoryGormRepository) IncreaseStock(ctx context.Context, optionID string, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.ProductOption{}).
		Where("id = ?", optionID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
