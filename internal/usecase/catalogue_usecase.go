package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"github.com/shopspring/decimal"
)

// カタログと在庫のビュー。購入者側は読み取り専用で、
// カートとチェックアウトもここ経由で商品・オプションを引く。
// 書き込みはAdmin系の操作だけ。
type CatalogueUsecase struct {
	productRepo repo.ProductRepository
	optionRepo  repo.ProductOptionRepository
}

func NewCatalogueUsecase(
	productRepo repo.ProductRepository,
	optionRepo repo.ProductOptionRepository,
) *CatalogueUsecase {
	return &CatalogueUsecase{
		productRepo: productRepo,
		optionRepo:  optionRepo,
	}
}

type ProductOutput struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Images      []string `json:"images"`
	BasePrice   string   `json:"base_price"`
	Status      string   `json:"status"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}

type ProductOptionOutput struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
	Stock     int64  `json:"stock"`
	Extra     string `json:"extra"`
}

type ProductListOutput struct {
	Items []ProductOutput `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type ListProductsInput struct {
	Page  int
	Limit int
	Q     string
}

func (u *CatalogueUsecase) ListProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:  in.Page,
		Limit: in.Limit,
		Q:     in.Q,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOutput, 0, len(items))
	for _, p := range items {
		outs = append(outs, toProductOutput(p))
	}

	return ProductListOutput{Items: outs, Total: total, Page: in.Page, Limit: in.Limit}, nil
}

// 商品1件。無ければ404（存在しないことは呼ぶ側が判断する）
func (u *CatalogueUsecase) GetProduct(ctx context.Context, productID string) (ProductOutput, error) {
	if productID == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return toProductOutput(p), nil
}

func (u *CatalogueUsecase) GetOptions(ctx context.Context, productID string) ([]ProductOptionOutput, error) {
	if productID == "" {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//商品の存在チェック（無い商品のオプション一覧は404）
	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusNotFound, "not found")
		}
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	opts, err := u.optionRepo.ListByProductID(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	outs := make([]ProductOptionOutput, 0, len(opts))
	for _, o := range opts {
		outs = append(outs, toOptionOutput(o))
	}
	return outs, nil
}

func (u *CatalogueUsecase) GetOption(ctx context.Context, optionID string) (ProductOptionOutput, error) {
	if optionID == "" {
		return ProductOptionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.optionRepo.FindByID(ctx, optionID)
	if err == repo.ErrNotFound {
		return ProductOptionOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOptionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOptionOutput(o), nil
}

type AdminProductInput struct {
	Title       string
	Description string
	Images      []string
	//金額は10進文字列（"1200.00"）で受ける
	BasePrice string
	Status    string
}

// 商品の新規登録（管理者）。statusを省略するとavailable。
func (u *CatalogueUsecase) AdminCreateProduct(ctx context.Context, in AdminProductInput) (ProductOutput, error) {
	p, err := u.buildProduct(in)
	if err != nil {
		return ProductOutput{}, err
	}

	created, err := u.productRepo.Create(ctx, p)
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductOutput(created), nil
}

// 商品の更新（管理者）。全フィールド上書き。
func (u *CatalogueUsecase) AdminUpdateProduct(ctx context.Context, productID string, in AdminProductInput) (ProductOutput, error) {
	if productID == "" {
		return ProductOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.buildProduct(in)
	if err != nil {
		return ProductOutput{}, err
	}
	p.ID = productID

	err = u.productRepo.Update(ctx, p)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return ProductOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toProductOutput(p), nil
}

func (u *CatalogueUsecase) buildProduct(in AdminProductInput) (model.Product, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "title required")
	}

	basePrice, err := decimal.NewFromString(in.BasePrice)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid base_price")
	}
	if basePrice.IsNegative() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "base_price must be >= 0")
	}

	status := model.ProductStatus(in.Status)
	if in.Status == "" {
		status = model.ProductStatusAvailable
	}
	if !status.Valid() {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "unknown status")
	}

	return model.Product{
		Title:       title,
		Description: in.Description,
		Images:      in.Images,
		BasePrice:   basePrice,
		Status:      status,
	}, nil
}

type AdminOptionInput struct {
	SKU       string
	Attribute string
	Value     string
	Stock     int64
	//追加価格。マイナス可
	Extra string
}

// 商品オプションの新規登録（管理者）。親商品が無ければ404。
func (u *CatalogueUsecase) AdminCreateOption(ctx context.Context, productID string, in AdminOptionInput) (ProductOptionOutput, error) {
	if productID == "" {
		return ProductOptionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return ProductOptionOutput{}, NewHTTPError(http.StatusBadRequest, "sku required")
	}
	if strings.TrimSpace(in.Attribute) == "" || strings.TrimSpace(in.Value) == "" {
		return ProductOptionOutput{}, NewHTTPError(http.StatusBadRequest, "attribute and value required")
	}
	if in.Stock < 0 {
		return ProductOptionOutput{}, NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}

	extra, err := decimal.NewFromString(in.Extra)
	if err != nil {
		return ProductOptionOutput{}, NewHTTPError(http.StatusBadRequest, "invalid extra")
	}

	if _, err := u.productRepo.FindByID(ctx, productID); err != nil {
		if err == repo.ErrNotFound {
			return ProductOptionOutput{}, NewHTTPError(http.StatusNotFound, "not found")
		}
		return ProductOptionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	created, err := u.optionRepo.Create(ctx, model.ProductOption{
		ProductID: productID,
		SKU:       strings.TrimSpace(in.SKU),
		Attribute: strings.TrimSpace(in.Attribute),
		Value:     strings.TrimSpace(in.Value),
		Stock:     in.Stock,
		Extra:     extra,
	})
	if err != nil {
		return ProductOptionOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toOptionOutput(created), nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Images:      p.Images,
		BasePrice:   p.BasePrice.StringFixed(2),
		Status:      string(p.Status),
		CreatedAt:   millis(p.CreatedAt),
		UpdatedAt:   millis(p.UpdatedAt),
	}
}

func toOptionOutput(o model.ProductOption) ProductOptionOutput {
	return ProductOptionOutput{
		ID:        o.ID,
		ProductID: o.ProductID,
		SKU:       o.SKU,
		Attribute: o.Attribute,
		Value:     o.Value,
		Stock:     o.Stock,
		Extra:     o.Extra.StringFixed(2),
	}
}
