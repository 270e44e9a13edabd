package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
	"storefront/internal/validator"

	"github.com/google/uuid"
)

// AddressUsecase は住所の登録と一覧。
// 新しい住所は常にCurrentAddressで作り、同じ (user, type) の旧住所を降格させる。
type AddressUsecase struct {
	addressRepo repo.AddressRepository
	validator   *validator.CheckoutValidator
}

func NewAddressUsecase(addressRepo repo.AddressRepository, v *validator.CheckoutValidator) *AddressUsecase {
	return &AddressUsecase{addressRepo: addressRepo, validator: v}
}

type AddressInput struct {
	Type         string  `json:"type"`
	FullName     string  `json:"full_name"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Postcode     string  `json:"postcode"`
	Country      string  `json:"country"`
}

type AddressOutput struct {
	ID           string  `json:"id"`
	Status       string  `json:"status"`
	Type         string  `json:"type"`
	FullName     string  `json:"full_name"`
	AddressLine1 string  `json:"address_line1"`
	AddressLine2 *string `json:"address_line2"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Postcode     string  `json:"postcode"`
	Country      string  `json:"country"`
	CreatedAt    int64   `json:"created_at"`
	UpdatedAt    int64   `json:"updated_at"`
}

func toAddressOutput(a model.Address) AddressOutput {
	return AddressOutput{
		ID:           a.ID,
		Status:       string(a.Status),
		Type:         string(a.Type),
		FullName:     a.FullName,
		AddressLine1: a.AddressLine1,
		AddressLine2: a.AddressLine2,
		City:         a.City,
		State:        a.State,
		Postcode:     a.Postcode,
		Country:      a.Country,
		CreatedAt:    millis(a.CreatedAt),
		UpdatedAt:    millis(a.UpdatedAt),
	}
}

func (u *AddressUsecase) Create(ctx context.Context, userID string, in AddressInput) (AddressOutput, error) {
	if userID == "" {
		return AddressOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	t := model.AddressType(in.Type)
	if t != model.AddressTypeBilling && t != model.AddressTypeDelivery {
		return AddressOutput{}, NewHTTPError(http.StatusBadRequest, "type must be BillingAddress or DeliveryAddress")
	}

	now := time.Now()
	address := model.Address{
		ID:           uuid.NewString(),
		UserID:       userID,
		Status:       model.AddressStatusCurrent,
		Type:         t,
		FullName:     in.FullName,
		AddressLine1: in.AddressLine1,
		AddressLine2: in.AddressLine2,
		City:         in.City,
		State:        in.State,
		Postcode:     in.Postcode,
		Country:      in.Country,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	//形チェックはチェックアウトと同じ基準で先にかける
	if vs := u.validator.ValidateAddresses([]model.Address{address}); len(vs) > 0 {
		return AddressOutput{}, NewHTTPError(http.StatusBadRequest, vs[0].Message)
	}

	created, err := u.addressRepo.CreateCurrent(ctx, address)
	if err != nil {
		return AddressOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return toAddressOutput(created), nil
}

func (u *AddressUsecase) List(ctx context.Context, userID string) ([]AddressOutput, error) {
	if userID == "" {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	addresses, err := u.addressRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := make([]AddressOutput, 0, len(addresses))
	for _, a := range addresses {
		out = append(out, toAddressOutput(a))
	}
	return out, nil
}
