package validator

import (
	"fmt"

	"storefront/internal/domain/model"

	"github.com/shopspring/decimal"
)

// 違反コード。チェックアウトは例外を投げずに違反を全部集めて返す。
const (
	CodeValidation          = "validation_error"
	CodeInsufficientStock   = "insufficient_stock"
	CodeAddressCountInvalid = "address_count_invalid"
)

// 1件の違反。Fieldは "items[0].title" のようなパス。
type Violation struct {
	Code    string `json:"code"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// 最低価格は0.01
var minPrice = decimal.NewFromFloat(0.01)

// チェックアウト入力の形チェック。
// 最初の1件で止めず、全違反を集める（客が1往復で全部直せるように）。
type CheckoutValidator struct{}

func NewCheckoutValidator() *CheckoutValidator {
	return &CheckoutValidator{}
}

// カート明細スナップショットの形チェック
func (v *CheckoutValidator) ValidateItems(items []model.CartItem) []Violation {
	violations := []Violation{}

	if len(items) == 0 {
		violations = append(violations, Violation{
			Code:    CodeValidation,
			Field:   "items",
			Message: "cart is empty",
		})
		return violations
	}

	for i, it := range items {
		path := func(field string) string {
			return fmt.Sprintf("items[%d].%s", i, field)
		}

		if it.ProductID == "" {
			violations = append(violations, Violation{
				Code:    CodeValidation,
				Field:   path("product_id"),
				Message: "product id is required",
			})
		}
		if len(it.Title) < 3 {
			violations = append(violations, Violation{
				Code:    CodeValidation,
				Field:   path("title"),
				Message: "title must be at least 3 characters",
			})
		}
		if it.BasePrice.LessThan(minPrice) {
			violations = append(violations, Violation{
				Code:    CodeValidation,
				Field:   path("base_price"),
				Message: "base price must be at least 0.01",
			})
		}
		//オプションのextraはマイナスもあり得るが、単価として0以下は不正
		if !it.BasePrice.Add(it.ExtraPrice).GreaterThanOrEqual(minPrice) {
			violations = append(violations, Violation{
				Code:    CodeValidation,
				Field:   path("extra_price"),
				Message: "unit price must be positive",
			})
		}
		if it.Quantity < 1 {
			violations = append(violations, Violation{
				Code:    CodeValidation,
				Field:   path("quantity"),
				Message: "quantity must be at least 1",
			})
		}
	}

	return violations
}

// 住所の形チェック（請求先・配送先それぞれ）
func (v *CheckoutValidator) ValidateAddresses(addresses []model.Address) []Violation {
	violations := []Violation{}

	for i, a := range addresses {
		path := func(field string) string {
			return fmt.Sprintf("addresses[%d].%s", i, field)
		}

		required := []struct {
			field string
			value string
		}{
			{"full_name", a.FullName},
			{"address_line1", a.AddressLine1},
			{"city", a.City},
			{"state", a.State},
			{"country", a.Country},
		}
		for _, f := range required {
			if f.value == "" {
				violations = append(violations, Violation{
					Code:    CodeValidation,
					Field:   path(f.field),
					Message: f.field + " is required",
				})
			}
		}

		if len(a.Postcode) < 4 {
			violations = append(violations, Violation{
				Code:    CodeValidation,
				Field:   path("postcode"),
				Message: "postcode must be at least 4 characters",
			})
		}
	}

	return violations
}
