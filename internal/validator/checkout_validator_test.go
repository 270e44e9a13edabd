package validator_test

import (
	"testing"

	"storefront/internal/domain/model"
	"storefront/internal/validator"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validItem() model.CartItem {
	return model.CartItem{
		ID:        "i1",
		CartID:    "c1",
		ProductID: "p1",
		Title:     "Hoodie",
		BasePrice: decimal.NewFromFloat(49.90),
		Quantity:  1,
	}
}

func validAddress(t model.AddressType) model.Address {
	return model.Address{
		ID:           "a1",
		UserID:       "u1",
		Status:       model.AddressStatusCurrent,
		Type:         t,
		FullName:     "Taro Yamada",
		AddressLine1: "1-2-3 Chuo",
		City:         "Osaka",
		State:        "Osaka",
		Postcode:     "5550001",
		Country:      "JP",
	}
}

func TestValidateItems_EmptyCart(t *testing.T) {
	v := validator.NewCheckoutValidator()

	got := v.ValidateItems(nil)
	assert.Len(t, got, 1)
	assert.Equal(t, "items", got[0].Field)
}

func TestValidateItems_Valid(t *testing.T) {
	v := validator.NewCheckoutValidator()

	got := v.ValidateItems([]model.CartItem{validItem()})
	assert.Empty(t, got)
}

// 1明細に複数の不備があれば全部返る（最初の1件で止めない）
func TestValidateItems_CollectsAllViolations(t *testing.T) {
	v := validator.NewCheckoutValidator()

	bad := validItem()
	bad.Title = "ab"
	bad.BasePrice = decimal.Zero
	bad.Quantity = 0

	got := v.ValidateItems([]model.CartItem{bad, validItem()})

	fields := make([]string, 0, len(got))
	for _, viol := range got {
		assert.Equal(t, validator.CodeValidation, viol.Code)
		fields = append(fields, viol.Field)
	}
	assert.Contains(t, fields, "items[0].title")
	assert.Contains(t, fields, "items[0].base_price")
	assert.Contains(t, fields, "items[0].quantity")
	//2明細目は正しいのでitems[1]の違反は無い
	for _, f := range fields {
		assert.NotContains(t, f, "items[1]")
	}
}

// 負のextraは許すが、単価が0以下になるのは不正
func TestValidateItems_NegativeExtra(t *testing.T) {
	v := validator.NewCheckoutValidator()

	ok := validItem()
	ok.ExtraPrice = decimal.NewFromFloat(-1.00)
	assert.Empty(t, v.ValidateItems([]model.CartItem{ok}))

	bad := validItem()
	bad.ExtraPrice = bad.BasePrice.Neg()
	got := v.ValidateItems([]model.CartItem{bad})
	assert.Len(t, got, 1)
	assert.Equal(t, "items[0].extra_price", got[0].Field)
}

func TestValidateAddresses_Valid(t *testing.T) {
	v := validator.NewCheckoutValidator()

	got := v.ValidateAddresses([]model.Address{
		validAddress(model.AddressTypeBilling),
		validAddress(model.AddressTypeDelivery),
	})
	assert.Empty(t, got)
}

func TestValidateAddresses_ShortPostcode(t *testing.T) {
	v := validator.NewCheckoutValidator()

	a := validAddress(model.AddressTypeDelivery)
	a.Postcode = "123"

	got := v.ValidateAddresses([]model.Address{a})
	assert.Len(t, got, 1)
	assert.Equal(t, "addresses[0].postcode", got[0].Field)
}

func TestValidateAddresses_MissingFields(t *testing.T) {
	v := validator.NewCheckoutValidator()

	a := validAddress(model.AddressTypeBilling)
	a.FullName = ""
	a.City = ""

	got := v.ValidateAddresses([]model.Address{a})
	assert.Len(t, got, 2)
}
