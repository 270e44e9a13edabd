package model_test

import (
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestTotalWithTax(t *testing.T) {
	//250.00 × 1.10 = 275.00
	got := model.TotalWithTax(dec("250.00"), model.DefaultTaxRate)
	assert.Equal(t, "275.00", got.StringFixed(2))
}

func TestTotalWithTax_ZeroRate(t *testing.T) {
	got := model.TotalWithTax(dec("99.99"), dec("0"))
	assert.Equal(t, "99.99", got.StringFixed(2))
}
