package model_test

import (
	"strings"
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestShipmentStatus_Transitions(t *testing.T) {
	all := []model.ShipmentStatus{
		model.ShipmentStatusPreparing,
		model.ShipmentStatusInTransit,
		model.ShipmentStatusDelivered,
	}

	//許可は preparing→in_transit と in_transit→delivered だけ
	for _, from := range all {
		for _, to := range all {
			want := (from == model.ShipmentStatusPreparing && to == model.ShipmentStatusInTransit) ||
				(from == model.ShipmentStatusInTransit && to == model.ShipmentStatusDelivered)
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestShipmentStatus_Valid(t *testing.T) {
	assert.True(t, model.ShipmentStatus("preparing").Valid())
	assert.True(t, model.ShipmentStatus("in_transit").Valid())
	assert.True(t, model.ShipmentStatus("delivered").Valid())
	//ラベルは小文字スネークの契約
	assert.False(t, model.ShipmentStatus("InTransit").Valid())
	assert.False(t, model.ShipmentStatus("Delivered").Valid())
	assert.False(t, model.ShipmentStatus("").Valid())
}

func TestValidateTrackingNumber(t *testing.T) {
	//9文字は不可、10文字は可
	assert.ErrorIs(t, model.ValidateTrackingNumber(strings.Repeat("A", 9)), model.ErrTrackingNumberTooShort)
	assert.NoError(t, model.ValidateTrackingNumber(strings.Repeat("A", 10)))
}

func TestValidateCarrier(t *testing.T) {
	assert.ErrorIs(t, model.ValidateCarrier("DHL"), model.ErrCarrierTooShort)
	assert.NoError(t, model.ValidateCarrier("FedEx"))
}
