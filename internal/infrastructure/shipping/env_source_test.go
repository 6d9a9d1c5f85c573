package shipping_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"buyback/internal/domain/entity"
	"buyback/internal/infrastructure/shipping"
)

func TestEnvSource(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want *entity.ShippingInfo
	}{
		{
			name: "not configured",
			env:  map[string]string{},
		},
		{
			name: "missing address",
			env: map[string]string{
				"SHIP_TO_RECIPIENT_NAME": "Buyback Center",
				"SHIP_TO_PHONE":          "02-1234-5678",
			},
		},
		{
			name: "blank required value",
			env: map[string]string{
				"SHIP_TO_RECIPIENT_NAME": "Buyback Center",
				"SHIP_TO_PHONE":          "   ",
				"SHIP_TO_ADDRESS1":       "Teheran-ro 1",
			},
		},
		{
			name: "full and trimmed",
			env: map[string]string{
				"SHIP_TO_RECIPIENT_NAME": " Buyback Center ",
				"SHIP_TO_PHONE":          "02-1234-5678",
				"SHIP_TO_POSTAL_CODE":    "06236",
				"SHIP_TO_ADDRESS1":       "Teheran-ro 1 ",
				"SHIP_TO_ADDRESS2":       "3F",
				"SHIP_TO_NOTE":           " ring the bell",
			},
			want: &entity.ShippingInfo{
				RecipientName: "Buyback Center",
				Phone:         "02-1234-5678",
				PostalCode:    "06236",
				Address1:      "Teheran-ro 1",
				Address2:      "3F",
				Note:          "ring the bell",
			},
		},
	}

	keys := []string{
		"SHIP_TO_RECIPIENT_NAME", "SHIP_TO_PHONE", "SHIP_TO_POSTAL_CODE",
		"SHIP_TO_ADDRESS1", "SHIP_TO_ADDRESS2", "SHIP_TO_NOTE",
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			for _, k := range keys {
				t.Setenv(k, tt.env[k])
			}

			rq.Equal(tt.want, shipping.NewEnvSource().CurrentShippingInfo(context.Background()))
		})
	}
}
