package service

import (
	"testing"

	"vendorpay/backend/internal/model"
)

func TestPayoutImpact(t *testing.T) {
	tests := []struct {
		name   string
		prev   model.OrderStatus
		next   model.OrderStatus
		amount string
		want   string
	}{
		{"delivered to rto claws back", model.StatusDelivered, model.StatusRTO, "150.00", "-150"},
		{"delivered to cancelled claws back", model.StatusDelivered, model.StatusCancelled, "99.50", "-99.5"},
		{"rts to delivered restores", model.StatusRTS, model.StatusDelivered, "150.00", "150"},
		{"other to completed restores", model.StatusOther, model.StatusCompleted, "42", "42"},
		{"delivered to completed is neutral", model.StatusDelivered, model.StatusCompleted, "150.00", "0"},
		{"rts to rto is neutral", model.StatusRTS, model.StatusRTO, "150.00", "0"},
		{"unparseable amount is zero", model.StatusDelivered, model.StatusRTO, "n/a", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := payoutImpact(tc.prev, tc.next, tc.amount)
			if got.String() != tc.want {
				t.Fatalf("expected impact %s, got %s", tc.want, got.String())
			}
		})
	}
}
