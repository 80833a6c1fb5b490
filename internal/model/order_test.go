package model

import "testing"

func TestParseOrderStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want OrderStatus
	}{
		{"delivered", StatusDelivered},
		{"DELIVERED", StatusDelivered},
		{"  Delivered ", StatusDelivered},
		{"completed", StatusCompleted},
		{"cancelled", StatusCancelled},
		{"canceled", StatusCancelled},
		{"rts", StatusRTS},
		{"RTO", StatusRTO},
		{"returned", StatusReturned},
		{"in transit", StatusOther},
		{"", StatusOther},
	}

	for _, tc := range tests {
		if got := ParseOrderStatus(tc.raw); got != tc.want {
			t.Fatalf("ParseOrderStatus(%q): expected %q, got %q", tc.raw, tc.want, got)
		}
	}
}

func TestStatusPayable(t *testing.T) {
	payable := []OrderStatus{StatusDelivered, StatusCompleted}
	for _, s := range payable {
		if !s.Payable() {
			t.Fatalf("expected %q to be payable", s)
		}
	}

	notPayable := []OrderStatus{StatusCancelled, StatusRTS, StatusRTO, StatusReturned, StatusOther}
	for _, s := range notPayable {
		if s.Payable() {
			t.Fatalf("expected %q to not be payable", s)
		}
	}
}

func TestStatusReverse(t *testing.T) {
	reverse := []OrderStatus{StatusRTS, StatusRTO, StatusReturned}
	for _, s := range reverse {
		if !s.Reverse() {
			t.Fatalf("expected %q to be a reverse status", s)
		}
	}
	if StatusDelivered.Reverse() || StatusCancelled.Reverse() {
		t.Fatalf("delivered/cancelled must not be reverse statuses")
	}
}
