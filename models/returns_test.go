package models

import "testing"

func TestCanTransitionReturn(t *testing.T) {
	allowed := [][2]ReturnStatus{
		{ReturnStatusPending, ReturnStatusApproved},
		{ReturnStatusPending, ReturnStatusRejected},
		{ReturnStatusApproved, ReturnStatusCompleted},
	}
	for _, pair := range allowed {
		if !CanTransitionReturn(pair[0], pair[1]) {
			t.Errorf("%s -> %s should be allowed", pair[0], pair[1])
		}
	}

	denied := [][2]ReturnStatus{
		{ReturnStatusPending, ReturnStatusCompleted},
		{ReturnStatusApproved, ReturnStatusRejected},
		{ReturnStatusApproved, ReturnStatusPending},
		{ReturnStatusRejected, ReturnStatusApproved},
		{ReturnStatusRejected, ReturnStatusPending},
		{ReturnStatusCompleted, ReturnStatusPending},
		{ReturnStatusCompleted, ReturnStatusApproved},
	}
	for _, pair := range denied {
		if CanTransitionReturn(pair[0], pair[1]) {
			t.Errorf("%s -> %s must not be allowed", pair[0], pair[1])
		}
	}
}

func TestApplyDeltaFloorsAtZero(t *testing.T) {
	cases := []struct {
		current int
		delta   int
		want    int
	}{
		{10, 3, 13},
		{10, -3, 7},
		{2, -5, 0},
		{0, -1, 0},
		{0, 4, 4},
	}
	for _, tc := range cases {
		if got := applyDelta(tc.current, tc.delta); got != tc.want {
			t.Errorf("applyDelta(%d, %d) = %d, want %d", tc.current, tc.delta, got, tc.want)
		}
	}
}

func TestReturnEventKindDelta(t *testing.T) {
	if ReturnEventCreated.quantityDelta(4) != 4 {
		t.Error("creation must restock")
	}
	if ReturnEventRejected.quantityDelta(4) != -4 {
		t.Error("rejection must reverse the restock")
	}
	if ReturnEventDeleted.quantityDelta(4) != -4 {
		t.Error("deletion must reverse the restock")
	}
}

func TestNewReturnInventoryEventSkipsUnlinkedItems(t *testing.T) {
	productId := "prod_1"
	items := []ReturnItem{
		{ProductId: &productId, Quantity: 2},
		{ProductId: nil, Quantity: 3},
		{ProductId: &productId, Quantity: 0},
	}

	ev := newReturnInventoryEvent(ReturnEventCreated, "RET_1", items)
	if len(ev.Items) != 1 {
		t.Fatalf("got %d event items, want 1", len(ev.Items))
	}
	if ev.Items[0].ProductId != "prod_1" || ev.Items[0].Quantity != 2 {
		t.Errorf("unexpected event item: %+v", ev.Items[0])
	}
}
