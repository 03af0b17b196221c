package devicesync

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func TestReconcileCollectionIsolatesFailures(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "shop_1", "name": "North", "businessId": "biz_1"},
		{"id": "shop_2", "name": "South", "businessId": "biz_1"},
		{"id": "shop_3", "name": "East", "businessId": "biz_1"},
	}

	var seen []string
	upsert := func(ctx context.Context, id interface{}, attrs map[string]interface{}) (bool, error) {
		seen = append(seen, id.(string))
		if id == "shop_2" {
			return false, errors.New("duplicate entry")
		}
		return true, nil
	}

	result := reconcileCollection(context.Background(), "shops", records, entitySchemas["shops"], upsert)
	if result.Success != 2 || result.Error != 1 {
		t.Errorf("got %+v, want 2 success / 1 error", result)
	}
	if len(seen) != 3 {
		t.Errorf("a failed record must not stop its siblings; upsert saw %v", seen)
	}
}

func TestReconcileCollectionRejectsBeforeUpsert(t *testing.T) {
	records := []map[string]interface{}{
		{"id": "shop_1", "name": "North"}, // missing businessId
		{"name": "no id at all", "businessId": "biz_1"},
		{"id": "shop_2", "name": "South", "businessId": "biz_1"},
	}

	calls := 0
	upsert := func(ctx context.Context, id interface{}, attrs map[string]interface{}) (bool, error) {
		calls++
		return true, nil
	}

	result := reconcileCollection(context.Background(), "shops", records, entitySchemas["shops"], upsert)
	if result.Success != 1 || result.Error != 2 {
		t.Errorf("got %+v, want 1 success / 2 errors", result)
	}
	if calls != 1 {
		t.Errorf("invalid records must never reach the store; got %d upsert calls", calls)
	}
}

func TestReconcileCollectionEmpty(t *testing.T) {
	upsert := func(ctx context.Context, id interface{}, attrs map[string]interface{}) (bool, error) {
		t.Fatal("upsert must not be called for an absent collection")
		return false, nil
	}
	result := reconcileCollection(context.Background(), "shops", nil, entitySchemas["shops"], upsert)
	if result.Success != 0 || result.Error != 0 {
		t.Errorf("got %+v, want zero counters", result)
	}
}

func TestCollectionOrderParentsFirst(t *testing.T) {
	position := make(map[string]int, len(collectionOrder))
	for i, name := range collectionOrder {
		position[name] = i
	}

	pairs := [][2]string{
		{"sales", "sale_items"},
		{"sales", "returns"},
		{"returns", "return_items"},
		{"shops", "inventories"},
		{"receivables", "receivable_payments"},
		{"payables", "payable_payments"},
		{"loans", "loan_payments"},
	}
	for _, pair := range pairs {
		parent, child := pair[0], pair[1]
		if position[parent] >= position[child] {
			t.Errorf("%s must be reconciled before %s", parent, child)
		}
	}
}

func TestCollectionOrderMatchesSchemasAndUpserts(t *testing.T) {
	for _, name := range collectionOrder {
		if _, ok := entitySchemas[name]; !ok {
			t.Errorf("collection %q has no schema", name)
		}
		if _, ok := collectionUpserts[name]; !ok {
			t.Errorf("collection %q has no upsert", name)
		}
	}
	// business is special-cased outside the ordered loop
	if len(entitySchemas) != len(collectionOrder)+1 {
		t.Errorf("schemas (%d) and ordered collections (%d) out of sync", len(entitySchemas), len(collectionOrder))
	}
}

func TestExtractRecordId(t *testing.T) {
	if _, err := extractRecordId(map[string]interface{}{}); err == nil {
		t.Error("missing id should error")
	}
	if _, err := extractRecordId(map[string]interface{}{"id": ""}); err == nil {
		t.Error("empty id should error")
	}
	id, err := extractRecordId(map[string]interface{}{"id": "sale_1"})
	if err != nil || id != "sale_1" {
		t.Errorf("got (%v, %v)", id, err)
	}
	id, err = extractRecordId(map[string]interface{}{"id": json.Number("42")})
	if err != nil || id != "42" {
		t.Errorf("numeric ids should pass through as strings, got (%v, %v)", id, err)
	}
}

func TestRecordsFromBatchIgnoresMalformedEntries(t *testing.T) {
	batch := map[string]interface{}{
		"shops": []interface{}{
			map[string]interface{}{"id": "shop_1"},
			"not an object",
			map[string]interface{}{"id": "shop_2"},
		},
		"sales": "not a list",
	}

	shops := recordsFromBatch(batch, "shops")
	if len(shops) != 2 {
		t.Errorf("got %d shop records, want 2", len(shops))
	}
	if sales := recordsFromBatch(batch, "sales"); sales != nil {
		t.Errorf("non-list collection should yield nil, got %v", sales)
	}
	if missing := recordsFromBatch(batch, "expenses"); missing != nil {
		t.Errorf("absent collection should yield nil, got %v", missing)
	}
}
