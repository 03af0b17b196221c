package devicesync

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shoplite/retail_backend/models"
	"github.com/shopspring/decimal"
)

func TestSanitizeRecordDropsUnknownFields(t *testing.T) {
	raw := map[string]interface{}{
		"id":         "shop_1",
		"name":       "Main Street",
		"businessId": "biz_1",
		"hackField":  "DROP TABLE shops",
		"__v":        json.Number("3"),
	}

	out, err := sanitizeRecord(raw, entitySchemas["shops"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out["hackField"]; ok {
		t.Error("unknown field survived sanitization")
	}
	if _, ok := out["__v"]; ok {
		t.Error("unknown field survived sanitization")
	}
	if out["name"] != "Main Street" {
		t.Errorf("expected name to pass through, got %v", out["name"])
	}
}

func TestSanitizeRecordEmptyForeignKeyBecomesNil(t *testing.T) {
	raw := map[string]interface{}{
		"id":        "inv_1",
		"name":      "Cooking Oil",
		"createdBy": "user_1",
		"shopId":    "shop_1",
		// offline clients send "" for references they never set
		"businessId": "",
	}

	out, err := sanitizeRecord(raw, entitySchemas["inventories"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, present := out["businessId"]
	if !present {
		t.Fatal("empty foreign key should be present as nil")
	}
	if v != nil {
		t.Errorf("expected nil businessId, got %v", v)
	}
}

func TestSanitizeRecordMissingRequiredReference(t *testing.T) {
	cases := []map[string]interface{}{
		{"id": "si_1", "productName": "Bread", "quantity": json.Number("2")},
		{"id": "si_2", "saleId": "", "productName": "Bread"},
		{"id": "si_3", "saleId": nil, "productName": "Bread"},
	}
	for _, raw := range cases {
		if _, err := sanitizeRecord(raw, entitySchemas["sale_items"]); err == nil {
			t.Errorf("record %v should have been rejected", raw["id"])
		} else if !strings.Contains(err.Error(), "saleId") {
			t.Errorf("error should name the missing field, got %q", err)
		}
	}
}

func TestSanitizeRecordParsesDates(t *testing.T) {
	raw := map[string]interface{}{
		"id":        "exp_1",
		"createdBy": "user_1",
		"shopId":    "shop_1",
		"date":      "2026-03-15T10:30:00Z",
	}

	out, err := sanitizeRecord(raw, entitySchemas["expenses"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	parsed, ok := out["date"].(time.Time)
	if !ok {
		t.Fatalf("date should be time.Time, got %T", out["date"])
	}
	want := time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)
	if !parsed.Equal(want) {
		t.Errorf("got %v, want %v", parsed, want)
	}
}

func TestSanitizeRecordDateOnlyValue(t *testing.T) {
	raw := map[string]interface{}{
		"id":        "exp_2",
		"createdBy": "user_1",
		"shopId":    "shop_1",
		"date":      "2026-03-15",
	}

	out, err := sanitizeRecord(raw, entitySchemas["expenses"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := out["date"].(time.Time); !ok {
		t.Fatalf("date should be time.Time, got %T", out["date"])
	}
}

func TestSanitizeRecordBadDateRejected(t *testing.T) {
	raw := map[string]interface{}{
		"id":        "exp_3",
		"createdBy": "user_1",
		"shopId":    "shop_1",
		"date":      "yesterday",
	}
	if _, err := sanitizeRecord(raw, entitySchemas["expenses"]); err == nil {
		t.Error("unparseable date should reject the record")
	}
}

func TestSanitizeRecordCoercesMoneyStrings(t *testing.T) {
	// DECIMAL columns arrive as strings from older clients
	raw := map[string]interface{}{
		"id":          "sale_1",
		"createdBy":   "user_1",
		"shopId":      "shop_1",
		"totalAmount": "150.75",
		"grandTotal":  json.Number("165.83"),
	}

	out, err := sanitizeRecord(raw, entitySchemas["sales"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	total, ok := out["totalAmount"].(decimal.Decimal)
	if !ok {
		t.Fatalf("string amount should become decimal.Decimal, got %T", out["totalAmount"])
	}
	if !total.Equal(decimal.RequireFromString("150.75")) {
		t.Errorf("got %v, want 150.75", total)
	}
	// non-string values pass through for the JSON round trip
	if _, ok := out["grandTotal"].(json.Number); !ok {
		t.Errorf("numeric amount should pass through, got %T", out["grandTotal"])
	}
}

func TestSanitizeRecordBadMoneyStringRejected(t *testing.T) {
	raw := map[string]interface{}{
		"id":          "sale_2",
		"createdBy":   "user_1",
		"shopId":      "shop_1",
		"totalAmount": "one hundred",
	}
	if _, err := sanitizeRecord(raw, entitySchemas["sales"]); err == nil {
		t.Error("unparseable amount should reject the record")
	} else if !strings.Contains(err.Error(), "totalAmount") {
		t.Errorf("error should name the bad field, got %q", err)
	}
}

func TestAbsentDateStaysNullOnCreate(t *testing.T) {
	// mirrors the create path: sanitized attrs round-trip through JSON into
	// the model. A record without a date must produce a NULL column, not a
	// zero time the database rejects.
	raw := map[string]interface{}{
		"id":          "sale_3",
		"createdBy":   "user_1",
		"shopId":      "shop_1",
		"totalAmount": "42.00",
	}

	attrs, err := sanitizeRecord(raw, entitySchemas["sales"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, err := json.Marshal(attrs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var sale models.Sale
	if err := json.Unmarshal(encoded, &sale); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if sale.Date != nil {
		t.Errorf("absent date should stay nil, got %v", sale.Date)
	}
	if !sale.TotalAmount.Equal(decimal.RequireFromString("42.00")) {
		t.Errorf("got total %v, want 42.00", sale.TotalAmount)
	}
}

func TestSanitizeRecordJsonField(t *testing.T) {
	raw := map[string]interface{}{
		"id":          "user_1",
		"name":        "Chanda",
		"contact":     "+260971234567",
		"password":    "$2a$10$hash",
		"businessId":  "biz_1",
		"permissions": []interface{}{"sales", "inventory"},
	}

	out, err := sanitizeRecord(raw, entitySchemas["users"])
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	encoded, ok := out["permissions"].(json.RawMessage)
	if !ok {
		t.Fatalf("permissions should be json.RawMessage, got %T", out["permissions"])
	}
	var perms []string
	if err := json.Unmarshal(encoded, &perms); err != nil {
		t.Fatalf("permissions should round-trip: %v", err)
	}
	if len(perms) != 2 || perms[0] != "sales" {
		t.Errorf("unexpected permissions: %v", perms)
	}
}

func TestCamelToSnake(t *testing.T) {
	cases := map[string]string{
		"id":                     "id",
		"businessId":             "business_id",
		"originalSaleId":         "original_sale_id",
		"lowStockThreshold":      "low_stock_threshold",
		"subscriptionExpiryDate": "subscription_expiry_date",
	}
	for in, want := range cases {
		if got := camelToSnake(in); got != want {
			t.Errorf("camelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEverySchemaHasRequiredId(t *testing.T) {
	for name, schema := range entitySchemas {
		spec, ok := schema["id"]
		if !ok || !spec.required {
			t.Errorf("schema %q must require id", name)
		}
	}
}
