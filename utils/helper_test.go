package utils

import (
	"strings"
	"testing"
)

func TestResourceId(t *testing.T) {
	if got := ResourceId("sale_abc"); got != "sale_abc" {
		t.Errorf("client id should be kept, got %q", got)
	}
	generated := ResourceId("")
	if generated == "" {
		t.Fatal("empty id should be replaced")
	}
	if generated == ResourceId("") {
		t.Error("generated ids should not repeat")
	}
}

func TestGenerateReturnId(t *testing.T) {
	id := GenerateReturnId()
	if !strings.HasPrefix(id, "RET_") {
		t.Errorf("got %q, want RET_ prefix", id)
	}
	if parts := strings.Split(id, "_"); len(parts) != 3 {
		t.Errorf("got %q, want RET_<millis>_<n>", id)
	}
}

func TestNilIfEmpty(t *testing.T) {
	if NilIfEmpty("") != nil {
		t.Error("empty string should become nil")
	}
	got := NilIfEmpty("Lusaka")
	if got == nil || *got != "Lusaka" {
		t.Errorf("got %v, want Lusaka", got)
	}
	if NilIfEmpty(0) != nil {
		t.Error("zero int should become nil")
	}
}

func TestDereferencePtr(t *testing.T) {
	if got := DereferencePtr[string](nil); got != "" {
		t.Errorf("nil pointer should yield zero value, got %q", got)
	}
	if got := DereferencePtr[string](nil, "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
	v := "shop_1"
	if got := DereferencePtr(&v, "fallback"); got != "shop_1" {
		t.Errorf("got %q, want shop_1", got)
	}
}

func TestNewTrueNewFalse(t *testing.T) {
	if v := NewTrue(); v == nil || !*v {
		t.Error("NewTrue should point at true")
	}
	if v := NewFalse(); v == nil || *v {
		t.Error("NewFalse should point at false")
	}
	if NewTrue() == NewTrue() {
		t.Error("each call should return a distinct pointer")
	}
}

func TestUniqueSlice(t *testing.T) {
	got := UniqueSlice([]string{"sales", "returns", "sales", "inventory", "returns"})
	want := []string{"sales", "returns", "inventory"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order must be preserved: got %v, want %v", got, want)
			break
		}
	}
	if UniqueSlice([]int(nil)) != nil {
		t.Error("nil slice should stay nil")
	}
}

func TestParseDecimal(t *testing.T) {
	dec, err := ParseDecimal(" 1250.50 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.String() != "1250.5" {
		t.Errorf("got %v, want 1250.5", dec)
	}
	if _, err := ParseDecimal(""); err == nil {
		t.Error("empty string should error")
	}
	if _, err := ParseDecimal("12,50"); err == nil {
		t.Error("malformed number should error")
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	if err := ValidatePhoneNumber("+260971234567", CountryCode); err != nil {
		t.Errorf("valid number rejected: %v", err)
	}
	if err := ValidatePhoneNumber("12345", CountryCode); err == nil {
		t.Error("short number should be rejected")
	}
}
