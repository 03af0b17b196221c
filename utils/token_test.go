package utils

import "testing"

func TestJwtRoundTrip(t *testing.T) {
	token, err := JwtGenerate("user_1", "biz_1", "manager", []string{"sales", "returns"}, "shop_1")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	parsed, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !parsed.Valid {
		t.Fatal("token should be valid")
	}

	claims, ok := parsed.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", parsed.Claims)
	}
	if claims.ID != "user_1" || claims.BusinessId != "biz_1" {
		t.Errorf("identity claims lost: %+v", claims)
	}
	if claims.Role != "manager" || claims.ShopId != "shop_1" {
		t.Errorf("scope claims lost: %+v", claims)
	}
	if len(claims.Permissions) != 2 || claims.Permissions[1] != "returns" {
		t.Errorf("permissions lost: %v", claims.Permissions)
	}
	if claims.ExpiresAt <= claims.IssuedAt {
		t.Error("token must expire after issuance")
	}
}

func TestJwtValidateRejectsGarbage(t *testing.T) {
	if _, err := JwtValidate("not.a.token"); err == nil {
		t.Error("garbage token should fail validation")
	}
}
