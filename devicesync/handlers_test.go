package devicesync

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func syncTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/sync", SyncHandler())
	return r
}

func TestSyncHandlerMalformedBodyFailsWholeBatch(t *testing.T) {
	r := syncTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{"sales": [`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("got status %d, want 500", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response should be JSON: %v", err)
	}
	if body["message"] != "Sync error" {
		t.Errorf("got message %v, want Sync error", body["message"])
	}
	errMsg, ok := body["error"].(string)
	if !ok || errMsg == "" {
		t.Errorf("response must carry the decode error, got %v", body["error"])
	}
}

func TestSyncHandlerEmptyBatch(t *testing.T) {
	r := syncTestRouter()

	// an empty batch must short-circuit before any store access; a single
	// upsert here would panic on the absent database connection
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/sync", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", w.Code)
	}

	var resp SyncResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("response should be JSON: %v", err)
	}
	if resp.Message != "Sync complete" {
		t.Errorf("got message %q, want Sync complete", resp.Message)
	}
	if resp.Results["business"] != nil {
		t.Errorf("batch without a business record should report null, got %v", resp.Results["business"])
	}
	for _, name := range collectionOrder {
		raw, err := json.Marshal(resp.Results[name])
		if err != nil {
			t.Fatalf("marshaling %s result: %v", name, err)
		}
		var counters CollectionResult
		if err := json.Unmarshal(raw, &counters); err != nil {
			t.Fatalf("collection %s should report counters, got %s", name, raw)
		}
		if counters.Success != 0 || counters.Error != 0 {
			t.Errorf("collection %s should report zero counters, got %+v", name, counters)
		}
	}
}
