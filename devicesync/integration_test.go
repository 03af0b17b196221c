package devicesync_test

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/devicesync"
	"github.com/shoplite/retail_backend/models"
)

const syncBatch = `{
	"business": {"id": "biz_1", "name": "Kwacha Traders", "country": "ZM", "isPremium": false},
	"users": [
		{"id": "user_1", "name": "Chanda", "contact": "+260971234567", "password": "$2a$10$hash", "businessId": "biz_1", "role": "admin", "permissions": ["sales", "inventory"]}
	],
	"shops": [
		{"id": "shop_1", "name": "Main Street", "businessId": "biz_1", "createdBy": "user_1"}
	],
	"inventories": [
		{"id": "inv_1", "name": "Cooking Oil", "quantity": 20, "price": 85.50, "shopId": "shop_1", "businessId": "biz_1", "createdBy": "user_1"}
	],
	"sales": [
		{"id": "sale_1", "totalAmount": 171, "grandTotal": 171, "shopId": "shop_1", "businessId": "biz_1", "createdBy": "user_1", "createdAt": "2026-03-15T10:30:00Z"}
	],
	"sale_items": [
		{"id": 1, "saleId": "sale_1", "productId": "inv_1", "productName": "Cooking Oil", "quantity": 2, "price": 85.50, "shopId": "shop_1"}
	]
}`

func TestReconcileFullBatchIsIdempotent(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "shoplite_test")

	config.ConnectDatabaseWithRetry()
	models.MigrateTable()

	batch := decodeBatch(t, syncBatch)

	results := devicesync.Reconcile(ctx, batch)
	business, ok := results["business"].(*devicesync.BusinessResult)
	if !ok || business == nil {
		t.Fatalf("expected a business result, got %v", results["business"])
	}
	if !business.Created {
		t.Error("first pass should create the business")
	}
	for _, name := range []string{"users", "shops", "inventories", "sales", "sale_items"} {
		col, ok := results[name].(devicesync.CollectionResult)
		if !ok {
			t.Fatalf("missing result for %s: %v", name, results[name])
		}
		if col.Success != 1 || col.Error != 0 {
			t.Errorf("%s first pass: got %+v, want 1 success", name, col)
		}
	}

	// Replay the same batch with one changed value. Everything must update in
	// place, and the zero value must overwrite.
	batch = decodeBatch(t, syncBatch)
	batch["inventories"].([]interface{})[0].(map[string]interface{})["quantity"] = json.Number("0")

	results = devicesync.Reconcile(ctx, batch)
	business = results["business"].(*devicesync.BusinessResult)
	if business.Created || !business.Updated {
		t.Errorf("second pass should update the business, got %+v", business)
	}
	for _, name := range []string{"users", "shops", "inventories", "sales", "sale_items"} {
		col := results[name].(devicesync.CollectionResult)
		if col.Success != 1 || col.Error != 0 {
			t.Errorf("%s second pass: got %+v, want 1 success", name, col)
		}
	}

	inv, err := models.GetInventory(ctx, "inv_1")
	if err != nil {
		t.Fatalf("GetInventory: %v", err)
	}
	if inv.Quantity != 0 {
		t.Errorf("replayed quantity of 0 must overwrite, got %d", inv.Quantity)
	}

	var saleCount int64
	if err := config.GetDB().WithContext(ctx).Model(&models.Sale{}).Where("id = ?", "sale_1").Count(&saleCount).Error; err != nil {
		t.Fatalf("count sales: %v", err)
	}
	if saleCount != 1 {
		t.Errorf("replay must not duplicate rows, got %d sales", saleCount)
	}
}

func decodeBatch(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var batch map[string]interface{}
	if err := dec.Decode(&batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	return batch
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("shoplite-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=shoplite_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
