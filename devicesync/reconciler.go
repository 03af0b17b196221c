package devicesync

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/models"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// upsertFunc persists one sanitized record, reporting whether it was created.
type upsertFunc func(ctx context.Context, id interface{}, attrs map[string]interface{}) (created bool, err error)

// Parents are reconciled before the rows that reference them.
var collectionOrder = []string{
	"users",
	"shops",
	"inventories",
	"expenses",
	"sales",
	"sale_items",
	"returns",
	"return_items",
	"receivables",
	"payables",
	"loans",
	"receivable_payments",
	"payable_payments",
	"loan_payments",
}

var collectionUpserts = map[string]upsertFunc{
	"users":               upsertEntity[models.User],
	"shops":               upsertEntity[models.Shop],
	"inventories":         upsertEntity[models.Inventory],
	"expenses":            upsertEntity[models.Expense],
	"sales":               upsertEntity[models.Sale],
	"sale_items":          upsertEntity[models.SaleItem],
	"returns":             upsertEntity[models.Return],
	"return_items":        upsertEntity[models.ReturnItem],
	"receivables":         upsertEntity[models.Receivable],
	"payables":            upsertEntity[models.Payable],
	"loans":               upsertEntity[models.Loan],
	"receivable_payments": upsertEntity[models.ReceivablePayment],
	"payable_payments":    upsertEntity[models.PayablePayment],
	"loan_payments":       upsertEntity[models.LoanPayment],
}

// bounds one slow record so it cannot stall the rest of the batch
const recordTimeout = 10 * time.Second

// Reconcile applies a decoded sync batch collection by collection. A bad
// record only affects its own counter; siblings keep flowing.
func Reconcile(ctx context.Context, batch map[string]interface{}) SyncResults {
	results := SyncResults{}

	results["business"] = reconcileBusiness(ctx, batch)

	for _, name := range collectionOrder {
		records := recordsFromBatch(batch, name)
		results[name] = reconcileCollection(ctx, name, records, entitySchemas[name], collectionUpserts[name])
	}

	return results
}

func reconcileBusiness(ctx context.Context, batch map[string]interface{}) *BusinessResult {
	logger := config.GetLogger()

	raw, ok := batch["business"].(map[string]interface{})
	if !ok {
		logger.WithFields(logrus.Fields{
			"module":   "devicesync",
			"funcName": "reconcileBusiness",
		}).Warn("batch has no business record")
		return nil
	}

	attrs, err := sanitizeRecord(raw, entitySchemas["business"])
	if err != nil {
		config.LogError(logger, "devicesync", "reconcileBusiness", "sanitizing business", raw["id"], err)
		return nil
	}
	id, _ := attrs["id"].(string)

	recCtx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	created, err := upsertEntity[models.Business](recCtx, id, attrs)
	if err != nil {
		config.LogError(logger, "devicesync", "reconcileBusiness", "upserting business", id, err)
		return nil
	}

	// a synced business invalidates any cached copy
	if err := (&models.Business{ID: id}).RemoveRedis(); err != nil {
		config.LogError(logger, "devicesync", "reconcileBusiness", "invalidating business cache", id, err)
	}

	return &BusinessResult{ID: id, Created: created, Updated: !created}
}

func reconcileCollection(ctx context.Context, name string, records []map[string]interface{}, schema entitySchema, upsert upsertFunc) CollectionResult {
	logger := config.GetLogger()
	var result CollectionResult

	for _, raw := range records {
		attrs, err := sanitizeRecord(raw, schema)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"module":     "devicesync",
				"funcName":   "reconcileCollection",
				"collection": name,
				"recordId":   raw["id"],
				"reason":     err.Error(),
			}).Warn("record rejected")
			result.Error++
			continue
		}

		id, err := extractRecordId(attrs)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"module":     "devicesync",
				"funcName":   "reconcileCollection",
				"collection": name,
				"recordId":   raw["id"],
				"reason":     err.Error(),
			}).Warn("record rejected")
			result.Error++
			continue
		}

		recCtx, cancel := context.WithTimeout(ctx, recordTimeout)
		_, err = upsert(recCtx, id, attrs)
		cancel()
		if err != nil {
			config.LogError(logger, "devicesync", "reconcileCollection", "upserting "+name, id, err)
			result.Error++
			continue
		}
		result.Success++
	}

	return result
}

func recordsFromBatch(batch map[string]interface{}, name string) []map[string]interface{} {
	rawList, ok := batch[name].([]interface{})
	if !ok {
		return nil
	}
	records := make([]map[string]interface{}, 0, len(rawList))
	for _, raw := range rawList {
		if record, ok := raw.(map[string]interface{}); ok {
			records = append(records, record)
		}
	}
	return records
}

func extractRecordId(attrs map[string]interface{}) (interface{}, error) {
	switch id := attrs["id"].(type) {
	case string:
		if id == "" {
			return nil, errors.New("missing required field id")
		}
		return id, nil
	case json.Number:
		return id.String(), nil
	default:
		return nil, errors.New("missing required field id")
	}
}

// upsertEntity finds a row by id and either creates it from the sanitized
// record or overwrites its mutable columns. Updates go through a column map
// so zero values from the client win over stored ones.
func upsertEntity[T any](ctx context.Context, id interface{}, attrs map[string]interface{}) (bool, error) {
	db := config.GetDB()

	var existing T
	err := db.WithContext(ctx).Where("id = ?", id).Take(&existing).Error
	if err == gorm.ErrRecordNotFound {
		encoded, merr := json.Marshal(attrs)
		if merr != nil {
			return false, merr
		}
		var record T
		if uerr := json.Unmarshal(encoded, &record); uerr != nil {
			return false, uerr
		}
		if cerr := db.WithContext(ctx).Create(&record).Error; cerr != nil {
			return false, cerr
		}
		return true, nil
	}
	if err != nil {
		return false, err
	}

	columns := make(map[string]interface{}, len(attrs))
	for field, value := range attrs {
		if field == "id" {
			continue
		}
		columns[camelToSnake(field)] = value
	}
	if len(columns) == 0 {
		return false, nil
	}

	var model T
	if err := db.WithContext(ctx).Model(&model).Where("id = ?", id).Updates(columns).Error; err != nil {
		return false, err
	}
	return false, nil
}
