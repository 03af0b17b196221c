package devicesync

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/config"
	"github.com/shoplite/retail_backend/utils"
	"github.com/sirupsen/logrus"
)

// SyncHandler accepts a full offline batch and reconciles it. Any body that
// can't be decoded fails the whole request; everything past decoding is
// per-record.
func SyncHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		decoder := json.NewDecoder(c.Request.Body)
		decoder.UseNumber()
		var batch map[string]interface{}
		if err := decoder.Decode(&batch); err != nil {
			config.LogError(logger, "devicesync", "SyncHandler", "decoding sync batch", nil, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Sync error", "error": err.Error()})
			return
		}

		ctx := c.Request.Context()

		// Overlapping batches for the same business are serialized when
		// Redis is up; without it the batch still runs, last write wins.
		if businessId := batchBusinessId(c, batch); businessId != "" {
			lock, err := utils.ObtainBusinessLock(ctx, businessId, "DeviceSync", 30*time.Second)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"module":     "devicesync",
					"funcName":   "SyncHandler",
					"businessId": businessId,
				}).Warn("proceeding without sync lock: " + err.Error())
			} else if lock != nil {
				defer lock.Release(ctx)
			}
		}

		results := Reconcile(ctx, batch)
		c.JSON(http.StatusOK, SyncResponse{Message: "Sync complete", Results: results})
	}
}

func batchBusinessId(c *gin.Context, batch map[string]interface{}) string {
	if business, ok := batch["business"].(map[string]interface{}); ok {
		if id, ok := business["id"].(string); ok && id != "" {
			return id
		}
	}
	if id, ok := utils.GetBusinessIdFromContext(c.Request.Context()); ok {
		return id
	}
	return ""
}
