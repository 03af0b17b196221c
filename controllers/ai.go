package controllers

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/config"
)

var aiClient = &http.Client{Timeout: 30 * time.Second}

// identical analyze requests within this window are served from Redis
// instead of paying for another upstream call
const aiCacheTTL = 10 * time.Minute

type analyzeRequest struct {
	BusinessId string                 `json:"businessId" binding:"required"`
	ReportType string                 `json:"reportType" binding:"required"`
	Data       map[string]interface{} `json:"data"`
}

// AnalyzeReport forwards a report payload to the external AI service and
// relays its JSON analysis. One shot, no retries; any upstream problem is a
// single 500 to the caller.
func AnalyzeReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := config.GetLogger()

		var input analyzeRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		serviceURL := os.Getenv("AI_SERVICE_URL")
		if serviceURL == "" {
			config.LogError(logger, "controllers", "AnalyzeReport", "reading config", nil, errors.New("AI_SERVICE_URL not set"))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "AI analysis error", "error": "analysis service not configured"})
			return
		}

		payload, err := json.Marshal(input)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "AI analysis error", "error": err.Error()})
			return
		}

		cacheKey := fmt.Sprintf("AiAnalysis:%x", sha256.Sum256(payload))
		if cached, exists, cerr := config.GetRedisValue(cacheKey); cerr == nil && exists {
			c.Data(http.StatusOK, "application/json", []byte(cached))
			return
		}

		req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodPost, serviceURL, bytes.NewReader(payload))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "AI analysis error", "error": err.Error()})
			return
		}
		req.Header.Set("Content-Type", "application/json")
		if key := os.Getenv("AI_SERVICE_KEY"); key != "" {
			req.Header.Set("Authorization", "Bearer "+key)
		}

		resp, err := aiClient.Do(req)
		if err != nil {
			config.LogError(logger, "controllers", "AnalyzeReport", "calling analysis service", input.ReportType, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "AI analysis error", "error": err.Error()})
			return
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "AI analysis error", "error": err.Error()})
			return
		}
		if resp.StatusCode != http.StatusOK {
			config.LogError(logger, "controllers", "AnalyzeReport", "analysis service status", resp.StatusCode, errors.New(string(body)))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "AI analysis error", "error": "analysis service returned " + resp.Status})
			return
		}

		if cerr := config.SetRedisValue(cacheKey, string(body), aiCacheTTL); cerr != nil {
			config.LogError(logger, "controllers", "AnalyzeReport", "caching analysis", input.ReportType, cerr)
		}

		c.Data(http.StatusOK, "application/json", body)
	}
}
