package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/utils"
)

// updateAttrsFromBody decodes a partial-update body into a column map.
// Immutable fields are dropped, wire field names become column names and
// RFC3339 strings become timestamps so MySQL accepts them.
func updateAttrsFromBody(c *gin.Context) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, err
	}

	attrs := make(map[string]interface{}, len(body))
	for key, value := range body {
		switch key {
		case "id", "createdAt", "updatedAt", "items", "payments":
			continue
		}
		if str, ok := value.(string); ok {
			if t, err := time.Parse(time.RFC3339, str); err == nil {
				value = t
			}
		}
		attrs[toColumnName(key)] = value
	}
	return attrs, nil
}

func toColumnName(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func respondNotFoundOrServerError(c *gin.Context, err error, notFoundMessage string) {
	if err == utils.ErrorRecordNotFound {
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMessage})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
}

func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body", "errors": utils.ProcessValidationErrors(err)})
}
