package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetReceivables() gin.HandlerFunc {
	return func(c *gin.Context) {
		receivables, err := models.GetReceivables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, receivables)
	}
}

func GetReceivable() gin.HandlerFunc {
	return func(c *gin.Context) {
		receivable, err := models.GetReceivable(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Receivable not found")
			return
		}
		c.JSON(http.StatusOK, receivable)
	}
}

func CreateReceivable() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewReceivable
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		receivable, err := models.CreateReceivable(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating receivable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, receivable)
	}
}

func UpdateReceivable() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		receivable, err := models.UpdateReceivable(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Receivable not found")
			return
		}
		c.JSON(http.StatusOK, receivable)
	}
}

func DeleteReceivable() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteReceivable(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Receivable not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Receivable deleted"})
	}
}

func AddReceivablePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewDebtPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		payment, err := models.AddReceivablePayment(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Receivable not found")
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

func GetReceivablePayments() gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := models.GetReceivablePayments(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}
