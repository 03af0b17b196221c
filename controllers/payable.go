package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetPayables() gin.HandlerFunc {
	return func(c *gin.Context) {
		payables, err := models.GetPayables(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payables)
	}
}

func GetPayable() gin.HandlerFunc {
	return func(c *gin.Context) {
		payable, err := models.GetPayable(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Payable not found")
			return
		}
		c.JSON(http.StatusOK, payable)
	}
}

func CreatePayable() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewPayable
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		payable, err := models.CreatePayable(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating payable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, payable)
	}
}

func UpdatePayable() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		payable, err := models.UpdatePayable(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Payable not found")
			return
		}
		c.JSON(http.StatusOK, payable)
	}
}

func DeletePayable() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeletePayable(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Payable not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payable deleted"})
	}
}

func AddPayablePayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewDebtPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		payment, err := models.AddPayablePayment(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Payable not found")
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

func GetPayablePayments() gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := models.GetPayablePayments(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}
