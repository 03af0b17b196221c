package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetExpenses() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId := c.Query("businessId")
		if businessId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "businessId required"})
			return
		}

		expenses, err := models.GetExpensesByBusiness(c.Request.Context(), businessId, c.Query("shopId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

func GetExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		expense, err := models.GetExpense(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Expense not found")
			return
		}
		c.JSON(http.StatusOK, expense)
	}
}

func CreateExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewExpense
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		expense, err := models.CreateExpense(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating expense", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, expense)
	}
}

func UpdateExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		expense, err := models.UpdateExpense(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Expense not found")
			return
		}
		c.JSON(http.StatusOK, expense)
	}
}

func DeleteExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteExpense(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Expense not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
	}
}
