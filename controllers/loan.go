package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetLoans() gin.HandlerFunc {
	return func(c *gin.Context) {
		loans, err := models.GetLoans(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, loans)
	}
}

func GetLoan() gin.HandlerFunc {
	return func(c *gin.Context) {
		loan, err := models.GetLoan(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Loan not found")
			return
		}
		c.JSON(http.StatusOK, loan)
	}
}

func CreateLoan() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewLoan
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		loan, err := models.CreateLoan(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating loan", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, loan)
	}
}

func UpdateLoan() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		loan, err := models.UpdateLoan(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Loan not found")
			return
		}
		c.JSON(http.StatusOK, loan)
	}
}

func DeleteLoan() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteLoan(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Loan not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Loan deleted"})
	}
}

func AddLoanPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewDebtPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		payment, err := models.AddLoanPayment(c.Request.Context(), c.Param("id"), &input)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Loan not found")
			return
		}
		c.JSON(http.StatusCreated, payment)
	}
}

func GetLoanPayments() gin.HandlerFunc {
	return func(c *gin.Context) {
		payments, err := models.GetLoanPayments(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, payments)
	}
}
