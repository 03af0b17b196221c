package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetSales() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId := c.Query("businessId")
		if businessId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "businessId required"})
			return
		}

		sales, err := models.GetSalesByBusiness(c.Request.Context(), businessId, c.Query("shopId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}

func GetSale() gin.HandlerFunc {
	return func(c *gin.Context) {
		sale, err := models.GetSale(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Sale not found")
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

func CreateSale() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSale
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		sale, err := models.CreateSale(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating sale", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}

func UpdateSale() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		sale, err := models.UpdateSale(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Sale not found")
			return
		}
		c.JSON(http.StatusOK, sale)
	}
}

func DeleteSale() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteSale(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Sale not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Sale deleted"})
	}
}
