package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetSaleItems() gin.HandlerFunc {
	return func(c *gin.Context) {
		saleId := c.Query("saleId")
		if saleId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "saleId required"})
			return
		}

		items, err := models.GetSaleItemsBySale(c.Request.Context(), saleId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func CreateSaleItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSaleItem
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}
		if input.SaleId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "saleId required"})
			return
		}

		item, err := models.CreateSaleItem(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating sale item", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func DeleteSaleItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid sale item id"})
			return
		}

		if err := models.DeleteSaleItem(c.Request.Context(), id); err != nil {
			respondNotFoundOrServerError(c, err, "Sale item not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Sale item deleted"})
	}
}
