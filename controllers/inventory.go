package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetInventory() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopId := c.Query("shopId")
		if shopId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "shopId required"})
			return
		}

		items, err := models.GetInventoriesByShop(c.Request.Context(), shopId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

func GetInventoryItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := models.GetInventory(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Inventory item not found")
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func CreateInventoryItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInventory
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		item, err := models.CreateInventory(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating inventory item", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func UpdateInventoryItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		item, err := models.UpdateInventory(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Inventory item not found")
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func DeleteInventoryItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteInventory(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Inventory item not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted"})
	}
}
