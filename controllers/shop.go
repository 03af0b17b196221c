package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
)

func GetShops() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId := c.Query("businessId")
		if businessId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "businessId required"})
			return
		}

		shops, err := models.GetShopsByBusiness(c.Request.Context(), businessId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, shops)
	}
}

func GetShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, err := models.GetShop(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Shop not found")
			return
		}
		c.JSON(http.StatusOK, shop)
	}
}

func CreateShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewShop
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		shop, err := models.CreateShop(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating shop", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, shop)
	}
}

func UpdateShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		shop, err := models.UpdateShop(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Shop not found")
			return
		}
		c.JSON(http.StatusOK, shop)
	}
}

func DeleteShop() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteShop(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Shop not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Shop deleted"})
	}
}
