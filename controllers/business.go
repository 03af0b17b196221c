package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
	"github.com/shoplite/retail_backend/utils"
)

func CreateBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewBusiness
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		if input.BusinessContact != "" {
			if err := utils.ValidatePhoneNumber(input.BusinessContact, utils.CountryCode); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid business contact"})
				return
			}
		}

		business, err := models.CreateBusiness(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating business", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, business)
	}
}

func GetBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		business, err := models.GetBusiness(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Business not found")
			return
		}
		c.JSON(http.StatusOK, business)
	}
}

func UpdateBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		business, err := models.UpdateBusiness(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "Business not found")
			return
		}
		c.JSON(http.StatusOK, business)
	}
}

func DeleteBusiness() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteBusiness(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "Business not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Business deleted"})
	}
}
