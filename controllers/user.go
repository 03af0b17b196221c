package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
	"github.com/shoplite/retail_backend/utils"
)

func GetUsers() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId := c.Query("businessId")
		if businessId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "businessId required"})
			return
		}

		users, err := models.GetUsersByBusiness(c.Request.Context(), businessId)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

func GetUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := models.GetUser(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func CreateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewUser
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		user, err := models.CreateUser(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating user", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

func UpdateUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		attrs, err := updateAttrsFromBody(c)
		if err != nil {
			respondBindingError(c, err)
			return
		}

		user, err := models.UpdateUser(c.Request.Context(), c.Param("id"), attrs)
		if err != nil {
			respondNotFoundOrServerError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func DeleteUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
			respondNotFoundOrServerError(c, err, "User not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
	}
}

type loginRequest struct {
	Contact    string `json:"contact" binding:"required"`
	Password   string `json:"password" binding:"required"`
	BusinessId string `json:"businessId" binding:"required"`
}

func LoginUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input loginRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		user, token, err := models.LoginUser(c.Request.Context(), input.Contact, input.Password, input.BusinessId)
		if err != nil {
			if err == utils.ErrorRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	}
}

// ValidateToken re-checks the authenticated user against the store so a
// deleted account can't keep using an unexpired token.
func ValidateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := utils.GetUserIdFromContext(c.Request.Context())
		if !ok || userId == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		user, err := models.GetUser(c.Request.Context(), userId)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"valid": true, "user": user})
	}
}
