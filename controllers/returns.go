package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shoplite/retail_backend/models"
	"github.com/shoplite/retail_backend/utils"
)

func CreateReturn() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewReturn
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		ret, err := models.CreateReturn(c.Request.Context(), &input)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Error creating return", "error": err.Error()})
			return
		}
		c.JSON(http.StatusCreated, ret)
	}
}

func GetReturns() gin.HandlerFunc {
	return func(c *gin.Context) {
		businessId := c.Query("businessId")
		if businessId == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "businessId required"})
			return
		}

		returns, err := models.GetReturnsByBusiness(c.Request.Context(), businessId, c.Query("shopId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, returns)
	}
}

func GetReturn() gin.HandlerFunc {
	return func(c *gin.Context) {
		ret, err := models.GetReturn(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondNotFoundOrServerError(c, err, "Return not found")
			return
		}
		c.JSON(http.StatusOK, ret)
	}
}

func GetReturnsBySale() gin.HandlerFunc {
	return func(c *gin.Context) {
		returns, err := models.GetReturnsBySale(c.Request.Context(), c.Param("saleId"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, returns)
	}
}

type approveReturnRequest struct {
	ApprovedBy string `json:"approvedBy" binding:"required"`
}

func ApproveReturn() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input approveReturnRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		ret, err := models.ApproveReturn(c.Request.Context(), c.Param("id"), input.ApprovedBy)
		if err != nil {
			respondReturnTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, ret)
	}
}

type rejectReturnRequest struct {
	RejectedBy      string `json:"rejectedBy" binding:"required"`
	RejectionReason string `json:"rejectionReason" binding:"required"`
}

func RejectReturn() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input rejectReturnRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindingError(c, err)
			return
		}

		ret, err := models.RejectReturn(c.Request.Context(), c.Param("id"), input.RejectedBy, input.RejectionReason)
		if err != nil {
			respondReturnTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, ret)
	}
}

func CompleteReturn() gin.HandlerFunc {
	return func(c *gin.Context) {
		ret, err := models.CompleteReturn(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondReturnTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, ret)
	}
}

func DeleteReturn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := models.DeleteReturn(c.Request.Context(), c.Param("id")); err != nil {
			respondReturnTransitionError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Return deleted"})
	}
}

func respondReturnTransitionError(c *gin.Context, err error) {
	switch err {
	case utils.ErrorRecordNotFound:
		c.JSON(http.StatusNotFound, gin.H{"message": "Return not found"})
	case models.ErrReturnNotPending, models.ErrReturnNotApproved:
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error", "error": err.Error()})
	}
}
