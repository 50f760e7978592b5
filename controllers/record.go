// controllers/record.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Lakshay1509/carheroz-tracker/models"
	"github.com/Lakshay1509/carheroz-tracker/services"
	"github.com/Lakshay1509/carheroz-tracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateRecordInput defines the expected JSON structure for a single-entry create
type CreateRecordInput struct {
	EmployeeName      string  `json:"employeeName" binding:"required"`
	ServiceType       string  `json:"serviceType" binding:"required"`
	ServiceDate       string  `json:"serviceDate" binding:"required"`
	PaymentAmount     float64 `json:"paymentAmount" binding:"required,gt=0"`
	PaymentMode       string  `json:"paymentMode" binding:"required,oneof=Online Cash"`
	PaymentAcceptedBy string  `json:"paymentAcceptedBy" binding:"required,oneof='Car Heroz Account' 'Employee'"`
}

// UpdateRecordInput defines the expected JSON structure for a partial update
type UpdateRecordInput struct {
	EmployeeName      *string  `json:"employeeName" binding:"omitempty,min=1"`
	ServiceType       *string  `json:"serviceType" binding:"omitempty,min=1"`
	ServiceDate       *string  `json:"serviceDate"`
	PaymentAmount     *float64 `json:"paymentAmount" binding:"omitempty,gt=0"`
	PaymentMode       *string  `json:"paymentMode" binding:"omitempty,oneof=Online Cash"`
	PaymentAcceptedBy *string  `json:"paymentAcceptedBy" binding:"omitempty,oneof='Car Heroz Account' 'Employee'"`
}

func currentUserUUID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get("userId")
	if !exists {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return uuid.Nil, false
	}
	userIDValue, ok := userID.(string)
	if !ok {
		// A signed token without a usable sub claim is still not a session
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID in token")
		return uuid.Nil, false
	}
	userUUID, err := uuid.Parse(userIDValue)
	if err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid user ID in token")
		return uuid.Nil, false
	}
	return userUUID, true
}

// ListRecords returns the caller's records, newest service date first
func ListRecords(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	records, err := recordStore.List(c.Request.Context(), userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve service records")
		return
	}

	c.JSON(http.StatusOK, records)
}

// CreateRecord persists a single service record for the caller
func CreateRecord(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	var input CreateRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceDate, err := utils.ParseServiceDate(input.ServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	record := models.ServiceRecord{
		UserID:            userUUID,
		EmployeeName:      input.EmployeeName,
		ServiceType:       input.ServiceType,
		ServiceDate:       serviceDate,
		PaymentAmount:     input.PaymentAmount,
		PaymentMode:       input.PaymentMode,
		PaymentAcceptedBy: input.PaymentAcceptedBy,
	}

	if err := recordStore.Create(c.Request.Context(), &record); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add service record")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// UpdateRecord merges the provided fields into an existing record
func UpdateRecord(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return
	}

	var input UpdateRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var serviceDate *time.Time
	if input.ServiceDate != nil {
		parsed, err := utils.ParseServiceDate(*input.ServiceDate)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		serviceDate = &parsed
	}

	patch := services.RecordPatch{
		EmployeeName:      input.EmployeeName,
		ServiceType:       input.ServiceType,
		ServiceDate:       serviceDate,
		PaymentAmount:     input.PaymentAmount,
		PaymentMode:       input.PaymentMode,
		PaymentAcceptedBy: input.PaymentAcceptedBy,
	}

	if err := recordStore.Update(c.Request.Context(), userUUID, recordUUID, patch); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service record")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service record updated"})
}

// DeleteRecord permanently removes a record
func DeleteRecord(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	recordUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid record ID format")
		return
	}

	if err := recordStore.Delete(c.Request.Context(), userUUID, recordUUID); err != nil {
		if errors.Is(err, services.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service record not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service record")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service record deleted"})
}
