// controllers/batch.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/Lakshay1509/carheroz-tracker/services"
	"github.com/Lakshay1509/carheroz-tracker/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BatchHeaderInput defines the shared employee/date header of a batch
type BatchHeaderInput struct {
	EmployeeName string `json:"employeeName" binding:"required"`
	ServiceDate  string `json:"serviceDate" binding:"required"`
}

// DraftPatchInput defines a partial update of one draft entry
type DraftPatchInput struct {
	ServiceType       *string  `json:"serviceType"`
	PaymentAmount     *float64 `json:"paymentAmount"`
	PaymentMode       *string  `json:"paymentMode"`
	PaymentAcceptedBy *string  `json:"paymentAcceptedBy"`
}

// GetBatchSession returns the caller's current batch header and drafts
func GetBatchSession(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	header, drafts := batchComposer.Session(userUUID)
	c.JSON(http.StatusOK, gin.H{
		"header": header,
		"drafts": drafts,
	})
}

// SetBatchHeader replaces the shared header of the caller's batch
func SetBatchHeader(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	var input BatchHeaderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	serviceDate, err := utils.ParseServiceDate(input.ServiceDate)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	batchComposer.SetHeader(userUUID, services.BatchHeader{
		EmployeeName: input.EmployeeName,
		ServiceDate:  serviceDate,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Batch header set"})
}

// AddBatchDraft appends a draft entry with default values
func AddBatchDraft(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	draft, err := batchComposer.AddDraft(userUUID)
	if err != nil {
		if errors.Is(err, services.ErrHeaderIncomplete) {
			utils.RespondWithError(c, http.StatusConflict, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to add entry")
		}
		return
	}

	c.JSON(http.StatusCreated, draft)
}

// UpdateBatchDraft replaces the provided fields of one draft entry
func UpdateBatchDraft(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	draftUUID, err := uuid.Parse(c.Param("draftId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid draft ID format")
		return
	}

	var input DraftPatchInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	draft, err := batchComposer.UpdateDraft(userUUID, draftUUID, services.DraftPatch{
		ServiceType:       input.ServiceType,
		PaymentAmount:     input.PaymentAmount,
		PaymentMode:       input.PaymentMode,
		PaymentAcceptedBy: input.PaymentAcceptedBy,
	})
	if err != nil {
		if errors.Is(err, services.ErrDraftNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update entry")
		}
		return
	}

	c.JSON(http.StatusOK, draft)
}

// RemoveBatchDraft removes one draft entry
func RemoveBatchDraft(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	draftUUID, err := uuid.Parse(c.Param("draftId"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid draft ID format")
		return
	}

	if err := batchComposer.RemoveDraft(userUUID, draftUUID); err != nil {
		if errors.Is(err, services.ErrDraftNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to remove entry")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry removed"})
}

// CommitBatch validates every draft and persists one record per draft
func CommitBatch(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	created, err := batchComposer.Commit(c.Request.Context(), userUUID)
	if err != nil {
		var validationErr *services.DraftValidationError
		switch {
		case errors.As(err, &validationErr):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": validationErr.Error(),
				"entry": validationErr.Entry,
				"field": validationErr.Field,
			})
		case errors.Is(err, services.ErrHeaderIncomplete):
			utils.RespondWithError(c, http.StatusConflict, err.Error())
		default:
			// Records created before the failing write remain persisted
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to save all entries: " + err.Error(),
				"records": created,
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service records added",
		"records": created,
	})
}
