package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBatchHeader(t *testing.T, userID uuid.UUID, employee, day string) {
	t.Helper()
	c, w := authedContext(t, userID, http.MethodPut, "/api/batch/header",
		`{"employeeName": "`+employee+`", "serviceDate": "`+day+`"}`)
	SetBatchHeader(c)
	require.Equal(t, http.StatusOK, w.Code)
}

func addDraftWith(t *testing.T, userID uuid.UUID, body string) uuid.UUID {
	t.Helper()
	c, w := authedContext(t, userID, http.MethodPost, "/api/batch/drafts", "")
	AddBatchDraft(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var draft map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &draft))
	draftID, err := uuid.Parse(draft["id"].(string))
	require.NoError(t, err)

	c, w = authedContext(t, userID, http.MethodPatch, "/api/batch/drafts/x", body)
	c.Params = gin.Params{{Key: "draftId", Value: draftID.String()}}
	UpdateBatchDraft(c)
	require.Equal(t, http.StatusOK, w.Code)
	return draftID
}

func TestAddDraftBeforeHeaderConflicts(t *testing.T) {
	setupTest(t)

	c, w := authedContext(t, uuid.New(), http.MethodPost, "/api/batch/drafts", "")
	AddBatchDraft(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCommitEndpointPersistsValidBatch(t *testing.T) {
	setupTest(t)
	userID := uuid.New()

	setBatchHeader(t, userID, "Asha", "2024-03-01")
	addDraftWith(t, userID, `{"serviceType": "One time", "paymentAmount": 300, "paymentMode": "Cash", "paymentAcceptedBy": "Employee"}`)

	c, w := authedContext(t, userID, http.MethodPost, "/api/batch/commit", "")
	CommitBatch(c)
	require.Equal(t, http.StatusCreated, w.Code)

	records, err := recordStore.List(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Asha", records[0].EmployeeName)
	assert.Equal(t, "One time", records[0].ServiceType)
	assert.Equal(t, userID, records[0].UserID)
	assert.False(t, records[0].CreatedAt.IsZero())
}

func TestCommitEndpointRejectsInvalidBatch(t *testing.T) {
	setupTest(t)
	userID := uuid.New()

	setBatchHeader(t, userID, "Asha", "2024-03-01")
	addDraftWith(t, userID, `{"serviceType": "Car Spa", "paymentAmount": 500, "paymentMode": "Online", "paymentAcceptedBy": "Car Heroz Account"}`)
	addDraftWith(t, userID, `{"serviceType": "Deep clean", "paymentAmount": 0, "paymentMode": "Cash", "paymentAcceptedBy": "Employee"}`)

	c, w := authedContext(t, userID, http.MethodPost, "/api/batch/commit", "")
	CommitBatch(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(2), resp["entry"])

	records, err := recordStore.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestBatchHeaderRejectsFutureDate(t *testing.T) {
	setupTest(t)

	c, w := authedContext(t, uuid.New(), http.MethodPut, "/api/batch/header",
		`{"employeeName": "Asha", "serviceDate": "2999-01-01"}`)
	SetBatchHeader(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
