package controllers

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lakshay1509/carheroz-tracker/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialLive(t *testing.T, userID uuid.UUID) *websocket.Conn {
	t.Helper()
	r := gin.New()
	r.GET("/live", func(c *gin.Context) {
		c.Set("userId", userID.String())
		LiveRecords(c)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	return conn
}

func TestLiveStreamDeliversSnapshotPerChange(t *testing.T) {
	setupTest(t)
	userID := uuid.New()
	conn := dialLive(t, userID)

	var first liveMessage
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "snapshot", first.Type)
	assert.Empty(t, first.Records)

	record := models.ServiceRecord{
		UserID:            userID,
		EmployeeName:      "Asha",
		ServiceType:       "Car Spa",
		ServiceDate:       mustDate("2024-03-01"),
		PaymentAmount:     500,
		PaymentMode:       models.PaymentModeOnline,
		PaymentAcceptedBy: models.AcceptedByAccount,
	}
	require.NoError(t, recordStore.Create(context.Background(), &record))

	var next liveMessage
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, "snapshot", next.Type)
	require.Len(t, next.Records, 1)
	assert.Equal(t, record.ID, next.Records[0].ID)
}

func TestLiveStreamReportsServerSideSubscriptionFailure(t *testing.T) {
	setupTest(t)

	// Break the collection before the subscription opens: the client gets
	// one error frame, never a snapshot
	require.NoError(t, testDB.Migrator().DropTable(&models.ServiceRecord{}))

	conn := dialLive(t, uuid.New())

	var frame liveMessage
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "error", frame.Type)
	assert.NotEmpty(t, frame.Error)
}
