// controllers/live.go
package controllers

import (
	"log"
	"net/http"

	"github.com/Lakshay1509/carheroz-tracker/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type liveMessage struct {
	Type    string                 `json:"type"`
	Records []models.ServiceRecord `json:"records"`
	Error   string                 `json:"error,omitempty"`
}

// LiveRecords upgrades the request to a websocket and streams the caller's
// record snapshots: one frame immediately, then one per change. The
// subscription is released when the client disconnects. A server-side
// subscription failure sends a single error frame and closes; the client
// must reconnect to resubscribe.
func LiveRecords(c *gin.Context) {
	userUUID, ok := currentUserUUID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	snapshots, cancel := recordStore.Subscribe(userUUID)
	defer cancel()

	// Drain reads so disconnects are noticed and release the subscription.
	// clientGone closes before cancel so the loop below can tell a local
	// disconnect from a server-side subscription failure.
	clientGone := make(chan struct{})
	go func() {
		defer cancel()
		defer close(clientGone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for snapshot := range snapshots {
		if err := conn.WriteJSON(liveMessage{Type: "snapshot", Records: snapshot}); err != nil {
			return
		}
	}

	select {
	case <-clientGone:
		// The client hung up; nobody is listening for an error frame
	default:
		// The subscription died server-side: report once, then close
		conn.WriteJSON(liveMessage{
			Type:  "error",
			Error: "Live updates stopped. Reconnect to resubscribe.",
		})
	}
}
