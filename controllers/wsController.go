package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"edrina-resto/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	EventOrderCreated = "order_created"
	EventOrderReady   = "order_ready"
	EventOrderPaid    = "order_paid"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
var clients = make(map[*websocket.Conn]bool)
var mu sync.Mutex

// OrderEvent is the payload pushed to connected dashboards so the kitchen
// sees new orders and servers see status changes without waiting for the
// next poll.
type OrderEvent struct {
	Event string       `json:"event"`
	Order models.Order `json:"order"`
}

func HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			fmt.Println("Error during connection upgrade:", err)
			return
		}
		defer conn.Close()

		mu.Lock()
		clients[conn] = true
		mu.Unlock()

		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				mu.Lock()
				delete(clients, conn)
				mu.Unlock()
				break
			}
		}
	}
}

func notifyOrderEvent(event string, order models.Order) {
	mu.Lock()
	defer mu.Unlock()

	messageBytes, err := json.Marshal(OrderEvent{Event: event, Order: order})
	if err != nil {
		fmt.Println("Error marshaling message:", err)
		return
	}
	for client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, messageBytes); err != nil {
			client.Close()
			delete(clients, client)
		}
	}
}
