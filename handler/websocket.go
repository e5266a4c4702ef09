package handler

import (
	"time"

	"restaurant_manager/logger"
	"restaurant_manager/realtime"

	"github.com/gofiber/contrib/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

// Hub is the local room registry dashboard sockets join.
var Hub = realtime.DefaultHub

// WebSocketConnection streams a restaurant's events to one dashboard client until it disconnects.
// middleware.WebsocketAuth has already checked ownership of :restaurantId.
func WebSocketConnection(c *websocket.Conn) {
	restaurantID, _ := c.Locals("restaurantId").(uint)
	log := logger.WithRestaurant(restaurantID)

	sub := Hub.Subscribe(restaurantID)
	defer Hub.Unsubscribe(sub)
	defer c.Close()

	// a failed read means the client went away
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	_ = c.WriteJSON(map[string]any{"type": "connected", "restaurantId": restaurantID})
	log.Debug().Msg("dashboard socket connected")

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-done:
			log.Debug().Msg("dashboard socket closed")
			return
		case e, ok := <-sub.Events():
			if !ok {
				return
			}
			_ = c.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.WriteJSON(e); err != nil {
				return
			}
		case <-ping.C:
			_ = c.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
