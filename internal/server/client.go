package server

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"

	"buildbrawl/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

// Client is one connected websocket player.
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
	room *Room
}

// clientMessage is the inbound wire shape: a join claim or a tick input.
type clientMessage struct {
	Type     string      `json:"type"`
	ClientID string      `json:"clientId"`
	Input    *game.Input `json:"input"`
}

func newClient(conn *websocket.Conn, room *Room) *Client {
	return &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
		room: room,
	}
}

// readPump reads, validates and routes messages from the client until the
// connection drops.
func (c *Client) readPump() {
	defer func() {
		c.Conn.Close()
		c.room.removeClient(c)
	}()

	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket error: %v", err)
			}
			return
		}

		if err := validateClientMessage(raw); err != nil {
			log.Printf("rejected message from %q: %v", c.ID, err)
			continue
		}

		var msg clientMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Printf("unmarshal message from %q: %v", c.ID, err)
			continue
		}

		switch msg.Type {
		case "join":
			c.room.joinClient(c, msg.ClientID)
		case "input":
			if msg.Input != nil && c.ID != "" {
				in := *msg.Input
				in.ClientID = c.ID
				c.room.pushInput(c.ID, in)
			}
		}
	}
}

// writePump forwards broadcast frames to the connection and keeps the
// connection alive with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
				log.Printf("write error: %v", err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
