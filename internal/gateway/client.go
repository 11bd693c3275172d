package gateway

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const sendBufferSize = 256

// Client is one websocket connection. playerID and gameID are set by the
// join handshake; until then the client may only create or join games.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	playerID string
	gameID   string
}

func (c *Client) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			c.hub.logger.Debug("dropping malformed frame", zap.Error(err))
			c.reply(Reply{Type: TypeError, Error: "malformed frame"})
			continue
		}
		c.hub.handleEnvelope(c, env)
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

// reply queues an outbound frame, dropping it if the client is backed up.
func (c *Client) reply(r Reply) {
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}
