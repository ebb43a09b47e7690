// Package fight drives concurrent comparison batches between this engine's
// suggested calls and a reference bidder reachable over a WebSocket
// connection, tallying agreement and disagreement per board.
package fight

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Request asks the reference bidder for its call on a board identifier.
type Request struct {
	Identifier string `json:"identifier"`
}

// Response is the reference bidder's answer.
type Response struct {
	Identifier string `json:"identifier"`
	Call       string `json:"call"`
	Error      string `json:"error,omitempty"`
}

// ReferenceClient is a WebSocket client to an external bidding oracle used
// only for A/B comparison, never for production suggestions.
type ReferenceClient struct {
	serverURL string
	conn      *websocket.Conn
	logger    *charmlog.Logger
	mu        sync.Mutex
}

// NewReferenceClient builds a client for the given server URL.
func NewReferenceClient(serverURL string, logger *charmlog.Logger) *ReferenceClient {
	return &ReferenceClient{serverURL: serverURL, logger: logger}
}

// Connect dials the reference bidder's WebSocket endpoint.
func (c *ReferenceClient) Connect() error {
	u, err := url.Parse(c.serverURL)
	if err != nil {
		return fmt.Errorf("fight: invalid reference server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}

	c.logger.Info("connecting to reference bidder", "url", u.String())
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("fight: dialing reference bidder: %w", err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	return nil
}

// Close closes the WebSocket connection.
func (c *ReferenceClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return c.conn.Close()
}

// Ask sends a board identifier and blocks for the reference bidder's call.
// The client mutex is held for the whole request/response round trip, so
// concurrent callers serialize on the connection and each reads its own
// response.
func (c *ReferenceClient) Ask(identifier string, timeout time.Duration) (Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	conn := c.conn
	if conn == nil {
		return Response{}, fmt.Errorf("fight: not connected")
	}

	if err := conn.WriteJSON(Request{Identifier: identifier}); err != nil {
		return Response{}, fmt.Errorf("fight: sending request: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(timeout))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err != nil {
		return Response{}, fmt.Errorf("fight: reading response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, fmt.Errorf("fight: decoding response: %w", err)
	}
	if resp.Error != "" {
		return Response{}, fmt.Errorf("fight: reference bidder error: %s", resp.Error)
	}
	return resp, nil
}
