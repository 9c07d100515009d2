package server

import (
	"net/http"

	"chart-challenge/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// Hub Pattern Implementation
// -----------------------------------------------------------------------------

// handleWebsockets is the main Hub loop
func (s *APIServer) handleWebsockets() {
	for {
		select {
		case <-s.done:
			return

		case client := <-s.register:
			s.stateMutex.Lock()
			s.clients[client] = struct{}{}
			latest := s.latestDaily
			s.stateMutex.Unlock()

			// Send the current daily challenge on connect
			if latest != nil {
				client.send <- latest
			}

		case client := <-s.unregister:
			s.stateMutex.Lock()
			if _, ok := s.clients[client]; ok {
				delete(s.clients, client)
				close(client.send)
			}
			s.stateMutex.Unlock()

		case challenge := <-s.broadcast:
			// Update state and broadcast
			s.stateMutex.Lock()
			s.latestDaily = challenge

			// Broadcast to all clients
			for client := range s.clients {
				select {
				case client.send <- challenge:
					// Message sent successfully
				default:
					// Client too slow, disconnect to prevent Hub blocking
					delete(s.clients, client)
					close(client.send)
				}
			}
			s.stateMutex.Unlock()
		}
	}
}

// -----------------------------------------------------------------------------
// Data Exchange Interface Implementation
// -----------------------------------------------------------------------------

// BroadcastDaily - queues a regenerated daily challenge for all clients
func (s *APIServer) BroadcastDaily(challenge *models.MDailyChallenge) {
	if challenge == nil {
		s.Logger.Warning("BroadcastDaily called with nil challenge, ignoring")
		return
	}

	// Non-blocking send; the buffer absorbs scheduler bursts and a
	// stale challenge is superseded by the next one anyway.
	select {
	case s.broadcast <- challenge:
	default:
		s.Logger.Warning("Broadcast queue full, dropping daily challenge")
	}
}

// -----------------------------------------------------------------------------
// WebSocket Handlers
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// -----------------------------------------------------------------------------

func (s *APIServer) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}

	client := &Client{
		hub:  s,
		conn: conn,
		// Buffered channel to prevent blocking the Hub loop
		send: make(chan *models.MDailyChallenge, 16),
	}

	s.register <- client

	// Start goroutines for reading/writing
	go client.writePump()
	go client.readPump()
}
