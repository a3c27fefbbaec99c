// Package websocket implements the real-time observer fanout on
// gorilla/websocket.
package websocket

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/guipratiko/onlyhelper-back/internal/core/domain"
	"github.com/guipratiko/onlyhelper-back/internal/core/ports"
	"github.com/guipratiko/onlyhelper-back/internal/infrastructure/metrics"
)

// Hub is the process-wide registry of connected observers. All
// membership changes flow through its channels so the run loop is the
// only goroutine touching the client set.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	logger     *slog.Logger
}

var _ ports.EventPublisher = (*Hub)(nil)

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 256),
		logger:     logger,
	}
}

// Run owns the client set until the context is cancelled. A slow
// observer whose send buffer is full is dropped rather than allowed to
// stall delivery to the others.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = struct{}{}
			metrics.ObserverConnections.Inc()
			h.logger.Debug("observer connected", slog.Int("observers", len(h.clients)))

		case client := <-h.unregister:
			h.drop(client)

		case payload := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- payload:
				default:
					h.drop(client)
				}
			}

		case <-ctx.Done():
			for client := range h.clients {
				h.drop(client)
			}
			return
		}
	}
}

func (h *Hub) drop(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	client.close()
	metrics.ObserverConnections.Dec()
	h.logger.Debug("observer disconnected", slog.Int("observers", len(h.clients)))
}

// Publish serializes the event and hands it to the run loop. Delivery
// is best effort: a failure never propagates to the caller.
func (h *Hub) Publish(event domain.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("failed to serialize event",
			slog.String("event", event.Name),
			slog.String("error", err.Error()))
		return
	}

	metrics.EventsBroadcast.WithLabelValues(event.Name).Inc()

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast buffer full, event dropped",
			slog.String("event", event.Name))
	}
}
