package ws

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/metrics"
)

// Hub tracks the open connections of every user. A user may be connected
// from several tabs at once.
type Hub struct {
	// clients maps userID → that user's connections. Slices are never
	// mutated in place, only replaced under Compute.
	clients *xsync.MapOf[uuid.UUID, []*Client]
}

func NewHub() *Hub {
	return &Hub{clients: xsync.NewMapOf[uuid.UUID, []*Client]()}
}

// Run blocks until ctx is cancelled, then closes every connection.
func (h *Hub) Run(ctx context.Context) error {
	<-ctx.Done()

	h.clients.Range(func(_ uuid.UUID, clients []*Client) bool {
		for _, c := range clients {
			h.Unregister(c)
		}
		return true
	})
	logrus.Info("ws hub stopped")
	return nil
}

func (h *Hub) Register(c *Client) {
	h.clients.Compute(c.userID, func(old []*Client, _ bool) ([]*Client, bool) {
		return append(slices.Clone(old), c), false
	})
	metrics.WSConnections.Inc()
	logrus.WithField("user", c.userID).Debug("ws client connected")
}

// Unregister drops c and stops its pumps. Safe to call more than once.
func (h *Hub) Unregister(c *Client) {
	removed := false
	h.clients.Compute(c.userID, func(old []*Client, _ bool) ([]*Client, bool) {
		i := slices.Index(old, c)
		if i < 0 {
			return old, len(old) == 0
		}
		removed = true
		next := slices.Delete(slices.Clone(old), i, i+1)
		return next, len(next) == 0
	})
	if !removed {
		return
	}

	c.close()
	metrics.WSConnections.Dec()
	logrus.WithField("user", c.userID).Debug("ws client disconnected")
}

// Connected reports how many connections userID has open.
func (h *Hub) Connected(userID uuid.UUID) int {
	clients, _ := h.clients.Load(userID)
	return len(clients)
}

// SendToUser delivers event to every connection of userID. Clients whose
// buffer is full are dropped.
func (h *Hub) SendToUser(userID uuid.UUID, event *Event) {
	clients, ok := h.clients.Load(userID)
	if !ok {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		logrus.WithError(err).Error("ws hub: marshal event")
		return
	}

	for _, c := range clients {
		if !c.enqueue(data) {
			logrus.WithField("user", userID).Warn("ws client too slow, disconnecting")
			h.Unregister(c)
		}
	}
}
