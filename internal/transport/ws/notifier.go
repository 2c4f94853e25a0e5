package ws

import (
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/vedran77/chirp/internal/domain"
)

// HubNotifier implements service.Notifier using the WebSocket Hub.
type HubNotifier struct {
	hub *Hub
}

func NewHubNotifier(hub *Hub) *HubNotifier {
	return &HubNotifier{hub: hub}
}

func (n *HubNotifier) NotifyUser(userID uuid.UUID, v *domain.NotificationView) {
	evt, err := NewEvent(EventTypeNotificationNew, NotificationPayload{NotificationView: *v})
	if err != nil {
		logrus.WithError(err).Error("ws notifier: marshal error")
		return
	}
	n.hub.SendToUser(userID, evt)
}
