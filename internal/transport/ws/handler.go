package ws

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"nhooyr.io/websocket"
)

// TokenParser turns an access token into the id of the user it was issued for.
type TokenParser interface {
	ParseToken(token string) (uuid.UUID, error)
}

// ServeWS returns an HTTP handler that upgrades to WebSocket.
// Auth is done via ?token=xxx query param (WebSocket can't send headers).
func ServeWS(hub *Hub, tokens TokenParser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.URL.Query().Get("token")
		if tokenStr == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		userID, err := tokens.ParseToken(tokenStr)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
			InsecureSkipVerify: true, // Allow any origin (dev mode)
		})
		if err != nil {
			logrus.WithError(err).Warn("ws: accept error")
			return
		}

		client := NewClient(hub, conn, userID)
		hub.Register(client)

		// the request context ends with this handler, the connection does not
		ctx := context.Background()
		go client.WritePump(ctx)
		go client.ReadPump(ctx)
	}
}
