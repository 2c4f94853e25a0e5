package ws

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vedran77/chirp/internal/domain"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"
)

type fakeTokens map[string]uuid.UUID

func (f fakeTokens) ParseToken(token string) (uuid.UUID, error) {
	id, ok := f[token]
	if !ok {
		return uuid.Nil, errors.New("bad token")
	}
	return id, nil
}

func dial(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws?token=" + token
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "") })
	return conn
}

func TestServeWS_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(ServeWS(NewHub(), fakeTokens{}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/ws?token=nope")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHub_PushesNotifications(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	srv := httptest.NewServer(ServeWS(hub, fakeTokens{"ana": userID}))
	defer srv.Close()

	conn := dial(t, srv, "ana")
	require.Eventually(t, func() bool { return hub.Connected(userID) == 1 }, 2*time.Second, 10*time.Millisecond)

	notifier := NewHubNotifier(hub)
	notifier.NotifyUser(userID, &domain.NotificationView{
		Notification: domain.Notification{ID: uuid.New(), RecipientID: userID, Kind: domain.NotificationFollow, Message: "bob started following you"},
		Actor:        domain.UserSummary{Username: "bob"},
	})
	// nobody listens for this one
	notifier.NotifyUser(uuid.New(), &domain.NotificationView{})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var evt Event
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	assert.Equal(t, EventTypeNotificationNew, evt.Type)
	assert.Contains(t, string(evt.Payload), "bob started following you")
}

func TestHub_PingPong(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	srv := httptest.NewServer(ServeWS(hub, fakeTokens{"ana": userID}))
	defer srv.Close()

	conn := dial(t, srv, "ana")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	require.NoError(t, wsjson.Write(ctx, conn, Event{Type: EventTypePing}))
	var evt Event
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	assert.Equal(t, EventTypePong, evt.Type)

	require.NoError(t, wsjson.Write(ctx, conn, Event{Type: "typing.start"}))
	require.NoError(t, wsjson.Read(ctx, conn, &evt))
	assert.Equal(t, EventTypeError, evt.Type)
}

func TestHub_RunClosesClients(t *testing.T) {
	hub := NewHub()
	userID := uuid.New()
	srv := httptest.NewServer(ServeWS(hub, fakeTokens{"ana": userID}))
	defer srv.Close()

	dial(t, srv, "ana")
	dial(t, srv, "ana")
	require.Eventually(t, func() bool { return hub.Connected(userID) == 2 }, 2*time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.Run(ctx) }()
	cancel()

	require.NoError(t, <-done)
	assert.Zero(t, hub.Connected(userID))
}
