package api

import (
    "net/http"
    "time"

    "github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(_ *http.Request) bool { return true }}

type wsMessage struct {
    Type string         `json:"type"`
    Data map[string]any `json:"data,omitempty"`
}

// EventsWSHandler handles GET /v1/events/ws: the WebSocket variant of the
// refresh event feed.
func (s *Server) EventsWSHandler(w http.ResponseWriter, r *http.Request) {
    conn, err := upgrader.Upgrade(w, r, nil)
    if err != nil {
        return
    }
    defer func() { _ = conn.Close() }()

    ch := s.Broker.Subscribe()
    defer s.Broker.Unsubscribe(ch)

    conn.SetReadLimit(1 << 16)
    _ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
    conn.SetPongHandler(func(string) error {
        _ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
        return nil
    })

    done := make(chan struct{})
    // Read loop only resets deadlines and detects close.
    go func() {
        defer close(done)
        for {
            if _, _, err := conn.ReadMessage(); err != nil {
                return
            }
        }
    }()

    keepalive := time.NewTicker(20 * time.Second)
    defer keepalive.Stop()

    for {
        select {
        case <-done:
            return
        case <-r.Context().Done():
            return
        case <-keepalive.C:
            if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
                return
            }
        case evt, ok := <-ch:
            if !ok {
                return
            }
            if err := conn.WriteJSON(wsMessage{Type: evt.Type, Data: evt.Data}); err != nil {
                return
            }
        }
    }
}
