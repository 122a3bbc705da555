package api

import (
    "encoding/json"
    "fmt"
    "net/http"
    "time"
)

// EventsStreamHandler handles GET /v1/events/stream: an SSE feed of
// refresh events for connected dashboards.
func (s *Server) EventsStreamHandler(w http.ResponseWriter, r *http.Request) {
    if r.Method != http.MethodGet {
        w.WriteHeader(http.StatusMethodNotAllowed)
        return
    }
    flusher, ok := w.(http.Flusher)
    if !ok {
        writeProblem(w, http.StatusInternalServerError, "Streaming unsupported", "", r.URL.Path)
        return
    }
    w.Header().Set("Content-Type", "text/event-stream")
    w.Header().Set("Cache-Control", "no-cache")
    w.Header().Set("Connection", "keep-alive")
    w.WriteHeader(http.StatusOK)
    flusher.Flush()

    ch := s.Broker.Subscribe()
    defer s.Broker.Unsubscribe(ch)

    heartbeat := time.NewTicker(15 * time.Second)
    defer heartbeat.Stop()

    for {
        select {
        case <-r.Context().Done():
            return
        case <-heartbeat.C:
            _, _ = fmt.Fprint(w, ": ping\n\n")
            flusher.Flush()
        case evt, ok := <-ch:
            if !ok {
                return
            }
            data, _ := json.Marshal(evt.Data)
            _, _ = fmt.Fprintf(w, "event: %s\ndata: %s\n\n", evt.Type, data)
            flusher.Flush()
        }
    }
}
