package api

import (
    "encoding/json"
    "net/http"
)

// problemType tags every error body emitted by the reporting API.
const problemType = "vrpreport:problem"

// Problem is the RFC7807 problem-details body used for all non-2xx
// responses. Instance carries the request path that failed.
type Problem struct {
    Type     string `json:"type"`
    Title    string `json:"title"`
    Status   int    `json:"status"`
    Detail   string `json:"detail,omitempty"`
    Instance string `json:"instance,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    _ = json.NewEncoder(w).Encode(v)
}

func writeProblem(w http.ResponseWriter, status int, title, detail, instance string) {
    writeJSON(w, status, Problem{
        Type:     problemType,
        Title:    title,
        Status:   status,
        Detail:   detail,
        Instance: instance,
    })
}
