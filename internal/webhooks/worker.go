package webhooks

import (
    "bytes"
    "context"
    "net/http"
    "strconv"
    "time"

    "vrpreport/internal/metrics"
)

type Worker struct {
    Store       DeliveryStore
    HTTP        *http.Client
    Stop        chan struct{}
    MaxAttempts int
}

func NewWorker(s DeliveryStore, maxAttempts int) *Worker {
    if maxAttempts <= 0 {
        maxAttempts = 10
    }
    return &Worker{Store: s, HTTP: &http.Client{Timeout: 5 * time.Second}, Stop: make(chan struct{}), MaxAttempts: maxAttempts}
}

func (w *Worker) Start() {
    go func() {
        ticker := time.NewTicker(1 * time.Second)
        defer ticker.Stop()
        for {
            select {
            case <-w.Stop:
                return
            case <-ticker.C:
                w.processOnce()
            }
        }
    }()
}

func (w *Worker) processOnce() {
    ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
    defer cancel()
    items, err := w.Store.FetchDue(ctx, 50)
    if err != nil || len(items) == 0 {
        return
    }
    for _, it := range items {
        success := false
        next := time.Now().Add(nextBackoff(it.Attempts))
        req, _ := http.NewRequestWithContext(ctx, http.MethodPost, it.URL, bytes.NewReader(it.Payload))
        req.Header.Set("Content-Type", "application/json")
        req.Header.Set("X-Event-Type", it.EventType)
        if it.Secret != "" {
            req.Header.Set("X-Signature", SignHMAC(it.Secret, it.Payload))
        }
        start := time.Now()
        resp, err := w.HTTP.Do(req)
        latency := int(time.Since(start).Milliseconds())
        code := 0
        if err == nil && resp != nil {
            code = resp.StatusCode
            if resp.Body != nil {
                _ = resp.Body.Close()
            }
            if code >= 200 && code < 300 {
                success = true
            }
        }
        lastErr := ""
        if !success && err != nil {
            lastErr = err.Error()
        }
        status := "retry"
        if success {
            status = "success"
        }
        if !success && it.Attempts+1 >= w.MaxAttempts {
            status = "failed"
            metrics.WebhookDeliveries.WithLabelValues(it.EventType, status).Inc()
            metrics.WebhookLatency.WithLabelValues(it.EventType, strconv.Itoa(code)).Observe(float64(latency))
            _ = w.Store.Fail(ctx, it.ID, lastErr, code, latency)
            continue
        }
        metrics.WebhookDeliveries.WithLabelValues(it.EventType, status).Inc()
        metrics.WebhookLatency.WithLabelValues(it.EventType, strconv.Itoa(code)).Observe(float64(latency))
        _ = w.Store.Mark(ctx, it.ID, success, &next, lastErr, code, latency)
    }
}

func nextBackoff(attempts int) time.Duration {
    if attempts < 0 {
        attempts = 0
    }
    if attempts > 10 {
        attempts = 10
    }
    base := time.Second * time.Duration(1<<attempts)
    if base > time.Hour {
        base = time.Hour
    }
    return base
}
