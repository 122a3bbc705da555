// Package webhooks delivers refresh-notification events to subscribed
// URLs with HMAC signatures and exponential backoff.
package webhooks

import (
    "context"
    "errors"
    "sync"
    "time"

    "github.com/google/uuid"
    "vrpreport/internal/model"
)

var ErrNotFound = errors.New("not found")

// Delivery is one pending or settled webhook delivery.
type Delivery struct {
    ID             string
    SubscriptionID string
    EventType      string
    URL            string
    Secret         string
    Payload        []byte
    Status         string // pending, delivered, failed
    Attempts       int
}

// DeliveryStore is the queue interface the worker drains.
type DeliveryStore interface {
    Enqueue(ctx context.Context, subscriptionID, eventType, url, secret string, payload []byte) (string, error)
    FetchDue(ctx context.Context, limit int) ([]Delivery, error)
    Mark(ctx context.Context, id string, success bool, nextAttemptAt *time.Time, lastError string, responseCode int, latencyMs int) error
    Fail(ctx context.Context, id string, lastError string, responseCode int, latencyMs int) error
}

// Queue is the in-memory subscription registry and delivery queue.
type Queue struct {
    mu   sync.Mutex
    subs map[string]model.Subscription
    pend map[string]*queuedDelivery
}

type queuedDelivery struct {
    Delivery
    NextAttemptAt time.Time
    LastError     string
    ResponseCode  int
    LatencyMs     int
}

func NewQueue() *Queue {
    return &Queue{subs: map[string]model.Subscription{}, pend: map[string]*queuedDelivery{}}
}

func (q *Queue) CreateSubscription(req model.SubscriptionRequest) model.Subscription {
    sub := model.Subscription{ID: "sub_" + uuid.New().String(), URL: req.URL, Events: req.Events, Secret: req.Secret}
    q.mu.Lock()
    q.subs[sub.ID] = sub
    q.mu.Unlock()
    return sub
}

func (q *Queue) ListSubscriptions() []model.Subscription {
    q.mu.Lock()
    defer q.mu.Unlock()
    out := make([]model.Subscription, 0, len(q.subs))
    for _, s := range q.subs {
        s.Secret = ""
        out = append(out, s)
    }
    return out
}

func (q *Queue) DeleteSubscription(id string) error {
    q.mu.Lock()
    defer q.mu.Unlock()
    if _, ok := q.subs[id]; !ok {
        return ErrNotFound
    }
    delete(q.subs, id)
    return nil
}

func (q *Queue) subscriptionsForEvent(eventType string) []model.Subscription {
    q.mu.Lock()
    defer q.mu.Unlock()
    out := []model.Subscription{}
    for _, s := range q.subs {
        for _, e := range s.Events {
            if e == eventType || e == "*" {
                out = append(out, s)
                break
            }
        }
    }
    return out
}

func (q *Queue) Enqueue(_ context.Context, subscriptionID, eventType, url, secret string, payload []byte) (string, error) {
    id := "dlv_" + uuid.New().String()
    d := &queuedDelivery{
        Delivery:      Delivery{ID: id, SubscriptionID: subscriptionID, EventType: eventType, URL: url, Secret: secret, Payload: payload, Status: "pending"},
        NextAttemptAt: time.Now(),
    }
    q.mu.Lock()
    q.pend[id] = d
    q.mu.Unlock()
    return id, nil
}

func (q *Queue) FetchDue(_ context.Context, limit int) ([]Delivery, error) {
    q.mu.Lock()
    defer q.mu.Unlock()
    now := time.Now()
    out := []Delivery{}
    for _, d := range q.pend {
        if d.Status == "pending" && !d.NextAttemptAt.After(now) {
            out = append(out, d.Delivery)
            if len(out) >= limit {
                break
            }
        }
    }
    return out, nil
}

func (q *Queue) Mark(_ context.Context, id string, success bool, nextAttemptAt *time.Time, lastError string, responseCode int, latencyMs int) error {
    q.mu.Lock()
    defer q.mu.Unlock()
    d, ok := q.pend[id]
    if !ok {
        return ErrNotFound
    }
    d.Attempts++
    d.LastError = lastError
    d.ResponseCode = responseCode
    d.LatencyMs = latencyMs
    if success {
        d.Status = "delivered"
    } else if nextAttemptAt != nil {
        d.NextAttemptAt = *nextAttemptAt
    }
    return nil
}

func (q *Queue) Fail(_ context.Context, id string, lastError string, responseCode int, latencyMs int) error {
    q.mu.Lock()
    defer q.mu.Unlock()
    d, ok := q.pend[id]
    if !ok {
        return ErrNotFound
    }
    d.Attempts++
    d.Status = "failed"
    d.LastError = lastError
    d.ResponseCode = responseCode
    d.LatencyMs = latencyMs
    return nil
}
