package webhooks

import (
    "context"
    "encoding/json"
    "fmt"
    "time"
)

type Publisher struct {
    Queue *Queue
}

func NewPublisher(q *Queue) *Publisher {
    return &Publisher{Queue: q}
}

// Emit enqueues an event for every subscription matching the event type.
func (p *Publisher) Emit(ctx context.Context, eventType string, data any) {
    subs := p.Queue.subscriptionsForEvent(eventType)
    if len(subs) == 0 {
        return
    }
    payload := map[string]any{
        "id":   fmt.Sprintf("evt_%d", time.Now().UnixNano()),
        "type": eventType,
        "ts":   time.Now().UTC().Format(time.RFC3339),
        "data": data,
    }
    body, _ := json.Marshal(payload)
    for _, s := range subs {
        _, _ = p.Queue.Enqueue(ctx, s.ID, eventType, s.URL, s.Secret, body)
    }
}
