// Package api implements the HTTP presentation layer over the reporting
// engine: selection parameters in, structured records out.
package api

import (
    "net/http"
    "strings"

    "vrpreport/internal/auth"
    "vrpreport/internal/config"
    "vrpreport/internal/report"
    "vrpreport/internal/store"
    "vrpreport/internal/webhooks"
)

type Server struct {
    Cfg    *config.Config
    Store  store.Store
    Queue  *webhooks.Queue
    Pub    *webhooks.Publisher
    Auth   *auth.Verifier
    Broker EventBroker
}

// NewServer wires the loader, session store, broker, and webhook queue.
// If cfg.RedisURL is unset, events stay in-process.
func NewServer(cfg *config.Config) (*Server, error) {
    loader := &report.Loader{
        ResultsPath:    cfg.Data.ResultsPath,
        BestKnownPath:  cfg.Data.BestKnownPath,
        ValidationPath: cfg.Data.ValidationPath,
    }
    var broker EventBroker
    if cfg.RedisURL != "" {
        if rb, err := NewRedisBroker(cfg.RedisURL); err == nil {
            broker = rb
        } else {
            broker = NewBroker()
        }
    } else {
        broker = NewBroker()
    }
    q := webhooks.NewQueue()
    return &Server{
        Cfg:    cfg,
        Store:  store.NewMemory(loader),
        Queue:  q,
        Pub:    webhooks.NewPublisher(q),
        Auth:   auth.NewVerifier(cfg.AuthMode, cfg.AuthHMACSecret),
        Broker: broker,
    }, nil
}

// getPrincipal extracts session and role from a bearer token, falling
// back to headers for dev use.
func (s *Server) getPrincipal(r *http.Request) auth.Principal {
    authz := r.Header.Get("Authorization")
    if strings.HasPrefix(strings.ToLower(authz), "bearer ") && s.Auth != nil {
        tok := strings.TrimSpace(authz[len("Bearer "):])
        if pr, err := s.Auth.Verify(tok); err == nil {
            if pr.Session == "" {
                pr.Session = defaultSession
            }
            return pr
        }
    }
    session := r.Header.Get("X-Session-Id")
    role := r.Header.Get("X-Role")
    if session == "" {
        session = defaultSession
    }
    if role == "" {
        role = "viewer"
    }
    return auth.Principal{Session: session, Role: role}
}

const defaultSession = "s_default"

// NewWebhookWorker creates a background worker for webhook deliveries.
func (s *Server) NewWebhookWorker() *webhooks.Worker {
    return webhooks.NewWorker(s.Queue, s.Cfg.WebhookMaxAttempts)
}
