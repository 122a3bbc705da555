// Package auth provides bearer-token verification for the reporting API.
package auth

import (
    "crypto/hmac"
    "crypto/sha256"
    "encoding/base64"
    "encoding/json"
    "errors"
    "strings"
)

// Verifier validates bearer tokens and extracts role/session claims.
// Supports modes: dev (no verify, token is "session:role") and hmac
// (HS256 JWT with a shared secret).
type Verifier struct {
    Mode         string
    HMACSecret   []byte
    RoleClaim    string
    SessionClaim string
}

type Principal struct {
    Session string
    Role    string // admin, viewer
}

// IsAdmin reports whether the principal has the admin role.
func (p Principal) IsAdmin() bool { return p.Role == "admin" }

func NewVerifier(mode, hmacSecret string) *Verifier {
    mode = strings.ToLower(strings.TrimSpace(mode))
    if mode == "" {
        mode = "dev"
    }
    return &Verifier{
        Mode:         mode,
        HMACSecret:   []byte(hmacSecret),
        RoleClaim:    "role",
        SessionClaim: "sub",
    }
}

func (v *Verifier) Verify(token string) (Principal, error) {
    if v.Mode == "dev" {
        // token format: session:role
        parts := strings.Split(token, ":")
        if len(parts) >= 2 {
            return Principal{Session: parts[0], Role: parts[1]}, nil
        }
        return Principal{}, errors.New("invalid dev token; expected session:role")
    }
    segs := strings.Split(token, ".")
    if len(segs) != 3 {
        return Principal{}, errors.New("invalid JWT")
    }
    payloadJSON, err := b64urlDecode(segs[1])
    if err != nil {
        return Principal{}, err
    }
    sig, err := b64urlDecode(segs[2])
    if err != nil {
        return Principal{}, err
    }
    mac := hmac.New(sha256.New, v.HMACSecret)
    mac.Write([]byte(segs[0] + "." + segs[1]))
    if !hmac.Equal(mac.Sum(nil), sig) {
        return Principal{}, errors.New("bad signature")
    }
    var claims map[string]any
    if err := json.Unmarshal(payloadJSON, &claims); err != nil {
        return Principal{}, err
    }
    pr := Principal{}
    if s, ok := claims[v.SessionClaim].(string); ok {
        pr.Session = s
    }
    if r, ok := claims[v.RoleClaim].(string); ok {
        pr.Role = r
    }
    if pr.Role == "" {
        return Principal{}, errors.New("missing role claim")
    }
    return pr, nil
}

func b64urlDecode(s string) ([]byte, error) {
    return base64.RawURLEncoding.DecodeString(s)
}
