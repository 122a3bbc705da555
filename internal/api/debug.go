package api

import (
    "net/http"
    "time"

    "vrpreport/internal/buildinfo"
)

// DebugInfoHandler handles GET /debug/info (admin only).
func (s *Server) DebugInfoHandler(w http.ResponseWriter, r *http.Request) {
    pr := s.getPrincipal(r)
    if !pr.IsAdmin() {
        writeProblem(w, http.StatusForbidden, "Forbidden", "admin required", r.URL.Path)
        return
    }
    writeJSON(w, http.StatusOK, map[string]any{
        "build": buildinfo.Info(),
        "time":  time.Now().UTC().Format(time.RFC3339),
        "config": map[string]any{
            "listenAddr":        s.Cfg.ListenAddr,
            "resultsPath":       s.Cfg.Data.ResultsPath,
            "bestKnownPath":     s.Cfg.Data.BestKnownPath,
            "validationPath":    s.Cfg.Data.ValidationPath,
            "solutionsDir":      s.Cfg.Data.SolutionsDir,
            "visualizationsDir": s.Cfg.Data.VisualizationsDir,
            "hasRedisUrl":       s.Cfg.RedisURL != "",
            "authMode":          s.Cfg.AuthMode,
            "rateRps":           s.Cfg.RateRPS,
            "rateBurst":         s.Cfg.RateBurst,
            "sessions":          s.Store.Sessions(r.Context()),
        },
    })
}
