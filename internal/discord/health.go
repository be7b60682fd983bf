package discord

import (
	"encoding/json"
	"net/http"
	"time"
)

type healthStatus struct {
	Status           string `json:"status"`
	Uptime           string `json:"uptime"`
	DiscordConnected bool   `json:"discord_connected"`
	Timestamp        string `json:"timestamp"`
}

func (b *Bot) healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", b.handleHealth)
	return mux
}

func (b *Bot) handleHealth(w http.ResponseWriter, r *http.Request) {
	connected := b.session != nil && b.session.DataReady
	status := healthStatus{
		Status:           "healthy",
		Uptime:           time.Since(b.startTime).Round(time.Second).String(),
		DiscordConnected: connected,
		Timestamp:        time.Now().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if !connected {
		status.Status = "unhealthy"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := json.NewEncoder(w).Encode(status); err != nil {
		b.log.Warn().Err(err).Msg("failed to write health response")
	}
}
