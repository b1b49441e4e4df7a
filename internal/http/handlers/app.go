package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"crowdfund/internal/escrow"
)

// App bundles the escrow service for the HTTP handlers.
type App struct {
	Escrow *escrow.Service
	Log    zerolog.Logger
}

func NewApp(service *escrow.Service, log zerolog.Logger) *App {
	return &App{Escrow: service, Log: log}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, slug, msg string) {
	a.json(w, code, map[string]any{"error": slug, "message": msg})
}
