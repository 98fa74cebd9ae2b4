package handlers

import (
	"github.com/abrezinsky/scoreboard/internal/models"
	"github.com/abrezinsky/scoreboard/internal/scoring"
)

// FestivalResponse is the public festival header
type FestivalResponse struct {
	Name string `json:"name"`
}

// DiagnosticsResponse reports what an aggregation pass dropped
type DiagnosticsResponse struct {
	Scope       string              `json:"scope"`
	Clean       bool                `json:"clean"`
	Diagnostics scoring.Diagnostics `json:"diagnostics"`
}

// IDResponse is returned when a record is created
type IDResponse struct {
	ID models.ID `json:"id"`
}

// SettingsResponse is the response for settings
type SettingsResponse struct {
	FestivalName string `json:"festival_name"`
	PublicURL    string `json:"public_url"`
}
