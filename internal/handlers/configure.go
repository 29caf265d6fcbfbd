package handlers

import (
	"os"

	"github.com/taskboard-dev/taskboard/internal/config"
)

var (
	Domain = os.Getenv("DOMAIN")

	upcomingWindowDays = 7
	allowedOrigins     []string
)

// Configure wires runtime settings into the handler package. Called once at
// startup, before the router begins serving.
func Configure(cfg *config.Config) {
	upcomingWindowDays = cfg.UpcomingWindowDays
	allowedOrigins = cfg.AllowedOrigins
}
