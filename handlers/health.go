package handlers

import (
	"encoding/json"
	"net/http"
	"time"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status" example:"healthy"`
	Service string `json:"service" example:"whatsapp-greenapi-mcp"`
	Time    string `json:"time" example:"2025-09-24T23:56:42+02:00"`
}

// HandleHealth handles health check requests. It reports process liveness
// only and does not call the gateway.
// @Summary Health check endpoint
// @Description Returns the current health status of the server
// @Tags System
// @Produce json
// @Success 200 {object} HealthResponse "Server is healthy"
// @Router /health [get]
func HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{
		Status:  "healthy",
		Service: "whatsapp-greenapi-mcp",
		Time:    time.Now().Format(time.RFC3339),
	})
}
