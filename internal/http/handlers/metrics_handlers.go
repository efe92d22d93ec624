package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := metricsRepo.GetDashboardMetrics()
	if err != nil {
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(m); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}

func GetLogsHandler(w http.ResponseWriter, r *http.Request) {
	entries := []string{}
	if logs != nil {
		entries = logs.All()
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		log.Printf("Failed to write JSON response: %v", err)
	}
}
