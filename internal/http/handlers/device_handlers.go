package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/rfid-pos/internal/device"
)

const defaultBaudRate = 9600

func DeviceConnectHandler(w http.ResponseWriter, r *http.Request) {
	var req DeviceConnectRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Port) == "" {
		http.Error(w, "port is required", http.StatusBadRequest)
		return
	}
	baud := req.Baud
	if baud == 0 {
		baud = defaultBaudRate
	}

	if err := channel.Connect(req.Port, baud); err != nil {
		if errors.Is(err, device.ErrUnavailable) {
			http.Error(w, "serial device unavailable", http.StatusConflict)
			return
		}
		http.Error(w, "could not connect to serial device", http.StatusInternalServerError)
		return
	}

	if logs != nil {
		logs.Addf("Serial reader connected on %s", req.Port)
	}
	writeJSON(w, http.StatusOK, DeviceStatusResponse{Connected: true})
}

func DeviceDisconnectHandler(w http.ResponseWriter, r *http.Request) {
	channel.Disconnect()
	if logs != nil {
		logs.Add("Serial reader disconnected")
	}
	w.WriteHeader(http.StatusNoContent)
}

func DeviceStatusHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(DeviceStatusResponse{Connected: channel.Connected()})
}
