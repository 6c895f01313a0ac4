package controllers

import (
	"encoding/json"
	"net/http"
)

// maxUploadSize bounds multipart request bodies (10 MiB).
const maxUploadSize = 10 << 20

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendMsg(w http.ResponseWriter, status int, msg string) {
	sendJSON(w, status, map[string]string{"msg": msg})
}
