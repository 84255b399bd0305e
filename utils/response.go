package utils

import (
	"encoding/json"
	"log"
	"net/http"

	"go-storefront/models"
)

// ErrorResponse is the body of every error answer
type ErrorResponse struct {
	Error        string               `json:"error"`
	Details      any                  `json:"details,omitempty"`
	Notification *models.Notification `json:"notification,omitempty"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Printf("write response: %v", err)
	}
}

func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}

// JSONNotify answers with an error carrying a user-facing notification.
func JSONNotify(w http.ResponseWriter, status int, level, msg string, details any) {
	JSON(w, status, ErrorResponse{
		Error:        msg,
		Details:      details,
		Notification: &models.Notification{Level: level, Message: msg},
	})
}
