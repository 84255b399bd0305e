package models

// Notification levels
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notification is a transient, non-blocking message for the user.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
