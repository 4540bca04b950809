package Models

import (
	"gorm.io/gorm"
)

// AuditLog is one row per handled API request, written by the request-logging
// middleware and browsed by administrators through the logs endpoints.
type AuditLog struct {
	gorm.Model
	Method    string `json:"method" gorm:"size:10"`
	Path      string `json:"path" gorm:"size:255;index"`
	Status    int    `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	IP        string `json:"ip" gorm:"size:64"`
	UserAgent string `json:"user_agent" gorm:"size:512"`
	UserID    uint   `json:"user_id" gorm:"index"`
	Username  string `json:"username" gorm:"size:255"`
	Error     string `json:"error,omitempty" gorm:"size:512"`
}
