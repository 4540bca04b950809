package middleware

import (
	"Frota/Models"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LogConfig holds configuration for the audit-logging middleware
type LogConfig struct {
	// Enable console logging
	Console bool
	// Persist audit rows to the database
	Database bool
	// Skip logging for specific path prefixes
	SkipPaths []string
}

// DefaultLogConfig returns the default audit-logging configuration
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Console:   true,
		Database:  true,
		SkipPaths: []string{"/health", "/metrics", "/api/logs"},
	}
}

// AuditLogger records every handled request as an AuditLog row, including the
// acting user when the auth middleware has resolved one.
func AuditLogger(config ...LogConfig) fiber.Handler {
	cfg := DefaultLogConfig()
	if len(config) > 0 {
		cfg = config[0]
	}

	return func(c *fiber.Ctx) error {
		start := time.Now()

		for _, skipPath := range cfg.SkipPaths {
			if c.Path() == skipPath {
				return c.Next()
			}
		}

		err := c.Next()

		latency := time.Since(start)

		// Get user from context if the auth middleware ran
		var userID uint
		var username string
		if user := c.Locals("user"); user != nil {
			if userStruct, ok := user.(Models.User); ok {
				userID = userStruct.ID
				username = userStruct.Name
			}
		}

		entry := Models.AuditLog{
			Method:    c.Method(),
			Path:      c.Path(),
			Status:    c.Response().StatusCode(),
			LatencyMs: latency.Milliseconds(),
			IP:        c.IP(),
			UserAgent: c.Get("User-Agent"),
			UserID:    userID,
			Username:  username,
		}
		if err != nil {
			entry.Error = err.Error()
		}

		if cfg.Console {
			log.Printf("[%s] %s %s %d %s %s user:%v(%s)",
				start.Format("2006-01-02 15:04:05"),
				entry.Method,
				entry.Path,
				entry.Status,
				latency,
				entry.IP,
				userID,
				username,
			)
		}

		if cfg.Database && Models.DB != nil {
			if dbErr := Models.DB.Create(&entry).Error; dbErr != nil {
				log.Printf("Error writing audit log: %v", dbErr)
			}
		}

		return err
	}
}
