// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// the framework-level settings (ports, TLS, log level); AppConfig is what
// Frolic itself needs.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token configuration
	TokenHashKey  string        // HMAC key, at least 32 bytes
	TokenBlockKey string        // AES key (16, 24 or 32 bytes); blank signs without encrypting
	TokenTTL      time.Duration // Token lifetime

	// Browser clients allowed to call the API ("*" for any)
	CORSOrigins []string

	// Login throttling
	LoginIPLimit    int // attempts per minute per client IP
	LoginEmailLimit int // attempts per five minutes per account

	// Request timeouts; zero keeps the built-in default
	TimeoutShort  time.Duration
	TimeoutMedium time.Duration
	TimeoutLong   time.Duration

	// Audit destinations per category: all, db, log or off
	AuditAuth  string
	AuditAdmin string

	// Admin bootstrap. When AdminEmail is set the account is created (or
	// promoted) on startup.
	AdminEmail    string
	AdminName     string
	AdminPassword string
}
