// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration; WAFFLE's CoreConfig
// handles framework-level settings like ports, TLS, and log level.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Access token configuration
	TokenSecret  string        // HMAC secret for signing access tokens (must be strong in production)
	TokenTTL     time.Duration // Access token lifetime
	CookieDomain string        // Cookie domain (blank means current host)

	// File storage configuration
	StorageType      string // Storage backend: "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads/materials")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files/materials")
	StorageS3Region  string // AWS region (only used if StorageType is "s3")
	StorageS3Bucket  string // S3 bucket name

	// NSFW moderation configuration
	ModerationURL        string // Classifier API base URL (blank disables the gate)
	ModerationAPIKey     string // Classifier API key
	ModerationModel      string // Classifier model name
	ModerationFailClosed bool   // Reject content when the classifier is unreachable
}
