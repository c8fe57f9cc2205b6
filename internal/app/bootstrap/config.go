// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CampusHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_secret, etc.
//   - Environment variables: CAMPUSHUB_MONGO_URI, CAMPUSHUB_TOKEN_SECRET, etc.
//   - Command-line flags: --mongo_uri, --token_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "campushub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// Access token configuration
	{Name: "token_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Access token signing key (must be strong in production)"},
	{Name: "token_ttl", Default: "24h", Desc: "Access token lifetime (e.g., 24h, 30m)"},
	{Name: "cookie_domain", Default: "", Desc: "Access token cookie domain (blank means current host)"},

	// File storage configuration
	{Name: "storage_type", Default: "local", Desc: "Storage backend: 'local' or 's3'"},
	{Name: "storage_local_path", Default: "./uploads/materials", Desc: "Local storage path for uploaded files"},
	{Name: "storage_local_url", Default: "/files/materials", Desc: "URL prefix for serving local files"},
	{Name: "storage_s3_region", Default: "", Desc: "AWS region for S3"},
	{Name: "storage_s3_bucket", Default: "", Desc: "S3 bucket name"},

	// NSFW moderation configuration
	{Name: "moderation_url", Default: "", Desc: "Moderation API base URL (blank disables the content gate)"},
	{Name: "moderation_api_key", Default: "", Desc: "Moderation API key"},
	{Name: "moderation_model", Default: "gemini-1.5-flash", Desc: "Moderation model name"},
	{Name: "moderation_fail_closed", Default: false, Desc: "Reject content when the moderation API is unreachable"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// WAFFLE's config.LoadWithAppConfig merges flags, environment variables
// (WAFFLE_* for core, CAMPUSHUB_* for app), config files, and defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAMPUSHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenSecret:  appValues.String("token_secret"),
		TokenTTL:     appValues.Duration("token_ttl", 24*time.Hour),
		CookieDomain: appValues.String("cookie_domain"),

		StorageType:      appValues.String("storage_type"),
		StorageLocalPath: appValues.String("storage_local_path"),
		StorageLocalURL:  appValues.String("storage_local_url"),
		StorageS3Region:  appValues.String("storage_s3_region"),
		StorageS3Bucket:  appValues.String("storage_s3_bucket"),

		ModerationURL:        appValues.String("moderation_url"),
		ModerationAPIKey:     appValues.String("moderation_api_key"),
		ModerationModel:      appValues.String("moderation_model"),
		ModerationFailClosed: appValues.Bool("moderation_fail_closed"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// CampusHub validates the MongoDB URI format to catch configuration
// errors early, before attempting to connect, and checks that an S3
// storage selection actually names a bucket and region.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	switch appCfg.StorageType {
	case "local":
	case "s3":
		if appCfg.StorageS3Bucket == "" || appCfg.StorageS3Region == "" {
			return fmt.Errorf("storage_type 's3' requires storage_s3_bucket and storage_s3_region")
		}
	default:
		return fmt.Errorf("unknown storage_type %q (expected 'local' or 's3')", appCfg.StorageType)
	}

	if appCfg.ModerationURL != "" && appCfg.ModerationAPIKey == "" {
		logger.Warn("moderation_url set without moderation_api_key")
	}

	return nil
}
