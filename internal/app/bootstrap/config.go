// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/YatharthSanghavi/wt-project/internal/app/system/auditlog"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

const devTokenKey = "dev-only-change-me-please-0123456789ABCDEF"

// appConfigKeys defines the configuration keys for Frolic.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, token_ttl, etc.
//   - Environment variables: FROLIC_MONGO_URI, FROLIC_TOKEN_TTL, etc.
//   - Command-line flags: --mongo_uri, --token_ttl, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "frolic", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 5, Desc: "MongoDB min connection pool size (default: 5)"},

	{Name: "token_hash_key", Default: devTokenKey, Desc: "Bearer token signing key (at least 32 bytes; must be strong in production)"},
	{Name: "token_block_key", Default: "", Desc: "Bearer token encryption key (16, 24 or 32 bytes; blank disables encryption)"},
	{Name: "token_ttl", Default: "720h", Desc: "Bearer token lifetime (e.g., 24h, 720h)"},

	{Name: "cors_origins", Default: "*", Desc: "Comma-separated origins allowed to call the API"},

	{Name: "login_ip_limit", Default: 20, Desc: "Login attempts per minute per client IP"},
	{Name: "login_email_limit", Default: 10, Desc: "Login attempts per five minutes per account"},

	{Name: "timeout_short", Default: "", Desc: "Timeout for single-document reads (e.g., 5s)"},
	{Name: "timeout_medium", Default: "", Desc: "Timeout for writes and list queries (e.g., 10s)"},
	{Name: "timeout_long", Default: "", Desc: "Timeout for aggregations (e.g., 30s)"},

	{Name: "audit_auth", Default: "all", Desc: "Where sign-in audit events go: all, db, log or off"},
	{Name: "audit_admin", Default: "all", Desc: "Where account-administration audit events go: all, db, log or off"},

	{Name: "admin_email", Default: "", Desc: "Email of the admin user (created or promoted on startup)"},
	{Name: "admin_name", Default: "Administrator", Desc: "Display name for a newly created admin"},
	{Name: "admin_password", Default: "", Desc: "Password for a newly created admin"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig handles .env files, config files,
// environment variables (WAFFLE_* for core, FROLIC_* for app) and flags,
// merged with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "FROLIC", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		TokenHashKey:  appValues.String("token_hash_key"),
		TokenBlockKey: appValues.String("token_block_key"),
		TokenTTL:      appValues.Duration("token_ttl", 30*24*time.Hour),

		CORSOrigins: splitList(appValues.String("cors_origins")),

		LoginIPLimit:    appValues.Int("login_ip_limit"),
		LoginEmailLimit: appValues.Int("login_email_limit"),

		TimeoutShort:  appValues.Duration("timeout_short", 0),
		TimeoutMedium: appValues.Duration("timeout_medium", 0),
		TimeoutLong:   appValues.Duration("timeout_long", 0),

		AuditAuth:  appValues.String("audit_auth"),
		AuditAdmin: appValues.String("audit_admin"),

		AdminEmail:    appValues.String("admin_email"),
		AdminName:     appValues.String("admin_name"),
		AdminPassword: appValues.String("admin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Frolic validates the MongoDB URI and the token keys before attempting to
// connect, and refuses to run in production with the development key.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if len(appCfg.TokenHashKey) < 32 {
		return fmt.Errorf("token_hash_key must be at least 32 bytes")
	}
	switch len(appCfg.TokenBlockKey) {
	case 0, 16, 24, 32:
	default:
		return fmt.Errorf("token_block_key must be 16, 24 or 32 bytes")
	}
	if coreCfg.Env == "prod" && appCfg.TokenHashKey == devTokenKey {
		return fmt.Errorf("token_hash_key must be changed in production")
	}
	for name, mode := range map[string]string{"audit_auth": appCfg.AuditAuth, "audit_admin": appCfg.AuditAdmin} {
		if mode != "" && !auditlog.ValidMode(mode) {
			return fmt.Errorf("%s must be one of all, db, log, off", name)
		}
	}
	if appCfg.AdminEmail != "" && appCfg.AdminPassword == "" {
		logger.Warn("admin_email set without admin_password; an existing account can be promoted but none will be created")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
