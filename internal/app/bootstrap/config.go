// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"

	"github.com/dalemusser/cyberhub/internal/app/news"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CyberHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: CYBERHUB_MONGO_URI, CYBERHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "cyber_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "cyberhub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "csrf_key", Default: "dev-only-csrf-key-0123456789ABCD", Desc: "CSRF signing key, 32 bytes"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks and links"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// News ingestion settings
	{Name: "news_feeds", Default: "", Desc: "Comma-separated \"Name|URL\" feed overrides (blank means built-in feeds)"},
	{Name: "news_per_feed_limit", Default: news.DefaultPerFeedLimit, Desc: "Stories kept per feed per refresh"},
	{Name: "news_cooldown", Default: "168h", Desc: "Minimum gap between scheduled refreshes (e.g. 168h for weekly)"},
	{Name: "news_refresh_timezone", Default: "America/New_York", Desc: "IANA timezone the refresh schedule runs in"},
	{Name: "news_refresh_weekday", Default: 1, Desc: "Refresh weekday, 0 = Sunday"},
	{Name: "news_refresh_hour", Default: 6, Desc: "Refresh hour, 0-23 local to news_refresh_timezone"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific to
// this app. WAFFLE's config.LoadWithAppConfig merges .env files, config
// files, environment variables (WAFFLE_* for core, CYBERHUB_* for app),
// and command-line flags, with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CYBERHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		CSRFKey:       appValues.String("csrf_key"),

		BaseURL: appValues.String("base_url"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		NewsFeeds:           splitList(appValues.String("news_feeds")),
		NewsPerFeedLimit:    appValues.Int("news_per_feed_limit"),
		NewsCooldown:        appValues.Duration("news_cooldown", news.DefaultCooldown),
		NewsRefreshTimezone: appValues.String("news_refresh_timezone"),
		NewsRefreshWeekday:  appValues.Int("news_refresh_weekday"),
		NewsRefreshHour:     appValues.Int("news_refresh_hour"),
	}

	return coreCfg, appCfg, nil
}

// splitList parses a comma-separated config value into its non-empty parts.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ValidateConfig performs app-specific config validation.
//
// CyberHub validates the MongoDB URI format, the CSRF key length, and the
// news schedule so configuration errors surface before anything connects.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}
	if len(appCfg.CSRFKey) != 32 {
		return fmt.Errorf("csrf_key must be exactly 32 bytes, got %d", len(appCfg.CSRFKey))
	}
	if _, err := news.ParseSources(appCfg.NewsFeeds); err != nil {
		return fmt.Errorf("invalid news_feeds: %w", err)
	}
	if appCfg.NewsPerFeedLimit < 1 {
		return fmt.Errorf("news_per_feed_limit must be at least 1, got %d", appCfg.NewsPerFeedLimit)
	}
	if appCfg.NewsRefreshWeekday < 0 || appCfg.NewsRefreshWeekday > 6 {
		return fmt.Errorf("news_refresh_weekday must be 0-6, got %d", appCfg.NewsRefreshWeekday)
	}
	if appCfg.NewsRefreshHour < 0 || appCfg.NewsRefreshHour > 23 {
		return fmt.Errorf("news_refresh_hour must be 0-23, got %d", appCfg.NewsRefreshHour)
	}
	if appCfg.GoogleClientID == "" && appCfg.GoogleClientSecret != "" {
		return fmt.Errorf("google_client_secret is set but google_client_id is empty")
	}
	return nil
}
