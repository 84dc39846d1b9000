// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS,
// logging, CORS, timeouts). AppConfig is everything specific to CyberHub:
// database targets, session settings, OAuth credentials, and the news
// ingestion schedule.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Session management configuration
	SessionKey    string // secret key for signing session cookies (must be strong in production)
	SessionName   string // cookie name for sessions
	SessionDomain string // cookie domain (blank means current host)

	// CSRF protection
	CSRFKey string // 32-byte secret for CSRF token signing

	// Base URL for OAuth callbacks and links in rendered pages
	BaseURL string

	// Google OAuth configuration (sign-in is email-only when unset)
	GoogleClientID     string
	GoogleClientSecret string

	// News ingestion configuration
	NewsFeeds           []string      // "Name|URL" overrides; empty means built-in feeds
	NewsPerFeedLimit    int           // stories kept per feed per refresh
	NewsCooldown        time.Duration // minimum gap between scheduled refreshes
	NewsRefreshTimezone string        // IANA name the schedule is evaluated in
	NewsRefreshWeekday  int           // 0 = Sunday
	NewsRefreshHour     int           // 0-23 local to NewsRefreshTimezone
}
