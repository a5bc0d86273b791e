// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for the event API.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_secret, etc.
//   - Environment variables: EVENTSPHERE_MONGO_URI, EVENTSPHERE_JWT_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "hokie_event_sphere", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	// Bearer-token auth
	{Name: "jwt_secret", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "HS256 secret for verifying bearer tokens"},
	{Name: "jwt_issuer", Default: "", Desc: "Expected token issuer (blank disables the issuer check)"},
	{Name: "auth_optional", Default: true, Desc: "Allow unauthenticated requests through the API (dev mode)"},

	// Email/SMTP configuration
	{Name: "mail_smtp_host", Default: "localhost", Desc: "SMTP server host"},
	{Name: "mail_smtp_port", Default: 1025, Desc: "SMTP server port"},
	{Name: "mail_smtp_user", Default: "", Desc: "SMTP username"},
	{Name: "mail_smtp_pass", Default: "", Desc: "SMTP password"},
	{Name: "mail_from", Default: "noreply@hokieeventsphere.com", Desc: "From email address"},
	{Name: "mail_from_name", Default: "Hokie Event Sphere", Desc: "From display name"},
	{Name: "mail_use_tls", Default: false, Desc: "Use STARTTLS when talking to the SMTP server"},

	// External collaborators
	{Name: "recommender_url", Default: "http://localhost:8000", Desc: "Recommendation scorer base URL"},
	{Name: "categorizer_url", Default: "http://localhost:8000", Desc: "Event categorizer base URL"},
	{Name: "geocoder_url", Default: "https://api.opencagedata.com", Desc: "Forward-geocoding base URL"},
	{Name: "geocoder_key", Default: "", Desc: "Geocoder API key"},
	{Name: "imagehost_upload_url", Default: "", Desc: "Image host upload endpoint"},
	{Name: "imagehost_key", Default: "", Desc: "Image host API key"},

	// Frontend integration
	{Name: "site_name", Default: "Hokie Event Sphere", Desc: "Display name used in confirmation email"},
	{Name: "frontend_url", Default: "http://localhost:3000", Desc: "Frontend base URL for links in email"},
	{Name: "cors_origins", Default: "http://localhost:3000", Desc: "Comma-separated allowed CORS origins ('*' for any)"},

	// Rate limiting
	{Name: "click_rate_limit", Default: 120, Desc: "Per-IP requests per minute on the click endpoints"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "EVENTSPHERE", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		JWTSecret:    appValues.String("jwt_secret"),
		JWTIssuer:    appValues.String("jwt_issuer"),
		AuthOptional: appValues.Bool("auth_optional"),

		MailSMTPHost: appValues.String("mail_smtp_host"),
		MailSMTPPort: appValues.Int("mail_smtp_port"),
		MailSMTPUser: appValues.String("mail_smtp_user"),
		MailSMTPPass: appValues.String("mail_smtp_pass"),
		MailFrom:     appValues.String("mail_from"),
		MailFromName: appValues.String("mail_from_name"),
		MailUseTLS:   appValues.Bool("mail_use_tls"),

		RecommenderURL:     appValues.String("recommender_url"),
		CategorizerURL:     appValues.String("categorizer_url"),
		GeocoderURL:        appValues.String("geocoder_url"),
		GeocoderKey:        appValues.String("geocoder_key"),
		ImageHostUploadURL: appValues.String("imagehost_upload_url"),
		ImageHostKey:       appValues.String("imagehost_key"),

		SiteName:    appValues.String("site_name"),
		FrontendURL: appValues.String("frontend_url"),
		CORSOrigins: appValues.String("cors_origins"),

		ClickRateLimit: appValues.Int("click_rate_limit"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation before any
// backend is touched.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if coreCfg.Env == "prod" {
		if appCfg.JWTSecret == "" || appCfg.JWTSecret == "dev-only-change-me-please-0123456789ABCDEF" {
			return fmt.Errorf("jwt_secret must be set to a strong value in production")
		}
		if appCfg.AuthOptional {
			logger.Warn("auth_optional is enabled in production; API routes accept unauthenticated requests")
		}
	}

	if appCfg.ClickRateLimit < 1 {
		return fmt.Errorf("click_rate_limit must be at least 1, got %d", appCfg.ClickRateLimit)
	}

	return nil
}
