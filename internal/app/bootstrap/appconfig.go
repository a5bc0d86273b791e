// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (ports, TLS, log
// level, request limits); AppConfig is everything specific to this
// application: the Mongo connection, the external collaborators, and the
// knobs for auth, mail, and rate limiting.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer-token auth (tokens are minted by the frontend's identity
	// provider; this service only verifies them)
	JWTSecret    string
	JWTIssuer    string
	AuthOptional bool // dev mode: requests without a token pass through

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string
	MailUseTLS   bool

	// External collaborators
	RecommenderURL     string // recommendation scorer base URL
	CategorizerURL     string // event categorizer base URL
	GeocoderURL        string // forward-geocoding base URL
	GeocoderKey        string
	ImageHostUploadURL string // image host upload endpoint
	ImageHostKey       string

	// Frontend integration
	SiteName    string // display name used in email
	FrontendURL string // base URL for event links in email
	CORSOrigins string // comma-separated allowed origins

	// Click endpoint rate limit (requests per minute per IP)
	ClickRateLimit int
}
