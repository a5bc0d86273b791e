// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	clicksfeature "github.com/manojdintakurti/hokie-event-sphere/internal/app/features/clicks"
	eventsfeature "github.com/manojdintakurti/hokie-event-sphere/internal/app/features/events"
	healthfeature "github.com/manojdintakurti/hokie-event-sphere/internal/app/features/health"
	profilefeature "github.com/manojdintakurti/hokie-event-sphere/internal/app/features/profile"
	recommendfeature "github.com/manojdintakurti/hokie-event-sphere/internal/app/features/recommend"
	clickstore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/clicks"
	eventstore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/events"
	profilestore "github.com/manojdintakurti/hokie-event-sphere/internal/app/store/profiles"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/apiauth"
	"github.com/manojdintakurti/hokie-event-sphere/internal/app/system/mailer"
	"github.com/manojdintakurti/hokie-event-sphere/internal/platform/categorizer"
	"github.com/manojdintakurti/hokie-event-sphere/internal/platform/geocode"
	"github.com/manojdintakurti/hokie-event-sphere/internal/platform/imagehost"
	"github.com/manojdintakurti/hokie-event-sphere/internal/platform/recommender"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. It wires the stores and external clients into
// the feature handlers and mounts them on a chi router.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	// Stores
	events := eventstore.New(db)
	profiles := profilestore.New(db)
	clicks := clickstore.New(db)

	// External collaborators
	scorer := recommender.New(appCfg.RecommenderURL, logger)
	geocoder := geocode.New(appCfg.GeocoderURL, appCfg.GeocoderKey, logger)
	images := imagehost.New(appCfg.ImageHostUploadURL, appCfg.ImageHostKey, logger)
	categorize := categorizer.New(appCfg.CategorizerURL, logger)
	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
		UseTLS:   appCfg.MailUseTLS,
	}, logger)

	// Feature handlers
	eventsHandler := eventsfeature.NewHandler(events, profiles, images, categorize, mail,
		appCfg.SiteName, appCfg.FrontendURL, logger)
	clicksHandler := clicksfeature.NewHandler(clicks, logger)
	profileHandler := profilefeature.NewHandler(profiles, geocoder, logger)
	recommendHandler := recommendfeature.NewHandler(scorer, profiles, logger)
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)

	auth := apiauth.New(appCfg.JWTSecret, appCfg.JWTIssuer, appCfg.AuthOptional)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   splitOrigins(appCfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Operational endpoints stay outside the auth middleware.
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/events", func(api chi.Router) {
		api.Use(auth.Verify)

		// The click endpoints take the frontend's per-card traffic, so
		// they get their own per-IP limit.
		api.Group(func(g chi.Router) {
			g.Use(httprate.LimitByIP(appCfg.ClickRateLimit, time.Minute))
			g.Mount("/log-click", clicksfeature.Routes(clicksHandler))
		})

		api.Mount("/profile", profilefeature.Routes(profileHandler))
		api.Mount("/recommended", recommendfeature.Routes(recommendHandler))

		eventsfeature.Register(api, eventsHandler)
	})

	return r, nil
}

// splitOrigins parses the comma-separated origin list from config.
func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return origins
}
