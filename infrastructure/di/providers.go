// Package di wires the application dependencies with google/wire.
package di

import (
	"go.uber.org/zap"

	"obras-backend/application/ports"
	"obras-backend/application/services"
	"obras-backend/infrastructure/config"
	"obras-backend/infrastructure/notify"
	"obras-backend/infrastructure/upstream"
	"obras-backend/pkg/auth"
	"obras-backend/pkg/observability"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideMetrics creates the metrics collector.
func ProvideMetrics() *observability.Collector {
	return observability.NewCollector("obras")
}

// ProvideUpstreamClient creates the municipal API client.
func ProvideUpstreamClient(cfg *config.Config, metrics *observability.Collector, logger *zap.Logger) ports.UpstreamClient {
	clientCfg := upstream.DefaultConfig(cfg.Upstream.BaseURL)
	clientCfg.APIToken = cfg.Upstream.APIToken
	if cfg.Upstream.Timeout > 0 {
		clientCfg.RequestTimeout = cfg.Upstream.Timeout.Std()
	}
	return upstream.NewClient(clientCfg, metrics, logger)
}

// ProvideNotifier creates the notifier backing user-facing messages.
func ProvideNotifier(logger *zap.Logger) ports.Notifier {
	return notify.NewLogNotifier(logger)
}

// ProvideJWTValidator creates the bearer token validator.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.Auth.JWTSecret
	if secret == "" && !cfg.IsProduction() {
		secret = "development-secret-change-in-production"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.Auth.JWTIssuer,
		Audience:  cfg.Auth.JWTAudience,
	})
}

// ProvideProjectService creates the obra service.
func ProvideProjectService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.ProjectService {
	return services.NewProjectService(client, notifier, metrics, logger)
}

// ProvideUserService creates the usuário service.
func ProvideUserService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.UserService {
	return services.NewUserService(client, notifier, metrics, logger)
}

// ProvideCatalogService creates the registry service.
func ProvideCatalogService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.CatalogService {
	return services.NewCatalogService(client, notifier, metrics, logger)
}

// ProvideAssociationService creates the vínculo service.
func ProvideAssociationService(
	client ports.UpstreamClient,
	notifier ports.Notifier,
	metrics *observability.Collector,
	logger *zap.Logger,
) *services.AssociationService {
	return services.NewAssociationService(client, notifier, metrics, logger)
}
