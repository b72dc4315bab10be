//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"
	"go.uber.org/zap"

	"obras-backend/application/services"
	"obras-backend/infrastructure/config"
	"obras-backend/pkg/auth"
	"obras-backend/pkg/observability"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *zap.Logger
	Metrics            *observability.Collector
	JWTValidator       *auth.JWTValidator
	ProjectService     *services.ProjectService
	UserService        *services.UserService
	CatalogService     *services.CatalogService
	AssociationService *services.AssociationService
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideMetrics,
	ProvideUpstreamClient,
	ProvideNotifier,
	ProvideJWTValidator,
	ProvideProjectService,
	ProvideUserService,
	ProvideCatalogService,
	ProvideAssociationService,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
