package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"

	"github.com/janhq/translate-mock/internal/domain/account"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/handlers"
	"github.com/janhq/translate-mock/internal/interfaces/httpserver/middlewares"
	v2 "github.com/janhq/translate-mock/internal/interfaces/httpserver/routes/v2"
	v3 "github.com/janhq/translate-mock/internal/interfaces/httpserver/routes/v3"
)

// Provider holds all route providers.
type Provider struct {
	V2       *v2.Routes
	V3       *v3.Routes
	accounts *account.Registry
}

// NewProvider creates a new route provider.
func NewProvider(handlerProvider *handlers.Provider, accounts *account.Registry) *Provider {
	return &Provider{
		V2:       v2.NewRoutes(handlerProvider),
		V3:       v3.NewRoutes(handlerProvider),
		accounts: accounts,
	}
}

// Register registers all API routes on api behind credential checks.
func (p *Provider) Register(api *gin.RouterGroup) {
	auth := middlewares.Auth(p.accounts)
	p.V2.Register(api, auth)
	p.V3.Register(api, auth)
}

// RouteProvider provides the route providers for wire.
var RouteProvider = wire.NewSet(NewProvider)
