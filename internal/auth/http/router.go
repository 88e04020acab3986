package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/authsvc/internal/auth/domain"
	"github.com/aussiebroadwan/authsvc/internal/auth/service"
	"github.com/aussiebroadwan/authsvc/internal/auth/store"
	"github.com/aussiebroadwan/authsvc/pkg/httpx"
	"github.com/aussiebroadwan/authsvc/pkg/slogx"

	_ "github.com/aussiebroadwan/authsvc/api/auth" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store       store.Store
	AuthService *service.AuthService
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Authentication Service API
//	@version		0.1.0
//	@description	Registers users, authenticates them by username or email and password, and issues bearer tokens.
//	@description
//	@description				Tokens are HS256 (HMAC-SHA256) JWTs signed with a secret shared by every instance.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/authsvc
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT bearer token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	r.Mux.Handle("POST /v1/auth/register", &RegisterHandler{AuthService: r.AuthService})
	r.Mux.Handle("POST /v1/auth/login", &LoginHandler{AuthService: r.AuthService})

	secured := httpx.Chain(&MeHandler{},
		httpx.AuthnMiddleware[domain.User](r.AuthService.VerifyToken, writeAuthnError),
	)
	r.Mux.Handle("GET /v1/auth/me", secured)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
