package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/staffdesk/internal/auth/domain"
	"github.com/aussiebroadwan/staffdesk/internal/auth/service"
	"github.com/aussiebroadwan/staffdesk/internal/auth/store"
	"github.com/aussiebroadwan/staffdesk/pkg/httpx"
	"github.com/aussiebroadwan/staffdesk/pkg/jwtx"
	"github.com/aussiebroadwan/staffdesk/pkg/slogx"

	_ "github.com/aussiebroadwan/staffdesk/api/auth" // Swagger docs
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RouterOptions carries the transport settings of a Router.
type RouterOptions struct {
	BuildVersion   string
	RequestTimeout time.Duration
	AllowedOrigins []string
	RateLimits     httpx.RateLimitProfiles
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	limits       httpx.RateLimitProfiles
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	TokenService     *service.TokenService
	UserService      *service.UserService
	ProfileService   *service.ProfileService
	PartnerService   *service.PartnerService
	MFAService       *service.MFAService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	keys *jwtx.KeySet,
	verifier jwtx.Verifier,
	st store.Store,
	logger *slog.Logger,
	opts RouterOptions,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		verifier:     verifier,
		buildVersion: opts.BuildVersion,
		startTime:    time.Now(),
		limits:       opts.RateLimits,
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recover(),
		httpx.Timeout(opts.RequestTimeout),
	}
	if len(opts.AllowedOrigins) > 0 {
		r.middlewares = append(r.middlewares, cors.Handler(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", slogx.RequestIDHeader},
			ExposedHeaders:   []string{slogx.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerProfile()
	r.registerPartners()
	r.registerMFA()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Staffdesk Authentication Service API
//	@version		0.1.0
//	@description	User management and authentication for staffdesk: login, password recovery, staff user administration, profiles and partners.
//	@description
//	@description				Access tokens are EdDSA or ES256 signed JWTs and can be verified using the JWKS endpoint.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/staffdesk
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
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authenticated verifies the bearer token, loads the caller and applies the
// given requirements before h.
func (r *Router) authenticated(h http.HandlerFunc, limit httpx.RateLimitConfig, reqs ...service.Requirement) http.Handler {
	mws := []httpx.Middleware{
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(limit),
		resolveIdentity(r.UserService),
	}
	if len(reqs) > 0 {
		mws = append(mws, requireAll(reqs...))
	}
	return httpx.Chain(h, mws...)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService:  r.AuthService,
		TokenService: r.TokenService,
		UserService:  r.UserService,
	}

	// Login is limited per IP and per email to slow credential stuffing.
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.limits.Strict, "email"),
		),
	)
	r.Mux.Handle("POST /auth/token/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
	r.Mux.Handle("POST /auth/reset-password",
		httpx.Chain(http.HandlerFunc(h.HandleRequestReset),
			httpx.RateLimitByIPAndJSONField(r.limits.Strict, "email"),
		),
	)
	r.Mux.Handle("POST /auth/reset-password/complete",
		httpx.Chain(http.HandlerFunc(h.HandleCompleteReset),
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)

	r.Mux.Handle("POST /auth/change-password", r.authenticated(h.HandleChangePassword, r.limits.Strict))
	r.Mux.Handle("GET /auth/me", r.authenticated(h.HandleMe, r.limits.Lenient))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("GET /users",
		r.authenticated(h.HandleList, r.limits.Lenient, service.RequireStaff))
	r.Mux.Handle("POST /users",
		r.authenticated(h.HandleCreate, r.limits.Moderate,
			service.RequireStaff,
			service.RequireCapability(domain.CapabilityAddRecruitment),
		))
	r.Mux.Handle("GET /users/{id}",
		r.authenticated(h.HandleGet, r.limits.Lenient, service.RequireStaff))
	r.Mux.Handle("PUT /users/{id}",
		r.authenticated(h.HandleUpdate, r.limits.Moderate, service.RequireStaff))
	r.Mux.Handle("DELETE /users/{id}",
		r.authenticated(h.HandleDelete, r.limits.Moderate,
			service.RequireStaff,
			service.RequireRole(domain.RoleAdmin),
		))
}

func (r *Router) registerProfile() {
	h := &ProfileHandler{ProfileService: r.ProfileService}

	r.Mux.Handle("GET /users/me/profile", r.authenticated(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("PUT /users/me/profile", r.authenticated(h.HandlePut, r.limits.Moderate))
}

func (r *Router) registerPartners() {
	h := &PartnersHandler{PartnerService: r.PartnerService}

	r.Mux.Handle("GET /partners", r.authenticated(h.HandleList, r.limits.Lenient))
	r.Mux.Handle("GET /partners/{id}", r.authenticated(h.HandleGet, r.limits.Lenient))
	r.Mux.Handle("POST /partners",
		r.authenticated(h.HandleCreate, r.limits.Moderate, service.RequireAdminOrManager))
	r.Mux.Handle("PUT /partners/{id}",
		r.authenticated(h.HandleUpdate, r.limits.Moderate, service.RequireAdminOrManager))
	r.Mux.Handle("DELETE /partners/{id}",
		r.authenticated(h.HandleDelete, r.limits.Moderate, service.RequireAdminOrManager))
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	r.Mux.Handle("POST /v1/mfa/totp/enroll", r.authenticated(h.HandleEnroll, r.limits.Moderate))
	// Strict: TOTP codes are short enough to brute force.
	r.Mux.Handle("POST /v1/mfa/totp/verify", r.authenticated(h.HandleVerify, r.limits.Strict))
	r.Mux.Handle("DELETE /v1/mfa/totp", r.authenticated(h.HandleRemove, r.limits.Strict))
}

func (r *Router) registerBootstrap() {
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(r.limits.Strict),
		),
	)
}

func (r *Router) registerSystem() {
	h := &SystemHandler{
		Store:   r.store,
		Keys:    r.keys,
		Version: r.buildVersion,
		Started: r.startTime,
	}

	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(http.HandlerFunc(h.HandleJWKS), httpx.RateLimitByIP(r.limits.Public)))
	r.Mux.Handle("GET /livez",
		httpx.Chain(http.HandlerFunc(h.HandleLivez), httpx.RateLimitByIP(r.limits.Lenient)))
	r.Mux.Handle("GET /readyz",
		httpx.Chain(http.HandlerFunc(h.HandleReadyz), httpx.RateLimitByIP(r.limits.Lenient)))
}
