package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cobaltgate/iam/internal/iam/service"
	"github.com/cobaltgate/iam/internal/iam/store"
	"github.com/cobaltgate/iam/pkg/httpx"
	"github.com/cobaltgate/iam/pkg/slogx"

	_ "github.com/cobaltgate/iam/api/iam" // Swagger docs
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
	OTPService  *service.OTPService
	UserService *service.UserService
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
	r.registerUsers()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CobaltGate IAM API
//	@version		0.1.0
//	@description	Multi-tenant identity service: appid-scoped password login, optional email OTP challenge, HS256 bearer tokens and company-scoped user administration.
//	@description
//	@description				Every response uses the {code, message, data} envelope. Bearer tokens expire after 24 hours and carry no authorization on their own: every request re-resolves the caller from storage.
//
//	@contact.name				CobaltGate Team
//	@contact.url				https://github.com/cobaltgate/iam
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

func (r *Router) registerAuth() {
	// POST /login - strict rate limit (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /check-otp - strict rate limit (code guessing)
	checkOTPHandler := &CheckOTPHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /check-otp",
		httpx.Chain(checkOTPHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /resend-otp - strict rate limit (mail fan-out)
	resendHandler := &ResendOTPHandler{OTPService: r.OTPService}
	r.Mux.Handle("POST /resend-otp",
		httpx.Chain(resendHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /check-token - moderate rate limit (relying services poll this)
	checkTokenHandler := &CheckTokenHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /check-token",
		httpx.Chain(checkTokenHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerUsers() {
	// POST /create-superadmin - unauthenticated bootstrap, strict by IP
	superadminHandler := &CreateSuperadminHandler{UserService: r.UserService}
	r.Mux.Handle("POST /create-superadmin",
		httpx.Chain(superadminHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	h := &UsersHandler{UserService: r.UserService}
	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			AuthnMiddleware(r.AuthService),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("POST /users", secured(h.HandleCreate))
	r.Mux.Handle("GET /users", secured(h.HandleList))
	r.Mux.Handle("GET /users/{userid}", secured(h.HandleGet))
	r.Mux.Handle("PUT /users/{userid}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /users/{userid}", secured(h.HandleDelete))

	rosterHandler := &CompanyRosterHandler{UserService: r.UserService}
	r.Mux.Handle("GET /company-and-user", secured(rosterHandler.ServeHTTP))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
