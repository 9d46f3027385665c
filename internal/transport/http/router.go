package http

import (
	"net/http"
	"time"

	"github.com/estate-api/internal/application/account"
	"github.com/estate-api/internal/application/auth"
	"github.com/estate-api/internal/application/identity"
	"github.com/estate-api/internal/application/inquiry"
	"github.com/estate-api/internal/application/otp"
	propertyapp "github.com/estate-api/internal/application/property"
	"github.com/estate-api/internal/config"
	"github.com/estate-api/internal/domain"
	"github.com/estate-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/estate-api/internal/infrastructure/jwt"
	redisinfra "github.com/estate-api/internal/infrastructure/redis"
	s3infra "github.com/estate-api/internal/infrastructure/s3"
	"github.com/estate-api/internal/infrastructure/sns"
	"github.com/estate-api/internal/transport/http/handler"
	appmiddleware "github.com/estate-api/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	CustomerRepo *dynamo.CustomerRepo
	AgentRepo    *dynamo.AgentRepo
	BuilderRepo  *dynamo.BuilderRepo
	PropertyRepo *dynamo.PropertyRepo
	InquiryRepo  *dynamo.InquiryRepo
	OTPStore     *redisinfra.OTPStore
	S3Store      *s3infra.Store
	SMSSender    sns.SMSSender
	JWTProvider  *jwtinfra.Provider
	DynamoPing   handler.Pinger
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authMw := appmiddleware.Auth(deps.JWTProvider)
	listerMw := appmiddleware.RequireKind(domain.KindAgent, domain.KindBuilder)

	// 1 request per client IP per minute on OTP-dispatching endpoints.
	// A coarse anti-abuse measure, not a per-account limiter.
	otpRL := appmiddleware.NewRateLimiter(rate.Every(60*time.Second), 1)

	engine := otp.NewEngine(deps.OTPStore, deps.SMSSender, cfg.OTPTTL)
	resolver := identity.NewResolver(deps.CustomerRepo, deps.AgentRepo, deps.BuilderRepo)
	authSvc := auth.NewService(resolver, engine, deps.JWTProvider)
	accountSvc := account.NewService(deps.CustomerRepo, deps.AgentRepo, deps.BuilderRepo, engine, deps.S3Store)
	propertySvc := propertyapp.NewService(deps.PropertyRepo, deps.S3Store)
	inquirySvc := inquiry.NewService(deps.InquiryRepo, deps.PropertyRepo)

	authH := handler.NewAuthHandler(authSvc)
	accountH := handler.NewAccountHandler(accountSvc)
	propertyH := handler.NewPropertyHandler(propertySvc)
	inquiryH := handler.NewInquiryHandler(inquirySvc)
	healthH := handler.NewHealthHandler(deps.DynamoPing, deps.OTPStore.Ping)

	r.Route("/v1", func(r chi.Router) {
		// Public routes (no auth).
		r.Get("/health", healthH.Check)
		r.With(otpRL.Limit).Post("/auth/send-otp", authH.SendOTP)
		r.Post("/auth/verify-otp", authH.VerifyOTP)
		r.With(otpRL.Limit).Post("/customers/register", accountH.RegisterCustomer)
		r.With(otpRL.Limit).Post("/agents/register", accountH.RegisterAgent)
		r.With(otpRL.Limit).Post("/builders/register", accountH.RegisterBuilder)
		r.Get("/properties/{propertyId}", propertyH.Get)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/profile", accountH.Profile)
			r.Put("/profile", accountH.UpdateProfile)
			r.Post("/profile/image", accountH.UploadProfileImage)

			r.With(listerMw).Post("/properties", propertyH.Create)
			r.With(listerMw).Get("/properties/me", propertyH.ListMine)
			r.With(listerMw).Delete("/properties/{propertyId}", propertyH.Delete)
			r.With(listerMw).Post("/properties/{propertyId}/images", propertyH.UploadImages)
			r.Post("/properties/{propertyId}/buy", propertyH.Buy)
			r.Post("/properties/{propertyId}/rent", propertyH.Rent)

			r.With(appmiddleware.RequireKind(domain.KindCustomer)).Post("/inquiries", inquiryH.Create)
			r.Get("/inquiries", inquiryH.List)
			r.Put("/inquiries/{inquiryId}", inquiryH.UpdateStatus)
			r.Delete("/inquiries/{inquiryId}", inquiryH.Delete)
		})
	})

	return r
}
