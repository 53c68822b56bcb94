package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/maresdigital/brandhub-backend/api/controllers"
	"github.com/maresdigital/brandhub-backend/api/middleware"
	"github.com/maresdigital/brandhub-backend/internal/auth"
	"github.com/maresdigital/brandhub-backend/internal/brands"
	"github.com/maresdigital/brandhub-backend/internal/files"
	"github.com/maresdigital/brandhub-backend/internal/pages"
	"github.com/maresdigital/brandhub-backend/internal/profiles"
	"github.com/maresdigital/brandhub-backend/internal/qrcodes"
	"github.com/maresdigital/brandhub-backend/internal/reviews"
	"github.com/maresdigital/brandhub-backend/internal/users"
	"github.com/maresdigital/brandhub-backend/pkg/auth/session"
	"github.com/maresdigital/brandhub-backend/pkg/config"
	"github.com/maresdigital/brandhub-backend/pkg/enums"
	"github.com/maresdigital/brandhub-backend/pkg/logger"
	"github.com/maresdigital/brandhub-backend/pkg/metrics"
	"github.com/maresdigital/brandhub-backend/pkg/redis"
)

// Deps bundles everything the HTTP surface needs. Pingers may be nil when
// the dependency is not configured, which the readiness probe reports as
// such instead of failing.
type Deps struct {
	Cfg         *config.Config
	Logg        *logger.Logger
	Pingers     map[string]controllers.Pinger
	Redis       *redis.Client
	Sessions    session.AccessSessionChecker
	HTTPMetrics *metrics.HTTPMetrics
	Gatherer    prometheus.Gatherer

	AuthService     auth.Service
	RegisterService auth.RegisterService
	UserService     users.Service
	ProfileService  profiles.Service
	BrandService    brands.Service
	ReviewService   reviews.Service
	FileService     files.Service
	PageService     pages.Service
	QRService       qrcodes.Service
}

func NewRouter(d Deps) http.Handler {
	cfg, logg := d.Cfg, d.Logg

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)
	if d.HTTPMetrics != nil {
		r.Use(d.HTTPMetrics.Middleware)
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.Pingers))
	})

	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(d.Gatherer))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/pages/{slug}", controllers.PublicPageBySlug(d.PageService, logg))
		r.Get("/brands/{brandId}", controllers.BrandGet(d.BrandService, logg))
		r.Get("/brands/{brandId}/reviews", controllers.ReviewList(d.ReviewService, logg))
		r.With(middleware.OptionalAuth(cfg.JWT, d.Sessions, logg)).
			Post("/scan/{qrId}", controllers.PublicScan(d.QRService, logg))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, d.Redis, logg)).Post("/login", controllers.AuthLogin(d.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, d.Redis, logg)).Post("/register", controllers.AuthRegister(d.RegisterService, d.AuthService, logg))
		r.Post("/refresh", controllers.AuthRefresh(d.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(d.AuthService, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))

		r.Route("/me", func(r chi.Router) {
			r.Get("/", controllers.MeGet(d.UserService, logg))
			r.Patch("/", controllers.MeUpdate(d.UserService, logg))
			r.Delete("/", controllers.MeDelete(d.UserService, logg))
			r.Route("/customer-profile", func(r chi.Router) {
				r.Post("/", controllers.CustomerProfileAttach(d.ProfileService, logg))
				r.Get("/", controllers.CustomerProfileGet(d.ProfileService, logg))
			})
		})

		r.Route("/brands", func(r chi.Router) {
			r.Post("/", controllers.BrandCreate(d.BrandService, logg))
			r.Get("/", controllers.BrandList(d.BrandService, logg))
			r.Route("/{brandId}", func(r chi.Router) {
				r.Get("/", controllers.BrandGet(d.BrandService, logg))
				r.Patch("/", controllers.BrandUpdate(d.BrandService, logg))
				r.Delete("/", controllers.BrandDelete(d.BrandService, logg))
				r.Post("/logo/presign", controllers.BrandPresignLogo(d.BrandService, logg))

				r.Route("/reviews", func(r chi.Router) {
					r.Post("/", controllers.ReviewCreate(d.ReviewService, logg))
					r.Get("/", controllers.ReviewList(d.ReviewService, logg))
				})

				r.Route("/files", func(r chi.Router) {
					r.Post("/", controllers.FileRegister(d.FileService, d.BrandService, logg))
					r.Get("/", controllers.FileList(d.FileService, d.BrandService, logg))
					r.Post("/presign", controllers.FilePresignUpload(d.FileService, d.BrandService, logg))
				})

				r.Route("/pages", func(r chi.Router) {
					r.Post("/", controllers.PageCreate(d.PageService, d.BrandService, logg))
					r.Get("/", controllers.PageList(d.PageService, d.BrandService, logg))
				})

				r.Route("/qrcodes", func(r chi.Router) {
					r.Post("/", controllers.QRCreate(d.QRService, d.BrandService, logg))
					r.Get("/", controllers.QRListByBrand(d.QRService, d.BrandService, logg))
				})
			})
		})

		r.Route("/files/{fileId}", func(r chi.Router) {
			r.Get("/", controllers.FileGet(d.FileService, d.BrandService, logg))
			r.Delete("/", controllers.FileDelete(d.FileService, d.BrandService, logg))
			r.Post("/use", controllers.FileRecordUse(d.FileService, d.BrandService, logg))
		})

		r.Route("/pages/{pageId}", func(r chi.Router) {
			r.Get("/", controllers.PageGet(d.PageService, d.BrandService, logg))
			r.Patch("/", controllers.PageUpdate(d.PageService, d.BrandService, logg))
			r.Delete("/", controllers.PageDelete(d.PageService, d.BrandService, logg))
			r.Patch("/status", controllers.PageUpdateStatus(d.PageService, d.BrandService, logg))
			r.Get("/qrcodes", controllers.QRListByPage(d.QRService, d.PageService, d.BrandService, logg))

			r.Route("/blocks", func(r chi.Router) {
				r.Post("/", controllers.BlockAdd(d.PageService, d.BrandService, logg))
				r.Get("/", controllers.BlockList(d.PageService, d.BrandService, logg))
				r.Put("/reorder", controllers.BlocksReorder(d.PageService, d.BrandService, logg))
				r.Patch("/{blockId}", controllers.BlockUpdate(d.PageService, d.BrandService, logg))
				r.Delete("/{blockId}", controllers.BlockRemove(d.PageService, d.BrandService, logg))
			})
		})

		r.Route("/qrcodes/{qrId}", func(r chi.Router) {
			r.Get("/", controllers.QRGet(d.QRService, d.BrandService, logg))
			r.Delete("/", controllers.QRDelete(d.QRService, d.BrandService, logg))
			r.Get("/scans", controllers.QRScans(d.QRService, d.BrandService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, d.Sessions, logg))
		r.Use(middleware.RequireRole(string(enums.UserRoleAdmin), logg))

		r.Route("/profile", func(r chi.Router) {
			r.Post("/", controllers.AdminProfileAttach(d.ProfileService, logg))
			r.Get("/", controllers.AdminProfileGet(d.ProfileService, logg))
		})
		r.Patch("/brands/{brandId}/flags", controllers.AdminBrandFlags(d.BrandService, logg))
	})

	return r
}
