// Package portfolio собирает HTTP-приложение: маршруты, middleware и жизненный цикл сервера.
package portfolio

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/unrolled/secure"
	"golang.org/x/time/rate"

	// Регистрация swagger-спецификации для /docs.
	_ "github.com/magabrotheeeer/portfolio-backend/docs"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/auth/me"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/health"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/home"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/project/create"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/project/list"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/project/remove"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/project/stats"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/handlers/project/update"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/portfolio-backend/internal/http/response"
	authservice "github.com/magabrotheeeer/portfolio-backend/internal/services/auth"
	projectservice "github.com/magabrotheeeer/portfolio-backend/internal/services/project"
)

// Deps зависимости, необходимые маршрутам.
type Deps struct {
	Auth     *authservice.Service
	Projects *projectservice.Service
	Tokens   middlewarectx.TokenVerifier
	DB       health.Pinger
	Registry *prometheus.Registry
}

// RouteOptions параметры HTTP-слоя, не относящиеся к бизнес-логике.
type RouteOptions struct {
	AllowedOrigins []string
	RateLimitRPS   float64
	RateLimitBurst int
	Development    bool
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps, opts RouteOptions) {
	metrics := middlewarectx.NewMetrics(deps.Registry)

	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		metrics.Middleware,
		middlewarectx.Recoverer(logger),
		corsHandler(opts.AllowedOrigins),
		secureHeaders(opts.Development).Handler,
	)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		render.Status(r, http.StatusMethodNotAllowed)
		render.JSON(w, r, response.Error("method not allowed"))
	})

	r.Get("/", home.ServeHTTP)
	r.Get("/health", health.New(logger, deps.DB).ServeHTTP)

	r.Route("/auth", func(r chi.Router) {
		// Открытые конечные точки с ограничением частоты
		r.Group(func(r chi.Router) {
			limiter := rate.NewLimiter(rate.Limit(opts.RateLimitRPS), opts.RateLimitBurst)
			r.Use(middlewarectx.RateLimitMiddleware(limiter, logger))
			r.Post("/register", register.New(logger, deps.Auth).ServeHTTP)
			r.Post("/login", login.New(logger, deps.Auth).ServeHTTP)
		})

		r.With(middlewarectx.JWTMiddleware(deps.Tokens, logger)).
			Get("/me", me.New(logger, deps.Auth).ServeHTTP)
	})

	// Группа с JWT аутентификацией
	r.Route("/projects", func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(deps.Tokens, logger))
		r.Get("/", list.New(logger, deps.Projects).ServeHTTP)
		r.Post("/", create.New(logger, deps.Projects).ServeHTTP)
		r.Get("/stats", stats.New(logger, deps.Projects).ServeHTTP)
		r.Put("/{id}", update.New(logger, deps.Projects).ServeHTTP)
		r.Delete("/{id}", remove.New(logger, deps.Projects).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

func corsHandler(allowedOrigins []string) func(http.Handler) http.Handler {
	opts := cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "PUT", "PATCH", "POST", "DELETE"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if len(allowedOrigins) == 0 {
		// Без списка go-chi/cors разрешает всех; закрываем кросс-доменный доступ.
		opts.AllowOriginFunc = func(*http.Request, string) bool { return false }
	}
	return cors.Handler(opts)
}

func secureHeaders(development bool) *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:            true,
		ContentTypeNosniff:   true,
		BrowserXssFilter:     true,
		ReferrerPolicy:       "no-referrer",
		STSSeconds:           31536000,
		STSIncludeSubdomains: true,
		IsDevelopment:        development,
	})
}
