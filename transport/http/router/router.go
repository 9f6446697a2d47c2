package router

import (
	"net/http"

	"todos/config"
	"todos/internal/handlers/health"
	"todos/internal/handlers/todo"
	"todos/internal/handlers/web"
	"todos/shared/constant"
	"todos/transport/http/middleware"

	_ "todos/docs" //nolint:revive

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"
	httpSwagger "github.com/swaggo/http-swagger"
)

const apiPrefix = "/api"

type DomainHandlers struct {
	Todo   todo.Handler
	Health health.Handler
	Web    web.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
	Config         *config.Config
}

// SetupRoutes registers the middleware chain and every route. The todo
// resource is served both at the root and under /api.
func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(hlog.NewHandler(log.Logger))
	router.Use(r.Middleware.RequestID)
	router.Use(r.Middleware.AccessLog)
	router.Use(chiMiddleware.Recoverer)

	if r.Config.App.CORS.Enable {
		router.Use(cors.Handler(r.corsOptions()))
	}

	router.Use(r.Middleware.Tracing)
	router.Use(r.Middleware.RateLimit())

	r.DomainHandlers.Health.Router(router)
	r.DomainHandlers.Web.Router(router)
	r.DomainHandlers.Todo.Router(router)

	router.Route(apiPrefix, func(routerGroup chi.Router) {
		r.DomainHandlers.Todo.Router(routerGroup)
	})

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (r *Router) corsOptions() cors.Options {
	corsConfig := r.Config.App.CORS

	return cors.Options{
		AllowedOrigins:   corsConfig.AllowedOrigins,
		AllowedMethods:   corsConfig.AllowedMethods,
		AllowedHeaders:   corsConfig.AllowedHeaders,
		ExposedHeaders:   []string{constant.RequestHeaderRequestID},
		AllowCredentials: corsConfig.AllowCredentials,
		MaxAge:           corsConfig.MaxAgeSeconds,
	}
}

// Handler builds a fresh chi router with every route mounted.
func (r *Router) Handler() http.Handler {
	router := chi.NewRouter()
	r.SetupRoutes(router)

	return router
}

func New(domainHandlers DomainHandlers, middleware middleware.AppMiddleware, config *config.Config) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     middleware,
		Config:         config,
	}
}
