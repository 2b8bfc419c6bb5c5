package app

import (
	"flag"
	"net/http"

	"github.com/caarlos0/env"
	"github.com/go-chi/chi/v5"
	"github.com/mkravets/link-shortener/internal/config"
	"github.com/mkravets/link-shortener/internal/handlers"
	"github.com/mkravets/link-shortener/internal/logger"
	"github.com/mkravets/link-shortener/internal/middleware"
	"github.com/mkravets/link-shortener/internal/services"
	"github.com/mkravets/link-shortener/internal/storage"
)

func router() chi.Router {
	r := chi.NewRouter()
	r.Use(logger.Middleware)
	r.Use(gzipMiddleware)
	r.Use(middleware.AuthMiddleware)

	r.Route("/", func(r chi.Router) {
		r.Get("/ping", handlers.PingDatabase)
		r.Post("/", handlers.Shorten)
		r.Post("/api/shorten", handlers.ShortenAPI)
		r.Get("/api/user/urls", handlers.APIUserURLs)
		r.Delete("/api/user/urls", handlers.DeleteUserURLs)
		r.Put("/api/user/urls/{id}", handlers.RenameAPI)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.Expand)
		})
	})
	return r
}

func Run() {
	flag.StringVar(&config.Current.ServerAddress, "a", "", "Server address host:port")
	flag.StringVar(&config.Current.BaseURL, "b", "", "Base for short URL")
	flag.StringVar(&config.Current.DatabaseDSN, "d", "", "Database source string")
	flag.StringVar(&config.Current.RedisAddr, "r", "", "Redis address host:port")
	flag.Parse()

	if err := env.Parse(&config.Current); err != nil {
		panic(err)
	}

	config.SetDefaults()

	if err := logger.Initialize(); err != nil {
		panic(err)
	}

	var store storage.Store
	if config.Current.DatabaseDSN != "" {
		store = &storage.DatabaseStore{}
	} else {
		store = &storage.MemoryStore{}
	}
	if err := store.Initialize(); err != nil {
		panic(err)
	}

	var cache storage.Cache
	if config.Current.RedisAddr != "" {
		redisCache, err := storage.NewRedisCache(config.Current.RedisAddr, config.Current.RedisPassword)
		if err != nil {
			panic(err)
		}
		cache = redisCache
	} else {
		cache = storage.NewMemoryCache()
	}

	resolver := &services.Resolver{Store: store, Cache: cache}
	generator := &services.Generator{Store: store, MaxAttempts: config.Current.CodeMaxAttempts}
	handlers.Resolver = resolver
	handlers.Links = &services.Links{
		Store:     store,
		Cache:     cache,
		Generator: generator,
		Resolver:  resolver,
	}

	err := http.ListenAndServe(config.Current.ServerAddress, router())
	if err != nil {
		panic(err)
	}
}
