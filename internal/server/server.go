package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	appconfig "github.com/nmh2003/shopchat/config"
	"github.com/nmh2003/shopchat/internal/chat"
	"github.com/nmh2003/shopchat/internal/store"
	"github.com/nmh2003/shopchat/provider"
	"github.com/nmh2003/shopchat/session"
	"github.com/nmh2003/shopchat/session/inmemory"
	"github.com/nmh2003/shopchat/session/redis_session"
)

func Run(cfg *appconfig.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Cookie"},
		AllowCredentials: true,
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Initialize shared dependencies (top-level DI)
	ctx := context.Background()
	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		return err
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	llm, err := provider.NewProvider(provider.Client(cfg.LLM.Provider), provider.Options{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	})
	if err != nil {
		return err
	}

	sessions, err := newSessionStore(cfg)
	if err != nil {
		return err
	}

	chatLogger := log.New(log.Writer(), "[CHAT] ", log.LstdFlags)
	ch := &ChatHandler{
		Classifier: chat.NewClassifier(llm, chatLogger),
		Dispatcher: chat.NewDispatcher(st, chatLogger),
		Sessions:   sessions,
		Secret:     []byte(cfg.Server.JWTSecret),
		Logger:     chatLogger,
	}
	api := e.Group("/api")
	ch.Register(api)

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":8339"
	}
	log.Printf("listening on %s", addr)
	return e.Start(addr)
}

// newSessionStore picks the session backend from config. The in-memory store
// gets an optional background sweep so one-visit users do not accumulate
// forever in long-lived processes.
func newSessionStore(cfg *appconfig.Config) (session.Store, error) {
	switch session.StoreType(cfg.Chat.SessionStore) {
	case session.RedisStore:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Storage.Redis.Addr(),
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("redis connection failed (%s): %w", cfg.Storage.Redis.Addr(), err)
		}
		return redis_session.NewStore(rdb, cfg.Chat.SessionTTL), nil
	case session.InMemoryStore, "":
		s := inmemory.NewStore(cfg.Chat.SessionTTL)
		if cfg.Chat.SweepInterval > 0 {
			s.StartSweeper(cfg.Chat.SweepInterval, make(chan struct{}))
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown session store type: %s", cfg.Chat.SessionStore)
	}
}
