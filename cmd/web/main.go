package main

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"buylink.app/buylink-web/internal/api"
	"buylink.app/buylink-web/internal/cart"
	"buylink.app/buylink-web/internal/checkout"
	"buylink.app/buylink-web/internal/config"
	"buylink.app/buylink-web/internal/i18n"
	mw "buylink.app/buylink-web/internal/middleware"
	"buylink.app/buylink-web/internal/observability"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	devMode      bool

	appLogger    *zap.Logger
	i18nBundle   *i18n.Bundle
	backend      *api.Client
	orch         *checkout.Orchestrator
	drafts       *cart.DraftStore
	quotes       *quoteStore
	siteBaseURL  string
	pspClientKey string
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	appLogger = logger

	templatesDir = cfg.TemplatesDir
	publicDir = cfg.PublicDir
	devMode = !cfg.IsProd()
	siteBaseURL = cfg.SiteBaseURL
	pspClientKey = cfg.PSPClientKey

	if !devMode {
		tc, err := parseTemplates()
		if err != nil {
			logger.Fatal("parse templates", zap.Error(err))
		}
		tmplCache = tc
	}

	i18nBundle, err = i18n.Load(cfg.LocalesDir, "ko", []string{"ko", "en"})
	if err != nil {
		logger.Fatal("load locales", zap.Error(err))
	}

	backend = api.NewClient(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithLogger(logger))
	orch, err = checkout.New(checkout.Deps{
		Backend:     backend,
		Logger:      logger,
		SiteBaseURL: cfg.SiteBaseURL,
	})
	if err != nil {
		logger.Fatal("checkout orchestrator", zap.Error(err))
	}
	drafts = cart.NewDraftStore(0)
	quotes = newQuoteStore()

	mw.ConfigureSessions(cfg.SessionSigningKey, cfg.IsProd())

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           newRouter(logger),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("web listening",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("env", cfg.Env),
			zap.String("api_base_url", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
	logger.Info("web stopped")
}

func newRouter(logger *zap.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.BackendCredentials)
	r.Use(mw.Session)
	r.Use(mw.Locale(i18nBundle))
	r.Use(mw.CSRF)
	r.Use(mw.VaryLocale)
	r.Use(mw.Logger(logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok")
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	// Product request page
	r.Get("/", RequestPageHandler)
	r.Post("/request/resolve", RequestResolveFrag)
	r.Post("/request/delete", RequestDeleteFrag)
	r.Post("/request/cart", RequestAddToCartHandler)

	// Cart
	r.Get("/cart", CartHandler)
	r.Post("/cart/estimate", CartEstimateFrag)
	r.Post("/cart/remove", CartRemoveHandler)

	// Checkout
	r.Get("/checkout", CheckoutHandler)
	r.Get("/checkout/address/search", CheckoutAddressSearchFrag)
	r.Post("/checkout/address", CheckoutAddressSubmit)
	r.Post("/checkout/customs", CheckoutCustomsSubmit)
	r.Post("/checkout/pay", CheckoutPaySubmit)

	// Hosted payment widget redirects back here with query parameters.
	r.Get("/payments/success", PaymentSuccessHandler)
	r.Get("/payments/fail", PaymentFailHandler)

	// Service status board
	r.Get("/status", StatusHandler)

	// Orders
	r.Get("/order-complete", OrderCompleteHandler)
	r.Get("/order-history", OrderHistoryHandler)
	r.Post("/order-history", OrderHistoryHandler)

	return r
}
