package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"telegram-numerology-bot/internal/application"
	"telegram-numerology-bot/internal/config"
	"telegram-numerology-bot/internal/domain/ports/adapter"
	aiAdapters "telegram-numerology-bot/internal/infra/adapters/ai"
	tele "telegram-numerology-bot/internal/infra/adapters/telegram"
	pg "telegram-numerology-bot/internal/infra/db/postgres"
	"telegram-numerology-bot/internal/infra/horoscope"
	"telegram-numerology-bot/internal/infra/logging"
	"telegram-numerology-bot/internal/infra/metrics"
	red "telegram-numerology-bot/internal/infra/redis"
	"telegram-numerology-bot/internal/infra/web"
	"telegram-numerology-bot/internal/interpret"
	"telegram-numerology-bot/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode (console logs, noop AI fallback)")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 10)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	rateLimiter := red.NewRateLimiter(redisClient)
	stateRepo := red.NewStateRepo(redisClient, cfg.Redis.StateTTL)
	horoscopeCache := red.NewHoroscopeCache(redisClient)

	// ---- Repositories ----
	profileRepo := pg.NewPostgresProfileRepo(pool)

	// ---- Interpretation tables ----
	interp, err := interpret.New()
	if err != nil {
		logger.Fatal().Err(err).Msg("interpretation tables")
	}

	// ---- AI adapter chain (Groq -> Gemini) ----
	ai := buildAIAdapter(ctx, cfg, logger)

	// ---- Horoscope scraping ----
	fetcher := horoscope.NewFetcher(cfg.Horoscope.FetchTimeout, cfg.Horoscope.UserAgent)
	scraper := horoscope.NewScraper(fetcher, horoscope.DefaultSources(), cfg.Horoscope.MaxExcerpt, logger)

	// ---- Use cases ----
	profileUC := usecase.NewProfileUseCase(profileRepo, logger)
	matrixUC := usecase.NewMatrixUseCase(profileRepo, interp, logger)
	horoscopeUC := usecase.NewHoroscopeUseCase(matrixUC, horoscopeCache, scraper, ai, cfg.AI.DefaultModel, logger)

	// ---- Facade ----
	facade := application.NewBotFacade(profileUC, matrixUC, horoscopeUC, stateRepo)

	// ---- Telegram ----
	botAdapter, err := tele.NewRealTelegramBotAdapter(&cfg.Bot, facade, rateLimiter, cfg.Bot.Workers)
	if err != nil {
		logger.Fatal().Err(err).Msg("telegram")
	}
	if strings.ToLower(cfg.Bot.Mode) != "" && strings.ToLower(cfg.Bot.Mode) != "polling" {
		logger.Warn().Str("mode", cfg.Bot.Mode).Msg("bot mode not implemented; falling back to polling")
	}
	go func() {
		if err := botAdapter.StartPolling(ctx); err != nil {
			logger.Warn().Err(err).Msg("telegram polling stopped")
		}
	}()

	// ---- HTTP server (health, metrics, stats) ----
	jwtSecret := cfg.Web.JWTSecret
	if jwtSecret == "" {
		logger.Warn().Msg("web.jwt_secret not set; falling back to dev secret (INSECURE)")
		jwtSecret = "dev-admin-jwt-secret-change-me"
	}
	auth := web.NewAuthManager(jwtSecret, cfg.Web.SecureCookie, cfg.Web.CookieDomain, cfg.Web.SessionTTL)
	webSrv := web.NewServer(profileUC, cfg.Web.APIKey, auth, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Web.Port),
		Handler: webSrv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")

	botAdapter.StopPolling()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("http shutdown")
	}
	cancel()
}

// buildAIAdapter assembles the provider failover chain from whichever keys
// are configured. With no keys it degrades to a canned forecast in dev mode
// and to no AI section at all otherwise.
func buildAIAdapter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) adapter.AIServiceAdapter {
	var chain []adapter.AIServiceAdapter

	if cfg.AI.GroqKey != "" {
		groq, err := aiAdapters.NewGroqAdapter(cfg.AI.GroqKey, cfg.AI.DefaultModel, cfg.AI.GroqBaseURL)
		if err != nil {
			logger.Warn().Err(err).Msg("groq adapter unavailable")
		} else {
			chain = append(chain, groq)
			logger.Info().Str("base", cfg.AI.GroqBaseURL).Str("model", cfg.AI.DefaultModel).Msg("AI provider: Groq")
		}
	}
	if cfg.AI.GeminiKey != "" {
		gem, err := aiAdapters.NewGeminiAdapter(ctx, cfg.AI.GeminiKey, cfg.AI.GeminiURL, cfg.AI.DefaultModel, 500)
		if err != nil {
			logger.Warn().Err(err).Msg("gemini adapter unavailable")
		} else {
			chain = append(chain, gem)
			logger.Info().Str("model", cfg.AI.DefaultModel).Msg("AI provider: Gemini")
		}
	}

	switch len(chain) {
	case 0:
		if cfg.Runtime.Dev {
			logger.Warn().Msg("no AI provider configured, using canned forecasts")
			return aiAdapters.NewNoopAIAdapter()
		}
		logger.Warn().Msg("no AI provider configured, personal forecasts disabled")
		return nil
	case 1:
		return chain[0]
	default:
		return aiAdapters.NewFailoverAdapter(chain...)
	}
}
