package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/carlosargenal/enlaceibabackend/internal/config"
	"github.com/carlosargenal/enlaceibabackend/internal/database"
	"github.com/carlosargenal/enlaceibabackend/internal/handler"
	"github.com/carlosargenal/enlaceibabackend/internal/middleware"
	"github.com/carlosargenal/enlaceibabackend/internal/queue"
	"github.com/carlosargenal/enlaceibabackend/internal/repository"
	"github.com/carlosargenal/enlaceibabackend/internal/router"
	"github.com/carlosargenal/enlaceibabackend/internal/service"
	"github.com/carlosargenal/enlaceibabackend/internal/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// nil when Redis is unreachable; cache and rate limiting then pass through
	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}

	amqpCfg := config.LoadAMQPConfig()
	if amqpCfg.StartConsumer {
		go queue.StartResetMailConsumer(amqpCfg)
	}

	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	publisher := queue.NewPublisher(amqpCfg)
	go publisher.Run(bgCtx)

	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	users := repository.NewUserRepo(db)
	creds := repository.NewCredentialRepo(db)

	authSvc := service.NewAuthService(users, creds, publisher, tokens, cfg.BcryptCost, cfg.ResetTokenTTL)
	eventSvc := service.NewEventService(repository.NewEventRepo(db))
	blogSvc := service.NewBlogService(repository.NewBlogRepo(db))
	reviewSvc := service.NewReviewService(repository.NewReviewRepo(db))

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.IPExtractor = router.IPExtractor(cfg.TrustProxy)
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(echomw.Logger())
	e.Use(middleware.Metrics())
	e.Use(echomw.ContextTimeout(cfg.RequestTimeout))

	guards := router.NewGuards(tokens, rdb, config.LoadCacheConfig(), config.LoadRateLimitConfig())
	router.RegisterRoutes(e, db)
	router.RegisterAuth(e, handler.NewAuthHandler(authSvc), guards)
	router.RegisterEvents(e, handler.NewEventHandler(eventSvc), guards)
	router.RegisterBlogs(e, handler.NewBlogHandler(blogSvc), guards)
	router.RegisterReviews(e, handler.NewReviewHandler(reviewSvc), guards)

	addr := ":" + cfg.Port
	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (env=%s)", addr, cfg.Env)
		errCh <- e.Start(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}
}
