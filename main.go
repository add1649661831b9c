package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"example.com/trendy-store/internal/config"
	"example.com/trendy-store/internal/infra/events"
	"example.com/trendy-store/internal/infra/persistence/mysql"
	redisstore "example.com/trendy-store/internal/infra/persistence/redis"
	"example.com/trendy-store/internal/infra/security"
	httpapi "example.com/trendy-store/internal/interface/http"
	"example.com/trendy-store/internal/logger"
	authuc "example.com/trendy-store/internal/usecase/auth"
	cartuc "example.com/trendy-store/internal/usecase/cart"
	checkoutuc "example.com/trendy-store/internal/usecase/checkout"
	orderuc "example.com/trendy-store/internal/usecase/order"
	productuc "example.com/trendy-store/internal/usecase/product"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{
		Service: "trendy-store",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("mysql", cfg.MySQLDSN)
	if err != nil {
		log.Error("mysql open failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		log.Error("mysql ping failed", "error", err)
		os.Exit(1)
	}

	if err := mysql.Migrate(db, cfg.MigrationsDir); err != nil {
		log.Error("migrations failed", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(cfg.KafkaBrokers...)
		defer kp.Close()
		publisher = kp
	}

	userRepo := mysql.NewUserRepository(db)
	productRepo := mysql.NewProductRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	cartStore := redisstore.NewCartStore(redisClient)

	tokenSvc := security.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	passwordSvc := security.NewBcryptService(0)

	api := httpapi.NewAPI(httpapi.Dependencies{
		AuthService:     authuc.NewService(userRepo, passwordSvc, tokenSvc),
		ProductService:  productuc.NewService(productRepo),
		CartService:     cartuc.NewService(cartStore, productRepo),
		CheckoutService: checkoutuc.NewService(cartStore, productRepo, orderRepo, publisher),
		OrderService:    orderuc.NewService(orderRepo, publisher),
		TokenService:    tokenSvc,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      otelhttp.NewHandler(api.Router(), "http.server"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
