package main

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/LekaAli/fes/internal/config"
	"github.com/LekaAli/fes/internal/handlers"
	"github.com/LekaAli/fes/internal/repository"
	"github.com/LekaAli/fes/internal/services"
	"github.com/LekaAli/fes/internal/session"
	xhttp "github.com/LekaAli/fes/pkg/http"
	"github.com/LekaAli/fes/pkg/logger"
	"github.com/LekaAli/fes/pkg/pg"
	"github.com/LekaAli/fes/pkg/prom"
	"github.com/LekaAli/fes/pkg/redis"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {

	err := config.Load(argContainsEnvPath())
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return
	}

	// transport
	s := xhttp.NewServer(xhttp.DefaultServerOption)
	s.Server.ReadBufferSize = 1024 * 16
	s.Server.WriteBufferSize = 1024 * 16
	s.Use(xhttp.CompressMiddleware(6))
	s.Use(xhttp.TimeoutMiddleware(time.Second * 5))
	s.Use(xhttp.RequestLoggerMiddleware)
	s.Use(xhttp.RecoverMiddleware)
	s.Router = xhttp.CreateDefaultRouter()

	readConf := pg.Config{
		User:     config.Get().PostgresReadUser,
		Host:     config.Get().PostgresReadHost,
		Port:     config.Get().PostgresReadPort,
		Password: config.Get().PostgresReadPassword,
		Database: config.Get().PostgresReadDatabase,
	}
	writeConf := pg.Config{
		User:     config.Get().PostgresWriteUser,
		Host:     config.Get().PostgresWriteHost,
		Port:     config.Get().PostgresWritePort,
		Password: config.Get().PostgresWritePassword,
		Database: config.Get().PostgresWriteDatabase,
	}

	pgDebug := false
	if config.Get().AppEnv == "dev" {
		pgDebug = true
	}
	db, err := pg.CreateReadWrite(readConf, writeConf, pgDebug)
	if err != nil {
		logger.Error("failed connecting to pg", "error", err)
		return
	}

	redisAdap, err := redis.NewRedisAdapter("default", config.Get().RedisUniversalKeyPrefix, &redis.Options{
		Addrs:      []string{config.Get().RedisAddr},
		ClientName: "default",
		DB:         config.Get().RedisDatabase,
		Username:   config.Get().RedisUsername,
		Password:   config.Get().RedisPassword,
	})
	if err != nil {
		logger.Error("failed connecting to redis", "error", err)
		return
	}

	if config.Get().MetricsAddr != "" {
		if err := prom.Create(config.Get().AppName, config.Get().AppEnv, config.Get().PromNamespace); err != nil {
			logger.Error("failed creating metrics registry", "error", err)
		} else {
			go prom.ListenAndServer(config.Get().MetricsAddr, config.Get().MetricsURI)
		}
	}

	sessions := session.NewStore(redisAdap, config.Get().SessionTTL)

	gateway := repository.NewGateway(db)
	transactionRepo := repository.NewTransactionRepository(db, gateway)
	userRepo := repository.NewUserRepository(db, gateway)

	// services
	transactionService := services.NewTransactionService(transactionRepo)
	authService := services.NewAuthService(userRepo)
	healthService := services.NewHealthService()

	// handlers
	auth := handlers.NewAuth(sessions, config.Get().SessionCookieName)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	authHandler := handlers.NewAuthHandler(authService, sessions, config.Get().SessionCookieName, config.Get().SessionTTL)
	healthHandler := handlers.NewHealthHandler(healthService)

	handlers.RegisterTransactionRoutes(s.Router, transactionHandler, auth)
	handlers.RegisterAuthRoutes(s.Router, authHandler, auth)
	handlers.RegisterHealthRoutes(s.Router, healthHandler)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		var err = s.ListenAndServe(config.Get().HttpListenAddr)
		if err != nil {
			logger.Error("error in running http-server", "error", err)
		}
	}()

	select {
	case <-c:
		s.Shutdown()
	}
}

func argContainsEnvPath() string {
	for _, v := range os.Args {
		if strings.Contains(v, "--env=") {
			s := strings.Split(v, "=")
			if _, err := os.Open(s[1]); err != nil {
				logger.Error("failed to open the passed env file, got error" + err.Error())
				return ""
			}
			return s[1]
		}
	}
	return ""
}
