package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ogurasousui/leave-api-clean-arch/internal/adapters/http/handler"
	"github.com/ogurasousui/leave-api-clean-arch/internal/adapters/repository/postgres"
	"github.com/ogurasousui/leave-api-clean-arch/internal/adapters/token"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/auth"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/employee"
	"github.com/ogurasousui/leave-api-clean-arch/internal/core/leave"
	"github.com/ogurasousui/leave-api-clean-arch/internal/platform/config"
	pg "github.com/ogurasousui/leave-api-clean-arch/internal/platform/db/postgres"
	"github.com/ogurasousui/leave-api-clean-arch/internal/platform/password"
	"github.com/ogurasousui/leave-api-clean-arch/internal/platform/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "assets/local.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	dbPool, err := pg.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("failed to initialize database pool: %v", err)
	}
	defer dbPool.Close()

	txManager := pg.NewTransactionManager(dbPool)
	hasher := password.NewHasher(cfg.Auth.BcryptCost)
	tokenManager := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	userRepo := postgres.NewUserRepository(dbPool)
	employeeRepo := postgres.NewEmployeeRepository(dbPool)
	leaveRepo := postgres.NewLeaveRepository(dbPool)

	authSvc := auth.NewService(userRepo, hasher, tokenManager, nil)
	employeeSvc := employee.NewService(employeeRepo, hasher, nil, txManager, cfg.Leave.DefaultTotalDays)
	leaveSvc := leave.NewService(leaveRepo, nil, txManager)

	router := handler.NewRouter(handler.RouterConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Verifier:       tokenManager,
		Auth:           handler.NewAuthHandler(authSvc),
		Employee:       handler.NewEmployeeHandler(employeeSvc),
		Leave:          handler.NewLeaveHandler(leaveSvc),
	})

	httpServer := server.New(cfg.Server.ListenAddr, router)

	log.Printf("HTTP server listening on %s", cfg.Server.ListenAddr)

	if err := httpServer.Run(ctx); err != nil {
		log.Fatalf("server stopped with error: %v", err)
	}
}
