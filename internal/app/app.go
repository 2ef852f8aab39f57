package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/ferdiebergado/credkit/internal/auth"
	"github.com/ferdiebergado/credkit/internal/config"
	"github.com/ferdiebergado/credkit/internal/user"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type App struct {
	server          *http.Server
	grpcServer      *grpc.Server
	grpcAddr        string
	health          *health.Server
	config          *config.Config
	provider        *Provider
	middlewares     []func(http.Handler) http.Handler
	stop            context.CancelFunc
	shutdownTimeout time.Duration
	tokens          *auth.TokenService
}

func (a *App) registerMiddlewares() {
	for _, mw := range a.middlewares {
		a.provider.Router.Use(mw)
	}
}

func (a *App) setupRoutes() {
	p := a.provider
	maxBodySize := a.config.Server.MaxBodyBytes

	userModule := user.NewModule(p.DB, p.TxMgr, p.Hasher)
	authModule := auth.NewModule(&auth.Provider{
		Store:    userModule.Repository(),
		Hasher:   p.Hasher,
		Tokens:   a.tokens,
		Recorder: p.Recorder,
	})

	requireToken := auth.RequireToken(a.tokens, p.Recorder)
	mountAuthRoutes(p.Router, authModule.Handler(), p.Validator, maxBodySize)
	mountUserRoutes(p.Router, userModule.Handler(), authModule.Handler(), requireToken, p.Validator, maxBodySize)
	mountMetricsRoute(p.Router, p.Recorder.Handler())
}

func (a *App) setupGRPC() {
	interceptor := auth.UnaryServerInterceptor(a.tokens, a.provider.Recorder, healthpb.Health_Check_FullMethodName)
	a.grpcServer = grpc.NewServer(grpc.ChainUnaryInterceptor(interceptor))
	a.health = health.NewServer()
	healthpb.RegisterHealthServer(a.grpcServer, a.health)
	a.grpcAddr = fmt.Sprintf(":%d", a.config.GRPC.Port)
}

// Handler returns the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

func (a *App) Start(ctx context.Context) error {
	serverErr := make(chan error, 2)
	go func() {
		slog.Info("Server listening...", "address", a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		slog.Info("Server has stopped.")
	}()

	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", a.grpcAddr)
		if err != nil {
			return fmt.Errorf("listen grpc on %s: %w", a.grpcAddr, err)
		}

		go func() {
			slog.Info("gRPC server listening...", "address", a.grpcAddr)
			a.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
			if err := a.grpcServer.Serve(lis); err != nil {
				serverErr <- fmt.Errorf("serve grpc: %w", err)
				return
			}
			slog.Info("gRPC server has stopped.")
		}()
	}

	select {
	case <-ctx.Done():
		slog.Info("Shutdown signal received.")
		return nil
	case err := <-serverErr:
		return err
	}
}

func (a *App) Shutdown() error {
	slog.Info("Shutting down server...")
	a.stop()

	if a.grpcServer != nil {
		a.health.Shutdown()
		a.grpcServer.GracefulStop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown server: %w", err)
	}
	return nil
}

// New wires the modules and routes. The gRPC server is created only when a
// gRPC port is configured.
func New(cfg *config.Config, provider *Provider, middlewares []func(http.Handler) http.Handler) (*App, error) {
	tokens, err := auth.NewTokenService(provider.Codec, provider.Keys, cfg.JWT.TTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("new token service: %w", err)
	}

	serverCtx, stop := context.WithCancel(context.Background())
	serverCfg := cfg.Server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", serverCfg.Port),
		Handler: provider.Router,
		BaseContext: func(_ net.Listener) context.Context {
			return serverCtx
		},
		ReadTimeout:  serverCfg.ReadTimeout.Duration,
		WriteTimeout: serverCfg.WriteTimeout.Duration,
		IdleTimeout:  serverCfg.IdleTimeout.Duration,
	}

	a := &App{
		config:          cfg,
		provider:        provider,
		server:          server,
		middlewares:     middlewares,
		stop:            stop,
		shutdownTimeout: serverCfg.ShutdownTimeout.Duration,
		tokens:          tokens,
	}

	a.registerMiddlewares()
	a.setupRoutes()
	if cfg.GRPC != nil && cfg.GRPC.Port > 0 {
		a.setupGRPC()
	}

	return a, nil
}
