package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	advisoryapp "github.com/dwikikusuma/storefront/internal/advisory/app"
	"github.com/dwikikusuma/storefront/internal/advisory/infra/heuristic"
	checkoutapp "github.com/dwikikusuma/storefront/internal/checkout/app"
	"github.com/dwikikusuma/storefront/internal/gateway"
	"github.com/dwikikusuma/storefront/internal/gateway/middleware"
	"github.com/dwikikusuma/storefront/internal/healthcheck"
	identityapp "github.com/dwikikusuma/storefront/internal/identity/app"
	"github.com/dwikikusuma/storefront/internal/metrics"
	persistenceapp "github.com/dwikikusuma/storefront/internal/persistence/app"
	"github.com/dwikikusuma/storefront/internal/persistence/seed"
	"github.com/dwikikusuma/storefront/internal/storefront"
	"github.com/dwikikusuma/storefront/pkg/config"
	"github.com/dwikikusuma/storefront/pkg/logger"
	"github.com/dwikikusuma/storefront/pkg/shutdown"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.New(logger.Options{
		Service:   cfg.App.Name,
		Env:       cfg.App.Env,
		Level:     cfg.App.LogLevel,
		File:      cfg.App.LogFile,
		AddSource: true,
	})
	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, cancel := shutdown.WithSignals(context.Background())
	defer cancel()

	kv, closeKV, err := openKV(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeKV()

	publisher, closePublisher := openPublisher(cfg.Rabbit.URL, log)
	defer closePublisher()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	provider := heuristic.New()
	advisory := advisoryapp.NewGateway(provider, provider, advisoryapp.Options{
		Timeout: cfg.Advisory.Timeout,
		Logger:  log,
		Observer: func(kind string, outcome advisoryapp.Outcome) {
			rec.Advisory.WithLabelValues(kind, string(outcome)).Inc()
		},
	})

	sf, err := storefront.New(ctx, storefront.Deps{
		Store:     persistenceapp.NewAdapter(kv, seed.Products(), log),
		Advisory:  advisory,
		Publisher: publisher,
		Metrics:   rec,
		Logger:    log,
		Checkout:  checkoutapp.Options{Strict: cfg.Checkout.Strict},
	})
	if err != nil {
		return err
	}
	defer sf.Close()

	identity := identityapp.NewService(identityapp.Config{
		Secret: cfg.Security.JWTSecret,
		Issuer: cfg.Security.Issuer,
		TTL:    cfg.Security.TTL,
	}, nil)

	router := gateway.NewRouter(gateway.Deps{
		Storefront:   sf,
		Identity:     identity,
		Logger:       log,
		Metrics:      middleware.NewHTTPMetrics(reg),
		Gatherer:     reg,
		ShareBaseURL: cfg.ShareBaseURL,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.GRPC.Addr, err)
	}
	grpcServer := grpc.NewServer()
	healthSrv := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthSrv)
	reporter := healthcheck.NewReporter(healthSrv, sf, 5*time.Second)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", cfg.HTTP.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", cfg.GRPC.Addr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error { return reporter.Run(gctx) })

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")

		stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer stopCancel()

		if err := httpServer.Shutdown(stopCtx); err != nil {
			log.Error("http shutdown error", slog.Any("err", err))
		}

		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			close(stopped)
		}()
		select {
		case <-stopCtx.Done():
			log.Warn("graceful stop timeout, forcing stop")
			grpcServer.Stop()
		case <-stopped:
		}
		return nil
	})

	err = g.Wait()
	log.Info("bye")
	return err
}
