// Package server runs the HTTP API and the gRPC health endpoint until the
// context is cancelled.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/fekuna/boutique-catalog-service/internal/app"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	app    *app.App
	http   *http.Server
	grpc   *grpc.Server
	health *health.Server
}

func New(a *app.App) *Server {
	cfg := a.Config.Server

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reflection.Register(grpcServer)

	return &Server{
		app: a,
		http: &http.Server{
			Addr:              listenAddr(cfg.HTTPPort),
			Handler:           NewRouter(a),
			ReadHeaderTimeout: cfg.ReadTimeout,
		},
		grpc:   grpcServer,
		health: healthServer,
	}
}

// Run serves until ctx is done, then drains both servers.
func (s *Server) Run(ctx context.Context) error {
	log := s.app.Logger

	grpcLis, err := net.Listen("tcp", listenAddr(s.app.Config.Server.GRPCPort))
	if err != nil {
		return fmt.Errorf("listen grpc: %w", err)
	}
	httpLis, err := net.Listen("tcp", s.http.Addr)
	if err != nil {
		_ = grpcLis.Close()
		return fmt.Errorf("listen http: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if s.app.Listener != nil {
		g.Go(func() error {
			s.app.Listener.Start(ctx)
			return nil
		})
	}

	g.Go(func() error {
		log.Info("Starting gRPC health server", zap.String("addr", grpcLis.Addr().String()))
		s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
		if err := s.grpc.Serve(grpcLis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		log.Info("Starting HTTP server", zap.String("addr", httpLis.Addr().String()))
		if err := s.http.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server...")
		s.health.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := s.http.Shutdown(shutdownCtx)
		s.grpc.GracefulStop()
		log.Info("Server stopped")
		return err
	})

	return g.Wait()
}

func listenAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
