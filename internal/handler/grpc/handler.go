// Package grpc exposes the standard gRPC health service and server
// reflection next to the REST API.
package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/service"
)

// ServiceName is the health-checked service name. The empty name reports
// the overall server status.
const ServiceName = "go-accounts"

// Handler is the root gRPC transport handler.
//
// It owns the health server whose status follows the process lifecycle:
// SERVING once [Handler.Register] runs and NOT_SERVING after
// [Handler.Shutdown].
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")
	return &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
}

// Register attaches the health and reflection services to s and marks the
// server as serving.
func (h *Handler) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.health)
	reflection.Register(s)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)

	event := h.logger.Info().Str("service", ServiceName)
	if h.services != nil && h.services.AppInfoService != nil {
		event = event.Str("version", h.services.AppInfoService.GetAppVersion(context.Background()))
	}
	event.Msg("gRPC health service registered")
}

// Shutdown switches every health status to NOT_SERVING. Status changes after
// Shutdown are ignored.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
	h.logger.Info().Msg("gRPC health service is not serving")
}

// LoggingInterceptor logs every unary call with its method, status and
// duration.
func (h *Handler) LoggingInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
	start := time.Now()
	resp, err := next(ctx, req)

	event := h.logger.Debug()
	if err != nil {
		event = h.logger.Warn().Err(err)
	}
	event.Str("method", info.FullMethod).Dur("duration", time.Since(start)).Msg("gRPC call")

	return resp, err
}
