package grpc

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/test/bufconn"

	"github.com/MKhiriev/go-accounts/internal/logger"
	"github.com/MKhiriev/go-accounts/internal/mock"
	"github.com/MKhiriev/go-accounts/internal/service"
)

func startHealthServer(t *testing.T, h *Handler) healthpb.HealthClient {
	t.Helper()

	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer(grpc.ChainUnaryInterceptor(h.LoggingInterceptor))
	h.Register(server)
	go func() { _ = server.Serve(listener) }()
	t.Cleanup(server.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return healthpb.NewHealthClient(conn)
}

func TestHandler_HealthLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	appInfo := mock.NewMockAppInfoService(ctrl)
	appInfo.EXPECT().GetAppVersion(gomock.Any()).Return("v1.0.0")

	h := NewHandler(&service.Services{AppInfoService: appInfo}, logger.Nop())
	client := startHealthServer(t, h)
	ctx := context.Background()

	for _, name := range []string{"", ServiceName} {
		resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: name})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
	}

	h.Shutdown()

	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.GetStatus())
}

func TestHandler_UnknownServiceIsNotFound(t *testing.T) {
	client := startHealthServer(t, NewHandler(nil, logger.Nop()))

	_, err := client.Check(context.Background(), &healthpb.HealthCheckRequest{Service: "unknown"})
	assert.Error(t, err)
}

func TestHandler_LoggingInterceptorPassesThrough(t *testing.T) {
	h := NewHandler(nil, logger.Nop())
	info := &grpc.UnaryServerInfo{FullMethod: "/test/Method"}

	resp, err := h.LoggingInterceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "resp", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "resp", resp)

	boom := errors.New("boom")
	_, err = h.LoggingInterceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)
}
