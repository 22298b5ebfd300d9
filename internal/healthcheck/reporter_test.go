package healthcheck

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

type flag struct{ ok atomic.Bool }

func (f *flag) Persistent() bool { return f.ok.Load() }

func check(t *testing.T, srv *health.Server, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestUpdateFollowsSource(t *testing.T) {
	srv := health.NewServer()
	src := &flag{}
	src.ok.Store(true)
	r := NewReporter(srv, src, time.Hour)

	r.Update()
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, srv, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, srv, ServicePersistence))

	src.ok.Store(false)
	r.Update()
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, check(t, srv, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, srv, ServicePersistence))
}

func TestRunShutsDownOnCancel(t *testing.T) {
	srv := health.NewServer()
	src := &flag{}
	src.ok.Store(true)
	r := NewReporter(srv, src, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := srv.Check(context.Background(), &healthpb.HealthCheckRequest{Service: ServicePersistence})
		return err == nil && resp.GetStatus() == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, check(t, srv, ServicePersistence))
}
