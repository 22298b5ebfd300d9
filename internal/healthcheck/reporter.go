package healthcheck

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServicePersistence is the health service name that tracks snapshot storage.
const ServicePersistence = "persistence"

type Source interface {
	Persistent() bool
}

// Reporter mirrors the storefront state into a gRPC health server. The
// overall ("") service is serving while the process runs; persistence flips
// to NOT_SERVING while storage writes fail.
type Reporter struct {
	srv   *health.Server
	src   Source
	every time.Duration
}

func NewReporter(srv *health.Server, src Source, every time.Duration) *Reporter {
	if every <= 0 {
		every = 5 * time.Second
	}
	return &Reporter{srv: srv, src: src, every: every}
}

// Update publishes the current state once.
func (r *Reporter) Update() {
	r.srv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	st := healthpb.HealthCheckResponse_SERVING
	if !r.src.Persistent() {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}
	r.srv.SetServingStatus(ServicePersistence, st)
}

// Run updates on every tick until ctx ends, then marks everything down.
func (r *Reporter) Run(ctx context.Context) error {
	r.Update()
	t := time.NewTicker(r.every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			r.srv.Shutdown()
			return nil
		case <-t.C:
			r.Update()
		}
	}
}
