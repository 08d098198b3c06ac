package grpcx

import (
	"context"
	"time"

	"github.com/cwrk-planet/bizos/pkg/logger"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName: имя сервиса в grpc.health.v1; пустое имя означает весь процесс.
const ServiceName = "bizos"

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health отдаёт SERVING, пока база отвечает на ping.
type Health struct {
	srv      *health.Server
	db       Pinger
	interval time.Duration
}

func NewHealth(db Pinger, interval time.Duration) *Health {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	h := &Health{srv: health.NewServer(), db: db, interval: interval}
	h.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return h
}

func (h *Health) Register(s *grpc.Server) {
	healthpb.RegisterHealthServer(s, h.srv)
}

func (h *Health) set(st healthpb.HealthCheckResponse_ServingStatus) {
	h.srv.SetServingStatus("", st)
	h.srv.SetServingStatus(ServiceName, st)
}

// Check пингует базу один раз и обновляет статус.
func (h *Health) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, h.interval)
	defer cancel()

	if h.db != nil {
		if err := h.db.Ping(ctx); err != nil {
			logger.L().Warn("health: database ping failed", "err", err)
			h.set(healthpb.HealthCheckResponse_NOT_SERVING)
			return false
		}
	}
	h.set(healthpb.HealthCheckResponse_SERVING)
	return true
}

// Run проверяет базу каждые interval до отмены ctx.
func (h *Health) Run(ctx context.Context) {
	h.Check(ctx)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}

// Shutdown переводит все сервисы в NOT_SERVING перед остановкой.
func (h *Health) Shutdown() {
	h.srv.Shutdown()
}
