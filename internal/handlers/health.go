package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/swifttrack-be/internal/core/ports"
	"github.com/ammerola/swifttrack-be/internal/pkg/config"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
	statusDegraded  = "degraded"
)

// Pinger is any dependency that can report whether it is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// dependency is one backing service reported by /health and /ready.
type dependency struct {
	name string
	// gating dependencies take the instance out of rotation when down
	gating  bool
	ping    func(ctx context.Context) error
	details func(ctx context.Context) map[string]interface{}
}

// HealthHandler serves the liveness and readiness probes
type HealthHandler struct {
	deps      []dependency
	config    *config.Config
	logger    *slog.Logger
	startTime time.Time
}

// NewHealthHandler registers Postgres as the only gating dependency. Redis
// backs the view cache, so losing it degrades /health without failing /ready.
// The asynq inspector is optional.
func NewHealthHandler(
	database ports.DatabaseProbe,
	redisClient *redis.Client,
	asynqInspector *asynq.Inspector,
	cfg *config.Config,
	logger *slog.Logger,
) *HealthHandler {
	h := &HealthHandler{
		config:    cfg,
		logger:    logger.With(slog.String("handler", "health")),
		startTime: time.Now(),
	}

	h.deps = append(h.deps, dependency{
		name:    "database",
		gating:  true,
		ping:    database.Ping,
		details: database.Health,
	})

	if redisClient != nil {
		h.deps = append(h.deps, dependency{
			name: "redis",
			ping: func(ctx context.Context) error { return redisClient.Ping(ctx).Err() },
			details: func(context.Context) map[string]interface{} {
				stats := redisClient.PoolStats()
				return map[string]interface{}{
					"total_conns": stats.TotalConns,
					"idle_conns":  stats.IdleConns,
					"stale_conns": stats.StaleConns,
				}
			},
		})
	}

	if asynqInspector != nil {
		h.deps = append(h.deps, dependency{
			name: "asynq",
			ping: func(context.Context) error {
				_, err := asynqInspector.Queues()
				return err
			},
			details: func(context.Context) map[string]interface{} {
				return queueDetails(asynqInspector)
			},
		})
	}

	return h
}

// WithStorage adds the report store to /health
func (h *HealthHandler) WithStorage(p Pinger) *HealthHandler {
	h.deps = append(h.deps, dependency{name: "storage", ping: p.Ping})
	return h
}

// HealthStatus is the /health response body
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo is the probe result for one dependency
type ServiceInfo struct {
	Status       string                 `json:"status"`
	Message      string                 `json:"message,omitempty"`
	ResponseTime string                 `json:"response_time,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
}

// SystemInfo is a runtime snapshot of the process
type SystemInfo struct {
	GoVersion      string `json:"go_version"`
	NumGoroutines  int    `json:"num_goroutines"`
	NumCPU         int    `json:"num_cpu"`
	MemoryAllocMB  uint64 `json:"memory_alloc_mb"`
	MemorySysMB    uint64 `json:"memory_sys_mb"`
	GCPauseTotalMs uint64 `json:"gc_pause_total_ms"`
	NumGC          uint32 `json:"num_gc"`
}

// Health reports every dependency. Any failure turns the response into a 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:      statusHealthy,
		Version:     h.config.App.Version,
		Environment: h.config.App.Environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now(),
		Services:    make(map[string]ServiceInfo, len(h.deps)),
		System:      systemInfo(),
	}

	for _, d := range h.deps {
		info := h.probe(ctx, d)
		health.Services[d.name] = info
		if info.Status != statusHealthy {
			health.Status = statusDegraded
		}
	}

	code := http.StatusOK
	if health.Status != statusHealthy {
		code = http.StatusServiceUnavailable
	}
	h.writeProbe(ctx, w, code, health)
}

// Readiness fails only when a gating dependency is unreachable
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := true
	details := make(map[string]string, len(h.deps))
	for _, d := range h.deps {
		switch err := d.ping(ctx); {
		case err == nil:
			details[d.name] = "ready"
		case d.gating:
			ready = false
			details[d.name] = "not ready"
		default:
			details[d.name] = statusDegraded
		}
	}

	code := http.StatusOK
	if !ready {
		code = http.StatusServiceUnavailable
	}
	h.writeProbe(ctx, w, code, map[string]interface{}{
		"ready":   ready,
		"details": details,
	})
}

func (h *HealthHandler) probe(ctx context.Context, d dependency) ServiceInfo {
	start := time.Now()
	if err := d.ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "health check failed",
			slog.String("dependency", d.name),
			slog.String("error", err.Error()))
		return ServiceInfo{Status: statusUnhealthy, Message: err.Error()}
	}

	info := ServiceInfo{Status: statusHealthy}
	if d.details != nil {
		info.Details = d.details(ctx)
	}
	info.ResponseTime = time.Since(start).String()
	return info
}

func (h *HealthHandler) writeProbe(ctx context.Context, w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.ErrorContext(ctx, "failed to encode probe response",
			slog.String("error", err.Error()))
	}
}

func queueDetails(inspector *asynq.Inspector) map[string]interface{} {
	details := make(map[string]interface{})

	queues, err := inspector.Queues()
	if err != nil {
		return details
	}
	stats := make(map[string]interface{}, len(queues))
	for _, q := range queues {
		info, err := inspector.GetQueueInfo(q)
		if err != nil {
			continue
		}
		stats[q] = map[string]int{
			"size":      info.Size,
			"active":    info.Active,
			"pending":   info.Pending,
			"scheduled": info.Scheduled,
			"retry":     info.Retry,
			"archived":  info.Archived,
			"completed": info.Completed,
		}
	}
	details["queues"] = stats

	if servers, err := inspector.Servers(); err == nil && len(servers) > 0 {
		details["servers"] = len(servers)
		details["workers"] = len(servers[0].ActiveWorkers)
	}
	return details
}

func systemInfo() SystemInfo {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SystemInfo{
		GoVersion:      runtime.Version(),
		NumGoroutines:  runtime.NumGoroutine(),
		NumCPU:         runtime.NumCPU(),
		MemoryAllocMB:  m.Alloc / 1024 / 1024,
		MemorySysMB:    m.Sys / 1024 / 1024,
		GCPauseTotalMs: m.PauseTotalNs / 1000 / 1000,
		NumGC:          m.NumGC,
	}
}
