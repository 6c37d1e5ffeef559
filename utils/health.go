package utils

import (
	"context"
	"sync"
	"time"
)

// Probe checks one backing service.
type Probe func(ctx context.Context) error

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Services  map[string]bool `json:"services"`
	CheckedAt time.Time       `json:"checkedAt"`
}

// Healthy reports whether every probed service answered.
func (h HealthStatus) Healthy() bool {
	for _, ok := range h.Services {
		if !ok {
			return false
		}
	}
	return true
}

// HealthMonitor keeps the latest health snapshot in memory.
type HealthMonitor struct {
	probes map[string]Probe

	mu      sync.RWMutex
	current HealthStatus
}

// NewHealthMonitor creates a monitor over the named probes.
func NewHealthMonitor(probes map[string]Probe) *HealthMonitor {
	return &HealthMonitor{probes: probes}
}

// Status returns latest stored health snapshot.
func (m *HealthMonitor) Status() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Check runs every probe once and stores the result.
func (m *HealthMonitor) Check(ctx context.Context) HealthStatus {
	services := make(map[string]bool, len(m.probes))
	for name, probe := range m.probes {
		pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		services[name] = probe(pctx) == nil
		cancel()
	}
	status := HealthStatus{Services: services, CheckedAt: time.Now()}

	m.mu.Lock()
	m.current = status
	m.mu.Unlock()
	return status
}

// Start performs periodic health checks until ctx is cancelled.
func (m *HealthMonitor) Start(ctx context.Context, interval time.Duration) {
	go func() {
		m.Check(ctx)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Check(ctx)
			}
		}
	}()
}
