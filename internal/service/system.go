package service

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/creamcroissant/foodpos/internal/repository"
)

// SystemService feeds the admin dashboard: host health plus order volume
// by status.
type SystemService interface {
	Status(ctx context.Context) (SystemStatus, error)
}

// SystemStatus is the admin dashboard payload.
type SystemStatus struct {
	Version       string                             `json:"version"`
	Hostname      string                             `json:"hostname"`
	UptimeSeconds int64                              `json:"uptime_seconds"`
	GoVersion     string                             `json:"go_version"`
	CPUPercent    float64                            `json:"cpu_percent"`
	MemUsed       uint64                             `json:"mem_used"`
	MemTotal      uint64                             `json:"mem_total"`
	Orders        map[repository.OrderStatus]int64   `json:"orders"`
}

type systemService struct {
	version   string
	startedAt time.Time
	orders    repository.OrderRepository
}

// NewSystemService constructs the system status service.
func NewSystemService(version string, startedAt time.Time, orders repository.OrderRepository) SystemService {
	return &systemService{version: version, startedAt: startedAt, orders: orders}
}

func (s *systemService) Status(ctx context.Context) (SystemStatus, error) {
	status := SystemStatus{
		Version:       s.version,
		GoVersion:     runtime.Version(),
		UptimeSeconds: int64(time.Since(s.startedAt).Seconds()),
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		status.Hostname = info.Hostname
	}
	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.MemUsed = vm.Used
		status.MemTotal = vm.Total
	}

	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return status, err
	}
	status.Orders = counts
	return status, nil
}
