package services

import (
	"context"
	"os"
	"sync"
	"time"

	"faculty-reporting-backend-go/internal/models"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ReportEvent is pushed to monitoring sockets whenever a report lands.
type ReportEvent struct {
	Kind       string    `json:"kind"`
	ReportID   int64     `json:"reportId"`
	ReportType string    `json:"reportType"`
	SenderRole string    `json:"senderRole"`
	Stream     string    `json:"stream,omitempty"`
	At         time.Time `json:"at"`
}

type MetricSample struct {
	Kind              string    `json:"kind"`
	CapturedAt        time.Time `json:"capturedAt"`
	HeapUsedBytes     int64     `json:"heapUsedBytes"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes"`
	DiskTotalBytes    int64     `json:"diskTotalBytes"`
	DiskUsedBytes     int64     `json:"diskUsedBytes"`
	ProcessCpuLoad    float64   `json:"processCpuLoad"`
	SystemCpuLoad     float64   `json:"systemCpuLoad"`
}

// ActivityHub fans report events and metric samples out to connected
// monitoring sockets. The hub is the only in-process state shared
// across requests besides the pool itself.
type ActivityHub struct {
	mu    sync.Mutex
	conns map[*websocket.Conn]bool
	queue chan interface{}
}

func NewActivityHub() *ActivityHub {
	return &ActivityHub{
		conns: map[*websocket.Conn]bool{},
		queue: make(chan interface{}, 64),
	}
}

func (h *ActivityHub) Add(conn *websocket.Conn) {
	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()
}

func (h *ActivityHub) Remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
}

// Broadcast never blocks the caller; a full queue drops the event.
func (h *ActivityHub) Broadcast(event interface{}) {
	select {
	case h.queue <- event:
	default:
	}
}

func (h *ActivityHub) Run(ctx context.Context) {
	for {
		select {
		case event := <-h.queue:
			h.mu.Lock()
			for conn := range h.conns {
				if err := conn.WriteJSON(event); err != nil {
					delete(h.conns, conn)
					_ = conn.Close()
				}
			}
			h.mu.Unlock()
		case <-ctx.Done():
			return
		}
	}
}

// CaptureMetrics samples process and system load, persists the sample
// and returns it for broadcasting.
func CaptureMetrics(store Store, diskPath string) (MetricSample, error) {
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc != nil {
		rss, _ := proc.MemoryInfo()
		if rss != nil {
			processRSS = int64(rss.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPU, _ := cpu.Percent(0, false)
	sysCPUValue := 0.0
	if len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	sample := MetricSample{
		Kind:           "metrics",
		CapturedAt:     time.Now().UTC(),
		HeapUsedBytes:  processRSS,
		ProcessCpuLoad: processCPU,
		SystemCpuLoad:  sysCPUValue,
	}
	if memStat != nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}
	if diskStat != nil {
		sample.DiskTotalBytes = int64(diskStat.Total)
		sample.DiskUsedBytes = int64(diskStat.Used)
	}

	_, err = store.Exec(`
INSERT INTO server_metric_samples (
  id, captured_at, heap_used_bytes, system_memory_total_bytes, system_memory_used_bytes,
  disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, uuid.NewString(), sample.CapturedAt, sample.HeapUsedBytes, sample.SystemMemoryTotal,
		sample.SystemMemoryUsed, sample.DiskTotalBytes, sample.DiskUsedBytes, sample.ProcessCpuLoad, sample.SystemCpuLoad)
	if err != nil {
		return MetricSample{}, err
	}
	return sample, nil
}

func LatestMetrics(store Store, limit int) ([]MetricSample, error) {
	rows := []models.ServerMetricSample{}
	err := store.Select(&rows, `
SELECT * FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	samples := make([]MetricSample, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, MetricSample{
			Kind:              "metrics",
			CapturedAt:        row.CapturedAt,
			HeapUsedBytes:     row.HeapUsedBytes,
			SystemMemoryTotal: row.SystemMemoryTotal,
			SystemMemoryUsed:  row.SystemMemoryUsed,
			DiskTotalBytes:    row.DiskTotalBytes,
			DiskUsedBytes:     row.DiskUsedBytes,
			ProcessCpuLoad:    row.ProcessCpuLoad,
			SystemCpuLoad:     row.SystemCpuLoad,
		})
	}
	return samples, nil
}
