package telemetry

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("htassist.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("process_cpu_percent", metric.WithUnit("%"))
var rssGauge, _ = meter.Int64Gauge("process_rss", metric.WithUnit("By"))
var heapGauge, _ = meter.Int64Gauge("heap_alloc", metric.WithUnit("By"))
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// InstrumentPerfStats records the process's resource usage every `interval`
// until ctx is done. A run of the CLI lasts a few page loads, so the first
// sample is taken right away.
func InstrumentPerfStats(ctx context.Context, interval time.Duration) {
	proc, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		slog.Debug("process stats are unavailable", "err", err)
		proc = nil
	}

	record := func() {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		heapGauge.Record(ctx, int64(memStats.HeapAlloc))
		goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))

		if proc == nil {
			return
		}
		cpu, err := proc.CPUPercentWithContext(ctx)
		if err == nil {
			cpuGauge.Record(ctx, cpu)
		}
		mem, err := proc.MemoryInfoWithContext(ctx)
		if err == nil {
			rssGauge.Record(ctx, int64(mem.RSS))
		}
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		record()
		for {
			select {
			case <-ticker.C:
				record()
			case <-ctx.Done():
				return
			}
		}
	}()
}
