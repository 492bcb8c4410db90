package debug

// Runtime stats logger. Started only when config.Debug is true. Logs the
// goroutine count, Go heap and, where the platform exposes it, the resident
// set so a long interactive session can be checked for growth.

import (
	"context"
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// StartRuntimeLogger logs runtime stats every interval until ctx is done.
func StartRuntimeLogger(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if logger == nil {
		return
	}
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
			}
			rss, err := residentSetSize()
			if err != nil && !rssErrLogged {
				logger.Warn("runtime stats: rss unavailable", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Info("runtime-stats", Sample(rss)...)
		}
	}()
}

// Sample returns the current runtime stats as slog attributes.
func Sample(rss uint64) []any {
	samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
	metrics.Read(samples)
	var goroutines uint64
	if samples[0].Value.Kind() == metrics.KindUint64 {
		goroutines = samples[0].Value.Uint64()
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	attrs := []any{
		slog.Uint64("goroutines", goroutines),
		slog.String("heap_alloc", humanize.IBytes(ms.HeapAlloc)),
		slog.String("heap_inuse", humanize.IBytes(ms.HeapInuse)),
		slog.String("stack_inuse", humanize.IBytes(ms.StackInuse)),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	}
	if rss > 0 {
		attrs = append(attrs, slog.String("rss", humanize.IBytes(rss)))
	}
	return attrs
}
