package health

import (
	"context"
	"runtime"
	"time"

	"github.com/go-faster/errors"
)

// GoroutineCountCheck returns a CheckFunc that reports unhealthy when the
// number of goroutines exceeds the given threshold, to surface goroutine
// leaks through the liveness probe.
func GoroutineCountCheck(threshold int) CheckFunc {
	return func(_ context.Context) error {
		if count := runtime.NumGoroutine(); count > threshold {
			return errors.Errorf("goroutine count %d exceeds threshold %d", count, threshold)
		}
		return nil
	}
}

// Pinger is satisfied by pgxpool.Pool and database handles generally.
type Pinger interface {
	Ping(ctx context.Context) error
}

// DatabaseCheck returns a CheckFunc that pings the database. Use as a
// readiness check so traffic drains when connectivity is lost.
func DatabaseCheck(db Pinger) CheckFunc {
	return func(ctx context.Context) error {
		if err := db.Ping(ctx); err != nil {
			return errors.Wrap(err, "ping database")
		}
		return nil
	}
}

// UptimeCheck returns a CheckFunc that fails until the process has been up
// for warmup. It keeps the readiness probe negative while caches and pools
// are still settling after a restart.
func UptimeCheck(warmup time.Duration) CheckFunc {
	start := time.Now()
	return func(_ context.Context) error {
		if up := time.Since(start); up < warmup {
			return errors.Errorf("warming up: %s of %s", up.Round(time.Millisecond), warmup)
		}
		return nil
	}
}
