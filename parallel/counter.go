package parallel

import (
	"fmt"
	"log/slog"
	"sync/atomic"
)

// Counter tallies the outcome of batch jobs. It is safe for concurrent use.
type Counter struct {
	processed atomic.Uint64
	failed    atomic.Uint64
}

// Track records the result of one job; a non-nil err is logged with logger.
func (c *Counter) Track(logger *slog.Logger, msg string, err error) {
	if err != nil {
		c.failed.Add(1)
		logger.Error(msg, "error", err)
		return
	}
	c.processed.Add(1)
}

func (c *Counter) Processed() uint64 { return c.processed.Load() }
func (c *Counter) Failed() uint64    { return c.failed.Load() }

// Report logs the totals and returns an error if any job failed.
func (c *Counter) Report() error {
	processed, failed := c.Processed(), c.Failed()
	slog.Info("stats", "processed", processed, "errors", failed, "total", processed+failed)

	if failed > 0 {
		return fmt.Errorf("error processing %d files", failed)
	}
	return nil
}
