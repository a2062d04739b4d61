// Package parallel runs independent per-file jobs of the batch commands on a
// fixed set of workers.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits a job. It may block until a worker is free.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted jobs are done. With done set no more
	// jobs may be submitted and the workers exit.
	WaitFunc   func(done bool)
	CancelFunc func()
)

type Pool struct {
	wg      sync.WaitGroup
	Workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start creates a pool with numWorkers workers, GOMAXPROCS when numWorkers is
// below 1. A single worker pool runs every job inline in Do.
func Start(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{
		Workers: numWorkers,
		Do: func(f func()) {
			f()
		},
		Wait:   func(bool) {},
		Cancel: func() {},
	}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					f()
				}
			})
		}

		var pending sync.WaitGroup
		pool.Do = func(f func()) {
			pending.Add(1)
			workChan <- func() {
				defer pending.Done()
				f()
			}
		}

		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
		pool.Wait = func(done bool) {
			pending.Wait()
			if done {
				pool.Cancel()
				pool.wg.Wait()
			}
		}
	}

	return pool
}
