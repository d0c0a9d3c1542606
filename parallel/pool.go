// Package parallel provides the bounded worker pool used by folder scans.
package parallel

import (
	"runtime"
	"sync"
)

type (
	// WorkerFunc submits one unit of work.
	WorkerFunc func(func())
	// WaitFunc blocks until submitted work has drained; done also closes
	// the pool to further submissions.
	WaitFunc func(done bool)
)

// Pool runs submitted functions on a fixed number of goroutines. A size
// below 1 uses one worker per available CPU; a pool of size 1 runs work
// inline on the submitting goroutine.
type Pool struct {
	wg   sync.WaitGroup
	work chan func()
	once sync.Once
}

func Start(size int) *Pool {
	if size < 1 {
		size = runtime.GOMAXPROCS(0)
	}

	p := &Pool{}
	if size > 1 {
		p.work = make(chan func(), size)
		for i := 0; i < size; i++ {
			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				for f := range p.work {
					f()
				}
			}()
		}
	}
	return p
}

// Do runs f, inline or on a pool worker.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait blocks until all submitted work has finished. When done is true
// the pool is closed first and Do must not be called again.
func (p *Pool) Wait(done bool) {
	if p.work == nil {
		return
	}
	if done {
		p.once.Do(func() { close(p.work) })
	}
	p.wg.Wait()
}
