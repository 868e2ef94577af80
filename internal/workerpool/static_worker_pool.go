// Copyright 2026 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package workerpool

import (
	"fmt"
	"sync"
)

// staticWorkerPool runs a fixed number of goroutines draining one FIFO queue.
type staticWorkerPool struct {
	workers uint32
	tasks   chan Task
	wg      sync.WaitGroup
}

var _ WorkerPool = &staticWorkerPool{}

// NewStaticWorkerPool creates a pool with the given number of workers and
// room for queueSize pending tasks before Schedule blocks.
func NewStaticWorkerPool(workers uint32, queueSize int) (*staticWorkerPool, error) {
	if workers == 0 {
		return nil, fmt.Errorf("staticWorkerPool: can't create with 0 workers")
	}
	if queueSize < 0 {
		return nil, fmt.Errorf("staticWorkerPool: negative queue size %d", queueSize)
	}
	return &staticWorkerPool{
		workers: workers,
		tasks:   make(chan Task, queueSize),
	}, nil
}

func (p *staticWorkerPool) Start() {
	for i := uint32(0); i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *staticWorkerPool) run() {
	defer p.wg.Done()
	for task := range p.tasks {
		task.Execute()
	}
}

// Stop closes the queue and waits for the workers to drain it.
//
// REQUIRES: Schedule is not called concurrently with or after Stop.
func (p *staticWorkerPool) Stop() {
	close(p.tasks)
	p.wg.Wait()
}

func (p *staticWorkerPool) Schedule(task Task) {
	p.tasks <- task
}
