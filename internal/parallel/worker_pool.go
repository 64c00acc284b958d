// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package parallel

import (
	"context"
	"sync"
	"time"

	"roster-scan/internal/observability"
	"roster-scan/internal/pipeline"
)

// WorkerPool processes multiple roster sources concurrently. Each source
// runs through its own pipeline pass; sources never share state, so the
// pool needs no coordination beyond the job and result channels.
type WorkerPool struct {
	workers  int
	jobs     chan *Job
	results  chan *Result
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	observer *observability.Observer
	pipe     *pipeline.Pipeline
}

// Job is one source to process. Ordinal preserves the input position so
// summaries can print in the order the user gave the files.
type Job struct {
	Ordinal int
	Source  pipeline.Source
}

// Result is the outcome of one job.
type Result struct {
	Ordinal  int
	Source   string
	Run      *pipeline.RunResult
	Error    error
	Duration time.Duration
}

// NewWorkerPool creates a pool running jobs through pipe.
func NewWorkerPool(workers int, pipe *pipeline.Pipeline, observer *observability.Observer) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &WorkerPool{
		workers:  workers,
		jobs:     make(chan *Job, workers*2),
		results:  make(chan *Result, workers*2),
		ctx:      ctx,
		cancel:   cancel,
		observer: observer,
		pipe:     pipe,
	}
}

// Start initializes worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workers; i++ {
		wp.wg.Add(1)
		go wp.worker(i)
	}
}

// Stop gracefully shuts down the worker pool. Call after the last Submit.
func (wp *WorkerPool) Stop() {
	close(wp.jobs)
	wp.wg.Wait()
	close(wp.results)
	wp.cancel()
}

// Submit adds a job to the queue
func (wp *WorkerPool) Submit(job *Job) {
	select {
	case wp.jobs <- job:
	case <-wp.ctx.Done():
	}
}

// Results returns the results channel
func (wp *WorkerPool) Results() <-chan *Result {
	return wp.results
}

// worker processes jobs from the queue
func (wp *WorkerPool) worker(id int) {
	defer wp.wg.Done()

	for job := range wp.jobs {
		result := wp.processJob(job, id)

		select {
		case wp.results <- result:
		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job *Job, workerID int) *Result {
	start := time.Now()
	done := wp.observer.StartTiming("worker_pool", "process_job", job.Source.Path)

	run, err := wp.pipe.Run(job.Source)
	duration := time.Since(start)

	done(err == nil, map[string]any{
		"worker_id":   workerID,
		"duration_ms": duration.Milliseconds(),
	})

	return &Result{
		Ordinal:  job.Ordinal,
		Source:   job.Source.Path,
		Run:      run,
		Error:    err,
		Duration: duration,
	}
}

// RunAll processes all sources through the pool and returns the results
// ordered by input position.
func RunAll(workers int, pipe *pipeline.Pipeline, observer *observability.Observer, sources []pipeline.Source) []*Result {
	wp := NewWorkerPool(workers, pipe, observer)
	wp.Start()

	go func() {
		for i, source := range sources {
			wp.Submit(&Job{Ordinal: i, Source: source})
		}
		wp.Stop()
	}()

	ordered := make([]*Result, len(sources))
	for result := range wp.Results() {
		if result.Ordinal >= 0 && result.Ordinal < len(ordered) {
			ordered[result.Ordinal] = result
		}
	}
	return ordered
}
