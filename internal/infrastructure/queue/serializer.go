package queue

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/trailmate/trailmate-api/internal/api/metrics"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Do once the workers have exited.
var ErrStopped = errors.New("serializer stopped")

type job struct {
	ctx  context.Context
	key  string
	fn   func(context.Context) error
	done chan error
}

// Serializer runs read-modify-write jobs on a fixed set of workers, routing by
// key with consistent hashing. Jobs sharing a key run one at a time and in
// submission order, so two requests mutating the same post cannot interleave.
type Serializer struct {
	workers []chan job
	log     zerolog.Logger

	wg      sync.WaitGroup
	stopped chan struct{}
}

// NewSerializer creates a Serializer with numWorkers shards.
// If numWorkers <= 0, defaultWorkers is used.
func NewSerializer(numWorkers int, log zerolog.Logger) *Serializer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	s := &Serializer{
		workers: make([]chan job, numWorkers),
		log:     log,
		stopped: make(chan struct{}),
	}
	for i := range s.workers {
		s.workers[i] = make(chan job, channelBuffer)
	}
	return s
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled;
// Done is closed once every one of them has returned.
func (s *Serializer) Start(ctx context.Context) {
	s.wg.Add(len(s.workers))
	for i, ch := range s.workers {
		go func() {
			defer s.wg.Done()
			s.runWorker(ctx, i, ch)
		}()
	}
	go func() {
		s.wg.Wait()
		close(s.stopped)
	}()
}

// Done is closed after the workers have exited.
func (s *Serializer) Done() <-chan struct{} {
	return s.stopped
}

// Do queues fn behind every earlier job for key and waits for its result.
// After the workers have stopped it returns ErrStopped without running fn.
func (s *Serializer) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	j := job{ctx: ctx, key: key, fn: fn, done: make(chan error, 1)}
	idx := s.shardIndex(key)

	select {
	case <-s.stopped:
		return ErrStopped
	case s.workers[idx] <- j:
		metrics.MutationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(s.workers[idx])))
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-s.stopped:
		// No worker is running any more: the job either finished or never will.
		select {
		case err := <-j.done:
			return err
		default:
			return ErrStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a key deterministically to a worker index.
func (s *Serializer) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(s.workers)))
}

func (s *Serializer) runWorker(ctx context.Context, id int, ch <-chan job) {
	depth := metrics.MutationQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-ch:
			if !ok {
				return
			}
			depth.Set(float64(len(ch)))
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			j.done <- s.run(j, id)
		}
	}
}

func (s *Serializer) run(j job, id int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().
				Interface("panic", r).
				Str("key", j.key).
				Int("worker_id", id).
				Msg("mutation panicked")
			err = fmt.Errorf("mutation %s: panic: %v", j.key, r)
		}
	}()
	return j.fn(j.ctx)
}
