package sched

import (
	"context"
	"log"
	"sync"
)

// Backgrounder runs continuations on per-game serial queues: work for one
// game executes in submission order with no overlap, while different games
// drain on independent goroutines. This is the process-local realization of
// the single-flight rule; the game manager's session lock backstops it.
type Backgrounder struct {
	mu     sync.Mutex
	queues map[string][]func(ctx context.Context)
	active map[string]bool
	closed bool

	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

func NewBackgrounder() *Backgrounder {
	ctx, cancel := context.WithCancel(context.Background())
	return &Backgrounder{
		queues: map[string][]func(ctx context.Context){},
		active: map[string]bool{},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Schedule enqueues fn for the game and returns immediately. After Close,
// new work is dropped with a log line.
func (b *Backgrounder) Schedule(gameID string, fn func(ctx context.Context)) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		log.Printf("sched: game %s: continuation dropped, scheduler closed", gameID)
		return
	}
	b.queues[gameID] = append(b.queues[gameID], fn)
	if b.active[gameID] {
		b.mu.Unlock()
		return
	}
	b.active[gameID] = true
	b.wg.Add(1)
	b.mu.Unlock()

	go b.drain(gameID)
}

func (b *Backgrounder) drain(gameID string) {
	defer b.wg.Done()
	for {
		b.mu.Lock()
		queue := b.queues[gameID]
		if len(queue) == 0 {
			b.active[gameID] = false
			delete(b.queues, gameID)
			b.mu.Unlock()
			return
		}
		fn := queue[0]
		b.queues[gameID] = queue[1:]
		b.mu.Unlock()

		b.run(gameID, fn)
	}
}

func (b *Backgrounder) run(gameID string, fn func(ctx context.Context)) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Printf("sched: game %s: continuation panicked: %v", gameID, rec)
		}
	}()
	fn(b.ctx)
}

// Close stops accepting work and waits for in-flight continuations. The
// shared context is cancelled first so a paced day can cut its delays short;
// the day itself still runs to completion.
func (b *Backgrounder) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.cancel()
	b.wg.Wait()
}
