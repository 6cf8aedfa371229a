// Package queue holds files observed as newly created until the router
// drains them.
package queue

import (
	"sync"

	"github.com/arthur-debert/filerouter/pkg/types"
)

// Queue is an unbounded FIFO of pending files. It is safe for concurrent
// use: the event bridge enqueues from its own goroutine while the router
// drains.
type Queue struct {
	mu    sync.Mutex
	items []types.PendingFile
}

// New creates an empty queue
func New() *Queue {
	return &Queue{}
}

// Enqueue appends f to the end of the queue
func (q *Queue) Enqueue(f types.PendingFile) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, f)
}

// DrainAll removes and returns every queued file in enqueue order
func (q *Queue) DrainAll() []types.PendingFile {
	q.mu.Lock()
	defer q.mu.Unlock()
	items := q.items
	q.items = nil
	return items
}

// Len returns the number of queued files
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// Contains reports whether a file with the given path is queued
func (q *Queue) Contains(path string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, f := range q.items {
		if f.Path == path {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the queued files without removing them
func (q *Queue) Snapshot() []types.PendingFile {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]types.PendingFile, len(q.items))
	copy(out, q.items)
	return out
}

// Requeue puts files back at the front of the queue, ahead of anything
// enqueued since they were drained, keeping their relative order. A path
// queued again in the meantime is not duplicated; the earlier position wins.
// It returns the number of files put back.
func (q *Queue) Requeue(files []types.PendingFile) int {
	if len(files) == 0 {
		return 0
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	seen := make(map[string]bool, len(files))
	items := make([]types.PendingFile, 0, len(files)+len(q.items))
	for _, f := range files {
		if seen[f.Path] {
			continue
		}
		seen[f.Path] = true
		items = append(items, f)
	}
	restored := len(items)
	for _, f := range q.items {
		if !seen[f.Path] {
			items = append(items, f)
		}
	}
	q.items = items
	return restored
}
