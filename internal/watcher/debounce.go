package watcher

import (
	"sync"
	"time"
)

// Debouncer delays folder processing until filesystem activity settles.
// Rapid events for the same folder (a copy in progress) are coalesced into
// one callback after the delay expires. Expired folders are handed to a
// single worker goroutine, so the callback never runs for two folders at
// once; folders that expire while one is being processed wait their turn.
type Debouncer struct {
	delay    time.Duration
	callback func(path string)

	ready    chan string
	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	mu      sync.Mutex
	pending map[string]*time.Timer
}

// NewDebouncer creates a Debouncer with the given delay and callback and
// starts its worker. Callers must Stop it to terminate the worker.
func NewDebouncer(delay time.Duration, callback func(path string)) *Debouncer {
	d := &Debouncer{
		delay:    delay,
		callback: callback,
		ready:    make(chan string),
		done:     make(chan struct{}),
		pending:  make(map[string]*time.Timer),
	}
	d.wg.Add(1)
	go d.dispatch()
	return d
}

// dispatch drains expired folders one at a time.
func (d *Debouncer) dispatch() {
	defer d.wg.Done()
	for {
		select {
		case <-d.done:
			return
		case path := <-d.ready:
			if d.callback != nil {
				d.callback(path)
			}
		}
	}
}

// Add schedules a folder for processing after the delay. If the folder is
// already pending, its timer resets.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[path]; exists {
		timer.Stop()
	}

	d.pending[path] = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		delete(d.pending, path)
		d.mu.Unlock()

		// Hand off to the worker; a stopped debouncer drops the folder.
		select {
		case d.ready <- path:
		case <-d.done:
		}
	})
}

// Cancel removes a pending folder. A no-op when the folder is not pending.
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, exists := d.pending[path]; exists {
		timer.Stop()
		delete(d.pending, path)
	}
}

// CancelAll cancels every pending folder.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for path, timer := range d.pending {
		timer.Stop()
		delete(d.pending, path)
	}
}

// Stop cancels every pending folder and terminates the worker. A callback
// already in flight runs to completion before Stop returns; no callback
// starts afterwards.
func (d *Debouncer) Stop() {
	d.stopOnce.Do(func() {
		d.CancelAll()
		close(d.done)
	})
	d.wg.Wait()
}

// PendingCount returns the number of folders currently pending.
// This is primarily useful for testing.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// IsPending reports whether the folder is currently pending.
// This is primarily useful for testing.
func (d *Debouncer) IsPending(path string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, exists := d.pending[path]
	return exists
}
