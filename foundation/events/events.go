// Package events allows for the registering and receiving of ledger events.
package events

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// messageBuffer is the number of events a subscriber can fall behind before
// events are dropped for it.
const messageBuffer = 100

// Event represents a single thing that happened on the ledger.
type Event struct {
	Time    time.Time
	Source  string // Package that raised the event: state, pow, worker.
	Message string
}

// String implements the Stringer interface.
func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Time.Format(time.TimeOnly), e.Message)
}

// =============================================================================

// Events maintains a mapping of unique id and channels so goroutines
// can register and receive events.
type Events struct {
	m  map[string]chan Event
	mu sync.RWMutex
}

// New constructs an events for registering and receiving events.
func New() *Events {
	return &Events{
		m: make(map[string]chan Event),
	}
}

// Shutdown closes and removes all channels that were provided by
// the call to Acquire.
func (evt *Events) Shutdown() {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	for id, ch := range evt.m {
		delete(evt.m, id)
		close(ch)
	}
}

// Acquire takes a unique id and returns a channel that can be used
// to receive events.
func (evt *Events) Acquire(id string) <-chan Event {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if exists {
		return ch
	}

	evt.m[id] = make(chan Event, messageBuffer)
	return evt.m[id]
}

// Release closes and removes the channel that was provided by
// the call to Acquire.
func (evt *Events) Release(id string) error {
	evt.mu.Lock()
	defer evt.mu.Unlock()

	ch, exists := evt.m[id]
	if !exists {
		return fmt.Errorf("id %q does not exist", id)
	}

	delete(evt.m, id)
	close(ch)
	return nil
}

// Send formats the message and signals it to every registered channel. Send
// will not block waiting for a receiver on any given channel.
func (evt *Events) Send(v string, args ...any) {
	msg := fmt.Sprintf(v, args...)

	e := Event{
		Time:    time.Now(),
		Source:  source(msg),
		Message: msg,
	}

	evt.mu.RLock()
	defer evt.mu.RUnlock()

	for _, ch := range evt.m {
		select {
		case ch <- e:
		default:
		}
	}
}

// source returns the prefix of a message up to the first colon.
func source(msg string) string {
	src, _, found := strings.Cut(msg, ":")
	if !found {
		return ""
	}
	return src
}
