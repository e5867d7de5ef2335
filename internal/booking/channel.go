package booking

import "sync"

// MessageChannel delivers cross-window messages to subscribers
type MessageChannel interface {
	Subscribe(fn func(Message)) (unsubscribe func())
}

// Channel is an in-memory MessageChannel. Publish delivers synchronously.
type Channel struct {
	mu     sync.RWMutex
	subs   map[int]func(Message)
	nextID int
}

func NewChannel() *Channel {
	return &Channel{subs: make(map[int]func(Message))}
}

func (c *Channel) Subscribe(fn func(Message)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Channel) Publish(msg Message) {
	c.mu.RLock()
	fns := make([]func(Message), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()

	for _, fn := range fns {
		fn(msg)
	}
}

// Subscribers returns the number of registered listeners
func (c *Channel) Subscribers() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.subs)
}
