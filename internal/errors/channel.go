package errors

import "sync"

// Channel is the diagnostic cell described by spec.md §4.G: cleared at
// the start of each registration, set by the lexer/parser/analyser on
// error, and published to callers via Last.
//
// spec.md models this as thread-local storage. In this implementation
// registrations serialise on the registry's own mutex (spec.md §5), so at
// most one registration is ever mid-flight, and every read or write of
// the cell takes the cell's own mutex (the config loader's per-line
// diagnostics are set outside the registry mutex). A single mutex-guarded
// cell thus stands in for the thread-local one without
// goroutine-local-storage tricks. See DESIGN.md.
type Channel struct {
	mu   sync.Mutex
	last *CompilerError
}

// Clear empties the cell. Called at the start of each public registry
// operation that may report a diagnostic.
func (c *Channel) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = nil
}

// Set records err as the most recent diagnostic.
func (c *Channel) Set(err *CompilerError) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = err
}

// Last returns the most recently recorded diagnostic, or nil.
func (c *Channel) Last() *CompilerError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}
