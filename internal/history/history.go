// Package history provides a bounded undo/redo history of application
// state snapshots.
//
// The history is a sequence of snapshots with a pointer to the current one.
// Writing a new snapshot after an undo destroys the redo branch; writing a
// snapshot equal to the current one does nothing. Every operation is total.
//
// A Manager is not safe for concurrent use. The host serialises access,
// typically from its single event loop.
package history

import (
	"reflect"

	"github.com/mrz1836/timelapse/internal/constants"
)

// Manager holds the snapshot sequence for values of type T.
type Manager[T any] struct {
	entries  []T
	pointer  int
	capacity int
	equal    func(a, b T) bool
}

// Option configures a Manager.
type Option[T any] func(*Manager[T])

// WithCapacity bounds the number of retained snapshots. Values below 1 keep
// constants.DefaultHistoryCapacity.
func WithCapacity[T any](n int) Option[T] {
	return func(m *Manager[T]) {
		if n >= 1 {
			m.capacity = n
		}
	}
}

// WithEqual replaces the structural equality used to drop duplicate writes.
func WithEqual[T any](eq func(a, b T) bool) Option[T] {
	return func(m *Manager[T]) {
		if eq != nil {
			m.equal = eq
		}
	}
}

// New creates a history holding only seed.
func New[T any](seed T, opts ...Option[T]) *Manager[T] {
	m := &Manager[T]{
		entries:  []T{seed},
		capacity: constants.DefaultHistoryCapacity,
		equal:    deepEqual[T],
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func deepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}

// Current returns the snapshot at the pointer.
func (m *Manager[T]) Current() T {
	return m.entries[m.pointer]
}

// CanUndo reports whether an older snapshot exists.
func (m *Manager[T]) CanUndo() bool {
	return m.pointer > 0
}

// CanRedo reports whether a newer snapshot exists.
func (m *Manager[T]) CanRedo() bool {
	return m.pointer < len(m.entries)-1
}

// Len returns the number of retained snapshots.
func (m *Manager[T]) Len() int {
	return len(m.entries)
}

// Pointer returns the index of the current snapshot.
func (m *Manager[T]) Pointer() int {
	return m.pointer
}

// Capacity returns the maximum number of retained snapshots.
func (m *Manager[T]) Capacity() int {
	return m.capacity
}

// Entries returns a copy of the retained snapshots, oldest first.
func (m *Manager[T]) Entries() []T {
	out := make([]T, len(m.entries))
	copy(out, m.entries)
	return out
}

// SetState records v as the new current snapshot and reports whether the
// history changed. Entries after the pointer are discarded first; the oldest
// entries are evicted once the capacity is exceeded.
func (m *Manager[T]) SetState(v T) bool {
	if m.equal(v, m.Current()) {
		return false
	}

	// Clear the redo tail so the dropped values can be collected.
	var zero T
	for i := m.pointer + 1; i < len(m.entries); i++ {
		m.entries[i] = zero
	}
	m.entries = append(m.entries[:m.pointer+1], v)
	m.pointer = len(m.entries) - 1

	if over := len(m.entries) - m.capacity; over > 0 {
		m.entries = append(m.entries[:0:0], m.entries[over:]...)
		m.pointer = max(m.pointer-over, 0)
	}
	return true
}

// Undo moves to the previous snapshot. It reports false at the oldest entry.
func (m *Manager[T]) Undo() bool {
	if !m.CanUndo() {
		return false
	}
	m.pointer--
	return true
}

// Redo moves to the next snapshot. It reports false at the newest entry.
func (m *Manager[T]) Redo() bool {
	if !m.CanRedo() {
		return false
	}
	m.pointer++
	return true
}

// Clear discards everything and restarts the history from seed.
func (m *Manager[T]) Clear(seed T) {
	m.entries = []T{seed}
	m.pointer = 0
}
