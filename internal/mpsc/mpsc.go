// SPDX-License-Identifier: EPL-2.0

// Package mpsc implements an unbounded, lock-free multi-producer
// single-consumer FIFO.
//
// Push never blocks and may be called from any goroutine. TryPop never
// blocks and must only be called from a single consumer goroutine. The
// consumer side performs no allocation.
package mpsc

import "sync/atomic"

type node[T any] struct {
	next  atomic.Pointer[node[T]]
	value T
}

// Queue is an intrusive Vyukov-style queue. The zero value is not usable;
// create one with New.
type Queue[T any] struct {
	// head is written by producers only.
	head atomic.Pointer[node[T]]
	// tail is owned by the consumer. It always points at a stub whose value
	// has already been taken.
	tail *node[T]
}

func New[T any]() *Queue[T] {
	stub := &node[T]{}
	q := &Queue[T]{tail: stub}
	q.head.Store(stub)
	return q
}

// Push appends v. Order is preserved per producer.
func (q *Queue[T]) Push(v T) {
	n := &node[T]{value: v}
	prev := q.head.Swap(n)
	prev.next.Store(n)
}

// TryPop removes the oldest value. ok is false when the queue is empty, or
// when a producer is between its two stores; the value becomes visible on a
// later call.
func (q *Queue[T]) TryPop() (v T, ok bool) {
	next := q.tail.next.Load()
	if next == nil {
		return v, false
	}

	v = next.value
	// Drop the reference so the value can be collected while next serves as
	// the new stub.
	var zero T
	next.value = zero
	q.tail = next
	return v, true
}

// Peek returns the oldest value without removing it. Like TryPop, it must
// only be called by the consumer.
func (q *Queue[T]) Peek() (v T, ok bool) {
	next := q.tail.next.Load()
	if next == nil {
		return v, false
	}
	return next.value, true
}

// Drain pops every visible value into fn, in order.
func (q *Queue[T]) Drain(fn func(T)) int {
	n := 0
	for {
		v, ok := q.TryPop()
		if !ok {
			return n
		}
		fn(v)
		n++
	}
}
