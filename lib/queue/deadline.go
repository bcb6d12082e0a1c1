package queue

import "container/heap"

// deadlineItem is one entry of a DeadlineHeap.
type deadlineItem[K comparable] struct {
	key      K
	deadline int64 // unix nanoseconds
	index    int
}

// heapSlice implements container/heap.Interface over deadlineItem
// pointers, ordered soonest-deadline-first.
type heapSlice[K comparable] []*deadlineItem[K]

func (h heapSlice[K]) Len() int            { return len(h) }
func (h heapSlice[K]) Less(i, j int) bool  { return h[i].deadline < h[j].deadline }
func (h heapSlice[K]) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *heapSlice[K]) Push(x interface{}) {
	it := x.(*deadlineItem[K])
	it.index = len(*h)
	*h = append(*h, it)
}
func (h *heapSlice[K]) Pop() interface{} {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*h = old[:n-1]
	return it
}

// DeadlineHeap tracks a set of keys each with a deadline, giving O(1)
// key lookup/update alongside O(log n) access to the soonest-expiring
// key. It backs the periodic timeout sweep for blocked clients: each
// blocked client is keyed by its own identity and reinserted or removed
// as it blocks, wakes, or times out.
//
// Not safe for concurrent use.
type DeadlineHeap[K comparable] struct {
	h    heapSlice[K]
	byID map[K]*deadlineItem[K]
}

// NewDeadlineHeap creates an empty heap.
func NewDeadlineHeap[K comparable]() *DeadlineHeap[K] {
	return &DeadlineHeap[K]{byID: make(map[K]*deadlineItem[K])}
}

// Len returns the number of tracked keys.
func (d *DeadlineHeap[K]) Len() int { return len(d.h) }

// Set inserts key with the given deadline, or updates its deadline if
// already tracked.
func (d *DeadlineHeap[K]) Set(key K, deadlineUnixNano int64) {
	if it, ok := d.byID[key]; ok {
		it.deadline = deadlineUnixNano
		heap.Fix(&d.h, it.index)
		return
	}
	it := &deadlineItem[K]{key: key, deadline: deadlineUnixNano}
	heap.Push(&d.h, it)
	d.byID[key] = it
}

// Remove drops key from the heap, if present.
func (d *DeadlineHeap[K]) Remove(key K) (deadline int64, ok bool) {
	it, ok := d.byID[key]
	if !ok {
		return 0, false
	}
	heap.Remove(&d.h, it.index)
	delete(d.byID, key)
	return it.deadline, true
}

// Peek returns the key with the soonest deadline without removing it.
func (d *DeadlineHeap[K]) Peek() (key K, deadline int64, ok bool) {
	if len(d.h) == 0 {
		return key, 0, false
	}
	return d.h[0].key, d.h[0].deadline, true
}

// Contains reports whether key is currently tracked.
func (d *DeadlineHeap[K]) Contains(key K) bool {
	_, ok := d.byID[key]
	return ok
}

// PopExpired removes and returns every key whose deadline is at or
// before nowUnixNano, soonest first. It is meant to be called
// periodically by a timeout sweep.
func (d *DeadlineHeap[K]) PopExpired(nowUnixNano int64) []K {
	var expired []K
	for len(d.h) > 0 && d.h[0].deadline <= nowUnixNano {
		it := heap.Pop(&d.h).(*deadlineItem[K])
		delete(d.byID, it.key)
		expired = append(expired, it.key)
	}
	return expired
}
