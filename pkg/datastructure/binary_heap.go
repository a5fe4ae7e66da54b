package datastructure

import (
	"errors"
)

type PriorityQueueNode[T comparable] struct {
	rank      float64
	secondary float64 // compared only when ranks are equal
	seq       uint64  // insertion order, last resort tie-break (fifo)
	item      T
}

func (p PriorityQueueNode[T]) GetItem() T {
	return p.item
}

func (p PriorityQueueNode[T]) GetRank() float64 {
	return p.rank
}

func NewPriorityQueueNode[T comparable](rank float64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{rank: rank, item: item}
}

func NewPriorityQueueNodeWithTieBreak[T comparable](rank, secondary float64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{rank: rank, secondary: secondary, item: item}
}

func (p PriorityQueueNode[T]) less(o PriorityQueueNode[T]) bool {
	if p.rank != o.rank {
		return p.rank < o.rank
	}
	if p.secondary != o.secondary {
		return p.secondary < o.secondary
	}
	return p.seq < o.seq
}

// MinHeap binary heap priorityqueue. an item is in the heap at most once.
// equal (rank, secondary) pairs are popped in insertion order.
type MinHeap[T comparable] struct {
	heap    []PriorityQueueNode[T]
	pos     map[T]int
	nextSeq uint64
}

func NewMinHeap[T comparable]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

// parent get index dari parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

// leftChild get index dari left child
func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

// rightChild get index dari right child
func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].item] = i
	h.pos[h.heap[j].item] = j
}

// heapifyUp check apakah parent dari index lebih besar kalau iya swap. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) int {
	for index != 0 && h.heap[index].less(h.heap[h.parent(index)]) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
	return index
}

// heapifyDown check apakah salah satu children dari index lebih kecil kalau iya swap. O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && h.heap[left].less(h.heap[smallest]) {
			smallest = left
		}
		if right < len(h.heap) && h.heap[right].less(h.heap[smallest]) {
			smallest = right
		}
		if smallest == index {
			return
		}
		h.swap(index, smallest)
		index = smallest
	}
}

func (h *MinHeap[T]) isEmpty() bool {
	return len(h.heap) == 0
}

func (h *MinHeap[T]) Size() int {
	return len(h.heap)
}

func (h *MinHeap[T]) Clear() {
	h.heap = make([]PriorityQueueNode[T], 0)
	h.pos = make(map[T]int)
	h.nextSeq = 0
}

// GetMin mendapatkan nilai minimum dari min-heap (index 0)
func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	return h.heap[0], nil
}

func (h *MinHeap[T]) Contains(item T) bool {
	idx, ok := h.pos[item]
	return ok && idx >= 0
}

// Insert item baru. O(logN)
func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) error {
	if h.Contains(key.item) {
		return errors.New("item already in the heap")
	}
	key.seq = h.nextSeq
	h.nextSeq++
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	h.pos[key.item] = index
	h.heapifyUp(index)
	return nil
}

// ExtractMin ambil nilai minimum dari min-heap (index 0) & pop dari heap. O(logN)
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, errors.New("heap is empty")
	}
	root := h.heap[0]
	last := h.Size() - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	h.pos[root.item] = -1
	h.heapifyDown(0)
	return root, nil
}

// DecreaseKey update rank dari item min-heap. the new key must not be larger. O(logN)
func (h *MinHeap[T]) DecreaseKey(item PriorityQueueNode[T]) error {
	if !h.Contains(item.item) {
		return errors.New("key not found in the heap")
	}
	index := h.pos[item.item]
	item.seq = h.heap[index].seq
	if h.heap[index].less(item) {
		return errors.New("invalid new value")
	}
	h.heap[index] = item
	h.heapifyUp(index)
	return nil
}

// Update replaces the key of an item already in the heap, in either direction. O(logN)
func (h *MinHeap[T]) Update(item PriorityQueueNode[T]) error {
	if !h.Contains(item.item) {
		return errors.New("key not found in the heap")
	}
	index := h.pos[item.item]
	item.seq = h.heap[index].seq
	h.heap[index] = item
	h.heapifyDown(h.heapifyUp(index))
	return nil
}

func (h *MinHeap[T]) Getitem(item T) PriorityQueueNode[T] {
	return h.heap[h.pos[item]]
}
