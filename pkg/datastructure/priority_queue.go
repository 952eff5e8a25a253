package datastructure

import (
	"cmp"
	"errors"
)

var (
	ErrHeapEmpty        = errors.New("priority queue is empty")
	ErrHeapItemNotFound = errors.New("item not found in priority queue")
)

type PriorityQueueNode[T cmp.Ordered] struct {
	Rank float64
	Item T
}

func NewPriorityQueueNode[T cmp.Ordered](rank float64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{Rank: rank, Item: item}
}

// MinHeap binary heap priorityqueue. Equal ranks are ordered by item so
// extraction order is deterministic.
type MinHeap[T cmp.Ordered] struct {
	heap []PriorityQueueNode[T]
	pos  map[T]int
}

func NewMinHeap[T cmp.Ordered]() *MinHeap[T] {
	return &MinHeap[T]{
		heap: make([]PriorityQueueNode[T], 0),
		pos:  make(map[T]int),
	}
}

func (h *MinHeap[T]) less(a, b PriorityQueueNode[T]) bool {
	if a.Rank != b.Rank {
		return a.Rank < b.Rank
	}
	return a.Item < b.Item
}

// parent get index of the parent
func (h *MinHeap[T]) parent(index int) int {
	return (index - 1) / 2
}

// leftChild get index of the left child
func (h *MinHeap[T]) leftChild(index int) int {
	return 2*index + 1
}

// rightChild get index of the right child
func (h *MinHeap[T]) rightChild(index int) int {
	return 2*index + 2
}

func (h *MinHeap[T]) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i].Item] = i
	h.pos[h.heap[j].Item] = j
}

// heapifyUp restore heap property upward. O(logN) tree height.
func (h *MinHeap[T]) heapifyUp(index int) {
	for index != 0 && h.less(h.heap[index], h.heap[h.parent(index)]) {
		h.swap(index, h.parent(index))
		index = h.parent(index)
	}
}

// heapifyDown restore heap property downward. O(logN) tree height.
func (h *MinHeap[T]) heapifyDown(index int) {
	for {
		smallest := index
		left := h.leftChild(index)
		right := h.rightChild(index)

		if left < len(h.heap) && h.less(h.heap[left], h.heap[smallest]) {
			smallest = left
		}
		if right < len(h.heap) && h.less(h.heap[right], h.heap[smallest]) {
			smallest = right
		}
		if smallest == index {
			break
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

// GetMin peek the minimum node without popping it.
func (h *MinHeap[T]) GetMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	return h.heap[0], nil
}

// Insert new item. If the item is already queued its rank is updated instead.
func (h *MinHeap[T]) Insert(key PriorityQueueNode[T]) {
	if index, ok := h.pos[key.Item]; ok {
		old := h.heap[index].Rank
		h.heap[index].Rank = key.Rank
		if key.Rank < old {
			h.heapifyUp(index)
		} else {
			h.heapifyDown(index)
		}
		return
	}
	h.heap = append(h.heap, key)
	index := h.Size() - 1
	h.pos[key.Item] = index
	h.heapifyUp(index)
}

// DecreaseKey lower the rank of an already queued item.
func (h *MinHeap[T]) DecreaseKey(key PriorityQueueNode[T]) error {
	index, ok := h.pos[key.Item]
	if !ok {
		return ErrHeapItemNotFound
	}
	h.heap[index].Rank = key.Rank
	h.heapifyUp(index)
	return nil
}

// ExtractMin pop the minimum node (index 0). O(logN).
func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], error) {
	if h.isEmpty() {
		return PriorityQueueNode[T]{}, ErrHeapEmpty
	}
	root := h.heap[0]
	delete(h.pos, root.Item)

	last := h.Size() - 1
	h.heap[0] = h.heap[last]
	h.heap = h.heap[:last]
	if !h.isEmpty() {
		h.pos[h.heap[0].Item] = 0
		h.heapifyDown(0)
	}
	return root, nil
}
