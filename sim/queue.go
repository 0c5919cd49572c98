// Implements the WaitQueue, which holds the suspended continuations of
// processes waiting for a Resource slot.

package sim

// WaitQueue represents a FIFO queue of processes waiting on a resource.
// Waiters are granted in the order they joined; nobody reneges or switches.
type WaitQueue struct {
	queue []func() // FIFO queue of suspended continuations
}

// Enqueue adds a waiter to the back of the wait queue.
func (wq *WaitQueue) Enqueue(fn func()) {
	if fn == nil {
		panic("Enqueue: fn must not be nil")
	}
	wq.queue = append(wq.queue, fn)
}

// Len returns the number of waiters in the queue.
func (wq *WaitQueue) Len() int {
	return len(wq.queue)
}

// Dequeue removes the waiter at the front of the queue.
// Returns nil if the queue is empty.
func (wq *WaitQueue) Dequeue() func() {
	if len(wq.queue) == 0 {
		return nil
	}
	fn := wq.queue[0]
	wq.queue[0] = nil
	wq.queue = wq.queue[1:]
	return fn
}
