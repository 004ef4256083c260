package lichen

import "sync"

// Task is an owned unit of deferred work. Running a task executes its
// operation exactly once; later runs are no-ops. The one-shot guard
// exists because event-driven code is prone to double submission, and a
// task that fires twice is much harder to debug than one that silently
// does nothing the second time.
type Task struct {
	mu  sync.Mutex
	run func()
}

// NewTask wraps an operation. Arguments are captured by the closure.
func NewTask(fn func()) *Task {
	return &Task{run: fn}
}

// Run executes the task's operation if it has not already run. The
// operation itself runs outside the task lock, so a task may safely
// enqueue further tasks.
func (t *Task) Run() {
	t.mu.Lock()
	fn := t.run
	t.run = nil
	t.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// TaskQueue is a strict-FIFO queue of tasks, safe to append to and drain
// from multiple threads. There is no priority ordering.
type TaskQueue struct {
	mu    sync.Mutex
	tasks []*Task
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{}
}

// Add appends a task.
func (q *TaskQueue) Add(t *Task) {
	if t == nil {
		return
	}
	q.mu.Lock()
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()
}

// HasTasks reports whether the queue is non-empty. By the time the caller
// acts the answer may be stale; use Next's second result to drain safely.
func (q *TaskQueue) HasTasks() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks) > 0
}

// Next pops the oldest task. The second result is false when the queue is
// empty.
func (q *TaskQueue) Next() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tasks) == 0 {
		return nil, false
	}
	t := q.tasks[0]
	q.tasks = q.tasks[1:]
	return t, true
}

// Len returns the current queue depth.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
