package lichen

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTask_RunsOnce(t *testing.T) {
	var runs int
	task := NewTask(func() { runs++ })

	task.Run()
	task.Run()
	task.Run()

	assert.Equal(t, 1, runs)
}

func TestTask_RunsOnceConcurrently(t *testing.T) {
	var mu sync.Mutex
	var runs int
	task := NewTask(func() {
		mu.Lock()
		runs++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task.Run()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, runs)
}

func TestTask_MayEnqueueDuringRun(t *testing.T) {
	q := NewTaskQueue()
	var ran bool
	outer := NewTask(func() {
		// Tasks run outside the task lock, so re-entrant Add is fine.
		q.Add(NewTask(func() { ran = true }))
	})
	q.Add(outer)

	for {
		task, ok := q.Next()
		if !ok {
			break
		}
		task.Run()
	}
	assert.True(t, ran)
}

func TestTaskQueue_FIFO(t *testing.T) {
	q := NewTaskQueue()
	var order []int
	for i := 0; i < 5; i++ {
		i := i
		q.Add(NewTask(func() { order = append(order, i) }))
	}
	require.Equal(t, 5, q.Len())
	require.True(t, q.HasTasks())

	for {
		task, ok := q.Next()
		if !ok {
			break
		}
		task.Run()
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
	assert.False(t, q.HasTasks())
}

func TestTaskQueue_NextEmpty(t *testing.T) {
	q := NewTaskQueue()
	task, ok := q.Next()
	assert.Nil(t, task)
	assert.False(t, ok)
}

func TestTaskQueue_IgnoresNil(t *testing.T) {
	q := NewTaskQueue()
	q.Add(nil)
	assert.Zero(t, q.Len())
}

func TestTaskQueue_ConcurrentProducers(t *testing.T) {
	q := NewTaskQueue()
	const producers, perProducer = 8, 100

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Add(NewTask(func() {}))
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, producers*perProducer, q.Len())
}
