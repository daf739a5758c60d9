package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// mockTask implements the Task interface for testing
type mockTask struct {
	id       uuid.UUID
	taskType string
	payload  []byte
	status   TaskStatus
	execFn   func(ctx context.Context) error
}

func (m *mockTask) ID() uuid.UUID     { return m.id }
func (m *mockTask) Type() string      { return m.taskType }
func (m *mockTask) Payload() []byte   { return m.payload }
func (m *mockTask) Status() TaskStatus { return m.status }

func (m *mockTask) Execute(ctx context.Context) error {
	if m.execFn != nil {
		return m.execFn(ctx)
	}
	return nil
}

func newMockTask() *mockTask {
	return &mockTask{
		id:       uuid.New(),
		taskType: "mock",
		payload:  []byte("test payload"),
		status:   TaskStatusPending,
	}
}

func setupTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestTaskQueueEnqueueAndConsume(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(2, setupTestLogger())
	mock := newMockTask()

	err := q.Enqueue(mock)
	assert.NoError(t, err)

	got := <-q.GetChannel()
	assert.Equal(t, mock.ID(), got.ID())
}

func TestTaskQueueFull(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, setupTestLogger())

	assert.NoError(t, q.Enqueue(newMockTask()))

	err := q.Enqueue(newMockTask())
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTaskQueueClosed(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, setupTestLogger())
	q.Close()

	err := q.Enqueue(newMockTask())
	assert.ErrorIs(t, err, ErrQueueClosed)

	// Closing twice must not panic.
	q.Close()
}

func TestWorkerPoolProcessesTasks(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(10, setupTestLogger())

	var mu sync.Mutex
	executed := make(map[uuid.UUID]bool)
	done := make(chan struct{}, 5)

	for i := 0; i < 5; i++ {
		mock := newMockTask()
		id := mock.id
		mock.execFn = func(ctx context.Context) error {
			mu.Lock()
			executed[id] = true
			mu.Unlock()
			done <- struct{}{}
			return nil
		}
		assert.NoError(t, q.Enqueue(mock))
	}

	pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: 3}, setupTestLogger())
	pool.Start()

	for i := 0; i < 5; i++ {
		<-done
	}
	q.Close()
	pool.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, executed, 5)
}

func TestWorkerPoolErrorHandler(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, setupTestLogger())

	boom := errors.New("boom")
	mock := newMockTask()
	mock.execFn = func(ctx context.Context) error { return boom }
	assert.NoError(t, q.Enqueue(mock))

	handled := make(chan error, 1)
	pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: 1}, setupTestLogger())
	pool.SetErrorHandler(func(task Task, err error) {
		handled <- err
	})
	pool.Start()

	err := <-handled
	assert.ErrorIs(t, err, boom)

	q.Close()
	pool.Stop()
}

func TestWorkerPoolInvalidWorkerCount(t *testing.T) {
	t.Parallel()

	q := NewTaskQueue(1, setupTestLogger())
	pool := NewWorkerPool(q, WorkerPoolConfig{WorkerCount: -1}, setupTestLogger())
	assert.Equal(t, 1, pool.workerCount)
}
