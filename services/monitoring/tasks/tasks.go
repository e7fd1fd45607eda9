package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/PartnerPortal/PartnerPortal-Backend/services/monitoring/logging"
)

// Task represents a scheduled task
type Task struct {
	ID          string
	Name        string
	Fn          func(context.Context) error
	Interval    time.Duration // For recurring tasks. Zero means run once
	IsRecurring bool
	ErrorChan   chan error // Channel to send execution errors

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

// LastRun reports when the task last finished and with which error
func (t *Task) LastRun() (time.Time, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastRun, t.lastErr
}

func (t *Task) record(err error) {
	t.mu.Lock()
	t.lastRun = time.Now()
	t.lastErr = err
	t.mu.Unlock()
}

// TaskScheduler manages all scheduled tasks
type TaskScheduler struct {
	tasks  map[string]*Task
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *logging.Logger
}

// NewTaskScheduler creates a new TaskScheduler
func NewTaskScheduler(logger *logging.Logger) *TaskScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &TaskScheduler{
		tasks:  make(map[string]*Task),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// AddTask adds a new task to the scheduler
func (ts *TaskScheduler) AddTask(id, name string, fn func(context.Context) error, interval time.Duration) (*Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.tasks[id]; exists {
		return nil, fmt.Errorf("task with ID %s already exists", id)
	}

	task := &Task{
		ID:          id,
		Name:        name,
		Fn:          fn,
		Interval:    interval,
		IsRecurring: interval > 0,
		ErrorChan:   make(chan error, 1),
	}

	ts.tasks[id] = task
	ts.logger.Info(fmt.Sprintf("Added task %s to scheduler", id))
	return task, nil
}

func (ts *TaskScheduler) execute(task *Task) {
	err := task.Fn(ts.ctx)
	task.record(err)
	if err == nil {
		return
	}

	ts.logger.Error(fmt.Sprintf("Task %s failed: %v", task.Name, err))

	// Non-blocking send to error channel
	select {
	case task.ErrorChan <- err:
	default:
		ts.logger.Warn(fmt.Sprintf("Could not send error to channel for task %s", task.ID))
	}
}

// RunTask immediately executes a specific task
func (ts *TaskScheduler) RunTask(id string) error {
	task, err := ts.GetTask(id)
	if err != nil {
		return err
	}

	ts.logger.Info(fmt.Sprintf("Running task %s", id))
	ts.wg.Add(1)
	go func() {
		defer ts.wg.Done()
		ts.execute(task)
	}()

	return nil
}

// ScheduleTask runs a task after delay, then every Interval for recurring tasks
func (ts *TaskScheduler) ScheduleTask(id string, delay time.Duration) error {
	task, err := ts.GetTask(id)
	if err != nil {
		return err
	}

	ts.logger.Info(fmt.Sprintf("Scheduling task %s to run in %s", id, delay))

	ts.wg.Add(1)
	go func() {
		defer ts.wg.Done()

		timer := time.NewTimer(delay)
		defer timer.Stop()

		for {
			select {
			case <-ts.ctx.Done():
				ts.logger.Info(fmt.Sprintf("Task %s context cancelled", id))
				return
			case <-timer.C:
				ts.execute(task)

				if !task.IsRecurring {
					return
				}
				timer.Reset(task.Interval)
			}
		}
	}()

	return nil
}

// RemoveTask removes a task from the scheduler
func (ts *TaskScheduler) RemoveTask(id string) error {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.tasks[id]; !exists {
		return fmt.Errorf("task with ID %s not found", id)
	}

	delete(ts.tasks, id)
	ts.logger.Info(fmt.Sprintf("Removed task %s from scheduler", id))
	return nil
}

// GetTask retrieves a task by ID
func (ts *TaskScheduler) GetTask(id string) (*Task, error) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	task, exists := ts.tasks[id]
	if !exists {
		return nil, fmt.Errorf("task with ID %s not found", id)
	}

	return task, nil
}

// ListTasks returns all registered tasks
func (ts *TaskScheduler) ListTasks() map[string]*Task {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	tasks := make(map[string]*Task, len(ts.tasks))
	for id, task := range ts.tasks {
		tasks[id] = task
	}
	return tasks
}

// Stop cancels every pending run and waits for running tasks to return
func (ts *TaskScheduler) Stop() {
	ts.cancel()
	ts.wg.Wait()
	ts.logger.Info("Task scheduler stopped")
}
