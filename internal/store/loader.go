package store

import (
	"context"
	"sync"

	"github.com/opeyemi/lenddesk/internal/domain"
)

// TaskError accumulates multiple errors produced during bulk loading.
type TaskError struct {
	Errors []error
}

func (e *TaskError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := "multiple errors:"
	for _, err := range e.Errors {
		msg += " " + err.Error() + ";"
	}
	return msg
}

func (e *TaskError) append(err error) {
	if err == nil {
		return
	}
	e.Errors = append(e.Errors, err)
}

func (e *TaskError) asError() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e
}

// BulkLoader writes large user datasets into a record store using a worker
// pool, for seeding the local stores from a generated fixture.
type BulkLoader struct {
	store   RecordStore
	workers int
}

// NewBulkLoader creates a BulkLoader with the provided concurrency.
func NewBulkLoader(store RecordStore, workers int) *BulkLoader {
	if workers <= 0 {
		workers = 4
	}
	return &BulkLoader{
		store:   store,
		workers: workers,
	}
}

// LoadUsers persists the provided users concurrently. Individual failures
// are collected; the load continues past them unless the context is
// cancelled.
func (bl *BulkLoader) LoadUsers(ctx context.Context, users []domain.User) error {
	tasks := make(chan domain.User)
	var wg sync.WaitGroup

	var mu sync.Mutex
	taskErr := &TaskError{}

	for i := 0; i < bl.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range tasks {
				if err := bl.store.SaveUser(ctx, user); err != nil {
					mu.Lock()
					taskErr.append(err)
					mu.Unlock()
				}
			}
		}()
	}

	for _, user := range users {
		select {
		case <-ctx.Done():
			close(tasks)
			wg.Wait()
			mu.Lock()
			taskErr.append(ctx.Err())
			mu.Unlock()
			return taskErr.asError()
		case tasks <- user:
		}
	}
	close(tasks)
	wg.Wait()

	return taskErr.asError()
}
