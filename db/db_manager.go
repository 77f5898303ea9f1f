package db

import (
	"context"
	"log"

	"vintrack/models"
)

// Operation represents a database operation that needs to be executed
type Operation struct {
	Execute func() error
	Result  chan error
}

// OperationWithResult represents a database operation that returns a result
type OperationWithResult struct {
	Execute func() (interface{}, error)
	Result  chan OperationResult
}

// OperationResult contains the result of an operation
type OperationResult struct {
	Data  interface{}
	Error error
}

// DBManager manages serialized access to the database
type DBManager struct {
	opQueue       chan Operation
	resultOpQueue chan OperationWithResult
	stopping      chan struct{}
}

// NewDBManager creates a new database manager
func NewDBManager() *DBManager {
	m := &DBManager{
		opQueue:       make(chan Operation, 100),
		resultOpQueue: make(chan OperationWithResult, 100),
		stopping:      make(chan struct{}),
	}

	// Start the worker goroutine
	go m.worker()
	log.Println("Database access manager started")

	return m
}

// worker processes operations one at a time
func (m *DBManager) worker() {
	for {
		select {
		case op := <-m.opQueue:
			err := op.Execute()
			op.Result <- err
		case op := <-m.resultOpQueue:
			data, err := op.Execute()
			op.Result <- OperationResult{Data: data, Error: err}
		case <-m.stopping:
			return
		}
	}
}

// ExecuteOperation executes a database operation through the worker
func (m *DBManager) ExecuteOperation(execute func() error) error {
	resultChan := make(chan error, 1)
	m.opQueue <- Operation{
		Execute: execute,
		Result:  resultChan,
	}
	return <-resultChan
}

// ExecuteOperationWithResult executes a database operation that returns a result
func (m *DBManager) ExecuteOperationWithResult(execute func() (interface{}, error)) (interface{}, error) {
	resultChan := make(chan OperationResult, 1)
	m.resultOpQueue <- OperationWithResult{
		Execute: execute,
		Result:  resultChan,
	}
	result := <-resultChan
	return result.Data, result.Error
}

// Stop stops the database manager
func (m *DBManager) Stop() {
	close(m.stopping)
}

// Methods for specific repository operations

// CreateOrUpdateVIN serializes access to VIN record creation/updates
func (m *DBManager) CreateOrUpdateVIN(repo VINRepository, ctx context.Context, record *models.VIN) (*models.VIN, error) {
	result, err := m.ExecuteOperationWithResult(func() (interface{}, error) {
		return repo.CreateOrUpdate(ctx, record)
	})
	if err != nil {
		return nil, err
	}
	return result.(*models.VIN), nil
}

// DeleteVIN serializes access to VIN record deletion
func (m *DBManager) DeleteVIN(repo VINRepository, ctx context.Context, id string) error {
	return m.ExecuteOperation(func() error {
		return repo.DeleteByID(ctx, id)
	})
}

// ReplaceListings serializes access to listing cache replacement
func (m *DBManager) ReplaceListings(repo ListingCacheRepository, ctx context.Context, vin string, listings []models.Listing) error {
	return m.ExecuteOperation(func() error {
		return repo.Replace(ctx, vin, listings)
	})
}

// DeleteListings serializes access to listing cache deletion
func (m *DBManager) DeleteListings(repo ListingCacheRepository, ctx context.Context, vin string) error {
	return m.ExecuteOperation(func() error {
		return repo.Delete(ctx, vin)
	})
}
