// Relaybot - Real-time Chat Bot Service for Cloud Run
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/relaybot

package supervisor

import (
	"context"
	"sync"
	"sync/atomic"
)

// MockService is a test helper that implements suture.Service.
// By default it runs until its context is cancelled.
type MockService struct {
	name       string
	startCount atomic.Int32
	stopCount  atomic.Int32
	started    chan struct{}
	stopped    chan struct{}
	startOnce  sync.Once
	stopOnce   sync.Once

	mu         sync.Mutex
	err        error
	panicValue any
}

// NewMockService creates a new mock service for testing.
func NewMockService(name string) *MockService {
	return &MockService{
		name:    name,
		started: make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Serve implements suture.Service.
func (m *MockService) Serve(ctx context.Context) error {
	m.startCount.Add(1)
	m.startOnce.Do(func() { close(m.started) })
	defer func() {
		m.stopCount.Add(1)
		m.stopOnce.Do(func() { close(m.stopped) })
	}()

	m.mu.Lock()
	err := m.err
	panicValue := m.panicValue
	m.mu.Unlock()

	if panicValue != nil {
		panic(panicValue)
	}
	if err != nil {
		return err
	}

	<-ctx.Done()
	return ctx.Err()
}

// SetError configures the service to return this error immediately.
func (m *MockService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// SetPanic configures the service to panic with v immediately.
func (m *MockService) SetPanic(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.panicValue = v
}

// Started is closed the first time Serve is called.
func (m *MockService) Started() <-chan struct{} {
	return m.started
}

// Stopped is closed the first time Serve returns.
func (m *MockService) Stopped() <-chan struct{} {
	return m.stopped
}

// StartCount returns how many times Serve was called.
func (m *MockService) StartCount() int32 {
	return m.startCount.Load()
}

// StopCount returns how many times Serve returned.
func (m *MockService) StopCount() int32 {
	return m.stopCount.Load()
}

// String implements fmt.Stringer for logging.
func (m *MockService) String() string {
	return m.name
}
