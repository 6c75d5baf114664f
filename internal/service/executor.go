package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CommandSink is where queued console commands end up.
type CommandSink interface {
	Dispatch(ctx context.Context, command string) error
}

// LogSink just logs each command. The default when no console bridge is
// configured.
type LogSink struct{}

// Dispatch logs the command and succeeds.
func (LogSink) Dispatch(_ context.Context, command string) error {
	slog.Info("console command", "command", command)
	return nil
}

// HTTPSink posts each command to the game server's console bridge.
type HTTPSink struct {
	url    string
	client *http.Client
}

// NewHTTPSink creates a sink posting to the given bridge URL.
func NewHTTPSink(url string) *HTTPSink {
	return &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Dispatch posts {"command": ...} to the bridge.
func (s *HTTPSink) Dispatch(ctx context.Context, command string) error {
	body, err := json.Marshal(map[string]string{"command": command})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("console bridge returned status %d", resp.StatusCode)
	}
	return nil
}

type submission struct {
	id      string
	command string
}

// AsyncExecutor queues console commands and dispatches them from a
// single worker, so commands reach the sink in submission order.
// Execute never blocks: when the queue is full the command is dropped
// and logged.
type AsyncExecutor struct {
	sink    CommandSink
	queue   chan submission
	stopCh  chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex
}

// NewAsyncExecutor creates an executor over the sink. queueSize <= 0
// picks a sensible default.
func NewAsyncExecutor(sink CommandSink, queueSize int) *AsyncExecutor {
	if queueSize <= 0 {
		queueSize = 256
	}
	if sink == nil {
		sink = LogSink{}
	}
	return &AsyncExecutor{
		sink:   sink,
		queue:  make(chan submission, queueSize),
		stopCh: make(chan struct{}),
	}
}

// Start launches the worker.
func (e *AsyncExecutor) Start() {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return
	}
	e.running = true
	e.mu.Unlock()

	e.wg.Add(1)
	go e.run()
	slog.Info("command executor started")
}

// Stop drains nothing and stops the worker. Queued commands that were
// not yet dispatched are dropped.
func (e *AsyncExecutor) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	e.mu.Unlock()

	close(e.stopCh)
	e.wg.Wait()
	slog.Info("command executor stopped")
}

// Execute queues the command. Fire and forget.
func (e *AsyncExecutor) Execute(command string) {
	sub := submission{id: uuid.New().String(), command: command}
	select {
	case e.queue <- sub:
	default:
		slog.Warn("command queue full, dropping command", "submission_id", sub.id, "command", command)
	}
}

func (e *AsyncExecutor) run() {
	defer e.wg.Done()
	for {
		select {
		case sub := <-e.queue:
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if err := e.sink.Dispatch(ctx, sub.command); err != nil {
				slog.Error("command dispatch failed",
					"submission_id", sub.id,
					"command", sub.command,
					"error", err)
			}
			cancel()
		case <-e.stopCh:
			return
		}
	}
}
