package jobs

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

type fakeRunner struct {
	cycles atomic.Int64
}

func (f *fakeRunner) RunPayrollCycle(ctx context.Context) error {
	f.cycles.Add(1)
	return nil
}

func TestPayrollScheduler_RunOnce(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	scheduler := NewPayrollScheduler(runner, time.Hour)

	if err := scheduler.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if got := runner.cycles.Load(); got != 1 {
		t.Errorf("expected 1 cycle, got %d", got)
	}
}

func TestPayrollScheduler_DefaultInterval(t *testing.T) {
	t.Parallel()

	scheduler := NewPayrollScheduler(&fakeRunner{}, 0)
	if scheduler.interval != 30*time.Minute {
		t.Errorf("expected 30m default interval, got %v", scheduler.interval)
	}
}

func TestPayrollScheduler_StartStop(t *testing.T) {
	t.Parallel()

	scheduler := NewPayrollScheduler(&fakeRunner{}, time.Hour)

	if scheduler.IsRunning() {
		t.Error("expected not running before Start")
	}
	scheduler.Start()
	scheduler.Start() // idempotent
	if !scheduler.IsRunning() {
		t.Error("expected running after Start")
	}
	scheduler.Stop()
	scheduler.Stop() // idempotent
	if scheduler.IsRunning() {
		t.Error("expected not running after Stop")
	}
}
