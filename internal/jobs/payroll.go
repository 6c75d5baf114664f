package jobs

import (
	"context"
	"log"
	"sync"
	"time"
)

// PayrollRunner is the slice of the company service the scheduler needs.
type PayrollRunner interface {
	RunPayrollCycle(ctx context.Context) error
}

// PayrollScheduler runs payroll cycles on a fixed interval.
// Each online employee is paid once per cycle from their company's
// shared balance; everything else is the service's business.
type PayrollScheduler struct {
	payroll  PayrollRunner
	interval time.Duration
	stopCh   chan struct{}
	wg       sync.WaitGroup
	running  bool
	mu       sync.Mutex
}

// NewPayrollScheduler creates a new payroll scheduler job.
func NewPayrollScheduler(payroll PayrollRunner, interval time.Duration) *PayrollScheduler {
	if interval == 0 {
		interval = 30 * time.Minute // Default salary period
	}
	return &PayrollScheduler{
		payroll:  payroll,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the payroll scheduler job.
func (p *PayrollScheduler) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run()
	log.Printf("Payroll scheduler started (interval: %v)", p.interval)
}

// Stop gracefully stops the payroll scheduler job. A cycle in flight
// finishes first.
func (p *PayrollScheduler) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopCh)
	p.wg.Wait()
	log.Println("Payroll scheduler stopped")
}

// run is the main loop
func (p *PayrollScheduler) run() {
	defer p.wg.Done()

	// First cycle shortly after startup, once services have settled
	time.Sleep(5 * time.Second)
	p.runCycle()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.runCycle()
		case <-p.stopCh:
			return
		}
	}
}

func (p *PayrollScheduler) runCycle() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := p.payroll.RunPayrollCycle(ctx); err != nil {
		log.Printf("Error running payroll cycle: %v", err)
	}
}

// RunOnce runs a single payroll cycle (for testing or manual trigger).
func (p *PayrollScheduler) RunOnce(ctx context.Context) error {
	return p.payroll.RunPayrollCycle(ctx)
}

// IsRunning returns whether the scheduler is running.
func (p *PayrollScheduler) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
