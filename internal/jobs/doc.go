// Package jobs implements background processing for the company economy.
//
// The jobs package contains scheduled tasks that run independently of
// HTTP request handling.
//
// # Job Types
//
//   - PayrollScheduler: pays online employees their group salary from
//     the company balance on a fixed interval (default 30 minutes)
//
// # Lifecycle
//
// Jobs share one shape:
//
//	scheduler := jobs.NewPayrollScheduler(companyService, 30*time.Minute)
//	scheduler.Start()
//	defer scheduler.Stop()
//
// Start is idempotent and spawns one goroutine; Stop blocks until an
// in-flight cycle finishes. Jobs log errors but don't crash the
// application.
package jobs
