// Package interfaces documents the core abstractions used throughout the application.
//
// Consumers declare the small interfaces they need next to the code that
// uses them; this package only ties each one to its production
// implementation.
//
// # Interface Categories
//
// ## Auditing
//
//   - Auditor: records reservation changes and deletes (internal/library/library.go)
//   - AuditReader: lists audit events for the API (internal/http/audit.go)
//   - AuditEventCleaner, MaintenanceLogger: used by maintenance tasks (internal/tasks/cleanup_audit.go)
//
// ## Reports
//
//   - StatsReader: summary and overdue views (internal/http/stats.go)
//   - OverdueLister: overdue report task (internal/tasks/overdue_report.go)
//
// ## Background Work
//
//   - Enqueuer: what the cron scheduler hands jobs to (internal/scheduler/scheduler.go)
//   - TaskQueue, JobLister: task endpoints (internal/http/tasks.go)
//
// ## Health
//
//   - Pinger: database reachability (internal/http/health.go)
//
// # Adding a New Maintenance Task
//
//  1. Define the task and its processor in internal/tasks/
//
//     type ReminderTask struct {
//         DaysBefore int `json:"days_before"`
//     }
//
//     func (t ReminderTask) Config() backlite.QueueConfig {
//         return backlite.QueueConfig{Name: QueueReminders, MaxAttempts: 3}
//     }
//
//     func NewRemindersQueue(lister DueSoonLister) backlite.Queue {
//         return backlite.NewQueue[ReminderTask](RemindersProcessor(lister))
//     }
//
//  2. Register the queue in entrypoint.go
//
//  3. Add a Job to scheduler.MaintenanceJobs if it should run on a schedule,
//     and a case to TasksController.RunTask if it can be triggered by hand
//
// # Adding a New Protected Relation
//
// Deletes are refused while dependent rows exist. To protect a new relation,
// add a rule to integrity.DefaultRules:
//
//	EntityUser: {
//	    {Relation: "reviews", Table: "reviews", Column: "user_id",
//	        Message: "Cannot delete user with existing reviews."},
//	},
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
