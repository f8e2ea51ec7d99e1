package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/Tocea2003/Practica-BookSystem/internal/audit"
	"github.com/Tocea2003/Practica-BookSystem/internal/database"
	"github.com/Tocea2003/Practica-BookSystem/internal/http"
	"github.com/Tocea2003/Practica-BookSystem/internal/library"
	"github.com/Tocea2003/Practica-BookSystem/internal/reports"
	"github.com/Tocea2003/Practica-BookSystem/internal/scheduler"
	"github.com/Tocea2003/Practica-BookSystem/internal/tasks"
)

// =============================================================================
// Auditing
// =============================================================================

// Auditor implementations
var _ library.Auditor = (*audit.Service)(nil)

// AuditReader implementations
var _ http.AuditReader = (*audit.Service)(nil)

// AuditEventCleaner / MaintenanceLogger implementations
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)
var _ tasks.MaintenanceLogger = (*audit.Service)(nil)

// =============================================================================
// Reports
// =============================================================================

// StatsReader implementations
var _ http.StatsReader = (*reports.Reporter)(nil)

// OverdueLister implementations
var _ tasks.OverdueLister = (*reports.Reporter)(nil)

// =============================================================================
// Background Work
// =============================================================================

// Enqueuer / TaskQueue implementations
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.TaskQueue = (*tasks.Client)(nil)

// JobLister implementations
var _ http.JobLister = (*scheduler.MaintenanceScheduler)(nil)

// =============================================================================
// Health
// =============================================================================

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)
