package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mikestefanello/backlite"

	"github.com/Tocea2003/Practica-BookSystem/internal/scheduler"
	"github.com/Tocea2003/Practica-BookSystem/internal/tasks"
)

// TaskQueue saves tasks and reports their progress. *tasks.Client satisfies it.
type TaskQueue interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
	Status(ctx context.Context, taskID string) (backlite.TaskStatus, error)
}

// JobLister describes the recurring jobs. *scheduler.MaintenanceScheduler satisfies it.
type JobLister interface {
	Jobs() []scheduler.JobStatus
}

// TasksController handles task queue management endpoints.
type TasksController struct {
	queue TaskQueue
	jobs  JobLister
}

// NewTasksController creates a new TasksController. jobs may be nil when
// the scheduler is disabled.
func NewTasksController(queue TaskQueue, jobs JobLister) *TasksController {
	return &TasksController{queue: queue, jobs: jobs}
}

// TaskTypeInfo describes an available task type.
type TaskTypeInfo struct {
	Type        string     `json:"type"`
	Description string     `json:"description"`
	Queue       string     `json:"queue"`
	Schedule    string     `json:"schedule,omitempty"`
	NextRun     *time.Time `json:"next_run,omitempty"`
}

func (tc *TasksController) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/types", tc.ListTaskTypes)
	rg.GET("/:id", tc.GetTaskStatus)
	rg.POST("/:type/run", tc.RunTask)
}

// ListTaskTypes handles GET /api/tasks/types
// Returns the task types that can be triggered, with their schedule when
// the scheduler runs them.
func (tc *TasksController) ListTaskTypes(c *gin.Context) {
	types := []TaskTypeInfo{
		{
			Type:        tasks.QueueOverdueReport,
			Description: "Log every open reservation that is past its due date",
			Queue:       tasks.QueueOverdueReport,
		},
		{
			Type:        tasks.QueueCleanupAuditEvents,
			Description: "Delete audit events older than the retention period",
			Queue:       tasks.QueueCleanupAuditEvents,
		},
	}

	if tc.jobs != nil {
		scheduled := make(map[string]scheduler.JobStatus)
		for _, job := range tc.jobs.Jobs() {
			scheduled[job.Name] = job
		}
		for i := range types {
			if job, ok := scheduled[types[i].Queue]; ok {
				types[i].Schedule = job.Schedule
				types[i].NextRun = job.NextRun
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"task_types": types,
	})
}

// GetTaskStatus handles GET /api/tasks/:id
// Returns the status of a specific task.
func (tc *TasksController) GetTaskStatus(c *gin.Context) {
	taskID := c.Param("id")
	if taskID == "" {
		respondBadRequest(c, "task ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	status, err := tc.queue.Status(ctx, taskID)
	if err != nil {
		respondInternalError(c, err, "task status")
		return
	}
	if status == backlite.TaskStatusNotFound {
		respondNotFound(c, "task")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":     taskID,
		"status": taskStatusToString(status),
	})
}

// RunTaskRequest is the request body for running a task.
type RunTaskRequest struct {
	// AsOf is the report date for overdue_report (yyyy-MM-dd).
	AsOf string `json:"as_of" binding:"omitempty,date"`
	// RetentionDays overrides the retention for cleanup_audit_events.
	RetentionDays int `json:"retention_days" binding:"omitempty,min=1"`
}

// RunTask handles POST /api/tasks/:type/run
// Manually triggers a task of the specified type.
func (tc *TasksController) RunTask(c *gin.Context) {
	taskType := c.Param("type")

	var req RunTaskRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindingError(c, err)
			return
		}
	}

	var task backlite.Task
	switch taskType {
	case tasks.QueueOverdueReport:
		task = tasks.OverdueReportTask{AsOf: req.AsOf}
	case tasks.QueueCleanupAuditEvents:
		task = tasks.CleanupAuditEventsTask{RetentionDays: req.RetentionDays}
	default:
		respondBadRequest(c, fmt.Sprintf("unknown task type: %s", taskType))
		return
	}

	id, err := tc.queue.Enqueue(c.Request.Context(), task)
	if err != nil {
		respondInternalError(c, err, "enqueue "+taskType)
		return
	}

	respondAccepted(c, "task enqueued", gin.H{
		"task_id": id,
		"type":    taskType,
	})
}

func taskStatusToString(status backlite.TaskStatus) string {
	switch status {
	case backlite.TaskStatusPending:
		return "pending"
	case backlite.TaskStatusRunning:
		return "running"
	case backlite.TaskStatusSuccess:
		return "success"
	case backlite.TaskStatusFailure:
		return "failure"
	case backlite.TaskStatusNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}
