// Package workers holds the asynq task definitions, their processors and the
// cron scheduler that enqueues the periodic ones.
package workers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/swifttrack-be/internal/core/domain"
)

// Task types
const (
	TypeGenerateReport   = "report:generate"
	TypeAlertScan        = "alerts:scan"
	TypeRefreshAnalytics = "analytics:refresh"
	TypeCleanupReports   = "cleanup:reports"
)

// Queue names, highest priority first
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// Enqueuer is the part of asynq.Client used to submit tasks
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

var _ Enqueuer = (*asynq.Client)(nil)

// ReportPayload asks for one report to be rendered and stored
type ReportPayload struct {
	Kind      domain.ReportKind `json:"kind"`
	RequestID string            `json:"request_id,omitempty"`
}

// CleanupPayload sets how long stored reports are kept
type CleanupPayload struct {
	Retention time.Duration `json:"retention"`
}

// NewReportTask builds a report:generate task. Unknown kinds are rejected here
// so they never reach the queue.
func NewReportTask(kind domain.ReportKind, requestID string) (*asynq.Task, error) {
	if _, err := domain.ParseReportKind(string(kind)); err != nil {
		return nil, err
	}
	b, err := json.Marshal(ReportPayload{Kind: kind, RequestID: requestID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report payload: %w", err)
	}
	return asynq.NewTask(TypeGenerateReport, b,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
		asynq.Retention(24*time.Hour)), nil
}

// NewAlertScanTask builds an alerts:scan task
func NewAlertScanTask() *asynq.Task {
	return asynq.NewTask(TypeAlertScan, nil,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(2),
		asynq.Timeout(time.Minute))
}

// NewRefreshAnalyticsTask builds an analytics:refresh task
func NewRefreshAnalyticsTask() *asynq.Task {
	return asynq.NewTask(TypeRefreshAnalytics, nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(2*time.Minute))
}

// NewCleanupTask builds a cleanup:reports task
func NewCleanupTask(retention time.Duration) (*asynq.Task, error) {
	b, err := json.Marshal(CleanupPayload{Retention: retention})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cleanup payload: %w", err)
	}
	return asynq.NewTask(TypeCleanupReports, b,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute)), nil
}

// decodePayload unmarshals a task payload, marking malformed payloads so
// asynq does not retry them.
func decodePayload(t *asynq.Task, dst any) error {
	if err := json.Unmarshal(t.Payload(), dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
