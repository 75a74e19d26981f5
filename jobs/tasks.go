// Package jobs contains the Asynq task definitions and the worker runtime.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskKPIWarmup pre-populates the dashboard KPI and reference caches.
	TaskKPIWarmup = "analytics:kpi_warmup"
)

// KPIWarmupPayload selects the report year whose caches get warmed.
type KPIWarmupPayload struct {
	Year int `json:"yil"`
}

// NewKPIWarmupTask constructs a warmup task for the given year.
func NewKPIWarmupTask(year int) (*asynq.Task, error) {
	data, err := json.Marshal(KPIWarmupPayload{Year: year})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskKPIWarmup, data), nil
}
