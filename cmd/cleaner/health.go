package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/obahii/data-cleaning/internal/runner"
	"github.com/obahii/data-cleaning/internal/scheduler"
)

// runStatus wraps a Runner and remembers the outcome of the last run for
// the health endpoints.
type runStatus struct {
	scheduler.Runner

	mu      sync.RWMutex
	last    *runner.Summary
	lastErr error
	at      time.Time
}

func (s *runStatus) Run(ctx context.Context, job runner.Job) (*runner.Summary, error) {
	sum, err := s.Runner.Run(ctx, job)
	s.mu.Lock()
	s.at = time.Now()
	s.lastErr = err
	if err == nil {
		s.last = sum
	}
	s.mu.Unlock()
	return sum, err
}

type lastRun struct {
	RunID      string    `json:"runId,omitempty"`
	FinishedAt time.Time `json:"finishedAt"`
	OutputRows int       `json:"outputRows"`
	Dropped    int       `json:"dropped"`
}

type healthResponse struct {
	Status  string   `json:"status"`
	Service string   `json:"service"`
	Version string   `json:"version"`
	LastRun *lastRun `json:"lastRun,omitempty"`
	Error   string   `json:"lastError,omitempty"`
}

func (s *runStatus) healthHandler(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{Status: "ok", Service: "cleaner", Version: version}

	s.mu.RLock()
	if s.last != nil {
		resp.LastRun = &lastRun{
			RunID:      s.last.RunID,
			FinishedAt: s.last.FinishedAt,
			OutputRows: s.last.OutputRows,
			Dropped:    s.last.Dropped,
		}
	}
	if s.lastErr != nil {
		resp.Status = "degraded"
		resp.Error = s.lastErr.Error()
	}
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(resp)
}
