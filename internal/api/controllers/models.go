package controllers

import "time"

type StatusResponse struct {
	RunID          string    `json:"run_id"`
	Stream         string    `json:"stream"`
	Cursor         time.Time `json:"cursor"`
	BacklogSeconds float64   `json:"backlog_seconds"`
	WindowMinutes  float64   `json:"window_minutes"`
	RetryMinutes   float64   `json:"retry_minutes"`
	WindowsIndexed int64     `json:"windows_indexed"`
}

type WindowResponse struct {
	RunID      string    `json:"run_id"`
	Stream     string    `json:"stream"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Path       string    `json:"path"`
	Bytes      int64     `json:"bytes"`
	RecordedAt time.Time `json:"recorded_at"`
}
