package domain

import "github.com/segmentio/ksuid"

// NewRunID generates the identifier for one process lifetime. It tags log
// lines and archive index rows so windows fetched by different runs can be
// told apart, and sorts chronologically like all KSUIDs.
func NewRunID() string {
	return ksuid.New().String()
}
