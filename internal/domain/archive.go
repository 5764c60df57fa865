package domain

import "time"

// ArchivedWindow is one row of the archive index: a window that was
// successfully fetched and written, and where its file ended up.
type ArchivedWindow struct {
	ID         int64
	RunID      string
	Stream     string
	Window     Window
	Path       string
	Bytes      int64
	RecordedAt time.Time
}
