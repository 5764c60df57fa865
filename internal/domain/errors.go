package domain

import "errors"

// ErrNoData indicates a 204 from the dataselect endpoint
var ErrNoData = errors.New("no data available for requested window")

// ErrEmptyResponse indicates a 200 response carrying an empty waveform block
var ErrEmptyResponse = errors.New("server returned an empty waveform block")

// ErrCheckpointMissing indicates no cursor file exists yet
var ErrCheckpointMissing = errors.New("checkpoint file not found")

// ErrCheckpointCorrupt indicates the cursor file exists but cannot be parsed
var ErrCheckpointCorrupt = errors.New("checkpoint file is not parseable")
