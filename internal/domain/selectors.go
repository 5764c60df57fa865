package domain

import "fmt"

// Selectors identify a single data stream on an FDSN server:
// network, station, location and channel codes (SEED naming).
type Selectors struct {
	Network  string
	Station  string
	Location string
	Channel  string
}

func (s Selectors) String() string {
	loc := s.Location
	if loc == "" {
		loc = "--"
	}
	return fmt.Sprintf("%s.%s.%s.%s", s.Network, s.Station, loc, s.Channel)
}
