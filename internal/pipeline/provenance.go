package pipeline

import "time"

// stampLayout renders timestamps as "YYYY-MM-DD HH:MM:SS ZONE".
const stampLayout = "2006-01-02 15:04:05 MST"

// Stamp holds the UTC and local renderings of one captured instant. Every
// row written in one invocation shares the same stamp, so one output file
// never mixes timestamps.
type Stamp struct {
	UTC   string
	Local string
}

// NewStamp captures the current instant once.
func NewStamp() Stamp {
	return StampAt(time.Now())
}

// StampAt builds a stamp from a fixed instant.
func StampAt(t time.Time) Stamp {
	return Stamp{
		UTC:   t.UTC().Format(stampLayout),
		Local: t.Local().Format(stampLayout),
	}
}
