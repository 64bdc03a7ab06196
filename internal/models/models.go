// Package models defines shared data types
package models

import "time"

// Coordinate is a WGS84 latitude/longitude pair
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Stream is one category of curbside collection
type Stream int

const (
	GreenBin Stream = iota
	Garbage
	Recycling
	YardWaste
	ChristmasTree
)

// ScheduleStreams lists streams in schedule column order (columns 2 through 6).
var ScheduleStreams = [...]Stream{GreenBin, Garbage, Recycling, YardWaste, ChristmasTree}

var streamNames = [...]string{
	GreenBin:      "green bin",
	Garbage:       "garbage",
	Recycling:     "recycling",
	YardWaste:     "yard waste",
	ChristmasTree: "christmas tree",
}

// String returns the spoken name of the stream
func (s Stream) String() string {
	if s < 0 || int(s) >= len(streamNames) {
		return "unknown"
	}
	return streamNames[s]
}

// ScheduleRow is one line of the pickup calendar
type ScheduleRow struct {
	Zone      string
	WeekStart time.Time
	Flags     [len(ScheduleStreams)]bool
}

// Streams returns the collected streams in column order
func (r ScheduleRow) Streams() []Stream {
	var out []Stream
	for i, collected := range r.Flags {
		if collected {
			out = append(out, ScheduleStreams[i])
		}
	}
	return out
}

// Collection is the next pickup for a zone
type Collection struct {
	Zone    string    `json:"zone"`
	Date    time.Time `json:"date"`
	Streams []Stream  `json:"-"`
}

// Items returns the spoken names of the collected streams
func (c Collection) Items() []string {
	items := make([]string, 0, len(c.Streams))
	for _, s := range c.Streams {
		items = append(items, s.String())
	}
	return items
}

// DisposalRecord is one entry of the waste wizard catalogue
type DisposalRecord struct {
	Category string `json:"category"`
	Keywords string `json:"keywords"`
	Body     string `json:"body"`
}
