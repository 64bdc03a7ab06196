package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduleRowStreamsInColumnOrder(t *testing.T) {
	row := ScheduleRow{
		Zone:      "Tuesday1",
		WeekStart: time.Date(2018, 2, 20, 0, 0, 0, 0, time.UTC),
		Flags:     [5]bool{true, false, true, false, true},
	}

	assert.Equal(t, []Stream{GreenBin, Recycling, ChristmasTree}, row.Streams())
}

func TestCollectionItems(t *testing.T) {
	c := Collection{Streams: []Stream{Garbage, YardWaste}}
	assert.Equal(t, []string{"garbage", "yard waste"}, c.Items())

	assert.Empty(t, Collection{}.Items())
	assert.Equal(t, "unknown", Stream(42).String())
}
