package collection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatItemList(t *testing.T) {
	tests := []struct {
		items []string
		want  string
	}{
		{nil, "nothing"},
		{[]string{"garbage"}, "garbage"},
		{[]string{"garbage", "recycling"}, "garbage and recycling"},
		{[]string{"a", "b", "c"}, "a, b, and c"},
		{[]string{"green bin", "garbage", "yard waste", "christmas tree"}, "green bin, garbage, yard waste, and christmas tree"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatItemList(tt.items))
			assert.Equal(t, tt.want, FormatItemList(tt.items), "repeat call")
		})
	}
}

func TestDates(t *testing.T) {
	tests := []struct {
		name         string
		now          time.Time
		wantQuery    time.Time
		wantTomorrow time.Time
	}{
		{
			name:         "afternoon",
			now:          time.Date(2018, 2, 20, 18, 33, 0, 0, time.UTC),
			wantQuery:    date(2018, 2, 20),
			wantTomorrow: date(2018, 2, 21),
		},
		{
			name:         "just after midnight UTC is still yesterday",
			now:          time.Date(2018, 2, 21, 3, 0, 0, 0, time.UTC),
			wantQuery:    date(2018, 2, 20),
			wantTomorrow: date(2018, 2, 21),
		},
		{
			name:         "offset input is normalized to UTC",
			now:          time.Date(2018, 2, 20, 13, 33, 0, 0, time.FixedZone("EST", -5*60*60)),
			wantQuery:    date(2018, 2, 20),
			wantTomorrow: date(2018, 2, 21),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, tomorrow := Dates(tt.now)
			assert.Equal(t, tt.wantQuery, query)
			assert.Equal(t, tt.wantTomorrow, tomorrow)
		})
	}
}

func TestLabelDate(t *testing.T) {
	query, tomorrow := date(2018, 2, 20), date(2018, 2, 21)

	assert.Equal(t, "today, Tuesday February 20", LabelDate(date(2018, 2, 20), query, tomorrow))
	assert.Equal(t, "tomorrow, Wednesday February 21", LabelDate(date(2018, 2, 21), query, tomorrow))
	assert.Equal(t, "Thursday February 22", LabelDate(date(2018, 2, 22), query, tomorrow))
	assert.Equal(t, "Thursday March 01", LabelDate(date(2018, 3, 1), query, tomorrow))
}
