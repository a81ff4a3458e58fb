package permission

import (
	"testing"
	"time"
)

func TestOverlapHours(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		start, end time.Time
		rangeFrom  time.Time
		rangeTo    time.Time
		want       float64
	}{
		{
			name:      "fully inside",
			start:     day.Add(10 * time.Hour),
			end:       day.Add(12 * time.Hour),
			rangeFrom: day,
			rangeTo:   day,
			want:      2,
		},
		{
			name:      "clipped at range end",
			start:     day.Add(22 * time.Hour),
			end:       day.Add(26 * time.Hour),
			rangeFrom: day,
			rangeTo:   day,
			want:      2,
		},
		{
			name:      "clipped at range start",
			start:     day.Add(-2 * time.Hour),
			end:       day.Add(3 * time.Hour),
			rangeFrom: day,
			rangeTo:   day,
			want:      3,
		},
		{
			name:      "no overlap",
			start:     day.AddDate(0, 0, 5),
			end:       day.AddDate(0, 0, 5).Add(2 * time.Hour),
			rangeFrom: day,
			rangeTo:   day,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{StartTime: tt.start, EndTime: tt.end}
			got := req.OverlapHours(tt.rangeFrom, tt.rangeTo)
			if got != tt.want {
				t.Errorf("OverlapHours() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoversDate(t *testing.T) {
	day := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	req := Request{StartTime: day.Add(10 * time.Hour), EndTime: day.Add(12 * time.Hour)}

	if !req.CoversDate(day) {
		t.Error("same-day window should cover its date")
	}
	if req.CoversDate(day.AddDate(0, 0, 1)) {
		t.Error("next day should not be covered")
	}

	overnight := Request{StartTime: day.Add(22 * time.Hour), EndTime: day.Add(26 * time.Hour)}
	if !overnight.CoversDate(day) || !overnight.CoversDate(day.AddDate(0, 0, 1)) {
		t.Error("overnight window should touch both dates")
	}
}
