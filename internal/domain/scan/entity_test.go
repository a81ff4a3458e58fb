package scan

import (
	"testing"
	"time"
)

func TestClassify(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2026, 3, 10, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		ts   time.Time
		want Direction
	}{
		{"early morning boundary", day(4, 0), DirectionCheckIn},
		{"mid morning", day(8, 30), DirectionCheckIn},
		{"last check-in minute", day(13, 59), DirectionCheckIn},
		{"afternoon boundary", day(14, 0), DirectionCheckOut},
		{"evening", day(19, 0), DirectionCheckOut},
		{"just before cutoff", day(3, 59), DirectionCheckOut},
		{"midnight", day(0, 0), DirectionCheckOut},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.ts); got != tt.want {
				t.Errorf("Classify(%s) = %s, want %s", tt.ts.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestDirectionValid(t *testing.T) {
	if !DirectionCheckIn.Valid() || !DirectionCheckOut.Valid() {
		t.Error("known directions should be valid")
	}
	if Direction("checkin").Valid() {
		t.Error("unknown direction should be invalid")
	}
	if Direction("").Valid() {
		t.Error("empty direction should be invalid")
	}
}
