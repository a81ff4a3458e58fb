package leave

import (
	"testing"
	"time"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		leaveType string
		want      Bucket
	}{
		{"annual leave", BucketAnnual},
		{"sick leave", BucketAnnual},
		{"vacation", BucketAnnual},
		{"illness", BucketAnnual},
		{"", BucketAnnual},
		{"something new", BucketAnnual},
		// The annual family wins over a paid/unpaid qualifier
		{"Paid Sick Leave", BucketAnnual},
		{"Unpaid Sick Leave", BucketAnnual},
		{"paid annual leave", BucketAnnual},
		{"unpaid leave", BucketUnpaid},
		{"Unpaid Sabbatical", BucketUnpaid},
		{"paid leave", BucketPaid},
		{"public holiday", BucketPaid},
		// "unpaid" contains "paid"; the unpaid check must win
		{"UNPAID", BucketUnpaid},
	}

	for _, tt := range tests {
		t.Run(tt.leaveType, func(t *testing.T) {
			if got := BucketFor(tt.leaveType); got != tt.want {
				t.Errorf("BucketFor(%q) = %s, want %s", tt.leaveType, got, tt.want)
			}
		})
	}
}

func TestRequestCovers(t *testing.T) {
	start := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC)
	req := Request{StartDate: start, EndDate: end}

	if !req.Covers(start) || !req.Covers(end) {
		t.Error("bounds should be inclusive")
	}
	if !req.Covers(start.AddDate(0, 0, 1)) {
		t.Error("interior day should be covered")
	}
	if req.Covers(start.AddDate(0, 0, -1)) || req.Covers(end.AddDate(0, 0, 1)) {
		t.Error("days outside the range should not be covered")
	}
}
