package models

import (
	"testing"
	"time"
)

func TestParseThreatLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    ThreatLevel
		wantErr bool
	}{
		{"SAFE", ThreatSafe, false},
		{"warning", ThreatWarning, false},
		{" Critical ", ThreatCritical, false},
		{"red", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseThreatLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseThreatLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseThreatLevel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThreatLevel_Title(t *testing.T) {
	if got := ThreatCritical.Title(); got != "Critical" {
		t.Errorf("expected Critical, got %s", got)
	}
	if got := ThreatWarning.Title(); got != "Warning" {
		t.Errorf("expected Warning, got %s", got)
	}
}

func TestWorst(t *testing.T) {
	if got := Worst(); got != ThreatSafe {
		t.Errorf("expected SAFE for no levels, got %s", got)
	}
	if got := Worst(ThreatSafe, ThreatWarning, ThreatSafe); got != ThreatWarning {
		t.Errorf("expected WARNING, got %s", got)
	}
	if got := Worst(ThreatWarning, ThreatCritical, ThreatSafe); got != ThreatCritical {
		t.Errorf("expected CRITICAL, got %s", got)
	}
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2025, 8, 30, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		at   time.Time
		want string
	}{
		{now.Add(-30 * time.Second), "Just now"},
		{now.Add(-5 * time.Minute), "5m ago"},
		{now.Add(-90 * time.Minute), "1h ago"},
		{now.Add(-49 * time.Hour), "2d ago"},
		{now.Add(time.Minute), "Just now"},
	}

	for _, tt := range tests {
		if got := TimeAgo(now, tt.at); got != tt.want {
			t.Errorf("TimeAgo(%v) = %q, want %q", tt.at, got, tt.want)
		}
	}
}
