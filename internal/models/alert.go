package models

import (
	"fmt"
	"time"
)

type Alert struct {
	ID           string      `json:"id" yaml:"id"`
	Timestamp    time.Time   `json:"timestamp" yaml:"timestamp"`
	Severity     ThreatLevel `json:"severity" yaml:"severity"`
	Location     string      `json:"location" yaml:"location"` // location display name
	Title        string      `json:"title" yaml:"title"`
	Description  string      `json:"description" yaml:"description"`
	Acknowledged bool        `json:"acknowledged" yaml:"acknowledged"`
}

// TimeAgo renders the age of t relative to now the way the alert list shows it.
func TimeAgo(now, t time.Time) string {
	diff := now.Sub(t)
	minutes := int(diff / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case hours > 0:
		return fmt.Sprintf("%dh ago", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm ago", minutes)
	default:
		return "Just now"
	}
}
