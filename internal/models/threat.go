package models

import (
	"fmt"
	"strings"
)

// ThreatLevel is the coarse risk classification shared by locations and alerts.
type ThreatLevel string

const (
	ThreatSafe     ThreatLevel = "SAFE"
	ThreatWarning  ThreatLevel = "WARNING"
	ThreatCritical ThreatLevel = "CRITICAL"
)

func (t ThreatLevel) String() string {
	return string(t)
}

// Rank orders threat levels: SAFE < WARNING < CRITICAL. Unknown values rank below SAFE.
func (t ThreatLevel) Rank() int {
	switch t {
	case ThreatSafe:
		return 0
	case ThreatWarning:
		return 1
	case ThreatCritical:
		return 2
	default:
		return -1
	}
}

func (t ThreatLevel) Valid() bool {
	return t.Rank() >= 0
}

// Title returns the capitalised word used in alert titles, e.g. "Warning".
func (t ThreatLevel) Title() string {
	s := strings.ToLower(string(t))
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func ParseThreatLevel(s string) (ThreatLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SAFE":
		return ThreatSafe, nil
	case "WARNING":
		return ThreatWarning, nil
	case "CRITICAL":
		return ThreatCritical, nil
	default:
		return "", fmt.Errorf("unknown threat level: %q", s)
	}
}

// Worst returns the highest threat level in levels, SAFE when empty.
func Worst(levels ...ThreatLevel) ThreatLevel {
	worst := ThreatSafe
	for _, l := range levels {
		if l.Rank() > worst.Rank() {
			worst = l
		}
	}
	return worst
}
