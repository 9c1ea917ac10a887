// Package notify delivers dashboard notifications to the in-page toast stream
// and, once permission is granted, to an external push channel.
package notify

import (
	"strings"
	"time"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

type Kind string

const (
	KindSuccess  Kind = "success"
	KindWarning  Kind = "warning"
	KindCritical Kind = "critical"
	KindSafe     Kind = "safe"
)

// Tag groups push notifications so a newer one replaces an older one on the client.
const Tag = "coastal-alert"

// KindFor maps an alert severity to the toast kind used for it.
func KindFor(level models.ThreatLevel) Kind {
	return Kind(strings.ToLower(string(level)))
}

type Notification struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      Kind      `json:"kind"`
	Icon      string    `json:"icon"`
	Color     string    `json:"color"`
	Tag       string    `json:"tag"`
	CreatedAt time.Time `json:"created_at"`
	DismissAt time.Time `json:"dismiss_at"`
}

func New(title, message string, kind Kind, now time.Time, toastDuration time.Duration) Notification {
	icon, color := style(kind)
	return Notification{
		Title:     title,
		Message:   message,
		Kind:      kind,
		Icon:      icon,
		Color:     color,
		Tag:       Tag,
		CreatedAt: now,
		DismissAt: now.Add(toastDuration),
	}
}

func style(kind Kind) (icon, color string) {
	switch kind {
	case KindSuccess:
		return "check-circle", "success"
	case KindCritical:
		return "exclamation-triangle", "error"
	default:
		return "exclamation-circle", "warning"
	}
}
