package repository

import (
	"context"
	"time"

	"github.com/mr1hm/go-coastal-alerts/internal/models"
)

type Filter struct {
	Limit    int
	Offset   int
	Since    *time.Time
	Severity *models.ThreatLevel
}

// SessionStore keeps small serialized records under fixed keys.
type SessionStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AlertArchive receives alerts evicted from the in-memory list.
type AlertArchive interface {
	ArchiveAlerts(ctx context.Context, alerts []models.Alert) error
	ListArchived(ctx context.Context, opts Filter) ([]models.Alert, error)
}
