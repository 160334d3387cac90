// internal/mirror/mirror.go

// Package mirror publishes roster snapshots to Redis after successful
// mutations so operators can inspect live rosters without hitting the
// API. Publishing is best-effort: the registry is the source of truth
// and never reads the mirror back.
package mirror

import (
	"context"
	"encoding/json"
	"time"

	"mergington-activities/internal/common/database"
	"mergington-activities/internal/common/logger"
	"mergington-activities/internal/registry"
)

type Mirror struct {
	client *database.RedisClient
	ttl    time.Duration
	log    logger.Logger
}

func New(client *database.RedisClient, ttl time.Duration, log logger.Logger) *Mirror {
	return &Mirror{
		client: client,
		ttl:    ttl,
		log:    log.WithFields(map[string]interface{}{"component": "mirror"}),
	}
}

// PublishActivity mirrors one activity's current record under
// <prefix>:roster:<name>. Errors are logged and swallowed; a mirror
// failure must never fail the request that triggered it.
func (m *Mirror) PublishActivity(ctx context.Context, name string, activity registry.Activity) {
	if m == nil || m.client == nil {
		return
	}

	data, err := json.Marshal(activity)
	if err != nil {
		m.log.Warn("roster snapshot marshal failed", map[string]interface{}{
			"activity": name,
			"error":    err.Error(),
		})
		return
	}

	key := m.client.Key("roster", name)
	if err := m.client.Set(ctx, key, data, m.ttl); err != nil {
		m.log.Warn("roster snapshot publish failed", map[string]interface{}{
			"activity": name,
			"key":      key,
			"error":    err.Error(),
		})
	}
}
