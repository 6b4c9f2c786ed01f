package cron

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/paulaveiga/doceria-api/model"
	"github.com/paulaveiga/doceria-api/services/instagram"
)

// syncLogRetention is how long completed sync logs are kept
const syncLogRetention = 90 * 24 * time.Hour

// RunInstagramSync refreshes the catalog from the configured profile.
// An unconfigured integration is normal and not an error.
func (m *CronManager) RunInstagramSync() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := m.sync.Sync(ctx, "scheduled")
	if err != nil {
		if errors.Is(err, instagram.ErrNotConfigured) {
			log.Println("[CRON] instagram_sync skipped: integration not configured")
			return
		}
		log.Printf("[CRON] instagram_sync failed: %v", err)
		return
	}

	log.Printf("[CRON] instagram_sync completed: %d imported, %d skipped", result.Imported, result.Skipped)
}

// CleanupSyncLogs removes sync logs past the retention window
func (m *CronManager) CleanupSyncLogs() {
	cutoff := time.Now().Add(-syncLogRetention)

	result := m.db.Where("started_at < ?", cutoff).Delete(&model.SyncLog{})
	if result.Error != nil {
		log.Printf("[CRON] cleanup_sync_logs failed: %v", result.Error)
		return
	}

	log.Printf("[CRON] cleanup_sync_logs completed: %d rows removed", result.RowsAffected)
}
