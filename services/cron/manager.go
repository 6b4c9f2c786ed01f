// Package cron schedules background maintenance for the storefront.
package cron

import (
	"log"
	"time"

	"github.com/paulaveiga/doceria-api/services/instagram"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronManager manages all scheduled jobs
type CronManager struct {
	cron *cron.Cron
	db   *gorm.DB
	sync *instagram.SyncService
}

// NewCronManager creates a new cron manager
func NewCronManager(db *gorm.DB, sync *instagram.SyncService) *CronManager {
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron: c,
		db:   db,
		sync: sync,
	}
}

// Start registers and starts all jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all jobs and waits for running ones to finish
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 6 hours: refresh the catalog from Instagram
	_, err := m.cron.AddFunc("0 0 */6 * * *", func() {
		m.logJobStart("instagram_sync")
		m.RunInstagramSync()
	})
	if err != nil {
		return err
	}

	// Daily at 3 AM: trim old sync logs
	_, err = m.cron.AddFunc("0 0 3 * * *", func() {
		m.logJobStart("cleanup_sync_logs")
		m.CleanupSyncLogs()
	})
	if err != nil {
		return err
	}

	log.Println("All cron jobs registered successfully")
	return nil
}

// logJobStart logs the start of a cron job
func (m *CronManager) logJobStart(jobName string) {
	log.Printf("[CRON] Starting job: %s at %s", jobName, time.Now().Format(time.RFC3339))
}
