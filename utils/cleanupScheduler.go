package utils

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"storefront/checkout"
	"storefront/config"
	"storefront/player"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"
)

// logCleanup logs cleanup events with timestamp
func logCleanup(message string) {
	log.Printf("[CLEANUP %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepSessions evicts idle player sessions and confirmation flows
func sweepSessions() {
	ts := time.Now()
	if n := player.Sessions.SweepExpired(ts); n > 0 {
		logCleanup("Evicted " + strconv.Itoa(n) + " idle player session(s)")
	}
	if n := checkout.Flows.SweepExpired(ts); n > 0 {
		logCleanup("Evicted " + strconv.Itoa(n) + " idle confirmation flow(s)")
	}
}

// sweepStagedSlips deletes staged slip images left over from before today.
// Successful uploads remove their staged copy immediately; anything older
// than the start of the current day is an abandoned preview.
func sweepStagedSlips() {
	cutoff := now.BeginningOfDay()

	entries, err := os.ReadDir(config.AppConfig.UploadDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logCleanup("Failed to read upload dir: " + err.Error())
		}
		return
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(config.AppConfig.UploadDir, entry.Name())
			if err := os.Remove(path); err != nil {
				logCleanup("Failed to remove staged slip " + path + ": " + err.Error())
				continue
			}
			removed++
		}
	}
	if removed > 0 {
		logCleanup("Removed " + strconv.Itoa(removed) + " abandoned slip upload(s)")
	}
}

// StartCleanupScheduler runs the session sweep every five minutes and the
// staged-slip sweep hourly
func StartCleanupScheduler() {
	c := cron.New()

	if _, err := c.AddFunc("*/5 * * * *", sweepSessions); err != nil {
		log.Fatalf("Failed to schedule session sweep: %v", err)
	}
	if _, err := c.AddFunc("0 * * * *", sweepStagedSlips); err != nil {
		log.Fatalf("Failed to schedule slip sweep: %v", err)
	}

	c.Start()
	logCleanup("Cleanup scheduler started")
}
