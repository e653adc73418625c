// services/cleanup.go - Stale guest account cleanup
package services

import (
	"log"
	"os"
	"strconv"
	"time"

	"meritledger/models"

	"gorm.io/gorm"
)

// CleanupService periodically deletes guest users that never received an
// award. Accounts with a profile are never touched: profiles are permanent
// once created.
type CleanupService struct {
	db       *gorm.DB
	interval time.Duration
	maxAge   time.Duration
	stop     chan struct{}
	done     chan struct{}
}

var cleanupService *CleanupService

// InitCleanupService initializes the singleton cleanup service.
func InitCleanupService(db *gorm.DB) {
	cleanupService = &CleanupService{
		db:       db,
		interval: time.Duration(getEnvInt("GUEST_CLEANUP_INTERVAL_MINUTES", 60)) * time.Minute,
		maxAge:   time.Duration(getEnvInt("GUEST_CLEANUP_MAX_AGE_HOURS", 72)) * time.Hour,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// GetCleanupService returns the initialized cleanup service.
func GetCleanupService() *CleanupService {
	return cleanupService
}

// Start launches the background cleanup loop.
func (s *CleanupService) Start() {
	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if _, err := s.CleanupStaleGuests(); err != nil {
					log.Printf("Guest cleanup failed: %v", err)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Stop shuts the cleanup loop down and waits for it to exit.
func (s *CleanupService) Stop() {
	close(s.stop)
	<-s.done
}

// CleanupStaleGuests deletes guest users older than the configured max age
// whose account never appears in the profiles table. Returns the number of
// deleted users.
func (s *CleanupService) CleanupStaleGuests() (int64, error) {
	cutoff := time.Now().Add(-s.maxAge)

	result := s.db.Where(
		"is_guest = ? AND created_at < ? AND id NOT IN (SELECT account_id FROM profiles)",
		true, cutoff,
	).Delete(&models.User{})
	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected > 0 {
		log.Printf("🧹 Cleaned up %d stale guest accounts", result.RowsAffected)
	}
	return result.RowsAffected, nil
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return def
}
