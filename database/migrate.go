// database/migrate.go - Database Migration Runner
package database

import (
	"errors"
	"log"
	"os"
	"strconv"

	"meritledger/models"

	"gorm.io/gorm"
)

// RunMigrations runs all database migrations and seeds the registry state.
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := Migrate(db); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// Migrate applies the schema and seeds the singleton registry state row.
// Split out from RunMigrations so tests can run it against their own DB.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Issuer{},
		&models.Achievement{},
		&models.AchievementAward{},
		&models.Certification{},
		&models.CertificationAward{},
		&models.Profile{},
		&models.RegistryState{},
	); err != nil {
		return err
	}

	return SeedRegistryState(db, ownerIDFromEnv())
}

// SeedRegistryState creates the singleton state row with the given owner if
// it does not exist yet. The owner is fixed at deployment: an existing row
// is never overwritten.
func SeedRegistryState(db *gorm.DB, ownerID uint64) error {
	var st models.RegistryState
	err := db.First(&st, models.RegistryStateID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	st = models.RegistryState{ID: models.RegistryStateID, OwnerID: ownerID}
	return db.Create(&st).Error
}

func ownerIDFromEnv() uint64 {
	if val := os.Getenv("REGISTRY_OWNER_ID"); val != "" {
		if n, err := strconv.ParseUint(val, 10, 64); err == nil && n > 0 {
			return n
		}
		log.Printf("WARNING: invalid REGISTRY_OWNER_ID %q, using default", val)
	}
	return 1
}

// createIndexes creates supplementary indexes
func createIndexes() {
	db := GetDB()
	log.Println("Creating indexes...")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_users_guest ON users(is_guest)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_issuer ON achievements(issuer_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievements_active ON achievements(active)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_certifications_issuer ON certifications(issuer_id)")

	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievement_awards_account ON achievement_awards(account_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_achievement_awards_claimed ON achievement_awards(claimed)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_certification_awards_account ON certification_awards(account_id)")

	log.Println("✅ Indexes created successfully")
}
