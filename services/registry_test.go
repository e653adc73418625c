// services/registry_test.go - Test harness, issuer registry and catalogs
package services

import (
	"fmt"
	"strings"
	"testing"

	"meritledger/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testOwner   uint64 = 1
	testIssuer  uint64 = 2
	testAccount uint64 = 10
)

// newTestRegistry builds a registry over a fresh in-memory database seeded
// with testOwner as the fixed owner.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Issuer{},
		&models.Achievement{},
		&models.AchievementAward{},
		&models.Certification{},
		&models.CertificationAward{},
		&models.Profile{},
		&models.RegistryState{},
	))
	require.NoError(t, db.Create(&models.RegistryState{
		ID:      models.RegistryStateID,
		OwnerID: testOwner,
	}).Error)

	return NewRegistry(db, NewEventBus())
}

func registerTestIssuer(t *testing.T, r *Registry) {
	t.Helper()
	require.NoError(t, r.RegisterIssuer(testOwner, testIssuer, "Acme", "test issuer"))
}

func createTestAchievement(t *testing.T, r *Registry, reward uint64) uint64 {
	t.Helper()
	id, err := r.CreateAchievement(testIssuer, "Course", "desc", "CS", reward)
	require.NoError(t, err)
	return id
}

func TestRegisterIssuer(t *testing.T) {
	r := newTestRegistry(t)

	require.NoError(t, r.RegisterIssuer(testOwner, testIssuer, "Acme", "desc"))

	issuer, err := r.GetIssuerInfo(testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "Acme", issuer.Name)
	assert.True(t, issuer.Active)
	assert.True(t, r.IsActiveIssuer(testIssuer))
}

func TestRegisterIssuerUnauthorized(t *testing.T) {
	r := newTestRegistry(t)

	err := r.RegisterIssuer(testAccount, testIssuer, "Acme", "desc")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, r.IsActiveIssuer(testIssuer))
}

func TestRegisterIssuerValidation(t *testing.T) {
	r := newTestRegistry(t)

	err := r.RegisterIssuer(testOwner, testIssuer, "", "desc")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = r.RegisterIssuer(testOwner, testIssuer, strings.Repeat("x", MaxNameLength+1), "desc")
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = r.RegisterIssuer(testOwner, testIssuer, "Acme", strings.Repeat("x", MaxDescriptionLength+1))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReRegisterIssuerOverwrites(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	first, err := r.GetIssuerInfo(testIssuer)
	require.NoError(t, err)

	require.NoError(t, r.DeactivateIssuer(testOwner, testIssuer))
	require.NoError(t, r.RegisterIssuer(testOwner, testIssuer, "Acme Corp", "updated"))

	second, err := r.GetIssuerInfo(testIssuer)
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", second.Name)
	assert.True(t, second.Active)
	// Re-registration overwrites the original registration time
	assert.Greater(t, second.RegisteredAt, first.RegisteredAt)
}

func TestDeactivateIssuer(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	require.NoError(t, r.DeactivateIssuer(testOwner, testIssuer))
	assert.False(t, r.IsActiveIssuer(testIssuer))

	// Deactivated issuers can no longer create definitions
	_, err := r.CreateAchievement(testIssuer, "Course", "desc", "CS", MinRewardAmount)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeactivateIssuerNotFound(t *testing.T) {
	r := newTestRegistry(t)

	err := r.DeactivateIssuer(testOwner, 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateAchievementAssignsDenseIDs(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	for want := uint64(1); want <= 3; want++ {
		id, err := r.CreateAchievement(testIssuer, "Course", "desc", "CS", MinRewardAmount)
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	_, err := r.GetAchievement(4)
	assert.ErrorIs(t, err, ErrAchievementNotFound)
	_, err = r.GetAchievement(0)
	assert.ErrorIs(t, err, ErrAchievementNotFound)

	stats, err := r.GetRegistryStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(3), stats.TotalAchievements)
}

func TestCreateAchievementRewardBounds(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	_, err := r.CreateAchievement(testIssuer, "Course", "desc", "CS", MinRewardAmount-1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.CreateAchievement(testIssuer, "Course", "desc", "CS", MinRewardAmount)
	assert.NoError(t, err)

	_, err = r.CreateAchievement(testIssuer, "Course", "desc", "CS", MaxRewardAmount+1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.CreateAchievement(testIssuer, "Course", "desc", "CS", MaxRewardAmount)
	assert.NoError(t, err)
}

func TestCreateAchievementValidation(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	cases := []struct {
		name        string
		achName     string
		description string
		category    string
	}{
		{"empty name", "", "desc", "CS"},
		{"long name", strings.Repeat("x", MaxNameLength+1), "desc", "CS"},
		{"long description", "Course", strings.Repeat("x", MaxDescriptionLength+1), "CS"},
		{"empty category", "Course", "desc", ""},
		{"long category", "Course", "desc", strings.Repeat("x", MaxCategoryLength+1)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.CreateAchievement(testIssuer, tc.achName, tc.description, tc.category, MinRewardAmount)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDeactivateAchievement(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)
	id := createTestAchievement(t, r, MinRewardAmount)

	// A third party can neither deactivate nor re-activate
	err := r.DeactivateAchievement(testAccount, id)
	assert.ErrorIs(t, err, ErrUnauthorized)

	// The original issuer can
	require.NoError(t, r.DeactivateAchievement(testIssuer, id))

	achievement, err := r.GetAchievement(id)
	require.NoError(t, err)
	assert.False(t, achievement.Active)
}

func TestDeactivateAchievementByOwner(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)
	id := createTestAchievement(t, r, MinRewardAmount)

	require.NoError(t, r.DeactivateAchievement(testOwner, id))
}

func TestDeactivateAchievementNotFound(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	err := r.DeactivateAchievement(testIssuer, 42)
	assert.ErrorIs(t, err, ErrAchievementNotFound)
}

func TestCreateCertification(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	id, err := r.CreateCertification(testIssuer, "Cert", "desc", 2)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), id)

	certification, err := r.GetCertification(id)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), certification.RequiredAchievements)
	assert.True(t, certification.Active)

	stats, err := r.GetRegistryStats()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), stats.TotalCertifications)
}

func TestCreateCertificationValidation(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	_, err := r.CreateCertification(testIssuer, "Cert", "desc", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.CreateCertification(testIssuer, "", "desc", 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = r.CreateCertification(testAccount, "Cert", "desc", 1)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeactivateCertification(t *testing.T) {
	r := newTestRegistry(t)
	registerTestIssuer(t, r)

	id, err := r.CreateCertification(testIssuer, "Cert", "desc", 1)
	require.NoError(t, err)

	err = r.DeactivateCertification(testAccount, id)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, r.DeactivateCertification(testIssuer, id))

	certification, err := r.GetCertification(id)
	require.NoError(t, err)
	assert.False(t, certification.Active)

	err = r.DeactivateCertification(testIssuer, 42)
	assert.ErrorIs(t, err, ErrCertificationNotFound)
}

func TestHeightAdvancesPerMutation(t *testing.T) {
	r := newTestRegistry(t)

	st, err := loadState(r.db)
	require.NoError(t, err)
	start := st.Height

	require.NoError(t, r.RegisterIssuer(testOwner, testIssuer, "Acme", "desc"))
	_, err = r.CreateAchievement(testIssuer, "Course", "desc", "CS", MinRewardAmount)
	require.NoError(t, err)

	st, err = loadState(r.db)
	require.NoError(t, err)
	assert.Equal(t, start+2, st.Height)

	// Failed operations leave the clock untouched
	_, err = r.CreateAchievement(testIssuer, "", "desc", "CS", MinRewardAmount)
	require.ErrorIs(t, err, ErrInvalidInput)

	st, err = loadState(r.db)
	require.NoError(t, err)
	assert.Equal(t, start+2, st.Height)
}
