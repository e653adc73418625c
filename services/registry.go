// services/registry.go - Registry core: access control, issuers, catalogs
package services

import (
	"errors"
	"sync"

	"meritledger/models"

	"gorm.io/gorm"
)

// Validation bounds and caps. Fixed at build time, mirroring the deployed
// configuration of the registry.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MaxCategoryLength    = 50

	MinRewardAmount uint64 = 1000
	MaxRewardAmount uint64 = 1000000

	MaxAchievementsPerUser = 100
	// MaxCertificationsPerUser is declared but deliberately not enforced;
	// see DESIGN.md.
	MaxCertificationsPerUser = 50
)

// Registry is the authorization-gated state machine over issuers, catalogs,
// award records, profiles and the reward balance. Every mutating operation
// holds the write mutex and runs as one transaction, so each operation is
// all-or-nothing and no operation ever observes another mid-flight.
type Registry struct {
	db     *gorm.DB
	events *EventBus
	mu     sync.Mutex
}

func NewRegistry(db *gorm.DB, events *EventBus) *Registry {
	return &Registry{db: db, events: events}
}

// ================== ACCESS CONTROL ==================

// IsOwner reports whether account is the fixed registry owner.
func (r *Registry) IsOwner(account uint64) bool {
	st, err := loadState(r.db)
	if err != nil {
		return false
	}
	return st.OwnerID == account
}

// IsActiveIssuer reports whether account has an active issuer record.
func (r *Registry) IsActiveIssuer(account uint64) bool {
	return isActiveIssuer(r.db, account)
}

// IsPaused reports the global pause flag.
func (r *Registry) IsPaused() bool {
	st, err := loadState(r.db)
	if err != nil {
		return false
	}
	return st.Paused
}

func loadState(tx *gorm.DB) (*models.RegistryState, error) {
	var st models.RegistryState
	if err := tx.First(&st, models.RegistryStateID).Error; err != nil {
		return nil, err
	}
	return &st, nil
}

func isActiveIssuer(tx *gorm.DB, account uint64) bool {
	var issuer models.Issuer
	if err := tx.First(&issuer, "account_id = ?", account).Error; err != nil {
		return false
	}
	return issuer.Active
}

// ================== ISSUER REGISTRY ==================

// RegisterIssuer creates or reactivates an issuer record. Owner only.
// Re-registering a known issuer resets its profile text and RegisteredAt.
func (r *Registry) RegisterIssuer(caller, account uint64, name, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrInvalidInput
		}
		if caller != st.OwnerID {
			return ErrUnauthorized
		}
		if name == "" || len(name) > MaxNameLength || len(description) > MaxDescriptionLength {
			return ErrInvalidInput
		}

		st.Height++

		var issuer models.Issuer
		err = tx.First(&issuer, "account_id = ?", account).Error
		switch {
		case err == nil:
			issuer.Name = name
			issuer.Description = description
			issuer.Active = true
			issuer.RegisteredAt = st.Height
			if err := tx.Save(&issuer).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			issuer = models.Issuer{
				AccountID:    account,
				Name:         name,
				Description:  description,
				Active:       true,
				RegisteredAt: st.Height,
			}
			if err := tx.Create(&issuer).Error; err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Save(st).Error
	})
}

// DeactivateIssuer flips an issuer inactive. Owner only. The only way back
// is RegisterIssuer again.
func (r *Registry) DeactivateIssuer(caller, account uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrInvalidInput
		}
		if caller != st.OwnerID {
			return ErrUnauthorized
		}

		var issuer models.Issuer
		if err := tx.First(&issuer, "account_id = ?", account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		st.Height++
		issuer.Active = false
		if err := tx.Save(&issuer).Error; err != nil {
			return err
		}
		return tx.Save(st).Error
	})
}

// ================== ACHIEVEMENT CATALOG ==================

// CreateAchievement stores a new achievement definition and returns its id.
// Caller must be an active issuer. Content is immutable after creation; only
// the active flag can ever change, and only to false.
func (r *Registry) CreateAchievement(caller uint64, name, description, category string, rewardAmount uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrInvalidInput
		}
		if !isActiveIssuer(tx, caller) {
			return ErrUnauthorized
		}
		if name == "" || len(name) > MaxNameLength {
			return ErrInvalidInput
		}
		if len(description) > MaxDescriptionLength {
			return ErrInvalidInput
		}
		if category == "" || len(category) > MaxCategoryLength {
			return ErrInvalidInput
		}
		if rewardAmount < MinRewardAmount || rewardAmount > MaxRewardAmount {
			return ErrInvalidInput
		}

		st.Height++
		st.TotalAchievements++
		id = st.TotalAchievements

		achievement := models.Achievement{
			ID:           id,
			Name:         name,
			Description:  description,
			Category:     category,
			RewardAmount: rewardAmount,
			IssuerID:     caller,
			Active:       true,
			CreatedAt:    st.Height,
		}
		if err := tx.Create(&achievement).Error; err != nil {
			return err
		}
		return tx.Save(st).Error
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeactivateAchievement flips a definition inactive. Caller must be the
// owner or the original issuer. Already-issued awards survive, but claims of
// earned-but-unclaimed rewards stop paying out.
func (r *Registry) DeactivateAchievement(caller, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrInvalidInput
		}

		var achievement models.Achievement
		if err := tx.First(&achievement, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementNotFound
			}
			return err
		}
		if caller != st.OwnerID && caller != achievement.IssuerID {
			return ErrUnauthorized
		}

		st.Height++
		achievement.Active = false
		if err := tx.Save(&achievement).Error; err != nil {
			return err
		}
		return tx.Save(st).Error
	})
}

// ================== CERTIFICATION CATALOG ==================

// CreateCertification stores a new certification definition and returns its
// id. Mirrors CreateAchievement with a required achievement count in place
// of reward bounds.
func (r *Registry) CreateCertification(caller uint64, name, description string, requiredAchievements uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var id uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrInvalidInput
		}
		if !isActiveIssuer(tx, caller) {
			return ErrUnauthorized
		}
		if name == "" || len(name) > MaxNameLength {
			return ErrInvalidInput
		}
		if len(description) > MaxDescriptionLength {
			return ErrInvalidInput
		}
		if requiredAchievements == 0 {
			return ErrInvalidInput
		}

		st.Height++
		st.TotalCertifications++
		id = st.TotalCertifications

		certification := models.Certification{
			ID:                   id,
			Name:                 name,
			Description:          description,
			RequiredAchievements: requiredAchievements,
			IssuerID:             caller,
			Active:               true,
			CreatedAt:            st.Height,
		}
		if err := tx.Create(&certification).Error; err != nil {
			return err
		}
		return tx.Save(st).Error
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// DeactivateCertification flips a definition inactive. Caller must be the
// owner or the original issuer.
func (r *Registry) DeactivateCertification(caller, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrInvalidInput
		}

		var certification models.Certification
		if err := tx.First(&certification, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCertificationNotFound
			}
			return err
		}
		if caller != st.OwnerID && caller != certification.IssuerID {
			return ErrUnauthorized
		}

		st.Height++
		certification.Active = false
		if err := tx.Save(&certification).Error; err != nil {
			return err
		}
		return tx.Save(st).Error
	})
}
