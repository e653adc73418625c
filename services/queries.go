// services/queries.go - Read-only registry queries
//
// Queries bypass access control and the pause flag entirely: they are pure
// reads and stay available while the registry is paused.
package services

import (
	"errors"

	"meritledger/models"

	"gorm.io/gorm"
)

// RegistryStats is the snapshot of the global counters.
type RegistryStats struct {
	TotalAchievements   uint64 `json:"total_achievements"`
	TotalCertifications uint64 `json:"total_certifications"`
	TotalUsers          uint64 `json:"total_users"`
	Balance             uint64 `json:"balance"`
	Paused              bool   `json:"paused"`
}

// RegistryHealth extends the stats snapshot with the owner identity.
type RegistryHealth struct {
	Paused              bool   `json:"paused"`
	Balance             uint64 `json:"balance"`
	TotalAchievements   uint64 `json:"total_achievements"`
	TotalCertifications uint64 `json:"total_certifications"`
	TotalUsers          uint64 `json:"total_users"`
	Owner               uint64 `json:"owner"`
}

// UserReport is a profile snapshot with zero defaults for accounts that have
// never been awarded anything, plus the global stats at read time.
type UserReport struct {
	Account             uint64        `json:"account"`
	HasProfile          bool          `json:"has_profile"`
	TotalAchievements   uint64        `json:"total_achievements"`
	TotalRewardsClaimed uint64        `json:"total_rewards_claimed"`
	TotalPoints         uint64        `json:"total_points"`
	JoinedAt            uint64        `json:"joined_at"`
	LastActivity        uint64        `json:"last_activity"`
	Stats               RegistryStats `json:"stats"`
}

// GetAchievement returns an achievement definition by id.
func (r *Registry) GetAchievement(id uint64) (*models.Achievement, error) {
	var achievement models.Achievement
	if err := r.db.First(&achievement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAchievementNotFound
		}
		return nil, err
	}
	return &achievement, nil
}

// GetCertification returns a certification definition by id.
func (r *Registry) GetCertification(id uint64) (*models.Certification, error) {
	var certification models.Certification
	if err := r.db.First(&certification, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCertificationNotFound
		}
		return nil, err
	}
	return &certification, nil
}

// GetIssuerInfo returns an issuer record by account.
func (r *Registry) GetIssuerInfo(account uint64) (*models.Issuer, error) {
	var issuer models.Issuer
	if err := r.db.First(&issuer, "account_id = ?", account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &issuer, nil
}

// GetUserProfile returns the profile for an account that has received at
// least one award.
func (r *Registry) GetUserProfile(account uint64) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.First(&profile, "account_id = ?", account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// HasAchievement reports whether account has earned the achievement.
func (r *Registry) HasAchievement(account, achievementID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.AchievementAward{}).
		Where("account_id = ? AND achievement_id = ?", account, achievementID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// HasCertification reports whether account has earned the certification.
func (r *Registry) HasCertification(account, certificationID uint64) (bool, error) {
	var count int64
	err := r.db.Model(&models.CertificationAward{}).
		Where("account_id = ? AND certification_id = ?", account, certificationID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRegistryStats returns the four global counters and the pause flag.
func (r *Registry) GetRegistryStats() (*RegistryStats, error) {
	st, err := loadState(r.db)
	if err != nil {
		return nil, err
	}
	return &RegistryStats{
		TotalAchievements:   st.TotalAchievements,
		TotalCertifications: st.TotalCertifications,
		TotalUsers:          st.TotalUsers,
		Balance:             st.Balance,
		Paused:              st.Paused,
	}, nil
}

// GetRegistryHealth returns the pause flag, balance, totals and the owner.
func (r *Registry) GetRegistryHealth() (*RegistryHealth, error) {
	st, err := loadState(r.db)
	if err != nil {
		return nil, err
	}
	return &RegistryHealth{
		Paused:              st.Paused,
		Balance:             st.Balance,
		TotalAchievements:   st.TotalAchievements,
		TotalCertifications: st.TotalCertifications,
		TotalUsers:          st.TotalUsers,
		Owner:               st.OwnerID,
	}, nil
}

// GetUserReport always succeeds: accounts without a profile report all
// counters as zero with HasProfile false.
func (r *Registry) GetUserReport(account uint64) (*UserReport, error) {
	stats, err := r.GetRegistryStats()
	if err != nil {
		return nil, err
	}

	report := &UserReport{Account: account, Stats: *stats}

	var profile models.Profile
	err = r.db.First(&profile, "account_id = ?", account).Error
	switch {
	case err == nil:
		report.HasProfile = true
		report.TotalAchievements = profile.TotalAchievements
		report.TotalRewardsClaimed = profile.TotalRewardsClaimed
		report.TotalPoints = profile.TotalPoints
		report.JoinedAt = profile.JoinedAt
		report.LastActivity = profile.LastActivity
	case errors.Is(err, gorm.ErrRecordNotFound):
		// zero defaults stand
	default:
		return nil, err
	}

	return report, nil
}
