// models/profile.go
package models

// Profile holds the rolling per-account counters. Created lazily when the
// account receives its first award, never deleted, counters only grow.
// TotalAchievements counts achievement awards only, not certifications.
type Profile struct {
	AccountID           uint64 `gorm:"primaryKey;autoIncrement:false" json:"account"`
	TotalAchievements   uint64 `gorm:"default:0" json:"total_achievements"`
	TotalRewardsClaimed uint64 `gorm:"default:0" json:"total_rewards_claimed"`
	TotalPoints         uint64 `gorm:"default:0" json:"total_points"`
	JoinedAt            uint64 `json:"joined_at"`
	LastActivity        uint64 `json:"last_activity"`
}

func (Profile) TableName() string {
	return "profiles"
}
