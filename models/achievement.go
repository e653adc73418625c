// models/achievement.go
package models

// Achievement is an immutable reward-bearing definition created by an issuer.
// IDs are assigned by the registry from its sequential counter, never by the
// database, so they stay dense from 1.
type Achievement struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         string `gorm:"not null;size:100" json:"name"`
	Description  string `gorm:"size:500" json:"description"`
	Category     string `gorm:"not null;size:50;index" json:"category"`
	RewardAmount uint64 `gorm:"not null" json:"reward_amount"`
	IssuerID     uint64 `gorm:"not null;index" json:"issuer"`
	Active       bool   `gorm:"default:true" json:"active"`
	CreatedAt    uint64 `json:"created_at"` // ledger height, not wall clock
}

// AchievementAward records that an account earned an achievement.
// At most one row ever exists per (account, achievement) pair.
type AchievementAward struct {
	ID            uint   `gorm:"primaryKey" json:"-"`
	AccountID     uint64 `gorm:"not null;uniqueIndex:idx_achievement_awards_account_achievement" json:"account"`
	AchievementID uint64 `gorm:"not null;uniqueIndex:idx_achievement_awards_account_achievement" json:"achievement_id"`
	EarnedAt      uint64 `json:"earned_at"`
	Claimed       bool   `gorm:"default:false" json:"claimed"`
	IssuerID      uint64 `gorm:"not null" json:"issuer"`
}

func (Achievement) TableName() string {
	return "achievements"
}

func (AchievementAward) TableName() string {
	return "achievement_awards"
}
