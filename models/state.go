// models/state.go
package models

// RegistryStateID is the primary key of the singleton state row.
const RegistryStateID = 1

// RegistryState is the singleton row holding the global counters, the reward
// balance, the pause flag and the ledger clock. Height increases by exactly
// one inside every successful mutating operation and is the timestamp source
// for every At field in the registry.
type RegistryState struct {
	ID                  uint   `gorm:"primaryKey" json:"-"`
	OwnerID             uint64 `gorm:"not null" json:"owner"`
	TotalAchievements   uint64 `gorm:"default:0" json:"total_achievements"`
	TotalCertifications uint64 `gorm:"default:0" json:"total_certifications"`
	TotalUsers          uint64 `gorm:"default:0" json:"total_users"`
	Balance             uint64 `gorm:"default:0" json:"balance"`
	Paused              bool   `gorm:"default:false" json:"paused"`
	Height              uint64 `gorm:"default:0" json:"height"`
}

func (RegistryState) TableName() string {
	return "registry_state"
}
