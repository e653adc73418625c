// models/certification.go
package models

// Certification is a credential definition gated on a minimum achievement
// count. Certifications carry no reward amount.
type Certification struct {
	ID                   uint64 `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name                 string `gorm:"not null;size:100" json:"name"`
	Description          string `gorm:"size:500" json:"description"`
	RequiredAchievements uint64 `gorm:"not null" json:"required_achievements"`
	IssuerID             uint64 `gorm:"not null;index" json:"issuer"`
	Active               bool   `gorm:"default:true" json:"active"`
	CreatedAt            uint64 `json:"created_at"`
}

// CertificationAward records that an account earned a certification.
// Created once, never mutated.
type CertificationAward struct {
	ID              uint   `gorm:"primaryKey" json:"-"`
	AccountID       uint64 `gorm:"not null;uniqueIndex:idx_certification_awards_account_certification" json:"account"`
	CertificationID uint64 `gorm:"not null;uniqueIndex:idx_certification_awards_account_certification" json:"certification_id"`
	EarnedAt        uint64 `json:"earned_at"`
	IssuerID        uint64 `gorm:"not null" json:"issuer"`
}

func (Certification) TableName() string {
	return "certifications"
}

func (CertificationAward) TableName() string {
	return "certification_awards"
}
