// models/issuer.go
package models

// Issuer is an account the owner has authorized to create and award
// achievements and certifications. Re-registering overwrites the row in
// place, including RegisteredAt.
type Issuer struct {
	AccountID    uint64 `gorm:"primaryKey;autoIncrement:false" json:"account"`
	Name         string `gorm:"not null;size:100" json:"name"`
	Description  string `gorm:"size:500" json:"description"`
	Active       bool   `gorm:"default:true" json:"active"`
	RegisteredAt uint64 `json:"registered_at"`
}

func (Issuer) TableName() string {
	return "issuers"
}
