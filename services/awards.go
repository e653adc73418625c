// services/awards.go - Award engine and reward ledger
package services

import (
	"errors"

	"meritledger/models"

	"gorm.io/gorm"
)

// AwardAchievement grants an achievement to an account. Caller must be an
// active issuer; each (account, achievement) pair can only ever be awarded
// once. Points accrue on the profile immediately, the reward itself is paid
// out later by ClaimAchievementReward.
func (r *Registry) AwardAchievement(caller, account, achievementID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var event Event
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

		var existing models.AchievementAward
		err = tx.First(&existing, "account_id = ? AND achievement_id = ?", account, achievementID).Error
		if err == nil {
			return ErrInvalidInput
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		profile, created, err := loadOrNewProfile(tx, account)
		if err != nil {
			return err
		}
		if profile.TotalAchievements >= MaxAchievementsPerUser {
			return ErrLimitExceeded
		}

		var achievement models.Achievement
		if err := tx.First(&achievement, "id = ?", achievementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementNotFound
			}
			return err
		}
		if !achievement.Active {
			return ErrAchievementNotFound
		}

		st.Height++
		if created {
			profile.JoinedAt = st.Height
			st.TotalUsers++
		}
		profile.LastActivity = st.Height
		profile.TotalAchievements++
		profile.TotalPoints += achievement.RewardAmount
		if err := saveProfile(tx, profile, created); err != nil {
			return err
		}

		award := models.AchievementAward{
			AccountID:     account,
			AchievementID: achievementID,
			EarnedAt:      st.Height,
			Claimed:       false,
			IssuerID:      caller,
		}
		if err := tx.Create(&award).Error; err != nil {
			return err
		}
		if err := tx.Save(st).Error; err != nil {
			return err
		}

		event = Event{
			Type:    EventAchievementAwarded,
			Account: account,
			ID:      achievementID,
			Amount:  achievement.RewardAmount,
			Height:  st.Height,
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.events.Publish(event)
	return nil
}

// AwardCertification grants a certification to an account whose achievement
// count meets the certification's threshold at call time. Eligibility is
// never re-evaluated afterwards, so deactivating a counted achievement does
// not revoke the certification.
func (r *Registry) AwardCertification(caller, account, certificationID uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var event Event
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

		var existing models.CertificationAward
		err = tx.First(&existing, "account_id = ? AND certification_id = ?", account, certificationID).Error
		if err == nil {
			return ErrInvalidInput
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var certification models.Certification
		if err := tx.First(&certification, "id = ?", certificationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCertificationNotFound
			}
			return err
		}
		if !certification.Active {
			return ErrCertificationNotFound
		}

		profile, created, err := loadOrNewProfile(tx, account)
		if err != nil {
			return err
		}
		if profile.TotalAchievements < certification.RequiredAchievements {
			return ErrInvalidInput
		}

		st.Height++
		if created {
			profile.JoinedAt = st.Height
			st.TotalUsers++
		}
		profile.LastActivity = st.Height
		if err := saveProfile(tx, profile, created); err != nil {
			return err
		}

		award := models.CertificationAward{
			AccountID:       account,
			CertificationID: certificationID,
			EarnedAt:        st.Height,
			IssuerID:        caller,
		}
		if err := tx.Create(&award).Error; err != nil {
			return err
		}
		if err := tx.Save(st).Error; err != nil {
			return err
		}

		event = Event{
			Type:    EventCertificationAwarded,
			Account: account,
			ID:      certificationID,
			Height:  st.Height,
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.events.Publish(event)
	return nil
}

// ClaimAchievementReward pays out an earned, unclaimed achievement reward to
// the caller and returns the amount paid. The definition must still be
// active and the registry balance must cover the reward. This is the only
// operation that moves value out of the balance.
func (r *Registry) ClaimAchievementReward(caller, achievementID uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var (
		amount uint64
		event  Event
	)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if st.Paused {
			return ErrInvalidInput
		}

		var award models.AchievementAward
		if err := tx.First(&award, "account_id = ? AND achievement_id = ?", caller, achievementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementNotFound
			}
			return err
		}
		if award.Claimed {
			return ErrRewardAlreadyClaimed
		}

		var achievement models.Achievement
		if err := tx.First(&achievement, "id = ?", achievementID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAchievementNotFound
			}
			return err
		}
		if !achievement.Active {
			return ErrAchievementNotFound
		}
		if st.Balance < achievement.RewardAmount {
			return ErrInsufficientBalance
		}

		var profile models.Profile
		if err := tx.First(&profile, "account_id = ?", caller).Error; err != nil {
			return err
		}

		st.Height++
		award.Claimed = true
		if err := tx.Save(&award).Error; err != nil {
			return err
		}
		profile.TotalRewardsClaimed += achievement.RewardAmount
		if err := tx.Save(&profile).Error; err != nil {
			return err
		}
		st.Balance -= achievement.RewardAmount
		if err := tx.Save(st).Error; err != nil {
			return err
		}

		amount = achievement.RewardAmount
		event = Event{
			Type:    EventRewardClaimed,
			Account: caller,
			ID:      achievementID,
			Amount:  amount,
			Height:  st.Height,
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	r.events.Publish(event)
	return amount, nil
}

// FundRegistry adds owner funds to the reward balance and returns the new
// balance.
func (r *Registry) FundRegistry(caller uint64, amount uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var balance uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
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
		if amount == 0 {
			return ErrInvalidInput
		}

		st.Height++
		st.Balance += amount
		balance = st.Balance
		return tx.Save(st).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// WithdrawRegistryFunds removes owner funds from the reward balance and
// returns the new balance. The balance never underflows.
func (r *Registry) WithdrawRegistryFunds(caller uint64, amount uint64) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var balance uint64
	err := r.db.Transaction(func(tx *gorm.DB) error {
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
		if amount == 0 {
			return ErrInvalidInput
		}
		if st.Balance < amount {
			return ErrInsufficientBalance
		}

		st.Height++
		st.Balance -= amount
		balance = st.Balance
		return tx.Save(st).Error
	})
	if err != nil {
		return 0, err
	}
	return balance, nil
}

// EmergencyPause stops every mutating operation except ResumeOperations.
// Read-only queries keep working while paused.
func (r *Registry) EmergencyPause(caller uint64) error {
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

		st.Height++
		st.Paused = true
		return tx.Save(st).Error
	})
}

// ResumeOperations clears the pause flag. Owner only; the one mutating
// operation allowed while paused.
func (r *Registry) ResumeOperations(caller uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.db.Transaction(func(tx *gorm.DB) error {
		st, err := loadState(tx)
		if err != nil {
			return err
		}
		if caller != st.OwnerID {
			return ErrUnauthorized
		}

		st.Height++
		st.Paused = false
		return tx.Save(st).Error
	})
}

// loadOrNewProfile returns the account's profile, or a fresh zero profile
// with created=true when the account has never been awarded anything. The
// caller decides whether the new profile gets persisted.
func loadOrNewProfile(tx *gorm.DB, account uint64) (*models.Profile, bool, error) {
	var profile models.Profile
	err := tx.First(&profile, "account_id = ?", account).Error
	if err == nil {
		return &profile, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	return &models.Profile{AccountID: account}, true, nil
}

// saveProfile inserts a freshly created profile or updates an existing one.
// Profiles carry a preset primary key, so gorm's Save would silently update
// zero rows on first insert.
func saveProfile(tx *gorm.DB, profile *models.Profile, created bool) error {
	if created {
		return tx.Create(profile).Error
	}
	return tx.Save(profile).Error
}
