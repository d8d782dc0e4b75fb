package services

import (
	"log"
	"time"

	"ctfapi/database"
	"ctfapi/metrics"
	"ctfapi/models"

	"gorm.io/gorm"
)

// StartExpiryPoller launches the background sweep that marks overdue active
// sessions as expired. The sweep reuses the same lazy-expiry transition the
// request path performs, under the same row lock, so it never conflicts with
// an in-flight submission. Failures are logged and the next tick retries.
func StartExpiryPoller(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for range ticker.C {
			sweepExpiredSessions()
		}
	}()
}

func sweepExpiredSessions() {
	now := time.Now()

	var overdue []models.Progress
	if err := database.DB.
		Where("is_active = true AND challenge_end_time <= ?", now).
		Find(&overdue).Error; err != nil {
		log.Printf("Expiry sweep query failed: %v", err)
		return
	}

	for _, candidate := range overdue {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			progress, err := lockProgress(tx, candidate.UserID)
			if err != nil {
				return err
			}
			if !maybeExpire(progress, time.Now()) {
				// Already terminal: a request beat us to the transition
				return nil
			}
			metrics.SessionExpirations.Inc()
			return tx.Save(progress).Error
		})
		if err != nil {
			log.Printf("Failed to expire session for user %s: %v", candidate.UserID, err)
			continue
		}
		log.Printf("Session expired for user %s", candidate.UserID)

		// Best-effort notification: log and continue on failure
		notifySessionExpired(candidate.UserID)
	}

	// Correct any gauge drift from process restarts
	var active int64
	if err := database.DB.Model(&models.Progress{}).Where("is_active = true").Count(&active).Error; err == nil {
		metrics.ActiveSessions.Set(float64(active))
	}
}

func notifySessionExpired(userID string) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("Expiry notification skipped, user %s not found: %v", userID, err)
		return
	}
	if err := NewNotificationService().SendSessionExpiredEmail(user.Email, user.Name); err != nil {
		log.Printf("Failed to send expiry notification to %s: %v", user.Email, err)
	}
}
