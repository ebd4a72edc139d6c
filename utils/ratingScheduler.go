package utils

import (
	"fmt"
	"log"
	"time"

	"revio/database"
	"revio/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[RATING-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// reconcileAllRatings recomputes every company's average rating. The reactive
// recompute after each review write keeps values close; this sweep repairs any
// drift (lost writes, manual data edits).
func reconcileAllRatings() {
	db := database.Database.Db

	var companyIDs []uint
	if err := db.Model(&models.Company{}).Pluck("id", &companyIDs).Error; err != nil {
		logScheduler("Error fetching company ids: " + err.Error())
		return
	}

	for _, id := range companyIDs {
		RecalcCompanyRating(db, id)
	}

	logScheduler(fmt.Sprintf("Reconciled ratings for %d companies", len(companyIDs)))
}

// StartRatingScheduler runs the reconciliation sweep every hour
func StartRatingScheduler() *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", reconcileAllRatings); err != nil {
		log.Fatalf("Failed to register rating reconciliation job: %v", err)
	}

	c.Start()
	logScheduler("Scheduler started")
	return c
}
